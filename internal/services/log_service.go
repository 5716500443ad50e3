package services

import (
	"errors"
	"time"

	"github.com/lunara-health/lunara/internal/models"
)

var (
	ErrInvalidMood      = errors.New("invalid mood value")
	ErrDuplicateLog     = errors.New("log already exists for date")
	ErrUnknownSymptomID = errors.New("unknown symptom id")
)

type DailyLogStore interface {
	ListByUser(userID uint) ([]models.DailyLog, error)
	ListByUserSince(userID uint, since time.Time) ([]models.DailyLog, error)
	FindByIDForUser(logID uint, userID uint) (models.DailyLog, error)
	FindByUserAndDate(userID uint, date time.Time) (models.DailyLog, bool, error)
	Create(entry *models.DailyLog) error
	Save(entry *models.DailyLog) error
	DeleteByIDForUser(logID uint, userID uint) error
}

type SymptomCatalog interface {
	ListActive() ([]models.Symptom, error)
	ExistingIDs(ids []uint) ([]uint, error)
}

type LogService struct {
	logs     DailyLogStore
	symptoms SymptomCatalog
}

func NewLogService(logs DailyLogStore, symptoms SymptomCatalog) *LogService {
	return &LogService{logs: logs, symptoms: symptoms}
}

type DailyLogInput struct {
	Date           time.Time
	Mood           string
	SymptomIDs     []uint
	Temperature    *float64
	Weight         *float64
	SexualActivity bool
	Notes          string
}

func (service *LogService) validateInput(input DailyLogInput) ([]uint, error) {
	if input.Mood != "" && !models.ValidMood(input.Mood) {
		return nil, ErrInvalidMood
	}
	cleanIDs, err := service.symptoms.ExistingIDs(dedupeIDs(input.SymptomIDs))
	if err != nil {
		return nil, err
	}
	if len(cleanIDs) != len(dedupeIDs(input.SymptomIDs)) {
		return nil, ErrUnknownSymptomID
	}
	return cleanIDs, nil
}

func (service *LogService) List(userID uint) ([]models.DailyLog, error) {
	return service.logs.ListByUser(userID)
}

func (service *LogService) Get(logID uint, userID uint) (models.DailyLog, error) {
	return service.logs.FindByIDForUser(logID, userID)
}

// Create enforces the one-log-per-user-per-date invariant.
func (service *LogService) Create(userID uint, input DailyLogInput) (models.DailyLog, error) {
	cleanIDs, err := service.validateInput(input)
	if err != nil {
		return models.DailyLog{}, err
	}

	date := dateOnly(input.Date)
	_, exists, err := service.logs.FindByUserAndDate(userID, date)
	if err != nil {
		return models.DailyLog{}, err
	}
	if exists {
		return models.DailyLog{}, ErrDuplicateLog
	}

	entry := models.DailyLog{
		UserID:         userID,
		Date:           date,
		Mood:           input.Mood,
		SymptomIDs:     cleanIDs,
		Temperature:    input.Temperature,
		Weight:         input.Weight,
		SexualActivity: input.SexualActivity,
		Notes:          input.Notes,
	}
	if err := service.logs.Create(&entry); err != nil {
		return models.DailyLog{}, err
	}
	return entry, nil
}

func (service *LogService) Update(logID uint, userID uint, input DailyLogInput) (models.DailyLog, error) {
	entry, err := service.logs.FindByIDForUser(logID, userID)
	if err != nil {
		return models.DailyLog{}, err
	}

	cleanIDs, err := service.validateInput(input)
	if err != nil {
		return models.DailyLog{}, err
	}

	entry.Mood = input.Mood
	entry.SymptomIDs = cleanIDs
	entry.Temperature = input.Temperature
	entry.Weight = input.Weight
	entry.SexualActivity = input.SexualActivity
	entry.Notes = input.Notes
	if err := service.logs.Save(&entry); err != nil {
		return models.DailyLog{}, err
	}
	return entry, nil
}

func (service *LogService) Delete(logID uint, userID uint) error {
	if _, err := service.logs.FindByIDForUser(logID, userID); err != nil {
		return err
	}
	return service.logs.DeleteByIDForUser(logID, userID)
}

func (service *LogService) Symptoms() ([]models.Symptom, error) {
	return service.symptoms.ListActive()
}

func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	unique := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, duplicate := seen[id]; duplicate {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}
