package services

import (
	"errors"
	"time"

	"github.com/lunara-health/lunara/internal/models"
)

var (
	ErrInvalidDateRange = errors.New("end date precedes start date")
	ErrDuplicateCycle   = errors.New("cycle already exists for start date")
	ErrInvalidFlow      = errors.New("invalid flow value")
	ErrDateOutsideCycle = errors.New("date outside cycle range")
)

type CycleStore interface {
	ListByUser(userID uint) ([]models.Cycle, error)
	FindByIDForUser(cycleID uint, userID uint) (models.Cycle, error)
	FindActiveByUser(userID uint) (models.Cycle, error)
	ExistsByUserAndStart(userID uint, startDate time.Time) (bool, error)
	Create(cycle *models.Cycle) error
	Save(cycle *models.Cycle) error
	DeleteByIDForUser(cycleID uint, userID uint) error
	ListPeriodDays(cycleID uint) ([]models.PeriodDay, error)
	CreatePeriodDay(day *models.PeriodDay) error
}

type CycleService struct {
	cycles CycleStore
}

func NewCycleService(cycles CycleStore) *CycleService {
	return &CycleService{cycles: cycles}
}

type CycleInput struct {
	StartDate time.Time
	EndDate   *time.Time
	Notes     string
}

func validateCycleDates(start time.Time, end *time.Time) error {
	if end != nil && end.Before(start) {
		return ErrInvalidDateRange
	}
	return nil
}

func (service *CycleService) List(userID uint) ([]models.Cycle, error) {
	return service.cycles.ListByUser(userID)
}

func (service *CycleService) Get(cycleID uint, userID uint) (models.Cycle, error) {
	return service.cycles.FindByIDForUser(cycleID, userID)
}

func (service *CycleService) Current(userID uint) (models.Cycle, error) {
	return service.cycles.FindActiveByUser(userID)
}

func (service *CycleService) Create(userID uint, input CycleInput) (models.Cycle, error) {
	start := dateOnly(input.StartDate)
	if err := validateCycleDates(start, input.EndDate); err != nil {
		return models.Cycle{}, err
	}

	exists, err := service.cycles.ExistsByUserAndStart(userID, start)
	if err != nil {
		return models.Cycle{}, err
	}
	if exists {
		return models.Cycle{}, ErrDuplicateCycle
	}

	cycle := models.Cycle{
		UserID:    userID,
		StartDate: start,
		EndDate:   input.EndDate,
		IsActive:  true,
		Notes:     input.Notes,
	}
	cycle.RecalculateLength()
	if err := service.cycles.Create(&cycle); err != nil {
		return models.Cycle{}, err
	}
	return cycle, nil
}

type CycleUpdate struct {
	StartDate *time.Time
	EndDate   *time.Time
	ClearEnd  bool
	IsActive  *bool
	Notes     *string
}

func (service *CycleService) Update(cycleID uint, userID uint, update CycleUpdate) (models.Cycle, error) {
	cycle, err := service.cycles.FindByIDForUser(cycleID, userID)
	if err != nil {
		return models.Cycle{}, err
	}

	if update.StartDate != nil {
		cycle.StartDate = dateOnly(*update.StartDate)
	}
	if update.ClearEnd {
		cycle.EndDate = nil
	} else if update.EndDate != nil {
		end := dateOnly(*update.EndDate)
		cycle.EndDate = &end
	}
	if update.IsActive != nil {
		cycle.IsActive = *update.IsActive
	}
	if update.Notes != nil {
		cycle.Notes = *update.Notes
	}

	if err := validateCycleDates(cycle.StartDate, cycle.EndDate); err != nil {
		return models.Cycle{}, err
	}

	cycle.RecalculateLength()
	if cycle.EndDate != nil {
		days, err := service.cycles.ListPeriodDays(cycle.ID)
		if err != nil {
			return models.Cycle{}, err
		}
		if len(days) > 0 {
			periodLength := len(days)
			cycle.PeriodLength = &periodLength
		}
	}

	if err := service.cycles.Save(&cycle); err != nil {
		return models.Cycle{}, err
	}
	return cycle, nil
}

func (service *CycleService) Delete(cycleID uint, userID uint) error {
	if _, err := service.cycles.FindByIDForUser(cycleID, userID); err != nil {
		return err
	}
	return service.cycles.DeleteByIDForUser(cycleID, userID)
}

type PeriodDayInput struct {
	Date  time.Time
	Flow  string
	Notes string
}

// AddPeriodDay attaches a bleeding day to a cycle and refreshes the cycle's
// derived period length.
func (service *CycleService) AddPeriodDay(cycleID uint, userID uint, input PeriodDayInput) (models.PeriodDay, error) {
	cycle, err := service.cycles.FindByIDForUser(cycleID, userID)
	if err != nil {
		return models.PeriodDay{}, err
	}
	if !models.ValidFlow(input.Flow) {
		return models.PeriodDay{}, ErrInvalidFlow
	}

	date := dateOnly(input.Date)
	if date.Before(dateOnly(cycle.StartDate)) {
		return models.PeriodDay{}, ErrDateOutsideCycle
	}
	if cycle.EndDate != nil && date.After(dateOnly(*cycle.EndDate)) {
		return models.PeriodDay{}, ErrDateOutsideCycle
	}

	day := models.PeriodDay{
		CycleID: cycle.ID,
		Date:    date,
		Flow:    input.Flow,
		Notes:   input.Notes,
	}
	if err := service.cycles.CreatePeriodDay(&day); err != nil {
		return models.PeriodDay{}, err
	}

	days, err := service.cycles.ListPeriodDays(cycle.ID)
	if err != nil {
		return models.PeriodDay{}, err
	}
	periodLength := len(days)
	cycle.PeriodLength = &periodLength
	if err := service.cycles.Save(&cycle); err != nil {
		return models.PeriodDay{}, err
	}
	return day, nil
}

func (service *CycleService) PeriodDays(cycleID uint, userID uint) ([]models.PeriodDay, error) {
	if _, err := service.cycles.FindByIDForUser(cycleID, userID); err != nil {
		return nil, err
	}
	return service.cycles.ListPeriodDays(cycleID)
}

// Summaries converts stored cycles to the plain shape the engines accept.
func Summaries(cycles []models.Cycle) []CycleSummary {
	summaries := make([]CycleSummary, 0, len(cycles))
	for _, cycle := range cycles {
		summary := CycleSummary{Start: dateOnly(cycle.StartDate)}
		if cycle.EndDate != nil {
			end := dateOnly(*cycle.EndDate)
			summary.End = &end
		}
		summaries = append(summaries, summary)
	}
	return summaries
}
