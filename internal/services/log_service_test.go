package services

import (
	"errors"
	"testing"
	"time"

	"github.com/lunara-health/lunara/internal/models"
	"gorm.io/gorm"
)

type fakeLogStore struct {
	logs   map[uint]models.DailyLog
	nextID uint
}

func newFakeLogStore() *fakeLogStore {
	return &fakeLogStore{logs: make(map[uint]models.DailyLog), nextID: 1}
}

func (store *fakeLogStore) ListByUser(userID uint) ([]models.DailyLog, error) {
	out := make([]models.DailyLog, 0)
	for _, entry := range store.logs {
		if entry.UserID == userID {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (store *fakeLogStore) ListByUserSince(userID uint, since time.Time) ([]models.DailyLog, error) {
	out := make([]models.DailyLog, 0)
	for _, entry := range store.logs {
		if entry.UserID == userID && !entry.Date.Before(since) {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (store *fakeLogStore) FindByIDForUser(logID uint, userID uint) (models.DailyLog, error) {
	entry, ok := store.logs[logID]
	if !ok || entry.UserID != userID {
		return models.DailyLog{}, gorm.ErrRecordNotFound
	}
	return entry, nil
}

func (store *fakeLogStore) FindByUserAndDate(userID uint, date time.Time) (models.DailyLog, bool, error) {
	for _, entry := range store.logs {
		if entry.UserID == userID && entry.Date.Equal(date) {
			return entry, true, nil
		}
	}
	return models.DailyLog{}, false, nil
}

func (store *fakeLogStore) Create(entry *models.DailyLog) error {
	entry.ID = store.nextID
	store.nextID++
	store.logs[entry.ID] = *entry
	return nil
}

func (store *fakeLogStore) Save(entry *models.DailyLog) error {
	store.logs[entry.ID] = *entry
	return nil
}

func (store *fakeLogStore) DeleteByIDForUser(logID uint, userID uint) error {
	delete(store.logs, logID)
	return nil
}

type fakeSymptomCatalog struct {
	symptoms []models.Symptom
}

func (catalog *fakeSymptomCatalog) ListActive() ([]models.Symptom, error) {
	return catalog.symptoms, nil
}

func (catalog *fakeSymptomCatalog) ExistingIDs(ids []uint) ([]uint, error) {
	known := make(map[uint]struct{}, len(catalog.symptoms))
	for _, symptom := range catalog.symptoms {
		known[symptom.ID] = struct{}{}
	}
	existing := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := known[id]; ok {
			existing = append(existing, id)
		}
	}
	return existing, nil
}

func newLogServiceForTest() (*LogService, *fakeLogStore) {
	store := newFakeLogStore()
	catalog := &fakeSymptomCatalog{symptoms: []models.Symptom{{ID: 1, Name: "Cramps"}, {ID: 2, Name: "Headache"}}}
	return NewLogService(store, catalog), store
}

func TestCreateLogEnforcesOnePerDate(t *testing.T) {
	t.Parallel()

	service, _ := newLogServiceForTest()

	entry, err := service.Create(1, DailyLogInput{Date: day("2025-03-01"), Mood: models.MoodGood, SymptomIDs: []uint{1, 1, 2}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entry.SymptomIDs) != 2 {
		t.Fatalf("expected deduplicated symptom ids, got %v", entry.SymptomIDs)
	}

	if _, err := service.Create(1, DailyLogInput{Date: day("2025-03-01")}); !errors.Is(err, ErrDuplicateLog) {
		t.Fatalf("expected ErrDuplicateLog, got %v", err)
	}
	if _, err := service.Create(2, DailyLogInput{Date: day("2025-03-01")}); err != nil {
		t.Fatalf("expected another user to log the same date, got %v", err)
	}
}

func TestCreateLogValidation(t *testing.T) {
	t.Parallel()

	service, _ := newLogServiceForTest()

	if _, err := service.Create(1, DailyLogInput{Date: day("2025-03-01"), Mood: "ecstatic"}); !errors.Is(err, ErrInvalidMood) {
		t.Fatalf("expected ErrInvalidMood, got %v", err)
	}
	if _, err := service.Create(1, DailyLogInput{Date: day("2025-03-01"), SymptomIDs: []uint{99}}); !errors.Is(err, ErrUnknownSymptomID) {
		t.Fatalf("expected ErrUnknownSymptomID, got %v", err)
	}
}

func TestUpdateLogKeepsDateAndOwnership(t *testing.T) {
	t.Parallel()

	service, _ := newLogServiceForTest()
	entry, err := service.Create(1, DailyLogInput{Date: day("2025-03-01"), Mood: models.MoodOkay})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := service.Update(entry.ID, 1, DailyLogInput{Date: day("2025-04-15"), Mood: models.MoodGreat})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated.Date.Equal(day("2025-03-01")) {
		t.Fatalf("expected the log date to be immutable, got %s", updated.Date.Format("2006-01-02"))
	}
	if updated.Mood != models.MoodGreat {
		t.Fatalf("expected mood update, got %q", updated.Mood)
	}

	if _, err := service.Update(entry.ID, 2, DailyLogInput{Date: day("2025-03-01")}); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected not found for another user, got %v", err)
	}
}
