package db

import (
	"testing"
	"time"

	"github.com/lunara-health/lunara/internal/models"
)

func TestCreateWithDefaultsProvisionsProfileAndReminders(t *testing.T) {
	database := openTestDB(t)
	repos := NewRepositories(database)

	user := models.User{
		Email:        "ada@example.com",
		PasswordHash: "hash-1",
		Timezone:     "UTC",
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := repos.Users.CreateWithDefaults(&user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected user id to be assigned")
	}

	profile, err := repos.Users.FindProfile(user.ID)
	if err != nil {
		t.Fatalf("load profile: %v", err)
	}
	if profile.AverageCycleLength != models.DefaultCycleLength {
		t.Fatalf("expected default cycle length %d, got %d", models.DefaultCycleLength, profile.AverageCycleLength)
	}
	if profile.AveragePeriodLength != models.DefaultPeriodLength {
		t.Fatalf("expected default period length %d, got %d", models.DefaultPeriodLength, profile.AveragePeriodLength)
	}

	preferences, err := repos.Notifications.FindPreferences(user.ID)
	if err != nil {
		t.Fatalf("load preferences: %v", err)
	}
	if !preferences.InAppEnabled {
		t.Fatal("expected in-app notifications enabled by default")
	}

	reminders, err := repos.Notifications.ListReminderSchedules(user.ID)
	if err != nil {
		t.Fatalf("load reminders: %v", err)
	}
	if len(reminders) != 1 || reminders[0].ReminderType != models.ReminderTypePeriod {
		t.Fatalf("expected a single default period reminder, got %+v", reminders)
	}
}

func TestDuplicateEmailRejected(t *testing.T) {
	database := openTestDB(t)
	repos := NewRepositories(database)

	first := models.User{Email: "Dup@Example.com ", PasswordHash: "hash-1", Timezone: "UTC", IsActive: true}
	if err := repos.Users.CreateWithDefaults(&first); err != nil {
		t.Fatalf("create first user: %v", err)
	}

	exists, err := repos.Users.ExistsByNormalizedEmail("dup@example.com")
	if err != nil {
		t.Fatalf("exists lookup: %v", err)
	}
	if !exists {
		t.Fatal("expected normalized email lookup to find the existing user")
	}

	second := models.User{Email: "Dup@Example.com ", PasswordHash: "hash-2", Timezone: "UTC", IsActive: true}
	if err := repos.Users.CreateWithDefaults(&second); err == nil {
		t.Fatal("expected duplicate email insert to fail")
	}
}
