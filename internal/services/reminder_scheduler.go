package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/lunara-health/lunara/internal/models"
)

type schedulerCycleReader interface {
	ListByUser(userID uint) ([]models.Cycle, error)
}

// ReminderScheduler periodically materializes upcoming reminders as pending
// in-app notification rows. Delivery beyond the stored row is someone
// else's job.
type ReminderScheduler struct {
	store    NotificationStore
	cycles   schedulerCycleReader
	config   AnalyticsConfig
	interval time.Duration
	location *time.Location
}

func NewReminderScheduler(store NotificationStore, cycles schedulerCycleReader, config AnalyticsConfig, interval time.Duration, location *time.Location) *ReminderScheduler {
	if interval <= 0 {
		interval = 6 * time.Hour
	}
	if location == nil {
		location = time.UTC
	}
	return &ReminderScheduler{
		store:    store,
		cycles:   cycles,
		config:   config,
		interval: interval,
		location: location,
	}
}

func (scheduler *ReminderScheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(scheduler.interval)
	go func() {
		defer ticker.Stop()

		scheduler.RunOnce(time.Now().In(scheduler.location))
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				scheduler.RunOnce(time.Now().In(scheduler.location))
			}
		}
	}()
}

// RunOnce scans enabled schedules and creates any reminder rows that are
// due within the lookahead horizon. Safe to call repeatedly; the dedupe
// key makes materialization idempotent.
func (scheduler *ReminderScheduler) RunOnce(now time.Time) {
	schedules, err := scheduler.store.ListEnabledSchedules()
	if err != nil {
		log.Printf("reminders: list schedules failed: %v", err)
		return
	}

	for _, schedule := range schedules {
		if err := scheduler.materialize(schedule, now); err != nil {
			log.Printf("reminders: user %d %s failed: %v", schedule.UserID, schedule.ReminderType, err)
		}
	}
}

func (scheduler *ReminderScheduler) materialize(schedule models.ReminderSchedule, now time.Time) error {
	preferences, err := scheduler.store.FindPreferences(schedule.UserID)
	if err != nil {
		return err
	}
	if !preferences.InAppEnabled || !reminderTypeAllowed(preferences, schedule.ReminderType) {
		return nil
	}
	if WithinQuietHours(preferences, now) {
		return nil
	}

	target, subject, body, ok, err := scheduler.reminderTarget(schedule, now)
	if err != nil || !ok {
		return err
	}

	scheduledFor := reminderFireTime(target, schedule, scheduler.location)
	// Only materialize once the reminder window has opened; earlier runs
	// pick it up on a later tick.
	if scheduledFor.After(now.AddDate(0, 0, 1)) {
		return nil
	}

	notification := models.Notification{
		UserID:       schedule.UserID,
		Subject:      subject,
		Body:         body,
		Channel:      models.NotificationChannelInApp,
		Status:       models.NotificationStatusPending,
		DedupeKey:    ReminderDedupeKey(schedule.UserID, schedule.ReminderType, target),
		ScheduledFor: scheduledFor,
	}
	created, err := scheduler.store.CreateIfAbsent(&notification)
	if err != nil || !created {
		return err
	}

	// In-app delivery is the stored row itself.
	sentAt := now
	notification.Status = models.NotificationStatusSent
	notification.SentAt = &sentAt
	return scheduler.store.Save(&notification)
}

// reminderTarget resolves the event date a schedule points at. Schedules
// whose prediction cannot be computed are skipped silently.
func (scheduler *ReminderScheduler) reminderTarget(schedule models.ReminderSchedule, now time.Time) (time.Time, string, string, bool, error) {
	switch schedule.ReminderType {
	case models.ReminderTypeDailyLog:
		target := dateOnly(now)
		return target, "Daily log reminder", "Don't forget to log how you're feeling today.", true, nil
	case models.ReminderTypePeriod, models.ReminderTypeOvulation:
		cycles, err := scheduler.cycles.ListByUser(schedule.UserID)
		if err != nil {
			return time.Time{}, "", "", false, err
		}
		summaries := Summaries(cycles)
		stats, err := ComputeCycleStatistics(summaries, scheduler.config)
		if err != nil {
			return time.Time{}, "", "", false, nil
		}
		prediction, err := PredictNextCycle(summaries[len(summaries)-1].Start, stats, scheduler.config)
		if err != nil {
			return time.Time{}, "", "", false, nil
		}

		if schedule.ReminderType == models.ReminderTypePeriod {
			return prediction.PeriodStart,
				"Period reminder",
				fmt.Sprintf("Your next period is expected around %s.", dayKey(prediction.PeriodStart)),
				true, nil
		}
		return prediction.Ovulation,
			"Ovulation reminder",
			fmt.Sprintf("Ovulation is estimated around %s.", dayKey(prediction.Ovulation)),
			true, nil
	default:
		return time.Time{}, "", "", false, nil
	}
}

func reminderTypeAllowed(preferences models.NotificationPreference, reminderType string) bool {
	switch reminderType {
	case models.ReminderTypePeriod:
		return preferences.PeriodRemindersEnabled
	case models.ReminderTypeOvulation:
		return preferences.OvulationRemindersEnabled
	default:
		return true
	}
}

func reminderFireTime(target time.Time, schedule models.ReminderSchedule, location *time.Location) time.Time {
	day := dateOnly(target).AddDate(0, 0, -schedule.DaysBefore)
	minutes := parseClockMinutes(schedule.NotificationTime)
	if minutes < 0 {
		minutes = 9 * 60
	}
	return time.Date(day.Year(), day.Month(), day.Day(), minutes/60, minutes%60, 0, 0, location)
}
