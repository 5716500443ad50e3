package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lunara-health/lunara/internal/models"
)

var ErrInvalidReminderType = errors.New("invalid reminder type")

type NotificationStore interface {
	ListByUser(userID uint, unreadOnly bool) ([]models.Notification, error)
	FindForUser(notificationID uint, userID uint) (models.Notification, error)
	CreateIfAbsent(notification *models.Notification) (bool, error)
	Save(notification *models.Notification) error
	MarkRead(notification *models.Notification, at time.Time) error
	FindPreferences(userID uint) (models.NotificationPreference, error)
	SavePreferences(preferences *models.NotificationPreference) error
	ListReminderSchedules(userID uint) ([]models.ReminderSchedule, error)
	ListEnabledSchedules() ([]models.ReminderSchedule, error)
	FindReminderForUser(reminderID uint, userID uint) (models.ReminderSchedule, error)
	CreateReminder(schedule *models.ReminderSchedule) error
	SaveReminder(schedule *models.ReminderSchedule) error
	DeleteReminderForUser(reminderID uint, userID uint) error
}

type NotificationService struct {
	store NotificationStore
}

func NewNotificationService(store NotificationStore) *NotificationService {
	return &NotificationService{store: store}
}

func (service *NotificationService) List(userID uint, unreadOnly bool) ([]models.Notification, error) {
	return service.store.ListByUser(userID, unreadOnly)
}

func (service *NotificationService) MarkRead(notificationID uint, userID uint, now time.Time) (models.Notification, error) {
	notification, err := service.store.FindForUser(notificationID, userID)
	if err != nil {
		return models.Notification{}, err
	}
	if !notification.IsRead {
		if err := service.store.MarkRead(&notification, now); err != nil {
			return models.Notification{}, err
		}
		notification.IsRead = true
		notification.ReadAt = &now
	}
	return notification, nil
}

func (service *NotificationService) Preferences(userID uint) (models.NotificationPreference, error) {
	return service.store.FindPreferences(userID)
}

func (service *NotificationService) SavePreferences(preferences *models.NotificationPreference) error {
	return service.store.SavePreferences(preferences)
}

func (service *NotificationService) Reminders(userID uint) ([]models.ReminderSchedule, error) {
	return service.store.ListReminderSchedules(userID)
}

type ReminderInput struct {
	ReminderType     string
	IsEnabled        bool
	DaysBefore       int
	NotificationTime string
}

func (service *NotificationService) CreateReminder(userID uint, input ReminderInput) (models.ReminderSchedule, error) {
	if !models.ValidReminderType(input.ReminderType) {
		return models.ReminderSchedule{}, ErrInvalidReminderType
	}
	schedule := models.ReminderSchedule{
		UserID:           userID,
		ReminderType:     input.ReminderType,
		IsEnabled:        input.IsEnabled,
		DaysBefore:       normalizeDaysBefore(input.DaysBefore),
		NotificationTime: normalizeClock(input.NotificationTime),
	}
	if err := service.store.CreateReminder(&schedule); err != nil {
		return models.ReminderSchedule{}, err
	}
	return schedule, nil
}

func (service *NotificationService) UpdateReminder(reminderID uint, userID uint, input ReminderInput) (models.ReminderSchedule, error) {
	schedule, err := service.store.FindReminderForUser(reminderID, userID)
	if err != nil {
		return models.ReminderSchedule{}, err
	}
	if input.ReminderType != "" {
		if !models.ValidReminderType(input.ReminderType) {
			return models.ReminderSchedule{}, ErrInvalidReminderType
		}
		schedule.ReminderType = input.ReminderType
	}
	schedule.IsEnabled = input.IsEnabled
	schedule.DaysBefore = normalizeDaysBefore(input.DaysBefore)
	if input.NotificationTime != "" {
		schedule.NotificationTime = normalizeClock(input.NotificationTime)
	}
	if err := service.store.SaveReminder(&schedule); err != nil {
		return models.ReminderSchedule{}, err
	}
	return schedule, nil
}

func (service *NotificationService) DeleteReminder(reminderID uint, userID uint) error {
	if _, err := service.store.FindReminderForUser(reminderID, userID); err != nil {
		return err
	}
	return service.store.DeleteReminderForUser(reminderID, userID)
}

func normalizeDaysBefore(days int) int {
	if days < 0 {
		return 0
	}
	if days > 14 {
		return 14
	}
	return days
}

// normalizeClock keeps the stored reminder time in HH:MM form.
func normalizeClock(raw string) string {
	parts := strings.SplitN(strings.TrimSpace(raw), ":", 3)
	if len(parts) < 2 {
		return "09:00"
	}
	hour, errHour := strconv.Atoi(parts[0])
	minute, errMinute := strconv.Atoi(parts[1])
	if errHour != nil || errMinute != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return "09:00"
	}
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// ReminderDedupeKey identifies one materialized reminder occurrence.
func ReminderDedupeKey(userID uint, reminderType string, target time.Time) string {
	return fmt.Sprintf("%d:%s:%s", userID, reminderType, dayKey(target))
}

// WithinQuietHours reports whether the clock time of now falls inside the
// configured quiet window, which may wrap past midnight.
func WithinQuietHours(preferences models.NotificationPreference, now time.Time) bool {
	if !preferences.QuietHoursEnabled {
		return false
	}
	start := parseClockMinutes(preferences.QuietHoursStart)
	end := parseClockMinutes(preferences.QuietHoursEnd)
	if start < 0 || end < 0 || start == end {
		return false
	}

	current := now.Hour()*60 + now.Minute()
	if start < end {
		return current >= start && current < end
	}
	return current >= start || current < end
}

func parseClockMinutes(raw string) int {
	parts := strings.SplitN(strings.TrimSpace(raw), ":", 3)
	if len(parts) < 2 {
		return -1
	}
	hour, errHour := strconv.Atoi(parts[0])
	minute, errMinute := strconv.Atoi(parts[1])
	if errHour != nil || errMinute != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return -1
	}
	return hour*60 + minute
}
