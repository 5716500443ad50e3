package db

import (
	"time"

	"github.com/lunara-health/lunara/internal/models"
	"gorm.io/gorm"
)

type NotificationRepository struct {
	database *gorm.DB
}

func NewNotificationRepository(database *gorm.DB) *NotificationRepository {
	return &NotificationRepository{database: database}
}

func (repo *NotificationRepository) ListByUser(userID uint, unreadOnly bool) ([]models.Notification, error) {
	query := repo.database.Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}
	notifications := make([]models.Notification, 0)
	if err := query.Order("scheduled_for DESC, id DESC").Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (repo *NotificationRepository) FindForUser(notificationID uint, userID uint) (models.Notification, error) {
	var notification models.Notification
	if err := repo.database.
		Where("id = ? AND user_id = ?", notificationID, userID).
		First(&notification).Error; err != nil {
		return models.Notification{}, err
	}
	return notification, nil
}

func (repo *NotificationRepository) Save(notification *models.Notification) error {
	return repo.database.Save(notification).Error
}

// CreateIfAbsent inserts a notification unless its dedupe key already
// exists. Reports whether a row was created.
func (repo *NotificationRepository) CreateIfAbsent(notification *models.Notification) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.Notification{}).
		Where("dedupe_key = ?", notification.DedupeKey).
		Count(&matched).Error; err != nil {
		return false, err
	}
	if matched > 0 {
		return false, nil
	}
	if err := repo.database.Create(notification).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (repo *NotificationRepository) FindPreferences(userID uint) (models.NotificationPreference, error) {
	var preferences models.NotificationPreference
	if err := repo.database.Where("user_id = ?", userID).First(&preferences).Error; err != nil {
		return models.NotificationPreference{}, err
	}
	return preferences, nil
}

func (repo *NotificationRepository) SavePreferences(preferences *models.NotificationPreference) error {
	return repo.database.Save(preferences).Error
}

func (repo *NotificationRepository) ListReminderSchedules(userID uint) ([]models.ReminderSchedule, error) {
	schedules := make([]models.ReminderSchedule, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("reminder_type ASC").
		Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}

func (repo *NotificationRepository) ListEnabledSchedules() ([]models.ReminderSchedule, error) {
	schedules := make([]models.ReminderSchedule, 0)
	if err := repo.database.
		Where("is_enabled = ?", true).
		Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}

func (repo *NotificationRepository) FindReminderForUser(reminderID uint, userID uint) (models.ReminderSchedule, error) {
	var schedule models.ReminderSchedule
	if err := repo.database.
		Where("id = ? AND user_id = ?", reminderID, userID).
		First(&schedule).Error; err != nil {
		return models.ReminderSchedule{}, err
	}
	return schedule, nil
}

func (repo *NotificationRepository) CreateReminder(schedule *models.ReminderSchedule) error {
	return repo.database.Create(schedule).Error
}

func (repo *NotificationRepository) SaveReminder(schedule *models.ReminderSchedule) error {
	return repo.database.Save(schedule).Error
}

func (repo *NotificationRepository) DeleteReminderForUser(reminderID uint, userID uint) error {
	return repo.database.
		Where("id = ? AND user_id = ?", reminderID, userID).
		Delete(&models.ReminderSchedule{}).Error
}

func (repo *NotificationRepository) SnapshotCounts(userID uint) (int64, int64, error) {
	var total, unread int64
	if err := repo.database.Model(&models.Notification{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err := repo.database.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&unread).Error; err != nil {
		return 0, 0, err
	}
	return total, unread, nil
}

func (repo *NotificationRepository) MarkRead(notification *models.Notification, at time.Time) error {
	return repo.database.Model(notification).Updates(map[string]any{
		"is_read": true,
		"read_at": at,
	}).Error
}
