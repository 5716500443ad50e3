package models

import "time"

const (
	NotificationStatusPending   = "pending"
	NotificationStatusSent      = "sent"
	NotificationStatusFailed    = "failed"
	NotificationStatusCancelled = "cancelled"
)

const (
	NotificationChannelEmail = "email"
	NotificationChannelPush  = "push"
	NotificationChannelInApp = "in_app"
)

const (
	ReminderTypePeriod    = "period"
	ReminderTypeOvulation = "ovulation"
	ReminderTypeDailyLog  = "daily_log"
	ReminderTypeCustom    = "custom"
)

func ValidReminderType(reminderType string) bool {
	switch reminderType {
	case ReminderTypePeriod, ReminderTypeOvulation, ReminderTypeDailyLog, ReminderTypeCustom:
		return true
	}
	return false
}

type Notification struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"not null;index" json:"-"`
	Subject      string     `gorm:"not null" json:"subject"`
	Body         string     `gorm:"not null" json:"body"`
	Channel      string     `gorm:"not null;default:in_app" json:"channel"`
	Status       string     `gorm:"not null;default:pending" json:"status"`
	ErrorMessage string     `json:"error_message,omitempty"`
	// DedupeKey prevents the scheduler from materializing the same reminder twice.
	DedupeKey    string     `gorm:"uniqueIndex" json:"-"`
	ScheduledFor time.Time  `gorm:"not null;index" json:"scheduled_for"`
	SentAt       *time.Time `json:"sent_at"`
	IsRead       bool       `gorm:"not null;default:false" json:"is_read"`
	ReadAt       *time.Time `json:"read_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type ReminderSchedule struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"not null;uniqueIndex:uidx_reminder_user_type" json:"-"`
	ReminderType     string    `gorm:"not null;uniqueIndex:uidx_reminder_user_type" json:"reminder_type"`
	IsEnabled        bool      `gorm:"not null;default:true" json:"is_enabled"`
	DaysBefore       int       `gorm:"not null;default:2" json:"days_before"`
	NotificationTime string    `gorm:"not null;default:09:00" json:"notification_time"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type NotificationPreference struct {
	ID                        uint      `gorm:"primaryKey" json:"-"`
	UserID                    uint      `gorm:"uniqueIndex;not null" json:"-"`
	EmailEnabled              bool      `gorm:"not null;default:true" json:"email_enabled"`
	PushEnabled               bool      `gorm:"not null;default:false" json:"push_enabled"`
	InAppEnabled              bool      `gorm:"not null;default:true" json:"in_app_enabled"`
	PeriodRemindersEnabled    bool      `gorm:"not null;default:true" json:"period_reminders_enabled"`
	OvulationRemindersEnabled bool      `gorm:"not null;default:false" json:"ovulation_reminders_enabled"`
	InsightsEnabled           bool      `gorm:"not null;default:true" json:"insights_enabled"`
	HealthTipsEnabled         bool      `gorm:"not null;default:true" json:"health_tips_enabled"`
	QuietHoursEnabled         bool      `gorm:"not null;default:false" json:"quiet_hours_enabled"`
	QuietHoursStart           string    `json:"quiet_hours_start"`
	QuietHoursEnd             string    `json:"quiet_hours_end"`
	CreatedAt                 time.Time `json:"-"`
	UpdatedAt                 time.Time `json:"-"`
}
