package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Timezone     string    `gorm:"not null;default:UTC" json:"timezone"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (user *User) FullName() string {
	name := user.FirstName
	if user.LastName != "" {
		if name != "" {
			name += " "
		}
		name += user.LastName
	}
	if name == "" {
		return user.Email
	}
	return name
}

const (
	DefaultCycleLength  = 28
	DefaultPeriodLength = 5
)

// UserProfile holds per-user cycle preferences and reminder defaults.
type UserProfile struct {
	ID                       uint      `gorm:"primaryKey" json:"-"`
	UserID                   uint      `gorm:"uniqueIndex;not null" json:"-"`
	AverageCycleLength       int       `gorm:"not null;default:28" json:"average_cycle_length"`
	AveragePeriodLength      int       `gorm:"not null;default:5" json:"average_period_length"`
	PeriodReminderEnabled    bool      `gorm:"not null;default:true" json:"period_reminder_enabled"`
	OvulationReminderEnabled bool      `gorm:"not null;default:false" json:"ovulation_reminder_enabled"`
	ReminderDaysBefore       int       `gorm:"not null;default:2" json:"reminder_days_before"`
	DataSharingEnabled       bool      `gorm:"not null;default:false" json:"data_sharing_enabled"`
	CreatedAt                time.Time `json:"-"`
	UpdatedAt                time.Time `json:"-"`
}
