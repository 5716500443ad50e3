package models

import "time"

const (
	FlowSpotting = "spotting"
	FlowLight    = "light"
	FlowMedium   = "medium"
	FlowHeavy    = "heavy"
)

func ValidFlow(flow string) bool {
	switch flow {
	case FlowSpotting, FlowLight, FlowMedium, FlowHeavy:
		return true
	}
	return false
}

// Cycle spans from one period start to the day before the next one.
type Cycle struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	UserID       uint        `gorm:"not null;uniqueIndex:uidx_cycle_user_start" json:"-"`
	StartDate    time.Time   `gorm:"type:date;not null;uniqueIndex:uidx_cycle_user_start" json:"start_date"`
	EndDate      *time.Time  `gorm:"type:date" json:"end_date"`
	CycleLength  *int        `json:"cycle_length"`
	PeriodLength *int        `json:"period_length"`
	IsActive     bool        `gorm:"not null;default:true" json:"is_active"`
	Notes        string      `json:"notes"`
	PeriodDays   []PeriodDay `gorm:"constraint:OnDelete:CASCADE" json:"period_days,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// RecalculateLength refreshes the derived cycle length from the stored dates.
func (cycle *Cycle) RecalculateLength() {
	if cycle.EndDate == nil {
		cycle.CycleLength = nil
		return
	}
	length := int(cycle.EndDate.Sub(cycle.StartDate).Hours()/24) + 1
	cycle.CycleLength = &length
}

type PeriodDay struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CycleID   uint      `gorm:"not null;uniqueIndex:uidx_period_day_cycle_date" json:"cycle_id"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:uidx_period_day_cycle_date" json:"date"`
	Flow      string    `gorm:"not null" json:"flow"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
