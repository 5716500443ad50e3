package models

import "time"

const (
	MoodGreat    = "great"
	MoodGood     = "good"
	MoodOkay     = "okay"
	MoodBad      = "bad"
	MoodTerrible = "terrible"
)

func ValidMood(mood string) bool {
	switch mood {
	case MoodGreat, MoodGood, MoodOkay, MoodBad, MoodTerrible:
		return true
	}
	return false
}

// MoodScore maps a mood to a 1..5 value for timeline charts.
func MoodScore(mood string) int {
	switch mood {
	case MoodGreat:
		return 5
	case MoodGood:
		return 4
	case MoodOkay:
		return 3
	case MoodBad:
		return 2
	case MoodTerrible:
		return 1
	}
	return 0
}

type DailyLog struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	UserID         uint       `gorm:"not null;uniqueIndex:uidx_log_user_date" json:"-"`
	Date           time.Time  `gorm:"type:date;not null;uniqueIndex:uidx_log_user_date" json:"date"`
	Mood           string     `json:"mood"`
	SymptomIDs     []uint     `gorm:"serializer:json" json:"symptom_ids"`
	Temperature    *float64   `json:"temperature"`
	Weight         *float64   `json:"weight"`
	SexualActivity bool       `gorm:"not null;default:false" json:"sexual_activity"`
	Notes          string     `json:"notes"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
