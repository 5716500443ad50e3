package models

import "time"

const (
	InsightCategoryCycle   = "cycle"
	InsightCategorySymptom = "symptom"
	InsightCategoryMood    = "mood"
	InsightCategoryHealth  = "health"
	InsightCategoryGeneral = "general"
)

const (
	InsightPriorityLow    = "low"
	InsightPriorityMedium = "medium"
	InsightPriorityHigh   = "high"
)

const (
	ConfidenceLow    = "low"
	ConfidenceMedium = "medium"
	ConfidenceHigh   = "high"
)

// CyclePrediction is a derived row superseded on every regeneration.
type CyclePrediction struct {
	ID                    uint      `gorm:"primaryKey" json:"id"`
	UserID                uint      `gorm:"not null;index" json:"-"`
	PredictedPeriodStart  time.Time `gorm:"type:date;not null" json:"predicted_period_start"`
	PredictedPeriodEnd    time.Time `gorm:"type:date;not null" json:"predicted_period_end"`
	PredictedOvulation    time.Time `gorm:"type:date" json:"predicted_ovulation_date"`
	FertileWindowStart    time.Time `gorm:"type:date" json:"fertile_window_start"`
	FertileWindowEnd      time.Time `gorm:"type:date" json:"fertile_window_end"`
	ConfidenceScore       float64   `gorm:"not null;default:0" json:"confidence_score"`
	ConfidenceLabel       string    `gorm:"not null;default:low" json:"confidence"`
	AlgorithmUsed         string    `gorm:"not null;default:average" json:"algorithm_used"`
	BasedOnCyclesCount    int       `gorm:"not null;default:0" json:"based_on_cycles_count"`
	IsActive              bool      `gorm:"not null;default:true" json:"is_active"`
	GeneratedAt           time.Time `gorm:"not null" json:"generated_at"`
}

// CycleStatistics is the single derived statistics row kept per user.
type CycleStatistics struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	UserID               uint      `gorm:"uniqueIndex;not null" json:"-"`
	AverageCycleLength   float64   `json:"average_cycle_length"`
	CycleLengthStdDev    float64   `json:"cycle_length_stddev"`
	ShortestCycleLength  int       `json:"shortest_cycle_length"`
	LongestCycleLength   int       `json:"longest_cycle_length"`
	RegularityScore      float64   `json:"cycle_regularity_score"`
	AveragePeriodLength  float64   `json:"average_period_length"`
	ShortestPeriodLength int       `json:"shortest_period_length"`
	LongestPeriodLength  int       `json:"longest_period_length"`
	TotalCyclesTracked   int       `json:"total_cycles_tracked"`
	CompleteCyclesCount  int       `json:"complete_cycles_count"`
	ComputedAt           time.Time `json:"computed_at"`
}

type Insight struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	UserID           uint       `gorm:"not null;index" json:"-"`
	Category         string     `gorm:"not null" json:"category"`
	Priority         string     `gorm:"not null;default:medium" json:"priority"`
	Title            string     `gorm:"not null" json:"title"`
	Text             string     `gorm:"not null" json:"text"`
	IsRead           bool       `gorm:"not null;default:false" json:"is_read"`
	IsDismissed      bool       `gorm:"not null;default:false" json:"is_dismissed"`
	BasedOnDataUntil time.Time  `gorm:"type:date" json:"based_on_data_until"`
	CreatedAt        time.Time  `json:"generated_at"`
	ReadAt           *time.Time `json:"read_at"`
}
