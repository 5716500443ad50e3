package services

import (
	"math"
	"time"

	"github.com/lunara-health/lunara/internal/models"
)

type PredictionResult struct {
	PeriodStart        time.Time
	PeriodEnd          time.Time
	Ovulation          time.Time
	FertileWindowStart time.Time
	FertileWindowEnd   time.Time
	ConfidenceScore    float64
	ConfidenceLabel    string
	BasedOnCycles      int
}

// PredictNextCycle extrapolates the next period from the latest start date
// and the statistics engine's output. It never fabricates a prediction:
// a stats result built from too little history propagates
// ErrInsufficientHistory.
func PredictNextCycle(lastStart time.Time, stats CycleStatsResult, cfg AnalyticsConfig) (PredictionResult, error) {
	if stats.TotalCycles < cfg.MinCyclesForStats || stats.SampleCount == 0 {
		return PredictionResult{}, ErrInsufficientHistory
	}

	periodLength := int(math.Round(stats.AveragePeriodLength))
	if periodLength <= 0 {
		periodLength = cfg.DefaultPeriodLength
	}

	start := dateOnly(lastStart).AddDate(0, 0, int(math.Round(stats.AverageCycleLength)))
	ovulation := start.AddDate(0, 0, -cfg.OvulationOffsetDays)

	score := clampScore(1 - stats.CycleLengthStdDev/cfg.ConfidenceStdDevCeiling)

	return PredictionResult{
		PeriodStart:        start,
		PeriodEnd:          start.AddDate(0, 0, periodLength-1),
		Ovulation:          ovulation,
		FertileWindowStart: ovulation.AddDate(0, 0, -cfg.FertileWindowRadius),
		FertileWindowEnd:   ovulation.AddDate(0, 0, cfg.FertileWindowRadius),
		ConfidenceScore:    score,
		ConfidenceLabel:    confidenceLabel(score),
		BasedOnCycles:      stats.SampleCount,
	}, nil
}

func confidenceLabel(score float64) string {
	switch {
	case score >= 0.7:
		return models.ConfidenceHigh
	case score >= 0.4:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}
