package services

import (
	"errors"
	"math"
	"time"
)

// ErrInsufficientHistory signals that a user has not tracked enough cycles
// for statistics or predictions. It is a distinct condition, not a zeroed
// result.
var ErrInsufficientHistory = errors.New("not enough cycle history")

// CycleSummary is the plain-data shape of one cycle handed to the engines.
// The API layer validates ordering and date sanity before building these.
type CycleSummary struct {
	Start time.Time
	End   *time.Time
}

type CycleStatsResult struct {
	AverageCycleLength   float64
	CycleLengthStdDev    float64
	ShortestCycleLength  int
	LongestCycleLength   int
	RegularityScore      float64
	AveragePeriodLength  float64
	ShortestPeriodLength int
	LongestPeriodLength  int
	SampleCount          int
	TotalCycles          int
	CompleteCycles       int
}

// CycleLengths derives the length series from chronologically ascending
// start dates. Length i is the day distance between start i and start i+1.
func CycleLengths(starts []time.Time) []int {
	if len(starts) < 2 {
		return nil
	}
	lengths := make([]int, 0, len(starts)-1)
	for i := 1; i < len(starts); i++ {
		lengths = append(lengths, daysBetween(starts[i-1], starts[i]))
	}
	return lengths
}

// ComputeCycleStatistics runs the statistics engine over a user's cycles,
// oldest first. Fewer than cfg.MinCyclesForStats cycles yields
// ErrInsufficientHistory.
func ComputeCycleStatistics(cycles []CycleSummary, cfg AnalyticsConfig) (CycleStatsResult, error) {
	result := CycleStatsResult{TotalCycles: len(cycles)}
	if len(cycles) < cfg.MinCyclesForStats {
		return result, ErrInsufficientHistory
	}

	starts := make([]time.Time, 0, len(cycles))
	for _, cycle := range cycles {
		starts = append(starts, cycle.Start)
	}

	lengths := CycleLengths(starts)
	result.SampleCount = len(lengths)
	result.AverageCycleLength = meanInts(lengths)
	result.CycleLengthStdDev = sampleStdDev(lengths, result.AverageCycleLength)
	result.ShortestCycleLength, result.LongestCycleLength = minMaxInts(lengths)
	result.RegularityScore = clampScore(1 - result.CycleLengthStdDev/cfg.RegularityStdDevCeiling)

	periodLengths := make([]int, 0, len(cycles))
	for _, cycle := range cycles {
		if cycle.End == nil {
			continue
		}
		periodLengths = append(periodLengths, daysBetween(cycle.Start, *cycle.End)+1)
	}
	result.CompleteCycles = len(periodLengths)
	if len(periodLengths) > 0 {
		result.AveragePeriodLength = meanInts(periodLengths)
		result.ShortestPeriodLength, result.LongestPeriodLength = minMaxInts(periodLengths)
	}

	return result, nil
}

func meanInts(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	var total int
	for _, value := range values {
		total += value
	}
	return float64(total) / float64(len(values))
}

// sampleStdDev uses the n-1 denominator. A single observation has, by
// policy, a stddev of zero rather than an undefined one.
func sampleStdDev(values []int, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var sumSquares float64
	for _, value := range values {
		delta := float64(value) - mean
		sumSquares += delta * delta
	}
	return math.Sqrt(sumSquares / float64(len(values)-1))
}

func minMaxInts(values []int) (int, int) {
	if len(values) == 0 {
		return 0, 0
	}
	minValue, maxValue := values[0], values[0]
	for _, value := range values[1:] {
		if value < minValue {
			minValue = value
		}
		if value > maxValue {
			maxValue = value
		}
	}
	return minValue, maxValue
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return math.Round(score*100) / 100
}
