package services

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/lunara-health/lunara/internal/models"
)

// InsightInput is everything the generator looks at, fetched up front.
// Stats is nil when the statistics engine reported insufficient history.
type InsightInput struct {
	Stats    *CycleStatsResult
	Cycles   []CycleSummary
	Logs     []models.DailyLog
	Symptoms []models.Symptom
}

type GeneratedInsight struct {
	Category string
	Priority string
	Title    string
	Text     string
}

// GenerateInsights applies the fixed rule set over the input. It is pure and
// deterministic: the same input always yields the same insights in the same
// order. Missing pieces (no stats, empty catalog) silently drop the rules
// that need them.
func GenerateInsights(input InsightInput, cfg AnalyticsConfig) []GeneratedInsight {
	insights := make([]GeneratedInsight, 0, 4)

	if insight, ok := irregularCycleInsight(input.Stats, cfg); ok {
		insights = append(insights, insight)
	}
	if insight, ok := negativeMoodInsight(input.Logs, cfg); ok {
		insights = append(insights, insight)
	}
	insights = append(insights, symptomPhaseInsights(input, cfg)...)

	return insights
}

func irregularCycleInsight(stats *CycleStatsResult, cfg AnalyticsConfig) (GeneratedInsight, bool) {
	if stats == nil || stats.TotalCycles < cfg.MinCyclesForStats {
		return GeneratedInsight{}, false
	}
	if stats.RegularityScore >= cfg.IrregularityThreshold {
		return GeneratedInsight{}, false
	}
	return GeneratedInsight{
		Category: models.InsightCategoryCycle,
		Priority: models.InsightPriorityMedium,
		Title:    "Irregular cycle pattern detected",
		Text: fmt.Sprintf(
			"Your cycles vary significantly (between %d and %d days). Consider consulting a healthcare provider if this concerns you.",
			stats.ShortestCycleLength, stats.LongestCycleLength),
	}, true
}

func negativeMoodInsight(logs []models.DailyLog, cfg AnalyticsConfig) (GeneratedInsight, bool) {
	recent := recentLogs(logs, cfg.RecentLogWindow)
	if len(recent) == 0 {
		return GeneratedInsight{}, false
	}

	negative := 0
	for _, log := range recent {
		if log.Mood == models.MoodBad || log.Mood == models.MoodTerrible {
			negative++
		}
	}
	if float64(negative) <= float64(len(recent))*cfg.NegativeMoodShare {
		return GeneratedInsight{}, false
	}
	return GeneratedInsight{
		Category: models.InsightCategoryMood,
		Priority: models.InsightPriorityHigh,
		Title:    "Mood pattern needs attention",
		Text:     "You have been logging predominantly negative moods. Consider speaking with a healthcare provider about your emotional wellbeing.",
	}, true
}

// symptomPhaseInsights emits at most one insight per (symptom, phase) pair:
// the pair qualifies when the symptom shows up in that phase in at least
// cfg.SymptomPhaseShare of the cycles that have any logs at all.
func symptomPhaseInsights(input InsightInput, cfg AnalyticsConfig) []GeneratedInsight {
	if len(input.Symptoms) == 0 || len(input.Cycles) == 0 || len(input.Logs) == 0 {
		return nil
	}

	symptomNames := make(map[uint]string, len(input.Symptoms))
	for _, symptom := range input.Symptoms {
		symptomNames[symptom.ID] = symptom.Name
	}

	type pair struct {
		symptomID uint
		phase     string
	}
	cyclesWithPair := make(map[pair]map[int]struct{})
	cyclesWithLogs := make(map[int]struct{})

	for _, log := range input.Logs {
		cycleIndex, phase := locateLogPhase(log.Date, input.Cycles, cfg)
		if phase == "" {
			continue
		}
		cyclesWithLogs[cycleIndex] = struct{}{}
		for _, symptomID := range log.SymptomIDs {
			if _, known := symptomNames[symptomID]; !known {
				continue
			}
			key := pair{symptomID: symptomID, phase: phase}
			if cyclesWithPair[key] == nil {
				cyclesWithPair[key] = make(map[int]struct{})
			}
			cyclesWithPair[key][cycleIndex] = struct{}{}
		}
	}

	if len(cyclesWithLogs) == 0 {
		return nil
	}

	insights := make([]GeneratedInsight, 0)
	sortedSymptoms := make([]models.Symptom, 0, len(input.Symptoms))
	sortedSymptoms = append(sortedSymptoms, input.Symptoms...)
	sort.Slice(sortedSymptoms, func(i, j int) bool {
		return sortedSymptoms[i].Name < sortedSymptoms[j].Name
	})

	for _, symptom := range sortedSymptoms {
		for _, phase := range CyclePhases() {
			hits := cyclesWithPair[pair{symptomID: symptom.ID, phase: phase}]
			share := float64(len(hits)) / float64(len(cyclesWithLogs))
			if share < cfg.SymptomPhaseShare {
				continue
			}
			insights = append(insights, GeneratedInsight{
				Category: models.InsightCategorySymptom,
				Priority: models.InsightPriorityLow,
				Title:    fmt.Sprintf("%s tends to appear in your %s phase", symptom.Name, phase),
				Text: fmt.Sprintf(
					"%s was logged during the %s phase in %d%% of your tracked cycles.",
					symptom.Name, phase, int(math.Round(share*100))),
			})
		}
	}

	return insights
}

// locateLogPhase maps a logged date to its enclosing cycle and phase. The
// enclosing cycle is the latest one starting on or before the date; its
// length is the distance to the next start, or the average-derived default
// for the most recent cycle.
func locateLogPhase(date time.Time, cycles []CycleSummary, cfg AnalyticsConfig) (int, string) {
	day := dateOnly(date)

	index := -1
	for i, cycle := range cycles {
		if dateOnly(cycle.Start).After(day) {
			break
		}
		index = i
	}
	if index < 0 {
		return -1, ""
	}

	cycle := cycles[index]
	cycleLength := cfg.DefaultCycleLength
	if index+1 < len(cycles) {
		cycleLength = daysBetween(cycle.Start, cycles[index+1].Start)
	}

	periodLength := cfg.DefaultPeriodLength
	if cycle.End != nil {
		periodLength = daysBetween(cycle.Start, *cycle.End) + 1
	}

	dayOfCycle := daysBetween(cycle.Start, day) + 1
	return index, PhaseForCycleDay(dayOfCycle, cycleLength, periodLength, cfg)
}

// recentLogs returns the newest n entries by date.
func recentLogs(logs []models.DailyLog, n int) []models.DailyLog {
	if n <= 0 || len(logs) == 0 {
		return nil
	}
	sorted := make([]models.DailyLog, 0, len(logs))
	sorted = append(sorted, logs...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
