package services

import (
	"sort"
	"time"

	"github.com/lunara-health/lunara/internal/models"
)

// ChartDataset mirrors the chart.js-style series shape the frontend consumes.
type ChartDataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
}

type ChartData struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type CalendarDay struct {
	Phase      string `json:"phase"`
	DayOfCycle int    `json:"day_of_cycle"`
}

// CycleLengthHistory builds a line-chart series of derived cycle lengths for
// cycles starting within the last months*30 days. Read-only.
func CycleLengthHistory(cycles []models.Cycle, months int, now time.Time) ChartData {
	cutoff := dateOnly(now).AddDate(0, 0, -months*30)

	data := ChartData{
		Labels:   make([]string, 0),
		Datasets: []ChartDataset{{Label: "Cycle length (days)", Data: make([]float64, 0)}},
	}

	sorted := sortCyclesByStart(cycles)
	for _, cycle := range sorted {
		if cycle.CycleLength == nil || dateOnly(cycle.StartDate).Before(cutoff) {
			continue
		}
		data.Labels = append(data.Labels, dayKey(cycle.StartDate))
		data.Datasets[0].Data = append(data.Datasets[0].Data, float64(*cycle.CycleLength))
	}
	return data
}

// CycleCalendar maps every day of the given month that falls inside a cycle
// to its phase and day-of-cycle offset.
func CycleCalendar(cycles []models.Cycle, year int, month time.Month, cfg AnalyticsConfig) map[string]CalendarDay {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	calendar := make(map[string]CalendarDay)
	for _, cycle := range sortCyclesByStart(cycles) {
		start := dateOnly(cycle.StartDate)
		if !start.Before(monthEnd) {
			continue
		}

		cycleLength := cfg.DefaultCycleLength
		if cycle.CycleLength != nil && *cycle.CycleLength > 0 {
			cycleLength = *cycle.CycleLength
		}
		periodLength := cfg.DefaultPeriodLength
		if cycle.PeriodLength != nil && *cycle.PeriodLength > 0 {
			periodLength = *cycle.PeriodLength
		}

		cycleEnd := start.AddDate(0, 0, cycleLength)
		if cycleEnd.Before(monthStart) {
			continue
		}

		for day := maxDay(start, monthStart); day.Before(minDay(cycleEnd, monthEnd)); day = day.AddDate(0, 0, 1) {
			dayOfCycle := daysBetween(start, day) + 1
			phase := PhaseForCycleDay(dayOfCycle, cycleLength, periodLength, cfg)
			if phase == "" {
				continue
			}
			calendar[dayKey(day)] = CalendarDay{Phase: phase, DayOfCycle: dayOfCycle}
		}
	}
	return calendar
}

// StatisticsChart reshapes the stored statistics row for a bar chart.
func StatisticsChart(stats models.CycleStatistics) ChartData {
	return ChartData{
		Labels: []string{
			"Average cycle length",
			"Shortest cycle",
			"Longest cycle",
			"Average period length",
		},
		Datasets: []ChartDataset{{
			Label: "Days",
			Data: []float64{
				stats.AverageCycleLength,
				float64(stats.ShortestCycleLength),
				float64(stats.LongestCycleLength),
				stats.AveragePeriodLength,
			},
		}},
		Metadata: map[string]any{
			"total_cycles":     stats.TotalCyclesTracked,
			"regularity_score": stats.RegularityScore,
		},
	}
}

// SymptomFrequency counts symptom occurrences over the trailing window and
// returns the ten most frequent, most frequent first.
func SymptomFrequency(logs []models.DailyLog, symptoms []models.Symptom, days int, now time.Time) ChartData {
	cutoff := dateOnly(now).AddDate(0, 0, -days)

	names := make(map[uint]string, len(symptoms))
	for _, symptom := range symptoms {
		names[symptom.ID] = symptom.Name
	}

	counts := make(map[string]int)
	for _, log := range logs {
		if dateOnly(log.Date).Before(cutoff) {
			continue
		}
		for _, symptomID := range log.SymptomIDs {
			if name, ok := names[symptomID]; ok {
				counts[name]++
			}
		}
	}

	type entry struct {
		name  string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for name, count := range counts {
		entries = append(entries, entry{name: name, count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count == entries[j].count {
			return entries[i].name < entries[j].name
		}
		return entries[i].count > entries[j].count
	})
	if len(entries) > 10 {
		entries = entries[:10]
	}

	data := ChartData{
		Labels:   make([]string, 0, len(entries)),
		Datasets: []ChartDataset{{Label: "Frequency", Data: make([]float64, 0, len(entries))}},
	}
	for _, item := range entries {
		data.Labels = append(data.Labels, item.name)
		data.Datasets[0].Data = append(data.Datasets[0].Data, float64(item.count))
	}
	return data
}

// SymptomsByPhase distributes logged symptoms of the last three completed
// cycles across cycle phases.
func SymptomsByPhase(cycles []models.Cycle, logs []models.DailyLog, symptoms []models.Symptom, cfg AnalyticsConfig) map[string]map[string]int {
	distribution := make(map[string]map[string]int, 4)
	for _, phase := range CyclePhases() {
		distribution[phase] = make(map[string]int)
	}

	completed := make([]CycleSummary, 0, len(cycles))
	for _, cycle := range sortCyclesByStart(cycles) {
		if cycle.EndDate == nil {
			continue
		}
		end := *cycle.EndDate
		completed = append(completed, CycleSummary{Start: cycle.StartDate, End: &end})
	}
	if len(completed) > 3 {
		completed = completed[len(completed)-3:]
	}
	if len(completed) == 0 {
		return distribution
	}

	names := make(map[uint]string, len(symptoms))
	for _, symptom := range symptoms {
		names[symptom.ID] = symptom.Name
	}

	for _, log := range logs {
		_, phase := locateLogPhase(log.Date, completed, cfg)
		if phase == "" {
			continue
		}
		for _, symptomID := range log.SymptomIDs {
			if name, ok := names[symptomID]; ok {
				distribution[phase][name]++
			}
		}
	}
	return distribution
}

// MoodTimeline converts recent moods into a 1..5 score series ordered by date.
func MoodTimeline(logs []models.DailyLog, days int, now time.Time) ChartData {
	cutoff := dateOnly(now).AddDate(0, 0, -days)

	sorted := make([]models.DailyLog, 0, len(logs))
	for _, log := range logs {
		if log.Mood == "" || dateOnly(log.Date).Before(cutoff) {
			continue
		}
		sorted = append(sorted, log)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	data := ChartData{
		Labels:   make([]string, 0, len(sorted)),
		Datasets: []ChartDataset{{Label: "Mood score", Data: make([]float64, 0, len(sorted))}},
	}
	for _, log := range sorted {
		data.Labels = append(data.Labels, dayKey(log.Date))
		data.Datasets[0].Data = append(data.Datasets[0].Data, float64(models.MoodScore(log.Mood)))
	}
	return data
}

// MoodDistribution counts moods over the trailing window for a pie chart.
func MoodDistribution(logs []models.DailyLog, days int, now time.Time) ChartData {
	cutoff := dateOnly(now).AddDate(0, 0, -days)

	counts := make(map[string]int)
	for _, log := range logs {
		if log.Mood == "" || dateOnly(log.Date).Before(cutoff) {
			continue
		}
		counts[log.Mood]++
	}

	data := ChartData{
		Labels:   make([]string, 0, len(counts)),
		Datasets: []ChartDataset{{Label: "Mood distribution", Data: make([]float64, 0, len(counts))}},
	}
	for _, mood := range []string{models.MoodGreat, models.MoodGood, models.MoodOkay, models.MoodBad, models.MoodTerrible} {
		if counts[mood] == 0 {
			continue
		}
		data.Labels = append(data.Labels, mood)
		data.Datasets[0].Data = append(data.Datasets[0].Data, float64(counts[mood]))
	}
	return data
}

func sortCyclesByStart(cycles []models.Cycle) []models.Cycle {
	sorted := make([]models.Cycle, 0, len(cycles))
	sorted = append(sorted, cycles...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartDate.Before(sorted[j].StartDate)
	})
	return sorted
}

func maxDay(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minDay(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
