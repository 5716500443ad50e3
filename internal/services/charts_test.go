package services

import (
	"testing"

	"github.com/lunara-health/lunara/internal/models"
)

func intPtr(value int) *int {
	return &value
}

func TestCycleLengthHistory(t *testing.T) {
	t.Parallel()

	now := day("2025-06-15")
	cycles := []models.Cycle{
		{StartDate: day("2025-05-01"), CycleLength: intPtr(28)},
		{StartDate: day("2025-04-03"), CycleLength: intPtr(27)},
		{StartDate: day("2024-01-01"), CycleLength: intPtr(30)},
		{StartDate: day("2025-05-29")},
	}

	chart := CycleLengthHistory(cycles, 6, now)
	if len(chart.Labels) != 2 {
		t.Fatalf("expected two in-window cycles with lengths, got labels %v", chart.Labels)
	}
	if chart.Labels[0] != "2025-04-03" || chart.Labels[1] != "2025-05-01" {
		t.Fatalf("expected chronological labels, got %v", chart.Labels)
	}
	if chart.Datasets[0].Data[0] != 27 || chart.Datasets[0].Data[1] != 28 {
		t.Fatalf("unexpected series %v", chart.Datasets[0].Data)
	}
}

func TestCycleCalendar(t *testing.T) {
	t.Parallel()

	cfg := DefaultAnalyticsConfig()
	cycles := []models.Cycle{
		{StartDate: day("2025-03-05"), CycleLength: intPtr(28), PeriodLength: intPtr(5)},
	}

	calendar := CycleCalendar(cycles, 2025, 3, cfg)

	if entry, ok := calendar["2025-03-05"]; !ok || entry.Phase != PhaseMenstrual || entry.DayOfCycle != 1 {
		t.Fatalf("expected day one to be menstrual, got %+v", entry)
	}
	if entry, ok := calendar["2025-03-18"]; !ok || entry.Phase != PhaseOvulation || entry.DayOfCycle != 14 {
		t.Fatalf("expected day fourteen to be ovulation, got %+v", entry)
	}
	if _, ok := calendar["2025-03-04"]; ok {
		t.Fatal("expected no entry before the cycle starts")
	}
	if len(calendar) != 27 {
		t.Fatalf("expected 27 mapped days in March, got %d", len(calendar))
	}
}

func TestSymptomFrequencyTopTen(t *testing.T) {
	t.Parallel()

	now := day("2025-04-01")
	symptoms := make([]models.Symptom, 0, 12)
	for i := 1; i <= 12; i++ {
		symptoms = append(symptoms, models.Symptom{ID: uint(i), Name: string(rune('A'+i-1)) + "-symptom"})
	}

	logs := make([]models.DailyLog, 0)
	for i := 1; i <= 12; i++ {
		// Symptom i appears i times inside the window.
		for j := 0; j < i; j++ {
			logs = append(logs, models.DailyLog{Date: day("2025-03-01").AddDate(0, 0, j), SymptomIDs: []uint{uint(i)}})
		}
	}
	logs = append(logs, models.DailyLog{Date: day("2024-01-01"), SymptomIDs: []uint{12}})

	chart := SymptomFrequency(logs, symptoms, 90, now)
	if len(chart.Labels) != 10 {
		t.Fatalf("expected ten labels, got %d", len(chart.Labels))
	}
	if chart.Labels[0] != "L-symptom" || chart.Datasets[0].Data[0] != 12 {
		t.Fatalf("expected the most frequent symptom first, got %q with %v", chart.Labels[0], chart.Datasets[0].Data[0])
	}
	for _, label := range chart.Labels {
		if label == "A-symptom" || label == "B-symptom" {
			t.Fatalf("expected the two rarest symptoms to be cut, found %q", label)
		}
	}
}

func TestSymptomsByPhaseUsesLastThreeCompletedCycles(t *testing.T) {
	t.Parallel()

	cfg := DefaultAnalyticsConfig()
	cycles := []models.Cycle{
		{StartDate: day("2025-01-01"), EndDate: dayPtr("2025-01-05")},
		{StartDate: day("2025-01-29"), EndDate: dayPtr("2025-02-02")},
		{StartDate: day("2025-02-26"), EndDate: dayPtr("2025-03-02")},
		{StartDate: day("2025-03-26")},
	}
	symptoms := []models.Symptom{{ID: 1, Name: "Cramps"}, {ID: 2, Name: "Fatigue"}}
	logs := []models.DailyLog{
		{Date: day("2025-01-02"), SymptomIDs: []uint{1}},
		{Date: day("2025-02-09"), SymptomIDs: []uint{2}},
	}

	distribution := SymptomsByPhase(cycles, logs, symptoms, cfg)
	if distribution[PhaseMenstrual]["Cramps"] != 1 {
		t.Fatalf("expected one menstrual cramps entry, got %+v", distribution[PhaseMenstrual])
	}
	if distribution[PhaseOvulation]["Fatigue"] != 1 {
		t.Fatalf("expected one ovulation fatigue entry, got %+v", distribution[PhaseOvulation])
	}
}

func TestMoodTimelineAndDistribution(t *testing.T) {
	t.Parallel()

	now := day("2025-04-01")
	logs := []models.DailyLog{
		{Date: day("2025-03-20"), Mood: models.MoodGreat},
		{Date: day("2025-03-18"), Mood: models.MoodBad},
		{Date: day("2025-03-19")},
		{Date: day("2024-01-01"), Mood: models.MoodTerrible},
	}

	timeline := MoodTimeline(logs, 30, now)
	if len(timeline.Labels) != 2 {
		t.Fatalf("expected two moods in the window, got %v", timeline.Labels)
	}
	if timeline.Labels[0] != "2025-03-18" || timeline.Datasets[0].Data[0] != 2 {
		t.Fatalf("expected bad mood (score 2) first, got %q with %v", timeline.Labels[0], timeline.Datasets[0].Data[0])
	}
	if timeline.Datasets[0].Data[1] != 5 {
		t.Fatalf("expected great mood score 5, got %v", timeline.Datasets[0].Data[1])
	}

	distribution := MoodDistribution(logs, 30, now)
	if len(distribution.Labels) != 2 {
		t.Fatalf("expected two mood buckets, got %v", distribution.Labels)
	}
	if distribution.Labels[0] != models.MoodGreat || distribution.Labels[1] != models.MoodBad {
		t.Fatalf("expected fixed bucket order, got %v", distribution.Labels)
	}
}
