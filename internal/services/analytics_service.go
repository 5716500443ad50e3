package services

import (
	"errors"
	"time"

	"github.com/lunara-health/lunara/internal/models"
)

type AnalyticsStore interface {
	FindActivePrediction(userID uint) (models.CyclePrediction, error)
	ReplaceActivePrediction(prediction *models.CyclePrediction) error
	FindStatistics(userID uint) (models.CycleStatistics, error)
	UpsertStatistics(stats *models.CycleStatistics) error
	ListInsights(userID uint, unreadOnly bool) ([]models.Insight, error)
	CreateInsights(insights []models.Insight) error
	FindInsightForUser(insightID uint, userID uint) (models.Insight, error)
	SaveInsight(insight *models.Insight) error
}

type AnalyticsCycleReader interface {
	ListByUser(userID uint) ([]models.Cycle, error)
}

type AnalyticsLogReader interface {
	ListByUser(userID uint) ([]models.DailyLog, error)
}

type AnalyticsSymptomReader interface {
	ListActive() ([]models.Symptom, error)
}

// AnalyticsService wires the pure engines to the record store. All math
// happens in the engines over plain data; this layer only fetches inputs
// and persists derived rows.
type AnalyticsService struct {
	store    AnalyticsStore
	cycles   AnalyticsCycleReader
	logs     AnalyticsLogReader
	symptoms AnalyticsSymptomReader
	config   AnalyticsConfig
}

func NewAnalyticsService(store AnalyticsStore, cycles AnalyticsCycleReader, logs AnalyticsLogReader, symptoms AnalyticsSymptomReader, config AnalyticsConfig) *AnalyticsService {
	return &AnalyticsService{
		store:    store,
		cycles:   cycles,
		logs:     logs,
		symptoms: symptoms,
		config:   config,
	}
}

func (service *AnalyticsService) Config() AnalyticsConfig {
	return service.config
}

func (service *AnalyticsService) computeStats(userID uint) ([]models.Cycle, CycleStatsResult, error) {
	cycles, err := service.cycles.ListByUser(userID)
	if err != nil {
		return nil, CycleStatsResult{}, err
	}
	stats, err := ComputeCycleStatistics(Summaries(cycles), service.config)
	return cycles, stats, err
}

// CalculateStatistics recomputes and persists the user's statistics row.
func (service *AnalyticsService) CalculateStatistics(userID uint, now time.Time) (models.CycleStatistics, error) {
	_, stats, err := service.computeStats(userID)
	if err != nil {
		return models.CycleStatistics{}, err
	}

	row := models.CycleStatistics{
		UserID:               userID,
		AverageCycleLength:   stats.AverageCycleLength,
		CycleLengthStdDev:    stats.CycleLengthStdDev,
		ShortestCycleLength:  stats.ShortestCycleLength,
		LongestCycleLength:   stats.LongestCycleLength,
		RegularityScore:      stats.RegularityScore,
		AveragePeriodLength:  stats.AveragePeriodLength,
		ShortestPeriodLength: stats.ShortestPeriodLength,
		LongestPeriodLength:  stats.LongestPeriodLength,
		TotalCyclesTracked:   stats.TotalCycles,
		CompleteCyclesCount:  stats.CompleteCycles,
		ComputedAt:           now,
	}
	if err := service.store.UpsertStatistics(&row); err != nil {
		return models.CycleStatistics{}, err
	}
	return row, nil
}

func (service *AnalyticsService) Statistics(userID uint) (models.CycleStatistics, error) {
	return service.store.FindStatistics(userID)
}

// GeneratePrediction runs the prediction engine and supersedes the stored
// active prediction. Insufficient history propagates untouched.
func (service *AnalyticsService) GeneratePrediction(userID uint, now time.Time) (models.CyclePrediction, error) {
	cycles, stats, err := service.computeStats(userID)
	if err != nil {
		return models.CyclePrediction{}, err
	}

	lastStart := cycles[len(cycles)-1].StartDate
	prediction, err := PredictNextCycle(lastStart, stats, service.config)
	if err != nil {
		return models.CyclePrediction{}, err
	}

	row := models.CyclePrediction{
		UserID:               userID,
		PredictedPeriodStart: prediction.PeriodStart,
		PredictedPeriodEnd:   prediction.PeriodEnd,
		PredictedOvulation:   prediction.Ovulation,
		FertileWindowStart:   prediction.FertileWindowStart,
		FertileWindowEnd:     prediction.FertileWindowEnd,
		ConfidenceScore:      prediction.ConfidenceScore,
		ConfidenceLabel:      prediction.ConfidenceLabel,
		AlgorithmUsed:        "average",
		BasedOnCyclesCount:   prediction.BasedOnCycles,
		GeneratedAt:          now,
	}
	if err := service.store.ReplaceActivePrediction(&row); err != nil {
		return models.CyclePrediction{}, err
	}
	return row, nil
}

func (service *AnalyticsService) CurrentPrediction(userID uint) (models.CyclePrediction, error) {
	return service.store.FindActivePrediction(userID)
}

// GenerateInsights runs the rule set and appends the produced rows, each
// starting unread. Thin history only drops the stats-based rules.
func (service *AnalyticsService) GenerateInsights(userID uint, now time.Time) ([]models.Insight, error) {
	cycles, stats, err := service.computeStats(userID)
	if err != nil && !errors.Is(err, ErrInsufficientHistory) {
		return nil, err
	}
	var statsInput *CycleStatsResult
	if err == nil {
		statsInput = &stats
	}

	logs, err := service.logs.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	symptoms, err := service.symptoms.ListActive()
	if err != nil {
		return nil, err
	}

	generated := GenerateInsights(InsightInput{
		Stats:    statsInput,
		Cycles:   Summaries(cycles),
		Logs:     logs,
		Symptoms: symptoms,
	}, service.config)

	rows := make([]models.Insight, 0, len(generated))
	for _, insight := range generated {
		rows = append(rows, models.Insight{
			UserID:           userID,
			Category:         insight.Category,
			Priority:         insight.Priority,
			Title:            insight.Title,
			Text:             insight.Text,
			BasedOnDataUntil: dateOnly(now),
		})
	}
	if err := service.store.CreateInsights(rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (service *AnalyticsService) Insights(userID uint, unreadOnly bool) ([]models.Insight, error) {
	return service.store.ListInsights(userID, unreadOnly)
}

func (service *AnalyticsService) MarkInsightRead(insightID uint, userID uint, now time.Time) (models.Insight, error) {
	insight, err := service.store.FindInsightForUser(insightID, userID)
	if err != nil {
		return models.Insight{}, err
	}
	if !insight.IsRead {
		insight.IsRead = true
		insight.ReadAt = &now
		if err := service.store.SaveInsight(&insight); err != nil {
			return models.Insight{}, err
		}
	}
	return insight, nil
}

func (service *AnalyticsService) DismissInsight(insightID uint, userID uint) (models.Insight, error) {
	insight, err := service.store.FindInsightForUser(insightID, userID)
	if err != nil {
		return models.Insight{}, err
	}
	if !insight.IsDismissed {
		insight.IsDismissed = true
		if err := service.store.SaveInsight(&insight); err != nil {
			return models.Insight{}, err
		}
	}
	return insight, nil
}
