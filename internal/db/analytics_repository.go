package db

import (
	"errors"

	"github.com/lunara-health/lunara/internal/models"
	"gorm.io/gorm"
)

type AnalyticsRepository struct {
	database *gorm.DB
}

func NewAnalyticsRepository(database *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{database: database}
}

func (repo *AnalyticsRepository) FindActivePrediction(userID uint) (models.CyclePrediction, error) {
	var prediction models.CyclePrediction
	if err := repo.database.
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("generated_at DESC").
		First(&prediction).Error; err != nil {
		return models.CyclePrediction{}, err
	}
	return prediction, nil
}

// ReplaceActivePrediction deactivates prior predictions and stores the new
// one in a single transaction; regeneration supersedes, never merges.
func (repo *AnalyticsRepository) ReplaceActivePrediction(prediction *models.CyclePrediction) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.CyclePrediction{}).
			Where("user_id = ? AND is_active = ?", prediction.UserID, true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		prediction.IsActive = true
		return tx.Create(prediction).Error
	})
}

func (repo *AnalyticsRepository) FindStatistics(userID uint) (models.CycleStatistics, error) {
	var stats models.CycleStatistics
	if err := repo.database.Where("user_id = ?", userID).First(&stats).Error; err != nil {
		return models.CycleStatistics{}, err
	}
	return stats, nil
}

// UpsertStatistics keeps exactly one statistics row per user.
func (repo *AnalyticsRepository) UpsertStatistics(stats *models.CycleStatistics) error {
	var existing models.CycleStatistics
	err := repo.database.Where("user_id = ?", stats.UserID).First(&existing).Error
	if err == nil {
		stats.ID = existing.ID
		return repo.database.Save(stats).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repo.database.Create(stats).Error
	}
	return err
}

func (repo *AnalyticsRepository) ListInsights(userID uint, unreadOnly bool) ([]models.Insight, error) {
	query := repo.database.Where("user_id = ? AND is_dismissed = ?", userID, false)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}
	insights := make([]models.Insight, 0)
	if err := query.Order("created_at DESC, id DESC").Find(&insights).Error; err != nil {
		return nil, err
	}
	return insights, nil
}

func (repo *AnalyticsRepository) CreateInsights(insights []models.Insight) error {
	if len(insights) == 0 {
		return nil
	}
	return repo.database.Create(&insights).Error
}

func (repo *AnalyticsRepository) FindInsightForUser(insightID uint, userID uint) (models.Insight, error) {
	var insight models.Insight
	if err := repo.database.
		Where("id = ? AND user_id = ?", insightID, userID).
		First(&insight).Error; err != nil {
		return models.Insight{}, err
	}
	return insight, nil
}

func (repo *AnalyticsRepository) SaveInsight(insight *models.Insight) error {
	return repo.database.Save(insight).Error
}
