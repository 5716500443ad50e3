package db

import (
	"time"

	"github.com/lunara-health/lunara/internal/models"
	"gorm.io/gorm"
)

type DailyLogRepository struct {
	database *gorm.DB
}

func NewDailyLogRepository(database *gorm.DB) *DailyLogRepository {
	return &DailyLogRepository{database: database}
}

func (repo *DailyLogRepository) ListByUser(userID uint) ([]models.DailyLog, error) {
	logs := make([]models.DailyLog, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("date ASC, id ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *DailyLogRepository) ListByUserSince(userID uint, since time.Time) ([]models.DailyLog, error) {
	logs := make([]models.DailyLog, 0)
	if err := repo.database.
		Where("user_id = ? AND date >= ?", userID, since).
		Order("date ASC, id ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *DailyLogRepository) FindByIDForUser(logID uint, userID uint) (models.DailyLog, error) {
	var entry models.DailyLog
	if err := repo.database.
		Where("id = ? AND user_id = ?", logID, userID).
		First(&entry).Error; err != nil {
		return models.DailyLog{}, err
	}
	return entry, nil
}

func (repo *DailyLogRepository) FindByUserAndDate(userID uint, date time.Time) (models.DailyLog, bool, error) {
	var entry models.DailyLog
	result := repo.database.
		Where("user_id = ? AND date = ?", userID, date).
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.DailyLog{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.DailyLog{}, false, nil
	}
	return entry, true, nil
}

func (repo *DailyLogRepository) Create(entry *models.DailyLog) error {
	return repo.database.Create(entry).Error
}

func (repo *DailyLogRepository) Save(entry *models.DailyLog) error {
	return repo.database.Save(entry).Error
}

func (repo *DailyLogRepository) DeleteByIDForUser(logID uint, userID uint) error {
	return repo.database.Where("id = ? AND user_id = ?", logID, userID).Delete(&models.DailyLog{}).Error
}
