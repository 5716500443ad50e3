package db

import (
	"time"

	"github.com/lunara-health/lunara/internal/models"
	"gorm.io/gorm"
)

type CycleRepository struct {
	database *gorm.DB
}

func NewCycleRepository(database *gorm.DB) *CycleRepository {
	return &CycleRepository{database: database}
}

// ListByUser returns the user's cycles oldest first, the order the engines
// expect.
func (repo *CycleRepository) ListByUser(userID uint) ([]models.Cycle, error) {
	cycles := make([]models.Cycle, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("start_date ASC, id ASC").
		Find(&cycles).Error; err != nil {
		return nil, err
	}
	return cycles, nil
}

func (repo *CycleRepository) ListByUserSince(userID uint, since time.Time) ([]models.Cycle, error) {
	cycles := make([]models.Cycle, 0)
	if err := repo.database.
		Where("user_id = ? AND start_date >= ?", userID, since).
		Order("start_date ASC, id ASC").
		Find(&cycles).Error; err != nil {
		return nil, err
	}
	return cycles, nil
}

func (repo *CycleRepository) FindByIDForUser(cycleID uint, userID uint) (models.Cycle, error) {
	var cycle models.Cycle
	if err := repo.database.
		Where("id = ? AND user_id = ?", cycleID, userID).
		First(&cycle).Error; err != nil {
		return models.Cycle{}, err
	}
	return cycle, nil
}

func (repo *CycleRepository) FindActiveByUser(userID uint) (models.Cycle, error) {
	var cycle models.Cycle
	if err := repo.database.
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("start_date DESC").
		First(&cycle).Error; err != nil {
		return models.Cycle{}, err
	}
	return cycle, nil
}

func (repo *CycleRepository) ExistsByUserAndStart(userID uint, startDate time.Time) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.Cycle{}).
		Where("user_id = ? AND start_date = ?", userID, startDate).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

// Create inserts a cycle and retires the previously active one.
func (repo *CycleRepository) Create(cycle *models.Cycle) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if cycle.IsActive {
			if err := tx.Model(&models.Cycle{}).
				Where("user_id = ? AND is_active = ?", cycle.UserID, true).
				Update("is_active", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(cycle).Error
	})
}

func (repo *CycleRepository) Save(cycle *models.Cycle) error {
	return repo.database.Save(cycle).Error
}

func (repo *CycleRepository) DeleteByIDForUser(cycleID uint, userID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cycle_id = ?", cycleID).Delete(&models.PeriodDay{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND user_id = ?", cycleID, userID).Delete(&models.Cycle{}).Error
	})
}

func (repo *CycleRepository) ListPeriodDays(cycleID uint) ([]models.PeriodDay, error) {
	days := make([]models.PeriodDay, 0)
	if err := repo.database.
		Where("cycle_id = ?", cycleID).
		Order("date ASC").
		Find(&days).Error; err != nil {
		return nil, err
	}
	return days, nil
}

func (repo *CycleRepository) CreatePeriodDay(day *models.PeriodDay) error {
	return repo.database.Create(day).Error
}

func (repo *CycleRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.Cycle{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
