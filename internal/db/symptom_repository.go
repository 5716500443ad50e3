package db

import (
	"github.com/lunara-health/lunara/internal/models"
	"gorm.io/gorm"
)

type SymptomRepository struct {
	database *gorm.DB
}

func NewSymptomRepository(database *gorm.DB) *SymptomRepository {
	return &SymptomRepository{database: database}
}

func (repo *SymptomRepository) ListActive() ([]models.Symptom, error) {
	symptoms := make([]models.Symptom, 0)
	if err := repo.database.
		Where("is_active = ?", true).
		Order("category ASC, name ASC").
		Find(&symptoms).Error; err != nil {
		return nil, err
	}
	return symptoms, nil
}

// ExistingIDs filters the given IDs down to ones present in the catalog.
func (repo *SymptomRepository) ExistingIDs(ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return []uint{}, nil
	}
	rows := make([]models.Symptom, 0, len(ids))
	if err := repo.database.
		Select("id").
		Where("id IN ? AND is_active = ?", ids, true).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	existing := make([]uint, 0, len(rows))
	for _, row := range rows {
		existing = append(existing, row.ID)
	}
	return existing, nil
}
