package db

import (
	"fmt"

	"github.com/lunara-health/lunara/internal/models"
	"gorm.io/gorm"
)

// seedSymptomCatalog inserts the built-in symptom reference data once.
// Existing rows are left untouched so the catalog stays stable across boots.
func seedSymptomCatalog(database *gorm.DB) error {
	var count int64
	if err := database.Model(&models.Symptom{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count symptoms: %w", err)
	}
	if count > 0 {
		return nil
	}

	catalog := models.DefaultSymptomCatalog()
	return database.Transaction(func(tx *gorm.DB) error {
		for index := range catalog {
			if err := tx.Create(&catalog[index]).Error; err != nil {
				return fmt.Errorf("seed symptom %q: %w", catalog[index].Name, err)
			}
		}
		return nil
	})
}
