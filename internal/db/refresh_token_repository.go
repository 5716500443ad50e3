package db

import (
	"time"

	"github.com/lunara-health/lunara/internal/models"
	"gorm.io/gorm"
)

type RefreshTokenRepository struct {
	database *gorm.DB
}

func NewRefreshTokenRepository(database *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{database: database}
}

func (repo *RefreshTokenRepository) Create(token *models.RefreshToken) error {
	return repo.database.Create(token).Error
}

func (repo *RefreshTokenRepository) FindByJTI(jti string) (models.RefreshToken, error) {
	var token models.RefreshToken
	if err := repo.database.Where("jti = ?", jti).First(&token).Error; err != nil {
		return models.RefreshToken{}, err
	}
	return token, nil
}

func (repo *RefreshTokenRepository) Revoke(jti string) error {
	return repo.database.Model(&models.RefreshToken{}).
		Where("jti = ?", jti).
		Update("revoked", true).Error
}

func (repo *RefreshTokenRepository) DeleteExpiredBefore(cutoff time.Time) error {
	return repo.database.Where("expires_at < ?", cutoff).Delete(&models.RefreshToken{}).Error
}
