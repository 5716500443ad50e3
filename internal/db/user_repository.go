package db

import (
	"github.com/lunara-health/lunara/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) FindByID(userID uint) (models.User, error) {
	var user models.User
	if err := repo.database.First(&user, userID).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) FindByNormalizedEmail(email string) (models.User, error) {
	var user models.User
	if err := repo.database.Where("lower(trim(email)) = ?", email).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) ExistsByNormalizedEmail(email string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.User{}).
		Where("lower(trim(email)) = ?", email).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

// CreateWithDefaults persists a new user together with the profile, reminder
// schedule and notification preference rows every account starts with.
func (repo *UserRepository) CreateWithDefaults(user *models.User) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile := models.UserProfile{
			UserID:                user.ID,
			AverageCycleLength:    models.DefaultCycleLength,
			AveragePeriodLength:   models.DefaultPeriodLength,
			PeriodReminderEnabled: true,
			ReminderDaysBefore:    2,
		}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		preferences := models.NotificationPreference{
			UserID:                 user.ID,
			EmailEnabled:           true,
			InAppEnabled:           true,
			PeriodRemindersEnabled: true,
			InsightsEnabled:        true,
			HealthTipsEnabled:      true,
		}
		if err := tx.Create(&preferences).Error; err != nil {
			return err
		}
		schedule := models.ReminderSchedule{
			UserID:       user.ID,
			ReminderType: models.ReminderTypePeriod,
			IsEnabled:    true,
			DaysBefore:   2,
		}
		return tx.Create(&schedule).Error
	})
}

func (repo *UserRepository) Save(user *models.User) error {
	return repo.database.Save(user).Error
}

func (repo *UserRepository) UpdateByID(userID uint, updates map[string]any) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error
}

func (repo *UserRepository) UpdatePassword(userID uint, passwordHash string) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Update("password_hash", passwordHash).Error
}

func (repo *UserRepository) FindProfile(userID uint) (models.UserProfile, error) {
	var profile models.UserProfile
	if err := repo.database.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return models.UserProfile{}, err
	}
	return profile, nil
}

func (repo *UserRepository) SaveProfile(profile *models.UserProfile) error {
	return repo.database.Save(profile).Error
}
