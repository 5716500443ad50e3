package db

import "gorm.io/gorm"

type Repositories struct {
	Users         *UserRepository
	Cycles        *CycleRepository
	DailyLogs     *DailyLogRepository
	Symptoms      *SymptomRepository
	Analytics     *AnalyticsRepository
	Notifications *NotificationRepository
	RefreshTokens *RefreshTokenRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:         NewUserRepository(database),
		Cycles:        NewCycleRepository(database),
		DailyLogs:     NewDailyLogRepository(database),
		Symptoms:      NewSymptomRepository(database),
		Analytics:     NewAnalyticsRepository(database),
		Notifications: NewNotificationRepository(database),
		RefreshTokens: NewRefreshTokenRepository(database),
	}
}
