package api

import (
	"time"

	"github.com/lunara-health/lunara/internal/db"
	"github.com/lunara-health/lunara/internal/services"
	"gorm.io/gorm"
)

const (
	defaultAccessTokenTTL  = 15 * time.Minute
	defaultRefreshTokenTTL = 30 * 24 * time.Hour
)

type Handler struct {
	repos         *db.Repositories
	auth          *services.AuthService
	cycles        *services.CycleService
	logs          *services.LogService
	analytics     *services.AnalyticsService
	notifications *services.NotificationService
	secretKey     []byte
	location      *time.Location
	config        services.AnalyticsConfig
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewHandler(database *gorm.DB, secretKey string, location *time.Location, config services.AnalyticsConfig) *Handler {
	if location == nil {
		location = time.UTC
	}

	repos := db.NewRepositories(database)
	return &Handler{
		repos:         repos,
		auth:          services.NewAuthService(repos.Users, repos.RefreshTokens),
		cycles:        services.NewCycleService(repos.Cycles),
		logs:          services.NewLogService(repos.DailyLogs, repos.Symptoms),
		analytics:     services.NewAnalyticsService(repos.Analytics, repos.Cycles, repos.DailyLogs, repos.Symptoms, config),
		notifications: services.NewNotificationService(repos.Notifications),
		secretKey:     []byte(secretKey),
		location:      location,
		config:        config,
		accessTTL:     defaultAccessTokenTTL,
		refreshTTL:    defaultRefreshTokenTTL,
	}
}
