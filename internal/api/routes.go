package api

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes wires the versioned REST surface onto the app. Everything
// except registration, login, refresh and the health probe sits behind
// bearer auth.
func (handler *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.Post("/register", handler.handleRegister)
	auth.Post("/login", handler.handleLogin)
	auth.Post("/refresh", handler.handleRefresh)
	auth.Post("/logout", handler.handleLogout)
	auth.Get("/me", handler.AuthRequired, handler.handleMe)
	auth.Put("/me", handler.AuthRequired, handler.handleUpdateMe)
	auth.Put("/password", handler.AuthRequired, handler.handleChangePassword)
	auth.Get("/profile", handler.AuthRequired, handler.handleGetProfile)
	auth.Put("/profile", handler.AuthRequired, handler.handleUpdateProfile)

	cycles := v1.Group("/cycles", handler.AuthRequired)
	cycles.Get("/", handler.handleListCycles)
	cycles.Post("/", handler.handleCreateCycle)
	cycles.Get("/current", handler.handleCurrentCycle)
	cycles.Get("/symptoms", handler.handleListSymptoms)
	cycles.Get("/:id", handler.handleGetCycle)
	cycles.Put("/:id", handler.handleUpdateCycle)
	cycles.Delete("/:id", handler.handleDeleteCycle)
	cycles.Get("/:id/period-days", handler.handleListPeriodDays)
	cycles.Post("/:id/period-days", handler.handleAddPeriodDay)

	logs := v1.Group("/logs", handler.AuthRequired)
	logs.Get("/", handler.handleListLogs)
	logs.Post("/", handler.handleCreateLog)
	logs.Get("/:id", handler.handleGetLog)
	logs.Put("/:id", handler.handleUpdateLog)
	logs.Delete("/:id", handler.handleDeleteLog)

	analytics := v1.Group("/analytics", handler.AuthRequired)
	analytics.Get("/predictions/current", handler.handleCurrentPrediction)
	analytics.Post("/predictions/generate", handler.handleGeneratePrediction)
	analytics.Get("/statistics", handler.handleStatistics)
	analytics.Post("/statistics/calculate", handler.handleCalculateStatistics)
	analytics.Get("/insights", handler.handleListInsights)
	analytics.Post("/insights/generate", handler.handleGenerateInsights)
	analytics.Post("/insights/:id/read", handler.handleMarkInsightRead)
	analytics.Post("/insights/:id/dismiss", handler.handleDismissInsight)

	notifications := v1.Group("/notifications", handler.AuthRequired)
	notifications.Get("/", handler.handleListNotifications)
	notifications.Post("/:id/read", handler.handleMarkNotificationRead)
	notifications.Get("/preferences", handler.handleGetPreferences)
	notifications.Put("/preferences", handler.handleUpdatePreferences)
	notifications.Get("/reminders", handler.handleListReminders)
	notifications.Post("/reminders", handler.handleCreateReminder)
	notifications.Put("/reminders/:id", handler.handleUpdateReminder)
	notifications.Delete("/reminders/:id", handler.handleDeleteReminder)

	charts := v1.Group("/visualizations", handler.AuthRequired)
	charts.Get("/cycles/history", handler.handleCycleHistoryChart)
	charts.Get("/cycles/calendar", handler.handleCycleCalendar)
	charts.Get("/cycles/statistics", handler.handleStatisticsChart)
	charts.Get("/symptoms/frequency", handler.handleSymptomFrequencyChart)
	charts.Get("/symptoms/by-phase", handler.handleSymptomsByPhaseChart)
	charts.Get("/mood/timeline", handler.handleMoodTimelineChart)
	charts.Get("/mood/distribution", handler.handleMoodDistributionChart)
}
