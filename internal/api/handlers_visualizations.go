package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lunara-health/lunara/internal/services"
)

// Visualization endpoints are read-only projections of stored data. They
// never write statistics, predictions or insights as a side effect.

func (handler *Handler) handleCycleHistoryChart(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	months := c.QueryInt("months", 6)
	if months < 1 || months > 24 {
		return respondError(c, fiber.StatusBadRequest, "validation_error", "months must be between 1 and 24")
	}

	cycles, err := handler.repos.Cycles.ListByUser(user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	chart := services.CycleLengthHistory(cycles, months, time.Now().In(handler.location))
	return respondData(c, fiber.StatusOK, chart)
}

func (handler *Handler) handleCycleCalendar(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	now := time.Now().In(handler.location)
	year := c.QueryInt("year", now.Year())
	month := c.QueryInt("month", int(now.Month()))
	if month < 1 || month > 12 {
		return respondError(c, fiber.StatusBadRequest, "validation_error", "month must be between 1 and 12")
	}
	if year < 2000 || year > 2100 {
		return respondError(c, fiber.StatusBadRequest, "validation_error", "year out of range")
	}

	cycles, err := handler.repos.Cycles.ListByUser(user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	calendar := services.CycleCalendar(cycles, year, time.Month(month), handler.config)
	return respondData(c, fiber.StatusOK, fiber.Map{
		"year":  year,
		"month": month,
		"days":  calendar,
	})
}

func (handler *Handler) handleStatisticsChart(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	stats, err := handler.analytics.Statistics(user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondData(c, fiber.StatusOK, services.StatisticsChart(stats))
}

func (handler *Handler) handleSymptomFrequencyChart(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	days := c.QueryInt("days", 90)
	if days < 7 || days > 365 {
		return respondError(c, fiber.StatusBadRequest, "validation_error", "days must be between 7 and 365")
	}

	logs, err := handler.repos.DailyLogs.ListByUser(user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	symptoms, err := handler.repos.Symptoms.ListActive()
	if err != nil {
		return respondServiceError(c, err)
	}
	chart := services.SymptomFrequency(logs, symptoms, days, time.Now().In(handler.location))
	return respondData(c, fiber.StatusOK, chart)
}

func (handler *Handler) handleSymptomsByPhaseChart(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	cycles, err := handler.repos.Cycles.ListByUser(user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	logs, err := handler.repos.DailyLogs.ListByUser(user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	symptoms, err := handler.repos.Symptoms.ListActive()
	if err != nil {
		return respondServiceError(c, err)
	}
	breakdown := services.SymptomsByPhase(cycles, logs, symptoms, handler.config)
	return respondData(c, fiber.StatusOK, breakdown)
}

func (handler *Handler) handleMoodTimelineChart(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	days := c.QueryInt("days", 30)
	if days < 7 || days > 365 {
		return respondError(c, fiber.StatusBadRequest, "validation_error", "days must be between 7 and 365")
	}

	logs, err := handler.repos.DailyLogs.ListByUser(user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	chart := services.MoodTimeline(logs, days, time.Now().In(handler.location))
	return respondData(c, fiber.StatusOK, chart)
}

func (handler *Handler) handleMoodDistributionChart(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	days := c.QueryInt("days", 90)
	if days < 7 || days > 365 {
		return respondError(c, fiber.StatusBadRequest, "validation_error", "days must be between 7 and 365")
	}

	logs, err := handler.repos.DailyLogs.ListByUser(user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	chart := services.MoodDistribution(logs, days, time.Now().In(handler.location))
	return respondData(c, fiber.StatusOK, chart)
}
