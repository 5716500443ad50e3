package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) handleCurrentPrediction(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	prediction, err := handler.analytics.CurrentPrediction(user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondData(c, fiber.StatusOK, prediction)
}

func (handler *Handler) handleGeneratePrediction(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	prediction, err := handler.analytics.GeneratePrediction(user.ID, time.Now().In(handler.location))
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondData(c, fiber.StatusCreated, prediction)
}

func (handler *Handler) handleStatistics(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	stats, err := handler.analytics.Statistics(user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondData(c, fiber.StatusOK, stats)
}

func (handler *Handler) handleCalculateStatistics(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	stats, err := handler.analytics.CalculateStatistics(user.ID, time.Now().In(handler.location))
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondData(c, fiber.StatusOK, stats)
}

func (handler *Handler) handleListInsights(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	unreadOnly := c.QueryBool("unread_only", false)
	insights, err := handler.analytics.Insights(user.ID, unreadOnly)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondData(c, fiber.StatusOK, insights)
}

func (handler *Handler) handleGenerateInsights(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	insights, err := handler.analytics.GenerateInsights(user.ID, time.Now().In(handler.location))
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondData(c, fiber.StatusCreated, insights)
}

func (handler *Handler) handleMarkInsightRead(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	insightID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "validation_error", "Invalid insight id")
	}

	insight, err := handler.analytics.MarkInsightRead(insightID, user.ID, time.Now())
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondData(c, fiber.StatusOK, insight)
}

func (handler *Handler) handleDismissInsight(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	insightID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "validation_error", "Invalid insight id")
	}

	insight, err := handler.analytics.DismissInsight(insightID, user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondData(c, fiber.StatusOK, insight)
}
