package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lunara-health/lunara/internal/services"
)

type dailyLogPayload struct {
	Date           string   `json:"date"`
	Mood           string   `json:"mood"`
	SymptomIDs     []uint   `json:"symptom_ids"`
	Temperature    *float64 `json:"temperature"`
	Weight         *float64 `json:"weight"`
	SexualActivity bool     `json:"sexual_activity"`
	Notes          string   `json:"notes"`
}

func (payload *dailyLogPayload) toInput() (services.DailyLogInput, error) {
	date, err := parseDate(payload.Date)
	if err != nil {
		return services.DailyLogInput{}, err
	}
	return services.DailyLogInput{
		Date:           date,
		Mood:           payload.Mood,
		SymptomIDs:     payload.SymptomIDs,
		Temperature:    payload.Temperature,
		Weight:         payload.Weight,
		SexualActivity: payload.SexualActivity,
		Notes:          payload.Notes,
	}, nil
}

func (handler *Handler) handleListLogs(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	logs, err := handler.logs.List(user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondData(c, fiber.StatusOK, logs)
}

func (handler *Handler) handleGetLog(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	logID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "validation_error", "Invalid log id")
	}

	entry, err := handler.logs.Get(logID, user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondData(c, fiber.StatusOK, entry)
}

func (handler *Handler) handleCreateLog(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	payload := dailyLogPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return respondError(c, fiber.StatusBadRequest, "validation_error", "Invalid request body")
	}

	input, err := payload.toInput()
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "validation_error", err.Error())
	}

	entry, err := handler.logs.Create(user.ID, input)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondData(c, fiber.StatusCreated, entry)
}

func (handler *Handler) handleUpdateLog(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	logID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "validation_error", "Invalid log id")
	}

	payload := dailyLogPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return respondError(c, fiber.StatusBadRequest, "validation_error", "Invalid request body")
	}

	input, err := payload.toInput()
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "validation_error", err.Error())
	}

	entry, err := handler.logs.Update(logID, user.ID, input)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondData(c, fiber.StatusOK, entry)
}

func (handler *Handler) handleDeleteLog(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	logID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "validation_error", "Invalid log id")
	}

	if err := handler.logs.Delete(logID, user.ID); err != nil {
		return respondServiceError(c, err)
	}
	return respondMessage(c, fiber.StatusOK, nil, "Log deleted")
}

func (handler *Handler) handleListSymptoms(c *fiber.Ctx) error {
	symptoms, err := handler.logs.Symptoms()
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondData(c, fiber.StatusOK, symptoms)
}
