package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lunara-health/lunara/internal/services"
)

type cyclePayload struct {
	StartDate string  `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Notes     string  `json:"notes"`
}

type cycleUpdatePayload struct {
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	IsActive  *bool   `json:"is_active"`
	Notes     *string `json:"notes"`
}

func (handler *Handler) handleListCycles(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	cycles, err := handler.cycles.List(user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondData(c, fiber.StatusOK, cycles)
}

func (handler *Handler) handleGetCycle(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	cycleID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "validation_error", "Invalid cycle id")
	}

	cycle, err := handler.cycles.Get(cycleID, user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondData(c, fiber.StatusOK, cycle)
}

func (handler *Handler) handleCurrentCycle(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	cycle, err := handler.cycles.Current(user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondData(c, fiber.StatusOK, cycle)
}

func (handler *Handler) handleCreateCycle(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	payload := cyclePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return respondError(c, fiber.StatusBadRequest, "validation_error", "Invalid request body")
	}

	start, err := parseDate(payload.StartDate)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "validation_error", "start_date must be YYYY-MM-DD")
	}
	var end *time.Time
	if payload.EndDate != nil && *payload.EndDate != "" {
		parsed, err := parseDate(*payload.EndDate)
		if err != nil {
			return respondError(c, fiber.StatusBadRequest, "validation_error", "end_date must be YYYY-MM-DD")
		}
		end = &parsed
	}

	cycle, err := handler.cycles.Create(user.ID, services.CycleInput{
		StartDate: start,
		EndDate:   end,
		Notes:     payload.Notes,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondData(c, fiber.StatusCreated, cycle)
}

func (handler *Handler) handleUpdateCycle(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	cycleID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "validation_error", "Invalid cycle id")
	}

	payload := cycleUpdatePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return respondError(c, fiber.StatusBadRequest, "validation_error", "Invalid request body")
	}

	update := services.CycleUpdate{IsActive: payload.IsActive, Notes: payload.Notes}
	if payload.StartDate != nil {
		parsed, err := parseDate(*payload.StartDate)
		if err != nil {
			return respondError(c, fiber.StatusBadRequest, "validation_error", "start_date must be YYYY-MM-DD")
		}
		update.StartDate = &parsed
	}
	if payload.EndDate != nil {
		if *payload.EndDate == "" {
			update.ClearEnd = true
		} else {
			parsed, err := parseDate(*payload.EndDate)
			if err != nil {
				return respondError(c, fiber.StatusBadRequest, "validation_error", "end_date must be YYYY-MM-DD")
			}
			update.EndDate = &parsed
		}
	}

	cycle, err := handler.cycles.Update(cycleID, user.ID, update)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondData(c, fiber.StatusOK, cycle)
}

func (handler *Handler) handleDeleteCycle(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	cycleID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "validation_error", "Invalid cycle id")
	}

	if err := handler.cycles.Delete(cycleID, user.ID); err != nil {
		return respondServiceError(c, err)
	}
	return respondMessage(c, fiber.StatusOK, nil, "Cycle deleted")
}

type periodDayPayload struct {
	Date  string `json:"date"`
	Flow  string `json:"flow"`
	Notes string `json:"notes"`
}

func (handler *Handler) handleListPeriodDays(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	cycleID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "validation_error", "Invalid cycle id")
	}

	days, err := handler.cycles.PeriodDays(cycleID, user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondData(c, fiber.StatusOK, days)
}

func (handler *Handler) handleAddPeriodDay(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	cycleID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "validation_error", "Invalid cycle id")
	}

	payload := periodDayPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return respondError(c, fiber.StatusBadRequest, "validation_error", "Invalid request body")
	}
	date, err := parseDate(payload.Date)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "validation_error", "date must be YYYY-MM-DD")
	}

	day, err := handler.cycles.AddPeriodDay(cycleID, user.ID, services.PeriodDayInput{
		Date:  date,
		Flow:  payload.Flow,
		Notes: payload.Notes,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondData(c, fiber.StatusCreated, day)
}
