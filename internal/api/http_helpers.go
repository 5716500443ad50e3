package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/lunara-health/lunara/internal/services"
	"gorm.io/gorm"
)

func respondData(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(fiber.Map{"success": true, "data": data})
}

func respondMessage(c *fiber.Ctx, status int, data any, message string) error {
	return c.Status(status).JSON(fiber.Map{"success": true, "data": data, "message": message})
}

func respondError(c *fiber.Ctx, status int, code string, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   fiber.Map{"code": code, "message": message},
	})
}

// respondServiceError maps sentinel errors from the service layer onto the
// API's error envelope. Unknown errors become opaque 500s.
func respondServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInsufficientHistory):
		return respondError(c, fiber.StatusUnprocessableEntity, "insufficient_data",
			"Not enough cycle history yet. Track at least 3 cycles to unlock this.")
	case errors.Is(err, gorm.ErrRecordNotFound):
		return respondError(c, fiber.StatusNotFound, "not_found", "Resource not found")
	case errors.Is(err, services.ErrEmailTaken):
		return respondError(c, fiber.StatusConflict, "conflict", "Email already registered")
	case errors.Is(err, services.ErrDuplicateCycle):
		return respondError(c, fiber.StatusConflict, "conflict", "A cycle with this start date already exists")
	case errors.Is(err, services.ErrDuplicateLog):
		return respondError(c, fiber.StatusConflict, "conflict", "A log for this date already exists")
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrTokenRevoked),
		errors.Is(err, services.ErrAccountDisabled):
		return respondError(c, fiber.StatusUnauthorized, "unauthorized", "Invalid credentials")
	case errors.Is(err, services.ErrAuthCredentialsInvalid),
		errors.Is(err, services.ErrWeakPassword),
		errors.Is(err, services.ErrInvalidDateRange),
		errors.Is(err, services.ErrInvalidFlow),
		errors.Is(err, services.ErrInvalidMood),
		errors.Is(err, services.ErrInvalidReminderType),
		errors.Is(err, services.ErrDateOutsideCycle),
		errors.Is(err, services.ErrUnknownSymptomID):
		return respondError(c, fiber.StatusBadRequest, "validation_error", err.Error())
	default:
		return respondError(c, fiber.StatusInternalServerError, "internal_server_error",
			"An unexpected error occurred. Please try again later.")
	}
}
