package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lunara-health/lunara/internal/models"
	"github.com/lunara-health/lunara/internal/services"
)

type registerPayload struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Timezone  string `json:"timezone"`
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshPayload struct {
	RefreshToken string `json:"refresh_token"`
}

type userView struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Timezone  string `json:"timezone"`
}

func viewUser(user *models.User) userView {
	return userView{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Timezone:  user.Timezone,
	}
}

func (handler *Handler) handleRegister(c *fiber.Ctx) error {
	payload := registerPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return respondError(c, fiber.StatusBadRequest, "validation_error", "Invalid request body")
	}

	user, err := handler.auth.Register(services.RegisterInput{
		Email:     payload.Email,
		Password:  payload.Password,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Timezone:  payload.Timezone,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	tokens, err := handler.issueTokenPair(&user, time.Now())
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondMessage(c, fiber.StatusCreated, fiber.Map{
		"user":   viewUser(&user),
		"tokens": tokens,
	}, "Account created")
}

func (handler *Handler) handleLogin(c *fiber.Ctx) error {
	payload := loginPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return respondError(c, fiber.StatusBadRequest, "validation_error", "Invalid request body")
	}

	user, err := handler.auth.Authenticate(payload.Email, payload.Password)
	if err != nil {
		return respondServiceError(c, err)
	}

	tokens, err := handler.issueTokenPair(&user, time.Now())
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondData(c, fiber.StatusOK, fiber.Map{
		"user":   viewUser(&user),
		"tokens": tokens,
	})
}

// handleRefresh rotates a refresh token: the presented JTI is revoked and a
// fresh pair is issued, so a stolen refresh token works at most once.
func (handler *Handler) handleRefresh(c *fiber.Ctx) error {
	payload := refreshPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return respondError(c, fiber.StatusBadRequest, "validation_error", "Invalid request body")
	}

	claims, err := handler.parseToken(payload.RefreshToken, tokenKindRefresh)
	if err != nil {
		return respondError(c, fiber.StatusUnauthorized, "unauthorized", "Invalid refresh token")
	}

	now := time.Now()
	user, err := handler.auth.RotateRefreshToken(claims.ID, now)
	if err != nil {
		return respondServiceError(c, err)
	}

	tokens, err := handler.issueTokenPair(&user, now)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondData(c, fiber.StatusOK, fiber.Map{"tokens": tokens})
}

func (handler *Handler) handleLogout(c *fiber.Ctx) error {
	payload := refreshPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return respondError(c, fiber.StatusBadRequest, "validation_error", "Invalid request body")
	}

	if claims, err := handler.parseToken(payload.RefreshToken, tokenKindRefresh); err == nil {
		// Revocation failures are deliberately not surfaced: logout always
		// succeeds from the client's point of view.
		_, _ = handler.auth.RotateRefreshToken(claims.ID, time.Now())
	}
	return respondMessage(c, fiber.StatusOK, nil, "Logged out")
}

func (handler *Handler) handleMe(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "unauthorized", "Not authenticated")
	}
	return respondData(c, fiber.StatusOK, viewUser(user))
}

type updateMePayload struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Timezone  *string `json:"timezone"`
}

func (handler *Handler) handleUpdateMe(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "unauthorized", "Not authenticated")
	}

	payload := updateMePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return respondError(c, fiber.StatusBadRequest, "validation_error", "Invalid request body")
	}

	updates := map[string]any{}
	if payload.FirstName != nil {
		updates["first_name"] = *payload.FirstName
	}
	if payload.LastName != nil {
		updates["last_name"] = *payload.LastName
	}
	if payload.Timezone != nil {
		if _, err := time.LoadLocation(*payload.Timezone); err != nil {
			return respondError(c, fiber.StatusBadRequest, "validation_error", "Unknown timezone")
		}
		updates["timezone"] = *payload.Timezone
	}
	if len(updates) > 0 {
		if err := handler.auth.UpdateProfile(user.ID, updates); err != nil {
			return respondServiceError(c, err)
		}
	}

	fresh, err := handler.auth.FindByID(user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondData(c, fiber.StatusOK, viewUser(&fresh))
}

type changePasswordPayload struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (handler *Handler) handleChangePassword(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "unauthorized", "Not authenticated")
	}

	payload := changePasswordPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return respondError(c, fiber.StatusBadRequest, "validation_error", "Invalid request body")
	}

	if err := handler.auth.ChangePassword(user.ID, payload.CurrentPassword, payload.NewPassword); err != nil {
		return respondServiceError(c, err)
	}
	return respondMessage(c, fiber.StatusOK, nil, "Password updated")
}

func (handler *Handler) handleGetProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "unauthorized", "Not authenticated")
	}

	profile, err := handler.auth.Profile(user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondData(c, fiber.StatusOK, profile)
}

type profilePayload struct {
	AverageCycleLength       *int  `json:"average_cycle_length"`
	AveragePeriodLength      *int  `json:"average_period_length"`
	PeriodReminderEnabled    *bool `json:"period_reminder_enabled"`
	OvulationReminderEnabled *bool `json:"ovulation_reminder_enabled"`
	ReminderDaysBefore       *int  `json:"reminder_days_before"`
	DataSharingEnabled       *bool `json:"data_sharing_enabled"`
}

func (handler *Handler) handleUpdateProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "unauthorized", "Not authenticated")
	}

	payload := profilePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return respondError(c, fiber.StatusBadRequest, "validation_error", "Invalid request body")
	}

	profile, err := handler.auth.Profile(user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}

	if payload.AverageCycleLength != nil {
		if *payload.AverageCycleLength < 15 || *payload.AverageCycleLength > 60 {
			return respondError(c, fiber.StatusBadRequest, "validation_error", "average_cycle_length must be between 15 and 60")
		}
		profile.AverageCycleLength = *payload.AverageCycleLength
	}
	if payload.AveragePeriodLength != nil {
		if *payload.AveragePeriodLength < 1 || *payload.AveragePeriodLength > 14 {
			return respondError(c, fiber.StatusBadRequest, "validation_error", "average_period_length must be between 1 and 14")
		}
		profile.AveragePeriodLength = *payload.AveragePeriodLength
	}
	if payload.PeriodReminderEnabled != nil {
		profile.PeriodReminderEnabled = *payload.PeriodReminderEnabled
	}
	if payload.OvulationReminderEnabled != nil {
		profile.OvulationReminderEnabled = *payload.OvulationReminderEnabled
	}
	if payload.ReminderDaysBefore != nil {
		if *payload.ReminderDaysBefore < 0 || *payload.ReminderDaysBefore > 14 {
			return respondError(c, fiber.StatusBadRequest, "validation_error", "reminder_days_before must be between 0 and 14")
		}
		profile.ReminderDaysBefore = *payload.ReminderDaysBefore
	}
	if payload.DataSharingEnabled != nil {
		profile.DataSharingEnabled = *payload.DataSharingEnabled
	}

	if err := handler.auth.SaveProfile(&profile); err != nil {
		return respondServiceError(c, err)
	}
	return respondData(c, fiber.StatusOK, profile)
}
