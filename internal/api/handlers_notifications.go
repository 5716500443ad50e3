package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lunara-health/lunara/internal/services"
)

func (handler *Handler) handleListNotifications(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	unreadOnly := c.QueryBool("unread_only", false)
	notifications, err := handler.notifications.List(user.ID, unreadOnly)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondData(c, fiber.StatusOK, notifications)
}

func (handler *Handler) handleMarkNotificationRead(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	notificationID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "validation_error", "Invalid notification id")
	}

	notification, err := handler.notifications.MarkRead(notificationID, user.ID, time.Now())
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondData(c, fiber.StatusOK, notification)
}

func (handler *Handler) handleGetPreferences(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	preferences, err := handler.notifications.Preferences(user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondData(c, fiber.StatusOK, preferences)
}

type preferencesPayload struct {
	EmailEnabled              *bool   `json:"email_enabled"`
	PushEnabled               *bool   `json:"push_enabled"`
	InAppEnabled              *bool   `json:"in_app_enabled"`
	PeriodRemindersEnabled    *bool   `json:"period_reminders_enabled"`
	OvulationRemindersEnabled *bool   `json:"ovulation_reminders_enabled"`
	InsightsEnabled           *bool   `json:"insights_enabled"`
	HealthTipsEnabled         *bool   `json:"health_tips_enabled"`
	QuietHoursEnabled         *bool   `json:"quiet_hours_enabled"`
	QuietHoursStart           *string `json:"quiet_hours_start"`
	QuietHoursEnd             *string `json:"quiet_hours_end"`
}

func (handler *Handler) handleUpdatePreferences(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	payload := preferencesPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return respondError(c, fiber.StatusBadRequest, "validation_error", "Invalid request body")
	}

	preferences, err := handler.notifications.Preferences(user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}

	if payload.EmailEnabled != nil {
		preferences.EmailEnabled = *payload.EmailEnabled
	}
	if payload.PushEnabled != nil {
		preferences.PushEnabled = *payload.PushEnabled
	}
	if payload.InAppEnabled != nil {
		preferences.InAppEnabled = *payload.InAppEnabled
	}
	if payload.PeriodRemindersEnabled != nil {
		preferences.PeriodRemindersEnabled = *payload.PeriodRemindersEnabled
	}
	if payload.OvulationRemindersEnabled != nil {
		preferences.OvulationRemindersEnabled = *payload.OvulationRemindersEnabled
	}
	if payload.InsightsEnabled != nil {
		preferences.InsightsEnabled = *payload.InsightsEnabled
	}
	if payload.HealthTipsEnabled != nil {
		preferences.HealthTipsEnabled = *payload.HealthTipsEnabled
	}
	if payload.QuietHoursEnabled != nil {
		preferences.QuietHoursEnabled = *payload.QuietHoursEnabled
	}
	if payload.QuietHoursStart != nil {
		preferences.QuietHoursStart = *payload.QuietHoursStart
	}
	if payload.QuietHoursEnd != nil {
		preferences.QuietHoursEnd = *payload.QuietHoursEnd
	}

	if err := handler.notifications.SavePreferences(&preferences); err != nil {
		return respondServiceError(c, err)
	}
	return respondData(c, fiber.StatusOK, preferences)
}

type reminderPayload struct {
	ReminderType     string `json:"reminder_type"`
	IsEnabled        bool   `json:"is_enabled"`
	DaysBefore       int    `json:"days_before"`
	NotificationTime string `json:"notification_time"`
}

func (handler *Handler) handleListReminders(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	reminders, err := handler.notifications.Reminders(user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondData(c, fiber.StatusOK, reminders)
}

func (handler *Handler) handleCreateReminder(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	payload := reminderPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return respondError(c, fiber.StatusBadRequest, "validation_error", "Invalid request body")
	}

	reminder, err := handler.notifications.CreateReminder(user.ID, services.ReminderInput{
		ReminderType:     payload.ReminderType,
		IsEnabled:        payload.IsEnabled,
		DaysBefore:       payload.DaysBefore,
		NotificationTime: payload.NotificationTime,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondData(c, fiber.StatusCreated, reminder)
}

func (handler *Handler) handleUpdateReminder(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	reminderID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "validation_error", "Invalid reminder id")
	}

	payload := reminderPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return respondError(c, fiber.StatusBadRequest, "validation_error", "Invalid request body")
	}

	reminder, err := handler.notifications.UpdateReminder(reminderID, user.ID, services.ReminderInput{
		ReminderType:     payload.ReminderType,
		IsEnabled:        payload.IsEnabled,
		DaysBefore:       payload.DaysBefore,
		NotificationTime: payload.NotificationTime,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondData(c, fiber.StatusOK, reminder)
}

func (handler *Handler) handleDeleteReminder(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	reminderID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "validation_error", "Invalid reminder id")
	}

	if err := handler.notifications.DeleteReminder(reminderID, user.ID); err != nil {
		return respondServiceError(c, err)
	}
	return respondMessage(c, fiber.StatusOK, nil, "Reminder deleted")
}
