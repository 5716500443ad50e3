package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lunara-health/lunara/internal/models"
)

const contextUserKey = "current_user"

// AuthRequired validates the bearer access token and loads the user into
// the request context. Every protected route hangs off this.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	raw := bearerToken(c)
	if raw == "" {
		return respondError(c, fiber.StatusUnauthorized, "unauthorized", "Missing bearer token")
	}

	claims, err := handler.parseToken(raw, tokenKindAccess)
	if err != nil {
		return respondError(c, fiber.StatusUnauthorized, "unauthorized", "Invalid or expired token")
	}

	user, err := handler.auth.FindByID(claims.UserID)
	if err != nil {
		return respondError(c, fiber.StatusUnauthorized, "unauthorized", "Unknown user")
	}
	if !user.IsActive {
		return respondError(c, fiber.StatusForbidden, "forbidden", "Account disabled")
	}

	c.Locals(contextUserKey, &user)
	return c.Next()
}

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok
}
