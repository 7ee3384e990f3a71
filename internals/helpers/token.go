package helper

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

/* ===============================
   Claims stored by the auth middleware
=================================*/

// GetUserIDFromToken reads the authenticated user id placed in Locals by the
// auth middleware.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("user_id").(string)
	if !ok || raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - missing user ID")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - invalid user ID")
	}
	return id, nil
}

// GetRoleFromToken reads the role claim placed in Locals.
func GetRoleFromToken(c *fiber.Ctx) (string, error) {
	role, ok := c.Locals("role").(string)
	if !ok || role == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - missing role")
	}
	return role, nil
}

// GetUserNameFromToken reads the display name claim, empty when absent.
func GetUserNameFromToken(c *fiber.Ctx) string {
	name, _ := c.Locals("user_name").(string)
	return name
}
