package handlers

import "github.com/gofiber/fiber/v2"

// GetUserID reads the authenticated user ID set by the auth middleware.
func GetUserID(c *fiber.Ctx) (int64, error) {
	id, ok := c.Locals("user_id").(int64)
	if !ok {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "authentication required")
	}
	return id, nil
}
