package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/velora-ai/companion/internal/repository"
	"github.com/velora-ai/companion/pkg/utils"
)

// Protected authenticates requests by session cookie or api_key query
// parameter and stores the user ID in locals.
func Protected(cookieName, secretKey string, keys repository.APIKeyRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if apiKey := c.Query("api_key"); apiKey != "" {
			key, found, err := keys.GetByKey(c.Context(), apiKey)
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"success": false,
					"message": "could not verify API key",
				})
			}
			if !found {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"success": false,
					"message": "invalid API key",
				})
			}
			c.Locals("user_id", key.UserID)
			return c.Next()
		}

		cookie := c.Cookies(cookieName)
		if cookie == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "authentication required",
			})
		}

		claims, err := utils.ValidateToken(cookie, secretKey)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "invalid or expired session",
			})
		}

		c.Locals("user_id", claims.UserID)
		return c.Next()
	}
}

// AdminOnly restricts a route to admin users. Must run after Protected.
func AdminOnly(users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("user_id").(int64)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "authentication required",
			})
		}

		user, err := users.GetByID(c.Context(), userID)
		if err != nil || user == nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "could not verify user",
			})
		}
		if !user.IsAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"message": "admin access required",
			})
		}
		return c.Next()
	}
}
