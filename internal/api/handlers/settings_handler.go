package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/velora-ai/companion/internal/models"
	"github.com/velora-ai/companion/internal/service"
)

type SettingsHandler struct {
	settings service.SettingsService
}

func NewSettingsHandler(settings service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	settings, err := h.settings.Get(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "could not load settings",
		})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"settings": settings,
	})
}

func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var req models.CompanionSettings
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid request body",
		})
	}

	saved, err := h.settings.Save(c.Context(), &req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"settings": saved,
	})
}
