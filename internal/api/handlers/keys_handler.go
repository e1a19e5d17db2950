package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/velora-ai/companion/internal/models"
	"github.com/velora-ai/companion/internal/repository"
	"github.com/velora-ai/companion/pkg/utils"
)

type KeysHandler struct {
	keys repository.APIKeyRepository
}

func NewKeysHandler(keys repository.APIKeyRepository) *KeysHandler {
	return &KeysHandler{keys: keys}
}

func (h *KeysHandler) List(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	keys, err := h.keys.ListByUserID(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "could not list API keys",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"keys":    keys,
	})
}

func (h *KeysHandler) Create(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	apiKey, err := utils.GenerateRandomKey()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "could not generate API key",
		})
	}

	key := &models.APIKey{UserID: userID, APIKey: apiKey}
	id, err := h.keys.Create(c.Context(), key)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "could not store API key",
		})
	}
	key.ID = id

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"key":     key,
	})
}

func (h *KeysHandler) Delete(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid key ID",
		})
	}

	if err := h.keys.Remove(c.Context(), id, userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "could not delete API key",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}
