package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/velora-ai/companion/internal/repository"
	"github.com/velora-ai/companion/internal/service"
	"github.com/velora-ai/companion/internal/transfer"
)

type ChatHandler struct {
	chat     service.ChatService
	messages repository.MessageRepository
}

func NewChatHandler(chat service.ChatService, messages repository.MessageRepository) *ChatHandler {
	return &ChatHandler{chat: chat, messages: messages}
}

func (h *ChatHandler) Send(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	var req transfer.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid request body",
		})
	}
	if strings.TrimSpace(req.Message) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "message is required",
		})
	}
	if req.Source == "" {
		req.Source = "website"
	}

	reply, err := h.chat.Respond(c.Context(), userID, req.Source, req.ExternalID, req.Message)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "could not generate a reply",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"reply":   reply,
	})
}

func (h *ChatHandler) Messages(c *fiber.Ctx) error {
	if _, err := GetUserID(c); err != nil {
		return err
	}

	conversationID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid conversation ID",
		})
	}

	limit := c.QueryInt("limit", 100)
	if limit < 1 || limit > 500 {
		limit = 100
	}

	messages, err := h.messages.ListByConversation(c.Context(), conversationID, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "could not load messages",
		})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"messages": messages,
	})
}
