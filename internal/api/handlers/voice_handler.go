package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/velora-ai/companion/internal/repository"
	"github.com/velora-ai/companion/internal/service"
	"github.com/velora-ai/companion/internal/transfer"
)

type VoiceHandler struct {
	chat  service.ChatService
	tts   service.TTSService
	users repository.UserRepository
}

func NewVoiceHandler(chat service.ChatService, tts service.TTSService, users repository.UserRepository) *VoiceHandler {
	return &VoiceHandler{chat: chat, tts: tts, users: users}
}

// Send produces a spoken companion reply. Voice calls are a paid feature with
// a daily minute allowance.
func (h *VoiceHandler) Send(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	var req transfer.VoiceRequest
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
	if req.Minutes <= 0 {
		req.Minutes = 1
	}

	user, err := h.users.GetByID(c.Context(), userID)
	if err != nil || user == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "could not load user",
		})
	}
	if !user.CanMakeCall(req.Minutes) {
		return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{
			"success": false,
			"message": "voice calls require an active subscription with remaining minutes",
		})
	}

	reply, err := h.chat.Respond(c.Context(), userID, "website", "", req.Message)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "could not generate a reply",
		})
	}

	audioURL, err := h.tts.Speak(c.Context(), reply.Text)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "could not synthesize speech",
		})
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"reply":     reply,
		"audio_url": audioURL,
	})
}
