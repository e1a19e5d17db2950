package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/velora-ai/companion/internal/service"
	"github.com/velora-ai/companion/internal/transfer"
)

type PaymentHandler struct {
	payments service.PaymentService
}

func NewPaymentHandler(payments service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

func (h *PaymentHandler) Setup(c *fiber.Ctx) error {
	setup, err := h.payments.Setup(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "could not load payment settings",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"setup":   setup,
	})
}

func (h *PaymentHandler) CreateOrder(c *fiber.Ctx) error {
	if _, err := GetUserID(c); err != nil {
		return err
	}

	order, err := h.payments.CreateOrder(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"order":   order,
	})
}

func (h *PaymentHandler) CaptureOrder(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	var req transfer.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil || req.OrderID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "order_id is required",
		})
	}

	order, err := h.payments.CaptureOrder(c.Context(), userID, req.OrderID)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"order":   order,
	})
}
