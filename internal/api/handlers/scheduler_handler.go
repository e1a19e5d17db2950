package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/velora-ai/companion/internal/scheduler"
)

// SchedulerHandler exposes admin control over the content scheduler loop.
type SchedulerHandler struct {
	sched     *scheduler.ContentScheduler
	generator *scheduler.Generator
}

func NewSchedulerHandler(sched *scheduler.ContentScheduler, generator *scheduler.Generator) *SchedulerHandler {
	return &SchedulerHandler{sched: sched, generator: generator}
}

func (h *SchedulerHandler) Status(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success":  true,
		"running":  h.sched.IsRunning(),
		"last_run": h.generator.LastRun(),
	})
}

func (h *SchedulerHandler) Start(c *fiber.Ctx) error {
	h.sched.Start()
	return c.JSON(fiber.Map{"success": true, "running": true})
}

func (h *SchedulerHandler) Stop(c *fiber.Ctx) error {
	h.sched.Stop()
	return c.JSON(fiber.Map{"success": true, "running": false})
}

// GenerateNow runs a quota top-up pass immediately instead of waiting for
// the next tick.
func (h *SchedulerHandler) GenerateNow(c *fiber.Ctx) error {
	if err := h.generator.GenerateIfNeeded(c.Context()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"success": true})
}
