package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/socialgit/socialgit-api/internal/service"
)

type QueueHandler struct {
	s service.QueueService
}

func NewQueueHandler(service service.QueueService) *QueueHandler {
	return &QueueHandler{s: service}
}

func (h *QueueHandler) QueuePost(c *fiber.Ctx) error {
	postID := c.Params("id")

	if err := h.s.Queue(c.Context(), postID); err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Post queued",
	})
}

func (h *QueueHandler) PostNow(c *fiber.Ctx) error {
	postID := c.Params("id")

	if err := h.s.PostNow(c.Context(), postID); err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Post posted (simulated)",
	})
}

func (h *QueueHandler) ListQueue(c *fiber.Ctx) error {
	approved, err := h.s.ListApproved(c.Context())
	if err != nil {
		return fail(c, err)
	}
	queued, err := h.s.ListQueued(c.Context())
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"approved": approved,
		"queued":   queued,
	})
}
