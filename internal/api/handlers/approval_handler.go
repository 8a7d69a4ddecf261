package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/socialgit/socialgit-api/internal/service"
)

type ApprovalHandler struct {
	s service.ApprovalService
}

func NewApprovalHandler(service service.ApprovalService) *ApprovalHandler {
	return &ApprovalHandler{s: service}
}

func (h *ApprovalHandler) RecordDecision(c *fiber.Ctx) error {
	userID := GetUserID(c)
	postID := c.Params("id")
	decision := c.FormValue("action")

	if err := h.s.Record(c.Context(), postID, userID, decision); err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Approval updated",
	})
}

func (h *ApprovalHandler) ListApprovals(c *fiber.Ctx) error {
	postID := c.Params("id")

	approvals, err := h.s.ListByPost(c.Context(), postID)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(approvals)
}
