package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/socialgit/socialgit-api/internal/service"
	"github.com/socialgit/socialgit-api/internal/transfer"
)

type WorkflowHandler struct {
	s service.WorkflowService
}

func NewWorkflowHandler(service service.WorkflowService) *WorkflowHandler {
	return &WorkflowHandler{s: service}
}

func (h *WorkflowHandler) SaveWorkflow(c *fiber.Ctx) error {
	userID := GetUserID(c)
	clientID := c.QueryInt("client_id", 0)

	var ws transfer.WorkflowSave
	if err := c.BodyParser(&ws); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	workflowID, err := h.s.Save(c.Context(), userID, int64(clientID), &ws)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"workflow_id": workflowID,
	})
}

func (h *WorkflowHandler) LoadWorkflow(c *fiber.Ctx) error {
	userID := GetUserID(c)
	workflowID := c.QueryInt("id", 0)

	doc, err := h.s.Load(c.Context(), userID, int64(workflowID))
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(doc)
}

func (h *WorkflowHandler) ListWorkflows(c *fiber.Ctx) error {
	userID := GetUserID(c)
	clientID := c.QueryInt("client_id", 0)

	workflows, err := h.s.ListByClient(c.Context(), userID, int64(clientID))
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(workflows)
}
