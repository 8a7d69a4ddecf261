package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/socialgit/socialgit-api/internal/service"
	"github.com/socialgit/socialgit-api/internal/transfer"
)

type ClientHandler struct {
	s service.ClientService
}

func NewClientHandler(service service.ClientService) *ClientHandler {
	return &ClientHandler{s: service}
}

func (h *ClientHandler) CreateClient(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var cc transfer.ClientCreation
	if err := c.BodyParser(&cc); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	clientID, err := h.s.Create(c.Context(), userID, &cc)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":      clientID,
		"message": "Client added",
	})
}

func (h *ClientHandler) ListClients(c *fiber.Ctx) error {
	userID := GetUserID(c)
	clientID := c.QueryInt("id", 0)

	if clientID != 0 {
		client, err := h.s.Info(c.Context(), int64(clientID), userID)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(client)
	}

	clients, err := h.s.ListForOwner(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list clients",
		})
	}

	return c.Status(fiber.StatusOK).JSON(clients)
}

func (h *ClientHandler) ListApprovers(c *fiber.Ctx) error {
	userID := GetUserID(c)
	clientID := c.QueryInt("id", 0)

	approvers, err := h.s.Approvers(c.Context(), int64(clientID), userID)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(approvers)
}

func (h *ClientHandler) SetActiveWorkflow(c *fiber.Ctx) error {
	userID := GetUserID(c)
	clientID := c.QueryInt("id", 0)
	workflowID := c.QueryInt("workflow_id", 0)

	err := h.s.SetActiveWorkflow(c.Context(), userID, int64(clientID), int64(workflowID))
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Active workflow updated",
	})
}
