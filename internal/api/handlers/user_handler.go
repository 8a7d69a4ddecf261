package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/socialgit/socialgit-api/internal/service"
)

type UserHandler struct {
	s service.UserService
}

func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{s: service}
}

func (h *UserHandler) GetUserInfo(c *fiber.Ctx) error {
	userID := GetUserID(c)

	user, err := h.s.GetUserInfo(c.Context(), userID)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

// ListUsers backs the approver pickers on client and workflow forms.
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.s.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list users",
		})
	}

	return c.Status(fiber.StatusOK).JSON(users)
}
