package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/socialgit/socialgit-api/internal/service"
)

type ApiKeyHandler struct {
	s service.ApiKeyService
}

func NewApiKeyHandler(service service.ApiKeyService) *ApiKeyHandler {
	return &ApiKeyHandler{s: service}
}

func (h *ApiKeyHandler) CreateApiKey(c *fiber.Ctx) error {
	userID := GetUserID(c)

	if err := h.s.Create(c.Context(), userID); err != nil {
		return fail(c, err)
	}

	return c.SendStatus(fiber.StatusCreated)
}

func (h *ApiKeyHandler) ListKeys(c *fiber.Ctx) error {
	userID := GetUserID(c)

	keys, err := h.s.List(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list API keys",
		})
	}

	return c.Status(fiber.StatusOK).JSON(keys)
}

func (h *ApiKeyHandler) RemoveApiKey(c *fiber.Ctx) error {
	userID := GetUserID(c)
	keyID := c.QueryInt("id", 0)

	if err := h.s.Remove(c.Context(), userID, int64(keyID)); err != nil {
		return fail(c, err)
	}

	return c.SendStatus(fiber.StatusOK)
}
