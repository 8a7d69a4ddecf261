package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/socialgit/socialgit-api/internal/service"
)

func GetUserID(c *fiber.Ctx) int64 {
	userID, _ := strconv.Atoi(c.Locals("user_id").(string))
	return int64(userID)
}

// fail maps a service error onto a status code and JSON body. Every
// failure is reported once; nothing is retried.
func fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusBadRequest
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		status = fiber.StatusUnauthorized
	case errors.Is(err, service.ErrUnauthorized), errors.Is(err, service.ErrNotAnApprover):
		status = fiber.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, service.ErrDuplicateUsername), errors.Is(err, service.ErrDuplicateClient):
		status = fiber.StatusConflict
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
