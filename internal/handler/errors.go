package handler

import (
	"errors"
	"log/slog"

	"ucstore-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
)

// fail maps service errors to a status code and an {"error": ...} body.
// missing is the status used for ErrProductNotFound, which is 404 on product
// routes but 400 when a sale or purchase names an unknown product.
func fail(c *fiber.Ctx, err error, missing int) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrUserIDRequired):
		status = fiber.StatusBadRequest
	case errors.Is(err, service.ErrProductNotFound):
		status = missing
	case errors.Is(err, service.ErrUserNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, service.ErrProductExists):
		status = fiber.StatusConflict
	}

	if status == fiber.StatusInternalServerError {
		slog.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
		return c.Status(status).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func invalidJSON(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
}
