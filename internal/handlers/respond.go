package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/apperrors"
)

// Envelope is the uniform wrapper applied to every successful response
// that carries a payload.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

// respond wraps data in the success envelope with the given status.
func respond(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(Envelope{Success: true, Data: data})
}

// ErrorHandler is the single top-level error mapping stage. Every error
// returned by a handler lands here and leaves as JSON with the documented
// status: validation failures as 400 with the violation list, missing
// identities as 404, everything else as an opaque 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"errors":  validationErr.Violations,
		})
	}

	var notFoundErr *apperrors.NotFoundError
	if errors.As(err, &notFoundErr) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": notFoundErr.Error(),
		})
	}

	// Routing-level errors (unknown path, bad method) keep their status.
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"success": false,
			"message": fiberErr.Message,
		})
	}

	// Storage faults and anything unexpected: log the detail, leak nothing.
	log.Printf("Internal error on %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"message": "Internal server error",
	})
}
