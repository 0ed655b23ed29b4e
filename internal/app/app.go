// Package app assembles a Fiber application for one resource service:
// shared middleware, the health endpoint, the /api prefix, and the
// top-level error mapping stage.
package app

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"storefront/internal/config"
	"storefront/internal/handlers"
)

// RouteRegistrar mounts a resource's routes on a router group. All
// handlers in this repository satisfy it.
type RouteRegistrar interface {
	RegisterRoutes(router fiber.Router)
}

// New builds the Fiber app for a service and mounts the given resource
// handlers under the /api prefix.
func New(cfg config.Config, registrars ...RouteRegistrar) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		AppName:      cfg.ServiceName,
		ErrorHandler: handlers.ErrorHandler,
	})

	fiberApp.Use(logger.New())

	fiberApp.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "healthy",
			"service": cfg.ServiceName,
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	api := fiberApp.Group("/api")
	for _, r := range registrars {
		r.RegisterRoutes(api)
	}

	return fiberApp
}
