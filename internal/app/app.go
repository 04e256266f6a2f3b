// Package app assembles the HTTP application from already-built services.
package app

import (
	"time"

	"pcstore/internal/graph"
	"pcstore/internal/handlers"
	"pcstore/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// Options tune the HTTP layer.
type Options struct {
	RequestTimeout time.Duration
	AccessLog      bool
}

// New builds the Fiber app serving /health and /graphql.
func New(svc graph.Services, log *zap.Logger, opts Options) (*fiber.App, error) {
	schema, err := graph.NewSchema(svc, log)
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		AppName:               "pcstore",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	if opts.AccessLog {
		app.Use(logger.New())
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	api := app.Group("", middleware.Authenticate(svc.Auth, log))
	handlers.NewGraphQLHandler(schema, opts.RequestTimeout, log).RegisterRoutes(api)

	return app, nil
}
