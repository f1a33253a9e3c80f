// Package api exposes the validators over HTTP for the configurator UI.
package api

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/chazu/bayframe/pkg/building"
	"github.com/chazu/bayframe/pkg/config"
)

// New builds the fiber app with every route registered. code is the
// building-code table every height check runs against.
func New(cfg *config.Server, code building.CodeRequirements) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "bayframe",
	})

	app.Use(recover.New())
	app.Use(requestLogger())

	h := &Handler{code: code}

	app.Get("/health/live", LivenessProbe)
	app.Get("/health/ready", ReadinessProbe)

	app.Post("/evaluate", h.Evaluate)
	app.Post("/validate/project", h.ValidateProject)
	app.Post("/validate/feature", h.ValidateFeature)
	app.Post("/validate/new-feature", h.ValidateNewFeature)
	app.Post("/validate/skylights", h.ValidateSkylights)
	app.Post("/suggest/feature", h.SuggestFeature)
	app.Post("/suggest/skylight", h.SuggestSkylight)

	app.Post("/height/minimum", h.MinimumHeight)

	app.Post("/locks/protection", h.Protection)
	app.Post("/locks/check", h.CheckLock)
	app.Post("/locks/safe-dimensions", h.SafeDimensions)

	app.Post("/layout/validate", h.ValidateLayout)
	app.Post("/layout/optimize", h.OptimizeLayout)
	app.Get("/layout/default", h.DefaultLayout)

	return app
}

func requestLogger() fiber.Handler {
	return logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	})
}

// LivenessProbe reports that the process is up.
func LivenessProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "alive"})
}

// ReadinessProbe reports that the service can take requests.
func ReadinessProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ready"})
}
