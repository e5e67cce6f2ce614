package api

import (
	"os"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(app *fiber.App, handler *Handler) {
	app.Use(RequestID())
	app.Use(ErrorHandler())

	// Health checks and metrics stay outside the rate limiter.
	app.Get("/health", handler.HealthCheck)
	app.Get("/ready", handler.ReadinessCheck)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/swagger/*", swagger.HandlerDefault)

	v1 := app.Group("/api/v1")
	v1.Use(RateLimiter())
	v1.Use(PrometheusMiddleware())

	reports := v1.Group("/reports")
	reports.Post("/", handler.CreateReport)
	reports.Get("/:checksum", handler.GetReport)

	admin := v1.Group("/admin")
	admin.Use(AdminAuth())
	admin.Delete("/cache/:pattern", handler.InvalidateCache)
	admin.Get("/stats", handler.GetSystemStats)
}

func AdminAuth() fiber.Handler {
	token := os.Getenv("ADMIN_TOKEN")

	return func(c *fiber.Ctx) error {
		if token == "" || c.Get("Authorization") != "Bearer "+token {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}
		return c.Next()
	}
}
