package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/maintenance-engine/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Issues    *handlers.IssuesHandler
	Staff     *handlers.StaffHandler
	Analytics *handlers.AnalyticsHandler
	Cache     *handlers.CacheHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	v1 := app.Group("/api/v1")

	issues := v1.Group("/issues")
	issues.Post("", cfg.Issues.Report)
	issues.Post("/assign", cfg.Issues.Assign)
	issues.Get("/next", cfg.Issues.Next)
	issues.Get("/queue", cfg.Issues.Queue)
	issues.Get("/escalations/due", cfg.Issues.EscalationsDue)
	issues.Get("/:id", cfg.Issues.Get)
	issues.Patch("/:id/status", cfg.Issues.UpdateStatus)
	issues.Post("/:id/escalate", cfg.Issues.Escalate)

	v1.Post("/staff", cfg.Staff.Register)

	v1.Get("/forecast", cfg.Analytics.Forecast)
	v1.Get("/analytics", cfg.Analytics.Report)
	v1.Post("/work-orders/schedule", cfg.Analytics.ScheduleWorkOrders)

	cache := v1.Group("/cache")
	cache.Post("/clear", cfg.Cache.Clear)
	cache.Post("/warm", cfg.Cache.Warm)
}
