package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/maintenance-engine/internal/api/dto"
	"github.com/spec-kit/maintenance-engine/internal/service"
)

// AnalyticsHandler exposes forecasting, reporting and scheduling endpoints.
type AnalyticsHandler struct {
	service    *service.MaintenanceService
	facilityID string
}

// NewAnalyticsHandler returns a new handler instance.
func NewAnalyticsHandler(svc *service.MaintenanceService, facilityID string) *AnalyticsHandler {
	return &AnalyticsHandler{service: svc, facilityID: facilityID}
}

// Forecast projects maintenance load over a horizon. The horizon defaults to
// the configured value and can be overridden with ?horizon_days=N.
func (h *AnalyticsHandler) Forecast(c *fiber.Ctx) error {
	horizonDays := 0
	if raw := c.Query("horizon_days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err == nil && parsed > 0 {
			horizonDays = parsed
		}
	}
	result := h.service.Forecast(h.facilityID, horizonDays)
	return c.JSON(fiber.Map{"data": dto.NewForecastResponse(result)})
}

// Report returns the facility analytics snapshot.
func (h *AnalyticsHandler) Report(c *fiber.Ctx) error {
	snapshot := h.service.Analytics(c.UserContext(), h.facilityID)
	return c.JSON(fiber.Map{"data": snapshot})
}

// ScheduleWorkOrders distributes open work orders across the roster.
func (h *AnalyticsHandler) ScheduleWorkOrders(c *fiber.Ctx) error {
	schedules, err := h.service.ScheduleWorkOrders(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"schedules": dto.NewScheduleResponse(schedules)}})
}
