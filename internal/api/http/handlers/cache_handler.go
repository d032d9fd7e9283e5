package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/maintenance-engine/internal/service"
)

// CacheHandler exposes engine cache maintenance endpoints.
type CacheHandler struct {
	service *service.MaintenanceService
}

// NewCacheHandler returns a new handler instance.
func NewCacheHandler(svc *service.MaintenanceService) *CacheHandler {
	return &CacheHandler{service: svc}
}

// Clear drops all engine caches.
func (h *CacheHandler) Clear(c *fiber.Ctx) error {
	h.service.ClearCaches(c.UserContext())
	return c.JSON(fiber.Map{"data": fiber.Map{"cleared": true}})
}

// Warm rebuilds engine caches from durable storage.
func (h *CacheHandler) Warm(c *fiber.Ctx) error {
	if err := h.service.WarmCaches(c.UserContext()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"warmed": true}})
}
