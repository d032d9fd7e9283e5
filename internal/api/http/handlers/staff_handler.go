package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/maintenance-engine/internal/api/dto"
	"github.com/spec-kit/maintenance-engine/internal/domain"
	"github.com/spec-kit/maintenance-engine/internal/service"
	apperrors "github.com/spec-kit/maintenance-engine/pkg/util"
)

// StaffHandler exposes technician roster endpoints.
type StaffHandler struct {
	service *service.MaintenanceService
}

// NewStaffHandler returns a new handler instance.
func NewStaffHandler(svc *service.MaintenanceService) *StaffHandler {
	return &StaffHandler{service: svc}
}

// Register adds a technician to the roster.
func (h *StaffHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if req.Name == "" {
		return apperrors.NewValidationError("name is required", nil)
	}

	member := &domain.MaintenanceStaff{
		Name:                req.Name,
		Specializations:     req.Specializations,
		SkillLevel:          req.SkillLevel,
		ExperienceYears:     req.ExperienceYears,
		MaxConcurrentIssues: req.MaxConcurrentIssues,
		PerformanceRating:   req.PerformanceRating,
		Location:            req.Location,
	}
	if err := h.service.RegisterStaff(c.UserContext(), member); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewStaffResponse(member)})
}
