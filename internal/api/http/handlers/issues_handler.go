package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/maintenance-engine/internal/api/dto"
	"github.com/spec-kit/maintenance-engine/internal/service"
	apperrors "github.com/spec-kit/maintenance-engine/pkg/util"
)

// IssuesHandler exposes issue reporting, triage and lifecycle endpoints.
type IssuesHandler struct {
	service *service.MaintenanceService
}

// NewIssuesHandler returns a new handler instance.
func NewIssuesHandler(svc *service.MaintenanceService) *IssuesHandler {
	return &IssuesHandler{service: svc}
}

// Report triages and registers a new maintenance issue.
func (h *IssuesHandler) Report(c *fiber.Ctx) error {
	var req dto.ReportIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if req.Title == "" || req.ReporterID == "" || req.Category == "" {
		return apperrors.NewValidationError("title, reporter_id and category are required", nil)
	}

	issue, verdict, err := h.service.ReportIssue(c.UserContext(), service.IssueCreateInput{
		ReporterID:    req.ReporterID,
		Hostel:        req.Hostel,
		Room:          req.Room,
		Floor:         req.Floor,
		Category:      req.Category,
		Title:         req.Title,
		Description:   req.Description,
		AffectedUsers: req.AffectedUsers,
		EstimatedCost: req.EstimatedCost,
		Recurring:     req.Recurring,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": fiber.Map{
		"issue":          dto.NewIssueResponse(issue),
		"classification": dto.NewClassificationResponse(verdict),
	}})
}

// Get returns a single issue by ID.
func (h *IssuesHandler) Get(c *fiber.Ctx) error {
	issue, err := h.service.Issue(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewIssueResponse(issue)})
}

// Next pops the highest-priority issue from the queue.
func (h *IssuesHandler) Next(c *fiber.Ctx) error {
	issue := h.service.NextIssue(c.UserContext())
	if issue == nil {
		return c.JSON(fiber.Map{"data": nil})
	}
	return c.JSON(fiber.Map{"data": dto.NewIssueResponse(issue)})
}

// Queue returns a priority-ordered snapshot of pending issues.
func (h *IssuesHandler) Queue(c *fiber.Ctx) error {
	snapshot := h.service.QueueSnapshot()
	out := make([]dto.IssueResponse, 0, len(snapshot))
	for _, issue := range snapshot {
		out = append(out, dto.NewIssueResponse(issue))
	}
	return c.JSON(fiber.Map{"data": out})
}

// Assign runs the assignment optimizer over the requested issues.
func (h *IssuesHandler) Assign(c *fiber.Ctx) error {
	var req dto.AssignIssuesRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if len(req.IssueIDs) == 0 {
		return apperrors.NewValidationError("issue_ids is required", nil)
	}

	bindings, err := h.service.AssignIssues(c.UserContext(), req.IssueIDs)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"assignments": bindings}})
}

// UpdateStatus applies a lifecycle transition.
func (h *IssuesHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if req.Status == "" {
		return apperrors.NewValidationError("status is required", nil)
	}

	issue, err := h.service.UpdateStatus(c.UserContext(), c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewIssueResponse(issue)})
}

// Escalate raises an issue one escalation level.
func (h *IssuesHandler) Escalate(c *fiber.Ctx) error {
	var req dto.EscalateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}

	issue, err := h.service.Escalate(c.UserContext(), c.Params("id"), req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewIssueResponse(issue)})
}

// EscalationsDue lists open issues past their escalation threshold.
func (h *IssuesHandler) EscalationsDue(c *fiber.Ctx) error {
	due := h.service.EscalationsDue()
	out := make([]dto.IssueResponse, 0, len(due))
	for _, issue := range due {
		out = append(out, dto.NewIssueResponse(issue))
	}
	return c.JSON(fiber.Map{"data": out})
}
