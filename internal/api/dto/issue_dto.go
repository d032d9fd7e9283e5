package dto

import (
	"time"

	"github.com/spec-kit/maintenance-engine/internal/domain"
	"github.com/spec-kit/maintenance-engine/internal/triage"
)

// ReportIssueRequest payload.
type ReportIssueRequest struct {
	ReporterID    string               `json:"reporter_id"`
	Hostel        string               `json:"hostel"`
	Room          string               `json:"room"`
	Floor         int                  `json:"floor"`
	Category      domain.IssueCategory `json:"category"`
	Title         string               `json:"title"`
	Description   string               `json:"description"`
	AffectedUsers []string             `json:"affected_users"`
	EstimatedCost float64              `json:"estimated_cost"`
	Recurring     bool                 `json:"recurring"`
}

// ClassificationResponse is the triage verdict.
type ClassificationResponse struct {
	Priority                 domain.IssuePriority `json:"priority"`
	Severity                 domain.IssueSeverity `json:"severity"`
	Urgency                  domain.IssueUrgency  `json:"urgency"`
	Impact                   domain.IssueImpact   `json:"impact"`
	Confidence               int                  `json:"confidence"`
	RequiredSkills           []string             `json:"required_skills"`
	EstimatedResolutionMinutes int                `json:"estimated_resolution_minutes"`
}

// NewClassificationResponse maps the triage verdict.
func NewClassificationResponse(verdict triage.Classification) ClassificationResponse {
	return ClassificationResponse{
		Priority:                 verdict.Priority,
		Severity:                 verdict.Severity,
		Urgency:                  verdict.Urgency,
		Impact:                   verdict.Impact,
		Confidence:               verdict.Confidence,
		RequiredSkills:           verdict.RequiredSkills,
		EstimatedResolutionMinutes: int(verdict.EstimatedResolution.Minutes()),
	}
}

// IssueResponse is the full issue view.
type IssueResponse struct {
	ID              string                 `json:"id"`
	FacilityID      string                 `json:"facility_id"`
	ReporterID      string                 `json:"reporter_id"`
	Hostel          string                 `json:"hostel"`
	Room            string                 `json:"room"`
	Floor           int                    `json:"floor"`
	Category        domain.IssueCategory   `json:"category"`
	Title           string                 `json:"title"`
	Description     string                 `json:"description"`
	Priority        domain.IssuePriority   `json:"priority"`
	Severity        domain.IssueSeverity   `json:"severity"`
	Urgency         domain.IssueUrgency    `json:"urgency"`
	Impact          domain.IssueImpact     `json:"impact"`
	Status          domain.IssueStatus     `json:"status"`
	AssignedStaffID *string                `json:"assigned_staff_id"`
	RequiredSkills  []string               `json:"required_skills"`
	Escalation      domain.EscalationLevel `json:"escalation"`
	SLADeadline     *time.Time             `json:"sla_deadline"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
	ResolvedAt      *time.Time             `json:"resolved_at"`
}

// NewIssueResponse maps a domain issue.
func NewIssueResponse(issue *domain.Issue) IssueResponse {
	return IssueResponse{
		ID:              issue.ID,
		FacilityID:      issue.FacilityID,
		ReporterID:      issue.ReporterID,
		Hostel:          issue.Location.Hostel,
		Room:            issue.Location.Room,
		Floor:           issue.Location.Floor,
		Category:        issue.Category,
		Title:           issue.Title,
		Description:     issue.Description,
		Priority:        issue.Priority,
		Severity:        issue.Severity,
		Urgency:         issue.Urgency,
		Impact:          issue.Impact,
		Status:          issue.Status,
		AssignedStaffID: issue.AssignedStaffID,
		RequiredSkills:  issue.RequiredSkills,
		Escalation:      issue.Escalation,
		SLADeadline:     issue.SLADeadline,
		CreatedAt:       issue.CreatedAt,
		UpdatedAt:       issue.UpdatedAt,
		ResolvedAt:      issue.ResolvedAt,
	}
}

// AssignIssuesRequest payload.
type AssignIssuesRequest struct {
	IssueIDs []string `json:"issue_ids"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status domain.IssueStatus `json:"status"`
}

// EscalateRequest payload.
type EscalateRequest struct {
	Reason string `json:"reason"`
}
