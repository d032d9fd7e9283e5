package events

import (
	"time"

	"github.com/spec-kit/maintenance-engine/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventIssueClassified    EventType = "issue_classified"
	EventIssueAssigned      EventType = "issue_assigned"
	EventIssueStatusChanged EventType = "issue_status_changed"
	EventIssueEscalated     EventType = "issue_escalated"
	EventWorkOrderScheduled EventType = "work_order_scheduled"
)

// Event represents a domain event emitted by the engine.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	IssueID    string      `json:"issue_id"`
	FacilityID string      `json:"facility_id"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// IssueClassifiedPayload payload.
type IssueClassifiedPayload struct {
	Priority   domain.IssuePriority `json:"priority"`
	Severity   domain.IssueSeverity `json:"severity"`
	Urgency    domain.IssueUrgency  `json:"urgency"`
	Impact     domain.IssueImpact   `json:"impact"`
	Confidence int                  `json:"confidence"`
}

// IssueAssignedPayload payload.
type IssueAssignedPayload struct {
	StaffID string `json:"staff_id"`
}

// IssueStatusChangedPayload payload.
type IssueStatusChangedPayload struct {
	OldStatus domain.IssueStatus `json:"old_status"`
	NewStatus domain.IssueStatus `json:"new_status"`
}

// IssueEscalatedPayload payload.
type IssueEscalatedPayload struct {
	FromLevel domain.EscalationLevel `json:"from_level"`
	ToLevel   domain.EscalationLevel `json:"to_level"`
	Reason    string                 `json:"reason"`
}

// WorkOrderScheduledPayload payload.
type WorkOrderScheduledPayload struct {
	WorkOrderID    string    `json:"work_order_id"`
	StaffID        string    `json:"staff_id"`
	ScheduledStart time.Time `json:"scheduled_start"`
}
