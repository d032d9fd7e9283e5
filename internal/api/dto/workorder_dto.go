package dto

import (
	"time"

	"github.com/spec-kit/maintenance-engine/internal/domain"
)

// WorkOrderResponse view.
type WorkOrderResponse struct {
	ID               string                 `json:"id"`
	IssueID          string                 `json:"issue_id"`
	StaffID          string                 `json:"staff_id"`
	Priority         domain.IssuePriority   `json:"priority"`
	Status           domain.WorkOrderStatus `json:"status"`
	ScheduledStart   time.Time              `json:"scheduled_start"`
	EstimatedMinutes int                    `json:"estimated_minutes"`
	ProjectedFinish  time.Time              `json:"projected_finish"`
}

// NewWorkOrderResponse maps a work order.
func NewWorkOrderResponse(order *domain.WorkOrder) WorkOrderResponse {
	return WorkOrderResponse{
		ID:               order.ID,
		IssueID:          order.IssueID,
		StaffID:          order.StaffID,
		Priority:         order.Priority,
		Status:           order.Status,
		ScheduledStart:   order.ScheduledStart,
		EstimatedMinutes: order.EstimatedMinutes,
		ProjectedFinish:  order.ProjectedFinish(),
	}
}

// NewScheduleResponse maps per-staff ordered work queues.
func NewScheduleResponse(schedules map[string][]*domain.WorkOrder) map[string][]WorkOrderResponse {
	out := make(map[string][]WorkOrderResponse, len(schedules))
	for staffID, orders := range schedules {
		views := make([]WorkOrderResponse, 0, len(orders))
		for _, order := range orders {
			views = append(views, NewWorkOrderResponse(order))
		}
		out[staffID] = views
	}
	return out
}
