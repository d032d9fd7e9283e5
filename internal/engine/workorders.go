package engine

import (
	"context"

	"github.com/spec-kit/maintenance-engine/internal/assignment"
	"github.com/spec-kit/maintenance-engine/internal/domain"
	"github.com/spec-kit/maintenance-engine/internal/events"
)

// ScheduleWorkOrders distributes the cached open work orders across the
// cached roster with the earliest-finish-time heuristic and emits a
// scheduling event per order. The caches themselves are not mutated; the
// caller persists the returned schedules.
func (e *Engine) ScheduleWorkOrders(ctx context.Context) map[string][]*domain.WorkOrder {
	e.mu.Lock()
	open := make([]*domain.WorkOrder, 0, len(e.workOrders))
	for _, order := range e.workOrders {
		if order.Status == domain.WorkOrderCreated || order.Status == domain.WorkOrderScheduled {
			open = append(open, order)
		}
	}
	roster := make([]*domain.MaintenanceStaff, 0, len(e.staff))
	for _, member := range e.staff {
		roster = append(roster, member)
	}
	e.mu.Unlock()

	schedules := assignment.OptimizeSchedule(open, roster)

	for staffID, orders := range schedules {
		for _, order := range orders {
			e.publish(ctx, events.EventWorkOrderScheduled, order.IssueID, events.WorkOrderScheduledPayload{
				WorkOrderID:    order.ID,
				StaffID:        staffID,
				ScheduledStart: order.ScheduledStart,
			})
		}
	}
	return schedules
}
