package domain

import "time"

// WorkOrderStatus enumerates execution states for work orders.
type WorkOrderStatus string

const (
	WorkOrderCreated    WorkOrderStatus = "CREATED"
	WorkOrderScheduled  WorkOrderStatus = "SCHEDULED"
	WorkOrderInProgress WorkOrderStatus = "IN_PROGRESS"
	WorkOrderPaused     WorkOrderStatus = "PAUSED"
	WorkOrderCompleted  WorkOrderStatus = "COMPLETED"
	WorkOrderCancelled  WorkOrderStatus = "CANCELLED"
)

// QualityCheck records the post-completion inspection outcome.
type QualityCheck string

const (
	QualityPending QualityCheck = "PENDING"
	QualityPassed  QualityCheck = "PASSED"
	QualityFailed  QualityCheck = "FAILED"
)

// Material is a consumable or part required by a work order.
type Material struct {
	Name         string
	Quantity     int
	UnitCost     float64
	CurrentStock int
	MinimumStock int
}

// NeedsReorder reports whether stock has fallen to or below the minimum.
func (m Material) NeedsReorder() bool {
	return m.CurrentStock <= m.MinimumStock
}

// TotalCost is the line cost for the required quantity.
func (m Material) TotalCost() float64 {
	return float64(m.Quantity) * m.UnitCost
}

// WorkOrder is the derived execution record for an issue-staff pairing.
type WorkOrder struct {
	ID               string
	IssueID          string
	StaffID          string
	Priority         IssuePriority
	Status           WorkOrderStatus
	ScheduledStart   time.Time
	ActualStart      *time.Time
	EstimatedMinutes int
	ActualMinutes    int
	Materials        []Material
	Cost             float64
	Quality          QualityCheck
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// EstimatedDuration returns the planned duration.
func (w *WorkOrder) EstimatedDuration() time.Duration {
	return time.Duration(w.EstimatedMinutes) * time.Minute
}

// ProjectedFinish is the scheduled start plus the estimated duration.
func (w *WorkOrder) ProjectedFinish() time.Time {
	return w.ScheduledStart.Add(w.EstimatedDuration())
}

// MaterialCost sums line costs across required materials.
func (w *WorkOrder) MaterialCost() float64 {
	var total float64
	for _, m := range w.Materials {
		total += m.TotalCost()
	}
	return total
}
