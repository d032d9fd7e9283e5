package assignment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/maintenance-engine/internal/domain"
)

func order(id string, priority domain.IssuePriority, start time.Time, minutes int) *domain.WorkOrder {
	return &domain.WorkOrder{
		ID:               id,
		Priority:         priority,
		ScheduledStart:   start,
		EstimatedMinutes: minutes,
	}
}

func TestOptimizeScheduleBalancesLoad(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	orders := []*domain.WorkOrder{
		order("a", domain.PriorityHigh, start, 120),
		order("b", domain.PriorityHigh, start.Add(time.Hour), 120),
		order("c", domain.PriorityHigh, start.Add(2*time.Hour), 120),
		order("d", domain.PriorityHigh, start.Add(3*time.Hour), 120),
	}
	staff := []*domain.MaintenanceStaff{
		{ID: "s1"},
		{ID: "s2"},
	}

	schedules := OptimizeSchedule(orders, staff)

	require.Len(t, schedules, 2)
	assert.Len(t, schedules["s1"], 2)
	assert.Len(t, schedules["s2"], 2)
}

func TestOptimizeScheduleCriticalGoesToIdleStaff(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	long := order("long", domain.PriorityCritical, start, 480)
	short := order("short", domain.PriorityLow, start, 30)
	staff := []*domain.MaintenanceStaff{{ID: "s1"}, {ID: "s2"}}

	schedules := OptimizeSchedule([]*domain.WorkOrder{short, long}, staff)

	// The critical order is placed first, onto an empty schedule; the low one
	// then lands on the other technician rather than queuing behind it.
	var longOwner, shortOwner string
	for id, list := range schedules {
		for _, o := range list {
			if o.ID == "long" {
				longOwner = id
			}
			if o.ID == "short" {
				shortOwner = id
			}
		}
	}
	require.NotEmpty(t, longOwner)
	require.NotEmpty(t, shortOwner)
	assert.NotEqual(t, longOwner, shortOwner)
}

func TestOptimizeSchedulePerStaffOrderedByStart(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	orders := []*domain.WorkOrder{
		order("late", domain.PriorityLow, start.Add(4*time.Hour), 60),
		order("early", domain.PriorityHigh, start, 60),
	}
	staff := []*domain.MaintenanceStaff{{ID: "solo"}}

	schedules := OptimizeSchedule(orders, staff)
	list := schedules["solo"]
	require.Len(t, list, 2)
	assert.Equal(t, "early", list[0].ID)
	assert.Equal(t, "late", list[1].ID)
}

func TestOptimizeScheduleNoStaff(t *testing.T) {
	schedules := OptimizeSchedule([]*domain.WorkOrder{order("a", domain.PriorityHigh, time.Now(), 60)}, nil)
	assert.Empty(t, schedules)
}
