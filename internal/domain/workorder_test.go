package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMaterialNeedsReorder(t *testing.T) {
	cases := []struct {
		name    string
		current int
		minimum int
		reorder bool
	}{
		{"above minimum", 10, 3, false},
		{"at minimum", 3, 3, true},
		{"below minimum", 1, 3, true},
		{"zero stock", 0, 0, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := Material{CurrentStock: tc.current, MinimumStock: tc.minimum}
			assert.Equal(t, tc.reorder, m.NeedsReorder())
		})
	}
}

func TestWorkOrderCosts(t *testing.T) {
	order := &WorkOrder{
		Materials: []Material{
			{Name: "breaker", Quantity: 2, UnitCost: 15},
			{Name: "cable", Quantity: 10, UnitCost: 1.5},
		},
	}
	assert.InDelta(t, 45.0, order.MaterialCost(), 0.001)
}

func TestWorkOrderProjectedFinish(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	order := &WorkOrder{ScheduledStart: start, EstimatedMinutes: 90}
	assert.Equal(t, start.Add(90*time.Minute), order.ProjectedFinish())
}
