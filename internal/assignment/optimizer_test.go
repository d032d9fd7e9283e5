package assignment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/maintenance-engine/internal/domain"
)

func availableStaff(id string, specializations ...string) *domain.MaintenanceStaff {
	return &domain.MaintenanceStaff{
		ID:                  id,
		Name:                id,
		Specializations:     specializations,
		SkillLevel:          domain.SkillIntermediate,
		Availability:        domain.AvailabilityAvailable,
		MaxConcurrentIssues: 3,
	}
}

func TestAssignMatchesTrades(t *testing.T) {
	plumbing := &domain.Issue{
		ID:             "leak",
		Priority:       domain.PriorityHigh,
		Severity:       domain.SeverityHigh,
		Urgency:        domain.UrgencyHigh,
		Impact:         domain.ImpactFloor,
		RequiredSkills: []string{"plumbing", "pipe-fitting"},
	}
	electrical := &domain.Issue{
		ID:             "sparks",
		Priority:       domain.PriorityHigh,
		Severity:       domain.SeverityHigh,
		Urgency:        domain.UrgencyHigh,
		Impact:         domain.ImpactFloor,
		RequiredSkills: []string{"electrical", "wiring"},
	}

	plumber := availableStaff("plumber", "plumbing")
	electrician := availableStaff("electrician", "electrical")

	bindings := NewOptimizer().Assign(
		[]*domain.Issue{plumbing, electrical},
		[]*domain.MaintenanceStaff{plumber, electrician},
	)

	require.Len(t, bindings, 2)
	assert.Equal(t, "plumber", bindings["leak"])
	assert.Equal(t, "electrician", bindings["sparks"])
}

func TestAssignSkipsUnqualified(t *testing.T) {
	issue := &domain.Issue{
		ID:             "sparks",
		Priority:       domain.PriorityCritical,
		Severity:       domain.SeverityCritical,
		Urgency:        domain.UrgencyImmediate,
		Impact:         domain.ImpactBuilding,
		RequiredSkills: []string{"electrical", "wiring"},
	}
	painter := availableStaff("painter", "painting")

	bindings := NewOptimizer().Assign([]*domain.Issue{issue}, []*domain.MaintenanceStaff{painter})
	assert.Empty(t, bindings)
}

func TestAssignRespectsAvailabilityAndCapacity(t *testing.T) {
	issue := &domain.Issue{
		ID:             "leak",
		Priority:       domain.PriorityHigh,
		RequiredSkills: []string{"plumbing"},
	}

	t.Run("off duty staff are skipped", func(t *testing.T) {
		plumber := availableStaff("plumber", "plumbing")
		plumber.Availability = domain.AvailabilityOffDuty
		bindings := NewOptimizer().Assign([]*domain.Issue{issue}, []*domain.MaintenanceStaff{plumber})
		assert.Empty(t, bindings)
	})

	t.Run("full staff are skipped", func(t *testing.T) {
		plumber := availableStaff("plumber", "plumbing")
		plumber.AssignedIssues = []string{"a", "b", "c"}
		bindings := NewOptimizer().Assign([]*domain.Issue{issue}, []*domain.MaintenanceStaff{plumber})
		assert.Empty(t, bindings)
	})
}

func TestAssignHighestPriorityFirst(t *testing.T) {
	critical := &domain.Issue{
		ID:             "critical",
		Priority:       domain.PriorityCritical,
		Severity:       domain.SeverityCritical,
		Urgency:        domain.UrgencyImmediate,
		Impact:         domain.ImpactBuilding,
		RequiredSkills: []string{"electrical"},
	}
	minor := &domain.Issue{
		ID:             "minor",
		Priority:       domain.PriorityLow,
		Severity:       domain.SeverityLow,
		Urgency:        domain.UrgencyLow,
		Impact:         domain.ImpactSingleRoom,
		RequiredSkills: []string{"electrical"},
	}
	electrician := availableStaff("electrician", "electrical")

	// One technician, two issues: the critical one wins regardless of input order.
	bindings := NewOptimizer().Assign(
		[]*domain.Issue{minor, critical},
		[]*domain.MaintenanceStaff{electrician},
	)

	require.Len(t, bindings, 1)
	assert.Equal(t, "electrician", bindings["critical"])
}

func TestAssignCriticalPrefersSeniors(t *testing.T) {
	issue := &domain.Issue{
		ID:             "outage",
		Priority:       domain.PriorityCritical,
		Severity:       domain.SeverityCritical,
		Urgency:        domain.UrgencyImmediate,
		Impact:         domain.ImpactBuilding,
		RequiredSkills: []string{"electrical"},
	}
	junior := availableStaff("junior", "electrical")
	junior.SkillLevel = domain.SkillJunior
	senior := availableStaff("senior", "electrical")
	senior.SkillLevel = domain.SkillSenior

	bindings := NewOptimizer().Assign([]*domain.Issue{issue}, []*domain.MaintenanceStaff{junior, senior})
	require.Len(t, bindings, 1)
	assert.Equal(t, "senior", bindings["outage"])
}

func TestSkillsMatch(t *testing.T) {
	cases := []struct {
		name            string
		required        []string
		specializations []string
		want            bool
	}{
		{"empty requirement matches anyone", nil, []string{"plumbing"}, true},
		{"general matches anyone", []string{"general"}, nil, true},
		{"exact overlap", []string{"plumbing"}, []string{"plumbing"}, true},
		{"substring overlap", []string{"electrical"}, []string{"electrical-systems"}, true},
		{"case insensitive", []string{"Plumbing"}, []string{"PLUMBING"}, true},
		{"no overlap", []string{"electrical"}, []string{"painting"}, false},
		{"no specializations", []string{"electrical"}, nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SkillsMatch(tc.required, tc.specializations))
		})
	}
}
