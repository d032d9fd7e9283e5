package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPriorityScore(t *testing.T) {
	t.Run("severity and urgency dominate impact", func(t *testing.T) {
		issue := &Issue{Severity: SeverityCritical, Urgency: UrgencyImmediate, Impact: ImpactSingleRoom}
		assert.InDelta(t, 10*0.4+10*0.4+2*0.2, issue.PriorityScore(), 0.001)
	})

	t.Run("low everything scores low", func(t *testing.T) {
		issue := &Issue{Severity: SeverityLow, Urgency: UrgencyLow, Impact: ImpactSingleRoom}
		assert.InDelta(t, 2.0, issue.PriorityScore(), 0.001)
	})

	t.Run("impact breaks ties", func(t *testing.T) {
		narrow := &Issue{Severity: SeverityHigh, Urgency: UrgencyHigh, Impact: ImpactSingleRoom}
		wide := &Issue{Severity: SeverityHigh, Urgency: UrgencyHigh, Impact: ImpactCampus}
		assert.Greater(t, wide.PriorityScore(), narrow.PriorityScore())
	})
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		name    string
		from    IssueStatus
		to      IssueStatus
		allowed bool
	}{
		{"reported to acknowledged", IssueStatusReported, IssueStatusAcknowledged, true},
		{"reported straight to in progress", IssueStatusReported, IssueStatusInProgress, false},
		{"acknowledged to assigned", IssueStatusAcknowledged, IssueStatusAssigned, true},
		{"assigned to in progress", IssueStatusAssigned, IssueStatusInProgress, true},
		{"in progress to on hold", IssueStatusInProgress, IssueStatusOnHold, true},
		{"on hold back to in progress", IssueStatusOnHold, IssueStatusInProgress, true},
		{"in progress to pending parts", IssueStatusInProgress, IssueStatusPendingParts, true},
		{"pending parts back to in progress", IssueStatusPendingParts, IssueStatusInProgress, true},
		{"in progress to resolved", IssueStatusInProgress, IssueStatusResolved, true},
		{"resolved to closed", IssueStatusResolved, IssueStatusClosed, true},
		{"resolved back to in progress", IssueStatusResolved, IssueStatusInProgress, false},
		{"cancel from reported", IssueStatusReported, IssueStatusCancelled, true},
		{"cancel from on hold", IssueStatusOnHold, IssueStatusCancelled, true},
		{"closed is terminal", IssueStatusClosed, IssueStatusReported, false},
		{"cancelled is terminal", IssueStatusCancelled, IssueStatusAcknowledged, false},
		{"no cancelling the cancelled", IssueStatusCancelled, IssueStatusCancelled, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransition(tc.to))
		})
	}
}

func TestIsSLAOverdue(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("no deadline never overdue", func(t *testing.T) {
		issue := &Issue{Status: IssueStatusReported}
		assert.False(t, issue.IsSLAOverdue(now))
	})

	t.Run("past deadline on open issue", func(t *testing.T) {
		deadline := now.Add(-time.Minute)
		issue := &Issue{Status: IssueStatusInProgress, SLADeadline: &deadline}
		assert.True(t, issue.IsSLAOverdue(now))
	})

	t.Run("resolved issue is settled", func(t *testing.T) {
		deadline := now.Add(-time.Hour)
		issue := &Issue{Status: IssueStatusResolved, SLADeadline: &deadline}
		assert.False(t, issue.IsSLAOverdue(now))
	})

	t.Run("future deadline", func(t *testing.T) {
		deadline := now.Add(time.Hour)
		issue := &Issue{Status: IssueStatusReported, SLADeadline: &deadline}
		assert.False(t, issue.IsSLAOverdue(now))
	})
}

func TestRequiresEscalation(t *testing.T) {
	cfg := DefaultSLAConfig()
	created := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("critical crosses threshold after an hour", func(t *testing.T) {
		issue := &Issue{Priority: PriorityCritical, Status: IssueStatusInProgress, CreatedAt: created}
		assert.False(t, issue.RequiresEscalation(created.Add(30*time.Minute), cfg))
		assert.True(t, issue.RequiresEscalation(created.Add(time.Hour), cfg))
	})

	t.Run("low priority waits three days", func(t *testing.T) {
		issue := &Issue{Priority: PriorityLow, Status: IssueStatusReported, CreatedAt: created}
		assert.False(t, issue.RequiresEscalation(created.Add(48*time.Hour), cfg))
		assert.True(t, issue.RequiresEscalation(created.Add(72*time.Hour), cfg))
	})

	t.Run("settled issues never escalate", func(t *testing.T) {
		issue := &Issue{Priority: PriorityCritical, Status: IssueStatusResolved, CreatedAt: created}
		assert.False(t, issue.RequiresEscalation(created.Add(48*time.Hour), cfg))
	})
}

func TestSLADeadlines(t *testing.T) {
	cfg := DefaultSLAConfig()
	created := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("windows shrink with priority", func(t *testing.T) {
		critical := cfg.Deadline(PriorityCritical, created)
		high := cfg.Deadline(PriorityHigh, created)
		medium := cfg.Deadline(PriorityMedium, created)
		low := cfg.Deadline(PriorityLow, created)

		assert.Equal(t, created.Add(time.Hour), critical)
		assert.Equal(t, created.Add(4*time.Hour), high)
		assert.Equal(t, created.Add(24*time.Hour), medium)
		assert.Equal(t, created.Add(72*time.Hour), low)
	})

	t.Run("unknown priority falls back to medium", func(t *testing.T) {
		assert.Equal(t, created.Add(24*time.Hour), cfg.Deadline(IssuePriority("WEIRD"), created))
	})
}

func TestNextEscalationLevel(t *testing.T) {
	assert.Equal(t, EscalationL2, NextEscalationLevel(EscalationNone))
	assert.Equal(t, EscalationL3, NextEscalationLevel(EscalationL2))
	assert.Equal(t, EscalationManagement, NextEscalationLevel(EscalationL3))
	assert.Equal(t, EscalationManagement, NextEscalationLevel(EscalationManagement))
}
