package queue

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/maintenance-engine/internal/domain"
)

var fixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func makeIssue(id string, severity domain.IssueSeverity, urgency domain.IssueUrgency, impact domain.IssueImpact) *domain.Issue {
	return &domain.Issue{
		ID:        id,
		Severity:  severity,
		Urgency:   urgency,
		Impact:    impact,
		Status:    domain.IssueStatusReported,
		CreatedAt: fixedNow,
	}
}

func TestDequeueOrder(t *testing.T) {
	q := NewIssueQueueAt(fixedClock)

	low := makeIssue("low", domain.SeverityLow, domain.UrgencyLow, domain.ImpactSingleRoom)
	critical := makeIssue("critical", domain.SeverityCritical, domain.UrgencyImmediate, domain.ImpactCampus)
	high := makeIssue("high", domain.SeverityHigh, domain.UrgencyHigh, domain.ImpactFloor)

	q.Enqueue(low)
	q.Enqueue(critical)
	q.Enqueue(high)

	assert.Equal(t, "critical", q.Dequeue().ID)
	assert.Equal(t, "high", q.Dequeue().ID)
	assert.Equal(t, "low", q.Dequeue().ID)
	assert.Nil(t, q.Dequeue())
}

func TestPeekDoesNotRemove(t *testing.T) {
	q := NewIssueQueueAt(fixedClock)
	assert.Nil(t, q.Peek())

	q.Enqueue(makeIssue("a", domain.SeverityMedium, domain.UrgencyMedium, domain.ImpactFloor))
	assert.Equal(t, "a", q.Peek().ID)
	assert.Equal(t, 1, q.Len())
}

func TestAgeBonus(t *testing.T) {
	t.Run("old issues outrank equal fresh ones", func(t *testing.T) {
		fresh := makeIssue("fresh", domain.SeverityMedium, domain.UrgencyMedium, domain.ImpactFloor)
		stale := makeIssue("stale", domain.SeverityMedium, domain.UrgencyMedium, domain.ImpactFloor)
		stale.CreatedAt = fixedNow.Add(-10 * time.Hour)

		assert.Greater(t, Score(stale, fixedNow), Score(fresh, fixedNow))
	})

	t.Run("bonus caps at two points", func(t *testing.T) {
		ancient := makeIssue("ancient", domain.SeverityMedium, domain.UrgencyMedium, domain.ImpactFloor)
		ancient.CreatedAt = fixedNow.Add(-1000 * time.Hour)

		base := ancient.PriorityScore()
		assert.InDelta(t, base+2.0, Score(ancient, fixedNow), 0.001)
	})
}

func TestSLABoost(t *testing.T) {
	relaxed := makeIssue("relaxed", domain.SeverityMedium, domain.UrgencyMedium, domain.ImpactFloor)
	farDeadline := fixedNow.Add(10 * time.Hour)
	relaxed.SLADeadline = &farDeadline

	pressed := makeIssue("pressed", domain.SeverityMedium, domain.UrgencyMedium, domain.ImpactFloor)
	nearDeadline := fixedNow.Add(time.Hour)
	pressed.SLADeadline = &nearDeadline

	assert.InDelta(t, Score(relaxed, fixedNow)+5.0, Score(pressed, fixedNow), 0.001)
}

func TestEscalationBoost(t *testing.T) {
	plain := makeIssue("plain", domain.SeverityMedium, domain.UrgencyMedium, domain.ImpactFloor)
	raised := makeIssue("raised", domain.SeverityMedium, domain.UrgencyMedium, domain.ImpactFloor)
	raised.Escalation = domain.EscalationManagement

	assert.InDelta(t, Score(plain, fixedNow)+10.0, Score(raised, fixedNow), 0.001)
}

func TestRemove(t *testing.T) {
	q := NewIssueQueueAt(fixedClock)
	q.Enqueue(makeIssue("a", domain.SeverityCritical, domain.UrgencyImmediate, domain.ImpactCampus))
	q.Enqueue(makeIssue("b", domain.SeverityHigh, domain.UrgencyHigh, domain.ImpactFloor))
	q.Enqueue(makeIssue("c", domain.SeverityLow, domain.UrgencyLow, domain.ImpactSingleRoom))

	assert.True(t, q.Remove("b"))
	assert.False(t, q.Remove("b"))
	assert.Equal(t, 2, q.Len())

	assert.Equal(t, "a", q.Dequeue().ID)
	assert.Equal(t, "c", q.Dequeue().ID)
}

func TestUpdatePriority(t *testing.T) {
	q := NewIssueQueueAt(fixedClock)
	a := makeIssue("a", domain.SeverityCritical, domain.UrgencyImmediate, domain.ImpactCampus)
	b := makeIssue("b", domain.SeverityLow, domain.UrgencyLow, domain.ImpactSingleRoom)
	q.Enqueue(a)
	q.Enqueue(b)

	require.Equal(t, "a", q.Peek().ID)

	b.Severity = domain.SeverityCritical
	b.Urgency = domain.UrgencyImmediate
	b.Impact = domain.ImpactCampus
	b.Escalation = domain.EscalationManagement
	assert.True(t, q.UpdatePriority("b", b))

	assert.Equal(t, "b", q.Peek().ID)
	assert.False(t, q.UpdatePriority("missing", a))
}

func TestSnapshotOrderedAndNonDestructive(t *testing.T) {
	q := NewIssueQueueAt(fixedClock)
	q.Enqueue(makeIssue("low", domain.SeverityLow, domain.UrgencyLow, domain.ImpactSingleRoom))
	q.Enqueue(makeIssue("critical", domain.SeverityCritical, domain.UrgencyImmediate, domain.ImpactCampus))
	q.Enqueue(makeIssue("high", domain.SeverityHigh, domain.UrgencyHigh, domain.ImpactFloor))

	snapshot := q.Snapshot()
	require.Len(t, snapshot, 3)
	assert.Equal(t, "critical", snapshot[0].ID)
	assert.Equal(t, "high", snapshot[1].ID)
	assert.Equal(t, "low", snapshot[2].ID)
	assert.Equal(t, 3, q.Len())
}

// Heap invariant holds through a mixed op sequence: every parent's score is
// at least its children's.
func TestHeapInvariant(t *testing.T) {
	q := NewIssueQueueAt(fixedClock)

	severities := []domain.IssueSeverity{
		domain.SeverityLow, domain.SeverityCritical, domain.SeverityMedium,
		domain.SeverityHigh, domain.SeverityMedium, domain.SeverityCritical,
		domain.SeverityLow, domain.SeverityHigh,
	}
	for i, sev := range severities {
		q.Enqueue(makeIssue(fmt.Sprintf("i%d", i), sev, domain.UrgencyMedium, domain.ImpactFloor))
	}
	q.Remove("i3")
	q.Dequeue()
	q.Remove("i0")
	q.Enqueue(makeIssue("late", domain.SeverityCritical, domain.UrgencyImmediate, domain.ImpactCampus))

	assertHeapInvariant(t, q)

	var last float64 = 1e9
	for q.Len() > 0 {
		issue := q.Dequeue()
		score := Score(issue, fixedNow)
		assert.LessOrEqual(t, score, last)
		last = score
	}
}

func assertHeapInvariant(t *testing.T, q *IssueQueue) {
	t.Helper()
	for i := range q.heap {
		left, right := 2*i+1, 2*i+2
		if left < len(q.heap) {
			assert.GreaterOrEqual(t, q.heap[i].score, q.heap[left].score)
		}
		if right < len(q.heap) {
			assert.GreaterOrEqual(t, q.heap[i].score, q.heap[right].score)
		}
	}
}
