package queue

import (
	"sort"
	"time"

	"github.com/spec-kit/maintenance-engine/internal/domain"
)

// entry pins an issue together with the score computed at insert/update time.
type entry struct {
	issue *domain.Issue
	score float64
}

// IssueQueue is a binary max-heap over a dynamically recomputed priority
// score. It is a scheduling hint layer over the authoritative issue cache and
// holds no durability guarantee. Not safe for concurrent use; the owning
// engine serializes access.
type IssueQueue struct {
	heap []entry
	now  func() time.Time
}

// NewIssueQueue creates an empty queue.
func NewIssueQueue() *IssueQueue {
	return &IssueQueue{now: time.Now}
}

// NewIssueQueueAt creates a queue with a fixed clock, for deterministic tests.
func NewIssueQueueAt(now func() time.Time) *IssueQueue {
	return &IssueQueue{now: now}
}

// Score computes the scheduling score for an issue at the given instant:
// base priority score, an age bonus capped at 2.0 (0.1 per hour), a +5.0
// boost when the SLA deadline is within two hours, and the escalation boost.
func Score(issue *domain.Issue, now time.Time) float64 {
	score := issue.PriorityScore()

	ageHours := now.Sub(issue.CreatedAt).Hours()
	if ageHours > 0 {
		bonus := ageHours * 0.1
		if bonus > 2.0 {
			bonus = 2.0
		}
		score += bonus
	}

	if issue.SLADeadline != nil {
		until := issue.SLADeadline.Sub(now)
		if until <= 2*time.Hour {
			score += 5.0
		}
	}

	return score + issue.Escalation.QueueBoost()
}

// Len reports the number of enqueued issues.
func (q *IssueQueue) Len() int {
	return len(q.heap)
}

// Enqueue inserts the issue, scoring it fresh, and returns its heap position.
func (q *IssueQueue) Enqueue(issue *domain.Issue) int {
	q.heap = append(q.heap, entry{issue: issue, score: Score(issue, q.now())})
	return q.siftUp(len(q.heap) - 1)
}

// Peek returns the highest-priority issue without removing it.
func (q *IssueQueue) Peek() *domain.Issue {
	if len(q.heap) == 0 {
		return nil
	}
	return q.heap[0].issue
}

// Dequeue removes and returns the highest-priority issue, or nil when empty.
func (q *IssueQueue) Dequeue() *domain.Issue {
	if len(q.heap) == 0 {
		return nil
	}
	top := q.heap[0].issue
	last := len(q.heap) - 1
	q.heap[0] = q.heap[last]
	q.heap = q.heap[:last]
	if len(q.heap) > 0 {
		q.siftDown(0)
	}
	return top
}

// Remove drops the issue with the given identity. Linear scan by design:
// queue sizes stay in the tens to low hundreds.
func (q *IssueQueue) Remove(id string) bool {
	idx := q.indexOf(id)
	if idx < 0 {
		return false
	}
	last := len(q.heap) - 1
	q.heap[idx] = q.heap[last]
	q.heap = q.heap[:last]
	if idx < len(q.heap) {
		// The moved element may violate the invariant in either direction.
		q.siftDown(q.siftUp(idx))
	}
	return true
}

// UpdatePriority rescores the identified issue in place, replacing its
// snapshot with the supplied one, and restores heap order.
func (q *IssueQueue) UpdatePriority(id string, issue *domain.Issue) bool {
	idx := q.indexOf(id)
	if idx < 0 {
		return false
	}
	q.heap[idx] = entry{issue: issue, score: Score(issue, q.now())}
	q.siftDown(q.siftUp(idx))
	return true
}

// Snapshot returns all enqueued issues ordered by descending score. The heap
// itself is not modified.
func (q *IssueQueue) Snapshot() []*domain.Issue {
	entries := append([]entry{}, q.heap...)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].score > entries[j].score
	})
	issues := make([]*domain.Issue, len(entries))
	for i, e := range entries {
		issues[i] = e.issue
	}
	return issues
}

func (q *IssueQueue) indexOf(id string) int {
	for i, e := range q.heap {
		if e.issue.ID == id {
			return i
		}
	}
	return -1
}

func (q *IssueQueue) siftUp(idx int) int {
	for idx > 0 {
		parent := (idx - 1) / 2
		if q.heap[parent].score >= q.heap[idx].score {
			break
		}
		q.heap[parent], q.heap[idx] = q.heap[idx], q.heap[parent]
		idx = parent
	}
	return idx
}

func (q *IssueQueue) siftDown(idx int) {
	n := len(q.heap)
	for {
		largest := idx
		left, right := 2*idx+1, 2*idx+2
		if left < n && q.heap[left].score > q.heap[largest].score {
			largest = left
		}
		if right < n && q.heap[right].score > q.heap[largest].score {
			largest = right
		}
		if largest == idx {
			return
		}
		q.heap[idx], q.heap[largest] = q.heap[largest], q.heap[idx]
		idx = largest
	}
}
