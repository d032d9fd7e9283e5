package domain

import "time"

// SLAPolicy holds per-priority timing windows.
type SLAPolicy struct {
	AcknowledgeWithin time.Duration
	ResolveWithin     time.Duration
	EscalationAfter   time.Duration
}

// SLAConfig maps priorities to their timing policy.
type SLAConfig struct {
	Policies map[IssuePriority]SLAPolicy
}

// DefaultSLAConfig returns the standard facility policy set.
func DefaultSLAConfig() SLAConfig {
	return SLAConfig{Policies: map[IssuePriority]SLAPolicy{
		PriorityCritical: {
			AcknowledgeWithin: 15 * time.Minute,
			ResolveWithin:     time.Hour,
			EscalationAfter:   time.Hour,
		},
		PriorityHigh: {
			AcknowledgeWithin: time.Hour,
			ResolveWithin:     4 * time.Hour,
			EscalationAfter:   4 * time.Hour,
		},
		PriorityMedium: {
			AcknowledgeWithin: 4 * time.Hour,
			ResolveWithin:     24 * time.Hour,
			EscalationAfter:   24 * time.Hour,
		},
		PriorityLow: {
			AcknowledgeWithin: 24 * time.Hour,
			ResolveWithin:     72 * time.Hour,
			EscalationAfter:   72 * time.Hour,
		},
	}}
}

// Deadline computes the resolution deadline for an issue created at the given
// time. Computed once at classification; only explicit escalation changes it.
func (c SLAConfig) Deadline(priority IssuePriority, createdAt time.Time) time.Time {
	policy, ok := c.Policies[priority]
	if !ok {
		policy = c.Policies[PriorityMedium]
	}
	return createdAt.Add(policy.ResolveWithin)
}

// EscalationRecord is an append-only audit entry for an escalation step.
type EscalationRecord struct {
	IssueID    string
	FromLevel  EscalationLevel
	ToLevel    EscalationLevel
	Reason     string
	EscalatedAt time.Time
}

// NextEscalationLevel returns the level above the given one. MANAGEMENT is the
// ceiling.
func NextEscalationLevel(l EscalationLevel) EscalationLevel {
	switch l {
	case EscalationNone:
		return EscalationL2
	case EscalationL2:
		return EscalationL3
	default:
		return EscalationManagement
	}
}
