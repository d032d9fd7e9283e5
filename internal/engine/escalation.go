package engine

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/maintenance-engine/internal/domain"
	"github.com/spec-kit/maintenance-engine/internal/events"
	apperrors "github.com/spec-kit/maintenance-engine/pkg/util"
)

// CheckEscalations returns the open issues whose age has crossed their
// priority's escalation threshold. This is an on-demand query; nothing is
// escalated automatically.
func (e *Engine) CheckEscalations() []*domain.Issue {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	var due []*domain.Issue
	for _, issue := range e.issues {
		if issue.RequiresEscalation(now, e.sla) {
			due = append(due, issue)
		}
	}
	return due
}

// EscalateIssue raises the issue one escalation level, appends the audit
// record, recomputes the SLA deadline from now and rescores the queue entry.
// This is the only path that changes an SLA deadline after classification.
func (e *Engine) EscalateIssue(ctx context.Context, issueID, reason string) (*domain.Issue, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	issue, ok := e.issues[issueID]
	if !ok {
		return nil, apperrors.NewNotFound("issue", map[string]any{"issue_id": issueID})
	}
	if issue.Status.IsTerminal() || issue.Status == domain.IssueStatusResolved {
		return nil, apperrors.NewConflict("cannot escalate settled issue", map[string]any{
			"issue_id": issueID,
			"status":   string(issue.Status),
		})
	}
	if issue.Escalation == domain.EscalationManagement {
		return nil, apperrors.NewConflict("issue already at management level", map[string]any{
			"issue_id": issueID,
		})
	}

	now := e.now()
	from := issue.Escalation
	to := domain.NextEscalationLevel(from)
	issue.Escalation = to
	issue.EscalationLog = append(issue.EscalationLog, domain.EscalationRecord{
		IssueID:     issueID,
		FromLevel:   from,
		ToLevel:     to,
		Reason:      reason,
		EscalatedAt: now,
	})
	deadline := e.sla.Deadline(issue.Priority, now)
	issue.SLADeadline = &deadline
	issue.UpdatedAt = now

	e.queue.UpdatePriority(issueID, issue)
	e.metrics.RecordEscalation()
	e.logger.Warn("issue escalated",
		zap.String("issue_id", issueID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
		zap.String("reason", reason))

	e.publish(ctx, events.EventIssueEscalated, issueID, events.IssueEscalatedPayload{
		FromLevel: from,
		ToLevel:   to,
		Reason:    reason,
	})
	return issue, nil
}
