package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/maintenance-engine/internal/events"
)

// EscalationWorker listens for escalation and assignment events and surfaces
// them to operators via structured logs. Escalation itself is only ever
// triggered on demand; the worker observes, it never escalates.
type EscalationWorker struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewEscalationWorker creates the worker.
func NewEscalationWorker(dispatcher events.Dispatcher, logger *zap.Logger) *EscalationWorker {
	return &EscalationWorker{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to engine events.
func (w *EscalationWorker) RegisterHandlers() {
	if w.dispatcher == nil {
		return
	}
	w.dispatcher.Subscribe(events.EventIssueEscalated, w.handleEscalated)
	w.dispatcher.Subscribe(events.EventIssueAssigned, w.handleAssigned)
	w.dispatcher.Subscribe(events.EventIssueStatusChanged, w.handleStatusChanged)
}

func (w *EscalationWorker) handleEscalated(ctx context.Context, event events.Event) error {
	w.logger.Warn("IssueEscalated",
		zap.String("issue_id", event.IssueID),
		zap.String("facility_id", event.FacilityID),
		zap.Any("payload", event.Payload))
	return nil
}

func (w *EscalationWorker) handleAssigned(ctx context.Context, event events.Event) error {
	w.logger.Info("IssueAssigned",
		zap.String("issue_id", event.IssueID),
		zap.Any("payload", event.Payload))
	return nil
}

func (w *EscalationWorker) handleStatusChanged(ctx context.Context, event events.Event) error {
	w.logger.Info("IssueStatusChanged",
		zap.String("issue_id", event.IssueID),
		zap.Any("payload", event.Payload))
	return nil
}
