package engine

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/maintenance-engine/internal/assignment"
	"github.com/spec-kit/maintenance-engine/internal/domain"
	"github.com/spec-kit/maintenance-engine/internal/events"
	"github.com/spec-kit/maintenance-engine/internal/forecast"
	"github.com/spec-kit/maintenance-engine/internal/observability"
	"github.com/spec-kit/maintenance-engine/internal/queue"
	"github.com/spec-kit/maintenance-engine/internal/triage"
	apperrors "github.com/spec-kit/maintenance-engine/pkg/util"
)

// Engine is the per-facility triage engine. It owns transient caches of
// issues, staff and work orders plus the scheduling queue; durable storage
// belongs to the persistence layer and the caches are rebuildable from it.
// All mutating operations are serialized through one mutex, so a facility
// behaves as a single logical actor; independent facilities run independently.
type Engine struct {
	mu sync.Mutex

	facilityID string
	classifier *triage.Classifier
	optimizer  *assignment.Optimizer
	analyzer   *forecast.Analyzer
	queue      *queue.IssueQueue
	sla        domain.SLAConfig

	issues     map[string]*domain.Issue
	staff      map[string]*domain.MaintenanceStaff
	workOrders map[string]*domain.WorkOrder

	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
	now        func() time.Time
}

// Dependencies bundles the engine's collaborators.
type Dependencies struct {
	FacilityID string
	Classifier *triage.Classifier
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Metrics    *observability.Metrics
	SLA        *domain.SLAConfig
	Now        func() time.Time
}

// New constructs an engine for one facility.
func New(deps Dependencies) *Engine {
	classifier := deps.Classifier
	if classifier == nil {
		classifier = triage.NewClassifier()
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	sla := domain.DefaultSLAConfig()
	if deps.SLA != nil {
		sla = *deps.SLA
	}
	return &Engine{
		facilityID: deps.FacilityID,
		classifier: classifier,
		optimizer:  assignment.NewOptimizer(),
		analyzer:   forecast.NewAnalyzerAt(now),
		queue:      queue.NewIssueQueueAt(now),
		sla:        sla,
		issues:     make(map[string]*domain.Issue),
		staff:      make(map[string]*domain.MaintenanceStaff),
		workOrders: make(map[string]*domain.WorkOrder),
		dispatcher: deps.Dispatcher,
		logger:     logger,
		metrics:    deps.Metrics,
		now:        now,
	}
}

// SubmitIssue validates and classifies a raw issue, stamps its SLA deadline,
// caches it and enqueues it for scheduling. Classification never fails; bad
// input is rejected before classification.
func (e *Engine) SubmitIssue(ctx context.Context, issue *domain.Issue) (triage.Classification, error) {
	if err := validateIssue(issue); err != nil {
		return triage.Classification{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	if issue.ID == "" {
		issue.ID = uuid.NewString()
	}
	if issue.FacilityID == "" {
		issue.FacilityID = e.facilityID
	}
	if issue.CreatedAt.IsZero() {
		issue.CreatedAt = now
	}
	issue.UpdatedAt = now
	issue.Status = domain.IssueStatusReported
	issue.Escalation = domain.EscalationNone

	verdict := e.classifier.Classify(issue)
	issue.Priority = verdict.Priority
	issue.Severity = verdict.Severity
	issue.Urgency = verdict.Urgency
	issue.Impact = verdict.Impact
	issue.RequiredSkills = verdict.RequiredSkills
	issue.EstimatedMinutes = int(verdict.EstimatedResolution.Minutes())
	deadline := e.sla.Deadline(verdict.Priority, issue.CreatedAt)
	issue.SLADeadline = &deadline

	e.issues[issue.ID] = issue
	e.queue.Enqueue(issue)
	e.metrics.RecordClassification()

	e.logger.Info("issue classified",
		zap.String("issue_id", issue.ID),
		zap.String("priority", string(verdict.Priority)),
		zap.Int("confidence", verdict.Confidence))

	e.publish(ctx, events.EventIssueClassified, issue.ID, events.IssueClassifiedPayload{
		Priority:   verdict.Priority,
		Severity:   verdict.Severity,
		Urgency:    verdict.Urgency,
		Impact:     verdict.Impact,
		Confidence: verdict.Confidence,
	})
	return verdict, nil
}

// AssignIssues runs the optimizer over the identified cached issues and the
// cached roster, then commits the resulting bindings to both caches. The
// commit is all-or-nothing: any unknown identity or capacity violation leaves
// the caches untouched.
func (e *Engine) AssignIssues(ctx context.Context, issueIDs []string) (map[string]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	batch := make([]*domain.Issue, 0, len(issueIDs))
	for _, id := range issueIDs {
		issue, ok := e.issues[id]
		if !ok {
			return nil, apperrors.NewNotFound("issue", map[string]any{"issue_id": id})
		}
		if issue.AssignedStaffID == nil && !issue.Status.IsTerminal() {
			batch = append(batch, issue)
		}
	}

	roster := make([]*domain.MaintenanceStaff, 0, len(e.staff))
	for _, member := range e.staff {
		roster = append(roster, member)
	}

	bindings := e.optimizer.Assign(batch, roster)

	// Validate the whole batch before mutating anything.
	for _, staffID := range bindings {
		member := e.staff[staffID]
		if member == nil {
			return nil, apperrors.NewNotFound("staff", map[string]any{"staff_id": staffID})
		}
		if !member.HasCapacity() {
			return nil, apperrors.NewCapacityExceeded(staffID, member.MaxConcurrentIssues)
		}
	}

	now := e.now()
	for issueID, staffID := range bindings {
		issue := e.issues[issueID]
		member := e.staff[staffID]

		issue.AssignedStaffID = &staffID
		if issue.Status == domain.IssueStatusReported {
			issue.Status = domain.IssueStatusAcknowledged
			ack := now
			issue.AcknowledgedAt = &ack
		}
		if issue.Status == domain.IssueStatusAcknowledged {
			issue.Status = domain.IssueStatusAssigned
		}
		issue.UpdatedAt = now

		member.AssignedIssues = append(member.AssignedIssues, issueID)
		member.UpdatedAt = now
		e.queue.Remove(issueID)

		e.publish(ctx, events.EventIssueAssigned, issueID, events.IssueAssignedPayload{StaffID: staffID})
	}

	e.metrics.RecordAssignments(len(bindings))
	e.logger.Info("assignment batch committed",
		zap.Int("requested", len(issueIDs)),
		zap.Int("assigned", len(bindings)))
	return bindings, nil
}

// NextPriorityIssue dequeues the highest-priority issue, or nil when the
// queue is empty.
func (e *Engine) NextPriorityIssue() *domain.Issue {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.queue.Dequeue()
}

// MaintenanceForecast projects future maintenance load from the resolved
// issues currently cached for the facility.
func (e *Engine) MaintenanceForecast(facilityID string, horizonDays int) forecast.Forecast {
	e.mu.Lock()
	history := make([]*domain.Issue, 0, len(e.issues))
	for _, issue := range e.issues {
		if facilityID == "" || issue.FacilityID == facilityID {
			history = append(history, issue)
		}
	}
	e.mu.Unlock()

	return e.analyzer.Forecast(facilityID, history, horizonDays)
}

// UpdateIssueStatus applies a lifecycle transition, enforcing the state
// machine and SLA bookkeeping.
func (e *Engine) UpdateIssueStatus(ctx context.Context, issueID string, target domain.IssueStatus) (*domain.Issue, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	issue, ok := e.issues[issueID]
	if !ok {
		return nil, apperrors.NewNotFound("issue", map[string]any{"issue_id": issueID})
	}
	old := issue.Status
	if !old.CanTransition(target) {
		return nil, apperrors.NewConflict("invalid status transition", map[string]any{
			"issue_id": issueID,
			"from":     string(old),
			"to":       string(target),
		})
	}

	now := e.now()
	issue.Status = target
	issue.UpdatedAt = now
	switch target {
	case domain.IssueStatusAcknowledged:
		ack := now
		issue.AcknowledgedAt = &ack
	case domain.IssueStatusResolved:
		resolved := now
		issue.ResolvedAt = &resolved
		e.queue.Remove(issueID)
		e.releaseAssignment(issue, now)
	case domain.IssueStatusCancelled:
		e.queue.Remove(issueID)
		e.releaseAssignment(issue, now)
	}

	e.publish(ctx, events.EventIssueStatusChanged, issueID, events.IssueStatusChangedPayload{
		OldStatus: old,
		NewStatus: target,
	})
	return issue, nil
}

func (e *Engine) releaseAssignment(issue *domain.Issue, now time.Time) {
	if issue.AssignedStaffID == nil {
		return
	}
	member, ok := e.staff[*issue.AssignedStaffID]
	if !ok {
		return
	}
	kept := member.AssignedIssues[:0]
	for _, id := range member.AssignedIssues {
		if id != issue.ID {
			kept = append(kept, id)
		}
	}
	member.AssignedIssues = kept
	if issue.Status == domain.IssueStatusResolved {
		member.CompletedIssues++
		minutes := now.Sub(issue.CreatedAt).Minutes()
		n := float64(member.CompletedIssues)
		member.AvgResolutionMinutes = (member.AvgResolutionMinutes*(n-1) + minutes) / n
	}
	member.UpdatedAt = now
}

// UpdateIssueCache upserts an issue supplied by the persistence layer and
// refreshes its queue position when it is still schedulable.
func (e *Engine) UpdateIssueCache(issue *domain.Issue) {
	if issue == nil || issue.ID == "" {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.issues[issue.ID] = issue
	if !e.queue.UpdatePriority(issue.ID, issue) {
		if issue.AssignedStaffID == nil && !issue.Status.IsTerminal() &&
			issue.Status != domain.IssueStatusResolved {
			e.queue.Enqueue(issue)
		}
		return
	}
	if issue.Status.IsTerminal() || issue.Status == domain.IssueStatusResolved {
		e.queue.Remove(issue.ID)
	}
}

// UpdateStaffCache upserts a staff member supplied by the persistence layer.
func (e *Engine) UpdateStaffCache(member *domain.MaintenanceStaff) {
	if member == nil || member.ID == "" {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.staff[member.ID] = member
}

// UpdateWorkOrderCache upserts a work order supplied by the persistence layer.
func (e *Engine) UpdateWorkOrderCache(order *domain.WorkOrder) {
	if order == nil || order.ID == "" {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.workOrders[order.ID] = order
}

// ClearCache drops all cached state and the queue. The persistence layer is
// the source of truth; callers rebuild via the cache-update hooks.
func (e *Engine) ClearCache() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.issues = make(map[string]*domain.Issue)
	e.staff = make(map[string]*domain.MaintenanceStaff)
	e.workOrders = make(map[string]*domain.WorkOrder)
	e.queue = queue.NewIssueQueueAt(e.now)
}

// Issue returns the cached issue by identity.
func (e *Engine) Issue(id string) (*domain.Issue, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	issue, ok := e.issues[id]
	return issue, ok
}

// QueueSnapshot returns the queued issues in descending score order.
func (e *Engine) QueueSnapshot() []*domain.Issue {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.queue.Snapshot()
}

func (e *Engine) publish(ctx context.Context, eventType events.EventType, issueID string, payload any) {
	if e.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		IssueID:    issueID,
		FacilityID: e.facilityID,
		Timestamp:  e.now(),
		Payload:    payload,
	}
	_ = e.dispatcher.Publish(ctx, event)
}

func validateIssue(issue *domain.Issue) error {
	if issue == nil {
		return apperrors.NewValidationError("issue required", nil)
	}
	missing := []string{}
	if strings.TrimSpace(issue.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(issue.ReporterID) == "" {
		missing = append(missing, "reporter_id")
	}
	if issue.Category == "" {
		missing = append(missing, "category")
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError("missing required fields", map[string]any{"fields": missing})
	}
	return nil
}
