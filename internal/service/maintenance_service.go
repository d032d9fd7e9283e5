package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/maintenance-engine/internal/config"
	"github.com/spec-kit/maintenance-engine/internal/domain"
	"github.com/spec-kit/maintenance-engine/internal/engine"
	"github.com/spec-kit/maintenance-engine/internal/forecast"
	"github.com/spec-kit/maintenance-engine/internal/persistence"
	"github.com/spec-kit/maintenance-engine/internal/repository"
	"github.com/spec-kit/maintenance-engine/internal/triage"
	apperrors "github.com/spec-kit/maintenance-engine/pkg/util"
)

// MaintenanceService coordinates the engine with durable storage: the engine
// computes, the repositories persist, and the service keeps the two in step.
// When no database is configured the service runs cache-only.
type MaintenanceService struct {
	engine *engine.Engine
	issues repository.IssueRepository
	staff  repository.StaffRepository
	orders repository.WorkOrderRepository
	cache  *persistence.Redis
	logger *zap.Logger
	cfg    config.EngineConfig
}

// Dependencies bundles collaborators for the service.
type Dependencies struct {
	Engine        *engine.Engine
	IssueRepo     repository.IssueRepository
	StaffRepo     repository.StaffRepository
	WorkOrderRepo repository.WorkOrderRepository
	Cache         *persistence.Redis
	Logger        *zap.Logger
	Config        config.EngineConfig
}

// NewMaintenanceService constructs the service.
func NewMaintenanceService(deps Dependencies) *MaintenanceService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MaintenanceService{
		engine: deps.Engine,
		issues: deps.IssueRepo,
		staff:  deps.StaffRepo,
		orders: deps.WorkOrderRepo,
		cache:  deps.Cache,
		logger: logger,
		cfg:    deps.Config,
	}
}

// IssueCreateInput describes a reported problem before triage.
type IssueCreateInput struct {
	ReporterID    string
	Hostel        string
	Room          string
	Floor         int
	Category      domain.IssueCategory
	Title         string
	Description   string
	AffectedUsers []string
	EstimatedCost float64
	Recurring     bool
}

// WarmCaches rebuilds the engine's view from durable storage. Safe to call on
// startup with no database configured.
func (s *MaintenanceService) WarmCaches(ctx context.Context) error {
	if s.issues == nil {
		s.logger.Warn("no repositories configured; engine starts with empty caches")
		return nil
	}

	facility := s.cfg.FacilityID
	issues, err := s.issues.ListWithFilter(ctx, repository.IssueFilter{FacilityID: &facility, Limit: 1000})
	if err != nil {
		return apperrors.MapError(err)
	}
	for i := range issues {
		issue := issues[i]
		s.engine.UpdateIssueCache(&issue)
	}

	staffList, err := s.staff.List(ctx, repository.StaffFilter{FacilityID: &facility, Limit: 1000})
	if err != nil {
		return apperrors.MapError(err)
	}
	for i := range staffList {
		member := staffList[i]
		s.engine.UpdateStaffCache(&member)
	}

	orders, err := s.orders.List(ctx, repository.WorkOrderFilter{Limit: 1000})
	if err != nil {
		return apperrors.MapError(err)
	}
	for i := range orders {
		order := orders[i]
		s.engine.UpdateWorkOrderCache(&order)
	}

	s.logger.Info("engine caches warmed",
		zap.Int("issues", len(issues)),
		zap.Int("staff", len(staffList)),
		zap.Int("work_orders", len(orders)))
	return nil
}

// ReportIssue triages a new issue, persists it and invalidates the analytics
// snapshot.
func (s *MaintenanceService) ReportIssue(ctx context.Context, input IssueCreateInput) (*domain.Issue, triage.Classification, error) {
	issue := &domain.Issue{
		ID:         uuid.NewString(),
		ReporterID: input.ReporterID,
		Location: domain.Location{
			Hostel: input.Hostel,
			Room:   input.Room,
			Floor:  input.Floor,
		},
		Category:      input.Category,
		Title:         input.Title,
		Description:   input.Description,
		AffectedUsers: input.AffectedUsers,
		EstimatedCost: input.EstimatedCost,
		Recurring:     input.Recurring,
	}

	verdict, err := s.engine.SubmitIssue(ctx, issue)
	if err != nil {
		return nil, triage.Classification{}, err
	}

	if s.issues != nil {
		if err := s.issues.Create(ctx, issue); err != nil {
			return nil, triage.Classification{}, apperrors.MapError(err)
		}
	}
	s.invalidateAnalytics(ctx)
	return issue, verdict, nil
}

// AssignIssues runs the optimizer and persists the resulting bindings: issue
// and staff updates plus one work order per binding.
func (s *MaintenanceService) AssignIssues(ctx context.Context, issueIDs []string) (map[string]string, error) {
	bindings, err := s.engine.AssignIssues(ctx, issueIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for issueID, staffID := range bindings {
		issue, ok := s.engine.Issue(issueID)
		if !ok {
			continue
		}
		if s.issues != nil {
			if err := s.issues.Update(ctx, issue); err != nil {
				return nil, apperrors.MapError(err)
			}
		}
		if s.orders != nil {
			order := &domain.WorkOrder{
				ID:               uuid.NewString(),
				IssueID:          issueID,
				StaffID:          staffID,
				Priority:         issue.Priority,
				Status:           domain.WorkOrderCreated,
				ScheduledStart:   now,
				EstimatedMinutes: issue.EstimatedMinutes,
				Quality:          domain.QualityPending,
			}
			if err := s.orders.Create(ctx, order); err != nil {
				return nil, apperrors.MapError(err)
			}
			s.engine.UpdateWorkOrderCache(order)
		}
	}
	s.invalidateAnalytics(ctx)
	s.publishQueueSnapshot(ctx)
	return bindings, nil
}

// Issue looks up a cached issue by ID.
func (s *MaintenanceService) Issue(issueID string) (*domain.Issue, error) {
	issue, ok := s.engine.Issue(issueID)
	if !ok {
		return nil, apperrors.NewNotFound("issue", map[string]any{"issue_id": issueID})
	}
	return issue, nil
}

// QueueSnapshot returns the pending issues in priority order.
func (s *MaintenanceService) QueueSnapshot() []*domain.Issue {
	return s.engine.QueueSnapshot()
}

// NextIssue returns the highest-priority queued issue, or nil.
func (s *MaintenanceService) NextIssue(ctx context.Context) *domain.Issue {
	issue := s.engine.NextPriorityIssue()
	s.publishQueueSnapshot(ctx)
	return issue
}

// UpdateStatus applies a lifecycle transition and persists the result.
func (s *MaintenanceService) UpdateStatus(ctx context.Context, issueID string, target domain.IssueStatus) (*domain.Issue, error) {
	issue, err := s.engine.UpdateIssueStatus(ctx, issueID, target)
	if err != nil {
		return nil, err
	}
	if s.issues != nil {
		if err := s.issues.Update(ctx, issue); err != nil {
			return nil, apperrors.MapError(err)
		}
	}
	s.invalidateAnalytics(ctx)
	return issue, nil
}

// Escalate raises an issue one level and appends the audit record.
func (s *MaintenanceService) Escalate(ctx context.Context, issueID, reason string) (*domain.Issue, error) {
	issue, err := s.engine.EscalateIssue(ctx, issueID, reason)
	if err != nil {
		return nil, err
	}
	if s.issues != nil {
		if err := s.issues.Update(ctx, issue); err != nil {
			return nil, apperrors.MapError(err)
		}
		latest := issue.EscalationLog[len(issue.EscalationLog)-1]
		if err := s.issues.AppendEscalation(ctx, latest); err != nil {
			return nil, apperrors.MapError(err)
		}
	}
	s.invalidateAnalytics(ctx)
	return issue, nil
}

// EscalationsDue lists open issues past their escalation threshold.
func (s *MaintenanceService) EscalationsDue() []*domain.Issue {
	return s.engine.CheckEscalations()
}

// Forecast projects maintenance load over the horizon.
func (s *MaintenanceService) Forecast(facilityID string, horizonDays int) forecast.Forecast {
	if horizonDays <= 0 {
		horizonDays = s.cfg.ForecastHorizonDays
	}
	return s.engine.MaintenanceForecast(facilityID, horizonDays)
}

// Analytics returns the facility snapshot, served from the Redis cache when
// fresh.
func (s *MaintenanceService) Analytics(ctx context.Context, facilityID string) engine.Analytics {
	var cached engine.Analytics
	if hit, err := s.cache.GetAnalytics(ctx, facilityID, &cached); err == nil && hit {
		return cached
	}

	snapshot := s.engine.Analytics(facilityID)
	if err := s.cache.CacheAnalytics(ctx, facilityID, snapshot, s.cfg.AnalyticsCacheTTL()); err != nil {
		s.logger.Debug("analytics cache write failed", zap.Error(err))
	}
	return snapshot
}

// RegisterStaff persists a technician and adds them to the roster cache.
func (s *MaintenanceService) RegisterStaff(ctx context.Context, member *domain.MaintenanceStaff) error {
	if member.ID == "" {
		member.ID = uuid.NewString()
	}
	if member.FacilityID == "" {
		member.FacilityID = s.cfg.FacilityID
	}
	if member.MaxConcurrentIssues <= 0 {
		member.MaxConcurrentIssues = 3
	}
	if member.Availability == "" {
		member.Availability = domain.AvailabilityAvailable
	}
	if s.staff != nil {
		if err := s.staff.Create(ctx, member); err != nil {
			return apperrors.MapError(err)
		}
	}
	s.engine.UpdateStaffCache(member)
	return nil
}

// ScheduleWorkOrders distributes open work orders and persists the schedule.
func (s *MaintenanceService) ScheduleWorkOrders(ctx context.Context) (map[string][]*domain.WorkOrder, error) {
	schedules := s.engine.ScheduleWorkOrders(ctx)
	if s.orders == nil {
		return schedules, nil
	}
	for staffID, orders := range schedules {
		for _, order := range orders {
			order.StaffID = staffID
			order.Status = domain.WorkOrderScheduled
			if err := s.orders.Update(ctx, order); err != nil {
				return nil, apperrors.MapError(err)
			}
			s.engine.UpdateWorkOrderCache(order)
		}
	}
	return schedules, nil
}

// SyncIssue lets the persistence layer push a fresher issue into the cache.
func (s *MaintenanceService) SyncIssue(issue *domain.Issue) {
	s.engine.UpdateIssueCache(issue)
}

// SyncStaff lets the persistence layer push a fresher roster entry.
func (s *MaintenanceService) SyncStaff(member *domain.MaintenanceStaff) {
	s.engine.UpdateStaffCache(member)
}

// SyncWorkOrder lets the persistence layer push a fresher work order.
func (s *MaintenanceService) SyncWorkOrder(order *domain.WorkOrder) {
	s.engine.UpdateWorkOrderCache(order)
}

// ClearCaches drops all engine state; callers re-warm from storage.
func (s *MaintenanceService) ClearCaches(ctx context.Context) {
	s.engine.ClearCache()
	s.invalidateAnalytics(ctx)
}

func (s *MaintenanceService) invalidateAnalytics(ctx context.Context) {
	s.cache.InvalidateAnalytics(ctx, s.cfg.FacilityID)
}

func (s *MaintenanceService) publishQueueSnapshot(ctx context.Context) {
	snapshot := s.engine.QueueSnapshot()
	ids := make([]string, len(snapshot))
	for i, issue := range snapshot {
		ids[i] = issue.ID
	}
	if err := s.cache.PublishQueueSnapshot(ctx, s.cfg.FacilityID, ids); err != nil {
		s.logger.Debug("queue snapshot publish failed", zap.Error(err))
	}
}
