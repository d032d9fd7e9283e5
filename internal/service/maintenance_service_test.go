package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/maintenance-engine/internal/config"
	"github.com/spec-kit/maintenance-engine/internal/domain"
	"github.com/spec-kit/maintenance-engine/internal/engine"
)

// newCacheOnlyService builds a service with no database and no Redis; the
// engine alone carries state, which is the startup mode when POSTGRES_DSN is
// unset.
func newCacheOnlyService(t *testing.T) *MaintenanceService {
	t.Helper()
	eng := engine.New(engine.Dependencies{FacilityID: "main-campus"})
	return NewMaintenanceService(Dependencies{
		Engine: eng,
		Config: config.EngineConfig{FacilityID: "main-campus", ForecastHorizonDays: 30},
	})
}

func TestReportIssueCacheOnly(t *testing.T) {
	svc := newCacheOnlyService(t)

	issue, verdict, err := svc.ReportIssue(context.Background(), IssueCreateInput{
		ReporterID:  "student-1",
		Hostel:      "Hostel A",
		Floor:       3,
		Category:    domain.CategoryElectrical,
		Title:       "Power outage on floor 3",
		Description: "complete power outage across the wing",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, issue.ID)
	assert.Equal(t, domain.PriorityCritical, verdict.Priority)

	cached, err := svc.Issue(issue.ID)
	require.NoError(t, err)
	assert.Equal(t, issue.ID, cached.ID)
}

func TestIssueNotFound(t *testing.T) {
	svc := newCacheOnlyService(t)
	_, err := svc.Issue("missing")
	assert.Error(t, err)
}

func TestAssignAndResolveFlow(t *testing.T) {
	svc := newCacheOnlyService(t)
	ctx := context.Background()

	err := svc.RegisterStaff(ctx, &domain.MaintenanceStaff{
		Name:            "Priya",
		Specializations: []string{"electrical", "wiring"},
		SkillLevel:      domain.SkillSenior,
		ExperienceYears: 9,
	})
	require.NoError(t, err)

	issue, _, err := svc.ReportIssue(ctx, IssueCreateInput{
		ReporterID:  "student-1",
		Category:    domain.CategoryElectrical,
		Title:       "Sparking socket",
		Description: "sparks from the wall socket",
	})
	require.NoError(t, err)

	bindings, err := svc.AssignIssues(ctx, []string{issue.ID})
	require.NoError(t, err)
	require.Len(t, bindings, 1)

	_, err = svc.UpdateStatus(ctx, issue.ID, domain.IssueStatusInProgress)
	require.NoError(t, err)
	resolved, err := svc.UpdateStatus(ctx, issue.ID, domain.IssueStatusResolved)
	require.NoError(t, err)
	assert.Equal(t, domain.IssueStatusResolved, resolved.Status)
}

func TestRegisterStaffDefaults(t *testing.T) {
	svc := newCacheOnlyService(t)
	member := &domain.MaintenanceStaff{Name: "Dev"}

	require.NoError(t, svc.RegisterStaff(context.Background(), member))

	assert.NotEmpty(t, member.ID)
	assert.Equal(t, "main-campus", member.FacilityID)
	assert.Equal(t, 3, member.MaxConcurrentIssues)
	assert.Equal(t, domain.AvailabilityAvailable, member.Availability)
}

func TestForecastUsesConfiguredHorizon(t *testing.T) {
	svc := newCacheOnlyService(t)
	result := svc.Forecast("main-campus", 0)
	assert.Equal(t, 30, result.HorizonDays)

	result = svc.Forecast("main-campus", 90)
	assert.Equal(t, 90, result.HorizonDays)
}

func TestAnalyticsWithoutRedis(t *testing.T) {
	svc := newCacheOnlyService(t)
	snapshot := svc.Analytics(context.Background(), "main-campus")
	assert.Equal(t, "main-campus", snapshot.FacilityID)
	assert.InDelta(t, 100.0, snapshot.SLACompliancePct, 0.001)
}

func TestEscalateFlow(t *testing.T) {
	svc := newCacheOnlyService(t)
	ctx := context.Background()

	issue, _, err := svc.ReportIssue(ctx, IssueCreateInput{
		ReporterID:  "student-1",
		Category:    domain.CategoryPlumbing,
		Title:       "Dripping tap",
		Description: "slow drip in shared bathroom",
	})
	require.NoError(t, err)

	escalated, err := svc.Escalate(ctx, issue.ID, "no response from desk")
	require.NoError(t, err)
	assert.Equal(t, domain.EscalationL2, escalated.Escalation)
	require.Len(t, escalated.EscalationLog, 1)
	assert.Equal(t, "no response from desk", escalated.EscalationLog[0].Reason)
}

func TestClearCaches(t *testing.T) {
	svc := newCacheOnlyService(t)
	ctx := context.Background()

	issue, _, err := svc.ReportIssue(ctx, IssueCreateInput{
		ReporterID: "student-1",
		Category:   domain.CategoryOther,
		Title:      "Odd noise",
	})
	require.NoError(t, err)

	svc.ClearCaches(ctx)
	_, err = svc.Issue(issue.ID)
	assert.Error(t, err)
}
