package domain

import "time"

// IssueStatus enumerates lifecycle states for maintenance issues.
type IssueStatus string

const (
	IssueStatusReported     IssueStatus = "REPORTED"
	IssueStatusAcknowledged IssueStatus = "ACKNOWLEDGED"
	IssueStatusAssigned     IssueStatus = "ASSIGNED"
	IssueStatusInProgress   IssueStatus = "IN_PROGRESS"
	IssueStatusOnHold       IssueStatus = "ON_HOLD"
	IssueStatusPendingParts IssueStatus = "PENDING_PARTS"
	IssueStatusResolved     IssueStatus = "RESOLVED"
	IssueStatusClosed       IssueStatus = "CLOSED"
	IssueStatusCancelled    IssueStatus = "CANCELLED"
)

// IssueCategory enumerates maintenance problem domains.
type IssueCategory string

const (
	CategoryElectrical IssueCategory = "ELECTRICAL"
	CategoryPlumbing   IssueCategory = "PLUMBING"
	CategoryCarpentry  IssueCategory = "CARPENTRY"
	CategoryPainting   IssueCategory = "PAINTING"
	CategoryCleaning   IssueCategory = "CLEANING"
	CategoryHVAC       IssueCategory = "HVAC"
	CategorySecurity   IssueCategory = "SECURITY"
	CategoryTechnology IssueCategory = "TECHNOLOGY"
	CategoryFurniture  IssueCategory = "FURNITURE"
	CategoryAppliance  IssueCategory = "APPLIANCE"
	CategoryStructural IssueCategory = "STRUCTURAL"
	CategoryOther      IssueCategory = "OTHER"
)

// IssuePriority enumerates triage priority.
type IssuePriority string

const (
	PriorityLow      IssuePriority = "LOW"
	PriorityMedium   IssuePriority = "MEDIUM"
	PriorityHigh     IssuePriority = "HIGH"
	PriorityCritical IssuePriority = "CRITICAL"
)

// IssueSeverity grades how badly the fault degrades the facility.
type IssueSeverity string

const (
	SeverityLow      IssueSeverity = "LOW"
	SeverityMedium   IssueSeverity = "MEDIUM"
	SeverityHigh     IssueSeverity = "HIGH"
	SeverityCritical IssueSeverity = "CRITICAL"
)

// IssueUrgency grades how quickly work must start.
type IssueUrgency string

const (
	UrgencyLow       IssueUrgency = "LOW"
	UrgencyMedium    IssueUrgency = "MEDIUM"
	UrgencyHigh      IssueUrgency = "HIGH"
	UrgencyImmediate IssueUrgency = "IMMEDIATE"
)

// IssueImpact grades the blast radius of the fault.
type IssueImpact string

const (
	ImpactSingleRoom    IssueImpact = "SINGLE_ROOM"
	ImpactMultipleRooms IssueImpact = "MULTIPLE_ROOMS"
	ImpactFloor         IssueImpact = "FLOOR"
	ImpactBuilding      IssueImpact = "BUILDING"
	ImpactCampus        IssueImpact = "CAMPUS"
)

// EscalationLevel tracks how far an unresolved issue has been raised.
type EscalationLevel string

const (
	EscalationNone       EscalationLevel = "NONE"
	EscalationL2         EscalationLevel = "L2"
	EscalationL3         EscalationLevel = "L3"
	EscalationManagement EscalationLevel = "MANAGEMENT"
)

// Location identifies where in the facility an issue was reported.
type Location struct {
	Hostel string
	Room   string
	Floor  int
}

// Issue is the aggregate for reported maintenance problems.
type Issue struct {
	ID              string
	FacilityID      string
	ReporterID      string
	Location        Location
	Category        IssueCategory
	Title           string
	Description     string
	Priority        IssuePriority
	Severity        IssueSeverity
	Urgency         IssueUrgency
	Impact          IssueImpact
	Status          IssueStatus
	AssignedStaffID *string
	RequiredSkills  []string
	AffectedUsers   []string
	EstimatedMinutes int
	EstimatedCost   float64
	ActualCost      float64
	Escalation      EscalationLevel
	EscalationLog   []EscalationRecord
	SLADeadline     *time.Time
	Recurring       bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
	AcknowledgedAt  *time.Time
	ResolvedAt      *time.Time
}

var severityScores = map[IssueSeverity]float64{
	SeverityLow:      2,
	SeverityMedium:   5,
	SeverityHigh:     7,
	SeverityCritical: 10,
}

var urgencyScores = map[IssueUrgency]float64{
	UrgencyLow:       2,
	UrgencyMedium:    5,
	UrgencyHigh:      7,
	UrgencyImmediate: 10,
}

var impactScores = map[IssueImpact]float64{
	ImpactSingleRoom:    2,
	ImpactMultipleRooms: 4,
	ImpactFloor:         6,
	ImpactBuilding:      8,
	ImpactCampus:        10,
}

// Score maps the severity grade onto the 0-10 scoring scale.
func (s IssueSeverity) Score() float64 { return severityScores[s] }

// Score maps the urgency grade onto the 0-10 scoring scale.
func (u IssueUrgency) Score() float64 { return urgencyScores[u] }

// Score maps the impact grade onto the 0-10 scoring scale.
func (i IssueImpact) Score() float64 { return impactScores[i] }

// PriorityScore is the base scheduling score: severity and urgency dominate,
// impact acts as a tiebreaker.
func (i *Issue) PriorityScore() float64 {
	return i.Severity.Score()*0.4 + i.Urgency.Score()*0.4 + i.Impact.Score()*0.2
}

// QueueBoost returns the additive scheduling bonus for the escalation level.
func (l EscalationLevel) QueueBoost() float64 {
	switch l {
	case EscalationL2:
		return 3
	case EscalationL3:
		return 6
	case EscalationManagement:
		return 10
	default:
		return 0
	}
}

// IsSLAOverdue reports whether the SLA deadline has passed without resolution.
func (i *Issue) IsSLAOverdue(now time.Time) bool {
	if i.SLADeadline == nil || i.Status == IssueStatusResolved || i.Status.IsTerminal() {
		return false
	}
	return now.After(*i.SLADeadline)
}

// RequiresEscalation reports whether the issue has been open longer than its
// priority's escalation threshold. Checked on demand, never fired automatically.
func (i *Issue) RequiresEscalation(now time.Time, cfg SLAConfig) bool {
	if i.Status == IssueStatusResolved || i.Status.IsTerminal() {
		return false
	}
	policy, ok := cfg.Policies[i.Priority]
	if !ok {
		return false
	}
	return now.Sub(i.CreatedAt) >= policy.EscalationAfter
}

// IsTerminal reports whether the status admits no further transitions.
func (s IssueStatus) IsTerminal() bool {
	return s == IssueStatusClosed || s == IssueStatusCancelled
}

var statusTransitions = map[IssueStatus][]IssueStatus{
	IssueStatusReported:     {IssueStatusAcknowledged},
	IssueStatusAcknowledged: {IssueStatusAssigned},
	IssueStatusAssigned:     {IssueStatusInProgress},
	IssueStatusInProgress:   {IssueStatusOnHold, IssueStatusPendingParts, IssueStatusResolved},
	IssueStatusOnHold:       {IssueStatusInProgress},
	IssueStatusPendingParts: {IssueStatusInProgress},
	IssueStatusResolved:     {IssueStatusClosed},
}

// CanTransition validates a status change against the lifecycle state machine.
// CANCELLED is reachable from every non-terminal state.
func (s IssueStatus) CanTransition(target IssueStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if target == IssueStatusCancelled {
		return true
	}
	for _, next := range statusTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}
