package domain

import "time"

// SkillLevel grades a technician's seniority.
type SkillLevel string

const (
	SkillJunior       SkillLevel = "JUNIOR"
	SkillIntermediate SkillLevel = "INTERMEDIATE"
	SkillSenior       SkillLevel = "SENIOR"
	SkillExpert       SkillLevel = "EXPERT"
)

// Availability enumerates whether staff can take new work.
type Availability string

const (
	AvailabilityAvailable  Availability = "AVAILABLE"
	AvailabilityBusy       Availability = "BUSY"
	AvailabilityOffDuty    Availability = "OFF_DUTY"
	AvailabilityOnLeave    Availability = "ON_LEAVE"
)

// WorkingSchedule describes a daily shift window.
type WorkingSchedule struct {
	ShiftStart string
	ShiftEnd   string
	DaysOff    []time.Weekday
}

// MaintenanceStaff models a facility technician.
type MaintenanceStaff struct {
	ID                   string
	Name                 string
	FacilityID           string
	Specializations      []string
	SkillLevel           SkillLevel
	ExperienceYears      int
	Availability         Availability
	AssignedIssues       []string
	MaxConcurrentIssues  int
	PerformanceRating    float64
	CompletedIssues      int
	AvgResolutionMinutes float64
	Schedule             WorkingSchedule
	Location             string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// MatchBonus returns the assignment score bonus for the skill level.
func (l SkillLevel) MatchBonus() float64 {
	switch l {
	case SkillJunior:
		return 5
	case SkillIntermediate:
		return 10
	case SkillSenior:
		return 15
	case SkillExpert:
		return 20
	default:
		return 0
	}
}

// WorkloadFraction reports how full the technician's assignment slots are.
func (s *MaintenanceStaff) WorkloadFraction() float64 {
	if s.MaxConcurrentIssues <= 0 {
		return 1
	}
	return float64(len(s.AssignedIssues)) / float64(s.MaxConcurrentIssues)
}

// HasCapacity reports whether another issue can be assigned.
func (s *MaintenanceStaff) HasCapacity() bool {
	return len(s.AssignedIssues) < s.MaxConcurrentIssues
}

// IsAssignable reports whether the technician can take new work right now.
func (s *MaintenanceStaff) IsAssignable() bool {
	return s.Availability == AvailabilityAvailable && s.HasCapacity()
}
