package dto

import (
	"github.com/spec-kit/maintenance-engine/internal/domain"
)

// RegisterStaffRequest payload.
type RegisterStaffRequest struct {
	Name                string            `json:"name"`
	Specializations     []string          `json:"specializations"`
	SkillLevel          domain.SkillLevel `json:"skill_level"`
	ExperienceYears     int               `json:"experience_years"`
	MaxConcurrentIssues int               `json:"max_concurrent_issues"`
	PerformanceRating   float64           `json:"performance_rating"`
	Location            string            `json:"location"`
}

// StaffResponse view.
type StaffResponse struct {
	ID                  string              `json:"id"`
	Name                string              `json:"name"`
	Specializations     []string            `json:"specializations"`
	SkillLevel          domain.SkillLevel   `json:"skill_level"`
	ExperienceYears     int                 `json:"experience_years"`
	Availability        domain.Availability `json:"availability"`
	AssignedIssues      []string            `json:"assigned_issues"`
	MaxConcurrentIssues int                 `json:"max_concurrent_issues"`
	PerformanceRating   float64             `json:"performance_rating"`
	CompletedIssues     int                 `json:"completed_issues"`
}

// NewStaffResponse maps a roster entry.
func NewStaffResponse(member *domain.MaintenanceStaff) StaffResponse {
	return StaffResponse{
		ID:                  member.ID,
		Name:                member.Name,
		Specializations:     member.Specializations,
		SkillLevel:          member.SkillLevel,
		ExperienceYears:     member.ExperienceYears,
		Availability:        member.Availability,
		AssignedIssues:      member.AssignedIssues,
		MaxConcurrentIssues: member.MaxConcurrentIssues,
		PerformanceRating:   member.PerformanceRating,
		CompletedIssues:     member.CompletedIssues,
	}
}
