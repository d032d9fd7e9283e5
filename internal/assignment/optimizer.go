package assignment

import (
	"sort"
	"strings"

	"github.com/spec-kit/maintenance-engine/internal/domain"
)

// Optimizer matches issues to technicians. The matching is one-shot greedy by
// descending priority score, deliberately not a full Hungarian solve: the
// highest-priority issue gets the best currently unconsumed technician.
type Optimizer struct{}

// NewOptimizer creates the optimizer.
func NewOptimizer() *Optimizer {
	return &Optimizer{}
}

// Assign computes an issue-to-staff binding for the batch. Inputs are not
// mutated; the caller persists the mapping and updates workload counters.
func (o *Optimizer) Assign(issues []*domain.Issue, staff []*domain.MaintenanceStaff) map[string]string {
	ordered := append([]*domain.Issue{}, issues...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].PriorityScore() > ordered[j].PriorityScore()
	})

	assignments := make(map[string]string)
	consumed := make(map[string]bool)

	for _, issue := range ordered {
		var best *domain.MaintenanceStaff
		var bestScore float64
		for _, member := range staff {
			if consumed[member.ID] || !member.IsAssignable() {
				continue
			}
			if !SkillsMatch(issue.RequiredSkills, member.Specializations) {
				continue
			}
			score := matchScore(issue, member)
			if best == nil || score > bestScore {
				best = member
				bestScore = score
			}
		}
		if best == nil {
			continue
		}
		assignments[issue.ID] = best.ID
		consumed[best.ID] = true
	}

	return assignments
}

// SkillsMatch reports whether a technician's specializations cover the issue's
// required skills. An empty requirement, or one containing "general", matches
// everyone; otherwise any substring overlap between a required skill and a
// specialization counts.
func SkillsMatch(required, specializations []string) bool {
	if len(required) == 0 {
		return true
	}
	for _, skill := range required {
		if strings.EqualFold(skill, "general") {
			return true
		}
	}
	for _, skill := range required {
		for _, spec := range specializations {
			if skillOverlap(skill, spec) {
				return true
			}
		}
	}
	return false
}

func skillOverlap(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func matchScore(issue *domain.Issue, member *domain.MaintenanceStaff) float64 {
	matches := 0
	for _, skill := range issue.RequiredSkills {
		for _, spec := range member.Specializations {
			if skillOverlap(skill, spec) {
				matches++
				break
			}
		}
	}

	score := 20*float64(matches) +
		2*float64(member.ExperienceYears) +
		10*member.PerformanceRating +
		15*(1-member.WorkloadFraction()) +
		member.SkillLevel.MatchBonus()

	if issue.Priority == domain.PriorityCritical &&
		(member.SkillLevel == domain.SkillSenior || member.SkillLevel == domain.SkillExpert) {
		score += 25
	}
	if locationMatch(issue.Location, member.Location) {
		score += 10
	}
	return score
}

func locationMatch(loc domain.Location, staffLocation string) bool {
	if staffLocation == "" || loc.Hostel == "" {
		return false
	}
	hostel := strings.ToLower(loc.Hostel)
	base := strings.ToLower(staffLocation)
	return strings.Contains(hostel, base) || strings.Contains(base, hostel)
}
