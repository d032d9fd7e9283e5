package triage

import (
	"time"

	"github.com/spec-kit/maintenance-engine/internal/domain"
)

// Classification is the triage verdict for a raw issue.
type Classification struct {
	Priority            domain.IssuePriority
	Severity            domain.IssueSeverity
	Urgency             domain.IssueUrgency
	Impact              domain.IssueImpact
	Confidence          int
	RequiredSkills      []string
	EstimatedResolution time.Duration
}

// Classifier evaluates issues against a fixed rule table. Classification is
// pure: same issue and table always yield the same verdict.
type Classifier struct {
	rules []Rule
}

// NewClassifier builds a classifier over the default rule table.
func NewClassifier() *Classifier {
	return &Classifier{rules: DefaultRules()}
}

// NewClassifierWithRules builds a classifier over a caller-supplied table.
func NewClassifierWithRules(rules []Rule) *Classifier {
	return &Classifier{rules: rules}
}

// Classify folds the rule table over the issue. Every matching rule
// contributes its target scores weighted by rule weight; each dimension is
// averaged independently and mapped back to the nearest enum bucket.
// Classification never fails: an unmatched issue gets the default verdict.
func (c *Classifier) Classify(issue *domain.Issue) Classification {
	var (
		totalWeight float64
		prioritySum float64
		severitySum float64
		urgencySum  float64
		impactSum   float64
	)

	for _, rule := range c.rules {
		if !rule.Match(issue) {
			continue
		}
		totalWeight += rule.Weight
		prioritySum += rule.Priority * rule.Weight
		severitySum += rule.Severity * rule.Weight
		urgencySum += rule.Urgency * rule.Weight
		impactSum += rule.Impact * rule.Weight
	}

	result := Classification{
		Priority:   domain.PriorityMedium,
		Severity:   domain.SeverityMedium,
		Urgency:    domain.UrgencyMedium,
		Impact:     domain.ImpactSingleRoom,
		Confidence: 50,
	}

	if totalWeight > 0 {
		result.Priority = bucketPriority(prioritySum / totalWeight)
		result.Severity = bucketSeverity(severitySum / totalWeight)
		result.Urgency = bucketUrgency(urgencySum / totalWeight)
		result.Impact = bucketImpact(impactSum / totalWeight)
		result.Confidence = confidence(totalWeight)
	}

	result.RequiredSkills = requiredSkills(issue.Category, result.Severity)
	result.EstimatedResolution = estimateResolution(issue.Category, result.Priority)
	return result
}

func confidence(totalWeight float64) int {
	c := int(totalWeight * 10)
	if c > 100 {
		c = 100
	}
	return c
}

func bucketPriority(score float64) domain.IssuePriority {
	switch {
	case score >= 9:
		return domain.PriorityCritical
	case score >= 6:
		return domain.PriorityHigh
	case score >= 4:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}

func bucketSeverity(score float64) domain.IssueSeverity {
	switch {
	case score >= 9:
		return domain.SeverityCritical
	case score >= 6:
		return domain.SeverityHigh
	case score >= 4:
		return domain.SeverityMedium
	default:
		return domain.SeverityLow
	}
}

func bucketUrgency(score float64) domain.IssueUrgency {
	switch {
	case score >= 9:
		return domain.UrgencyImmediate
	case score >= 6:
		return domain.UrgencyHigh
	case score >= 4:
		return domain.UrgencyMedium
	default:
		return domain.UrgencyLow
	}
}

func bucketImpact(score float64) domain.IssueImpact {
	switch {
	case score >= 9:
		return domain.ImpactCampus
	case score >= 7:
		return domain.ImpactBuilding
	case score >= 5:
		return domain.ImpactFloor
	case score >= 3:
		return domain.ImpactMultipleRooms
	default:
		return domain.ImpactSingleRoom
	}
}

func requiredSkills(category domain.IssueCategory, severity domain.IssueSeverity) []string {
	base, ok := categorySkills[category]
	if !ok {
		base = []string{"general"}
	}
	skills := append([]string{}, base...)
	if severity == domain.SeverityHigh || severity == domain.SeverityCritical {
		skills = append(skills, "emergency-response", "safety")
	}
	return skills
}

var priorityMultipliers = map[domain.IssuePriority]float64{
	domain.PriorityCritical: 0.5,
	domain.PriorityHigh:     0.75,
	domain.PriorityMedium:   1.0,
	domain.PriorityLow:      1.5,
}

func estimateResolution(category domain.IssueCategory, priority domain.IssuePriority) time.Duration {
	base, ok := baseResolutionMinutes[category]
	if !ok {
		base = baseResolutionMinutes[domain.CategoryOther]
	}
	multiplier, ok := priorityMultipliers[priority]
	if !ok {
		multiplier = 1.0
	}
	return time.Duration(float64(base)*multiplier) * time.Minute
}
