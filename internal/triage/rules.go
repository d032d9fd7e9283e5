package triage

import (
	"strings"

	"github.com/spec-kit/maintenance-engine/internal/domain"
)

// Rule is one entry in the classification table: a predicate over the raw
// issue plus target scores on the 0-10 scale for each triage dimension.
type Rule struct {
	Name     string
	Match    func(*domain.Issue) bool
	Priority float64
	Severity float64
	Urgency  float64
	Impact   float64
	Weight   float64
}

func descContains(issue *domain.Issue, terms ...string) bool {
	text := strings.ToLower(issue.Title + " " + issue.Description)
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

func categoryIs(issue *domain.Issue, categories ...domain.IssueCategory) bool {
	for _, c := range categories {
		if issue.Category == c {
			return true
		}
	}
	return false
}

// DefaultRules returns the standard ordered rule table. The table is data, not
// logic: Classify folds over whichever table it is given, so rules can be
// tested and tuned independently.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name: "gas-leak",
			Match: func(i *domain.Issue) bool {
				return descContains(i, "gas leak", "smell of gas", "gas smell")
			},
			Priority: 10, Severity: 10, Urgency: 10, Impact: 8, Weight: 8,
		},
		{
			Name: "power-outage",
			Match: func(i *domain.Issue) bool {
				return i.Category == domain.CategoryElectrical &&
					descContains(i, "power outage", "no power", "blackout", "power cut")
			},
			Priority: 10, Severity: 10, Urgency: 10, Impact: 8, Weight: 7,
		},
		{
			Name: "electrical-hazard",
			Match: func(i *domain.Issue) bool {
				return descContains(i, "spark", "exposed wire", "exposed wiring", "shock", "burning smell")
			},
			Priority: 10, Severity: 10, Urgency: 10, Impact: 4, Weight: 6,
		},
		{
			Name: "flooding",
			Match: func(i *domain.Issue) bool {
				return i.Category == domain.CategoryPlumbing &&
					descContains(i, "flood", "burst", "overflow")
			},
			Priority: 9, Severity: 9, Urgency: 10, Impact: 6, Weight: 6,
		},
		{
			Name: "water-supply-out",
			Match: func(i *domain.Issue) bool {
				return descContains(i, "no water", "water supply")
			},
			Priority: 8, Severity: 7, Urgency: 8, Impact: 6, Weight: 5,
		},
		{
			Name: "structural-damage",
			Match: func(i *domain.Issue) bool {
				return i.Category == domain.CategoryStructural ||
					descContains(i, "ceiling crack", "collaps", "wall crack")
			},
			Priority: 8, Severity: 9, Urgency: 7, Impact: 7, Weight: 5,
		},
		{
			Name: "security-fault",
			Match: func(i *domain.Issue) bool {
				return i.Category == domain.CategorySecurity
			},
			Priority: 8, Severity: 8, Urgency: 8, Impact: 6, Weight: 4,
		},
		{
			Name: "widespread-impact",
			Match: func(i *domain.Issue) bool {
				return len(i.AffectedUsers) > 10
			},
			Priority: 7, Severity: 6, Urgency: 7, Impact: 8, Weight: 3,
		},
		{
			Name: "electrical-fault",
			Match: func(i *domain.Issue) bool {
				return i.Category == domain.CategoryElectrical
			},
			Priority: 7, Severity: 7, Urgency: 7, Impact: 6, Weight: 3,
		},
		{
			Name: "plumbing-fault",
			Match: func(i *domain.Issue) bool {
				return i.Category == domain.CategoryPlumbing
			},
			Priority: 6, Severity: 6, Urgency: 6, Impact: 4, Weight: 3,
		},
		{
			Name: "hvac-fault",
			Match: func(i *domain.Issue) bool {
				return i.Category == domain.CategoryHVAC
			},
			Priority: 6, Severity: 5, Urgency: 6, Impact: 5, Weight: 3,
		},
		{
			Name: "lockout",
			Match: func(i *domain.Issue) bool {
				return descContains(i, "lock", "locked out", "door jam")
			},
			Priority: 7, Severity: 6, Urgency: 7, Impact: 2, Weight: 3,
		},
		{
			Name: "technology-fault",
			Match: func(i *domain.Issue) bool {
				return i.Category == domain.CategoryTechnology
			},
			Priority: 5, Severity: 4, Urgency: 5, Impact: 4, Weight: 3,
		},
		{
			Name: "fittings-fault",
			Match: func(i *domain.Issue) bool {
				return categoryIs(i, domain.CategoryAppliance, domain.CategoryFurniture, domain.CategoryCarpentry)
			},
			Priority: 4, Severity: 4, Urgency: 4, Impact: 2, Weight: 3,
		},
		{
			Name: "cosmetic",
			Match: func(i *domain.Issue) bool {
				return categoryIs(i, domain.CategoryCleaning, domain.CategoryPainting)
			},
			Priority: 3, Severity: 2, Urgency: 2, Impact: 2, Weight: 3,
		},
		{
			Name: "recurring-problem",
			Match: func(i *domain.Issue) bool {
				return i.Recurring
			},
			Priority: 6, Severity: 5, Urgency: 5, Impact: 4, Weight: 2,
		},
	}
}

var categorySkills = map[domain.IssueCategory][]string{
	domain.CategoryElectrical: {"electrical", "wiring"},
	domain.CategoryPlumbing:   {"plumbing", "pipe-fitting"},
	domain.CategoryCarpentry:  {"carpentry"},
	domain.CategoryPainting:   {"painting"},
	domain.CategoryCleaning:   {"cleaning"},
	domain.CategoryHVAC:       {"hvac", "refrigeration"},
	domain.CategorySecurity:   {"security-systems", "locksmith"},
	domain.CategoryTechnology: {"networking", "it-support"},
	domain.CategoryFurniture:  {"carpentry", "assembly"},
	domain.CategoryAppliance:  {"appliance-repair", "electrical"},
	domain.CategoryStructural: {"masonry", "structural"},
	domain.CategoryOther:      {"general"},
}

// baseResolutionMinutes is the per-category estimate before the priority
// multiplier is applied.
var baseResolutionMinutes = map[domain.IssueCategory]int{
	domain.CategoryElectrical: 120,
	domain.CategoryPlumbing:   90,
	domain.CategoryCarpentry:  180,
	domain.CategoryPainting:   240,
	domain.CategoryCleaning:   60,
	domain.CategoryHVAC:       150,
	domain.CategorySecurity:   90,
	domain.CategoryTechnology: 60,
	domain.CategoryFurniture:  120,
	domain.CategoryAppliance:  120,
	domain.CategoryStructural: 480,
	domain.CategoryOther:      120,
}
