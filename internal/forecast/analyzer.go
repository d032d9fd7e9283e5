package forecast

import (
	"fmt"
	"sort"
	"time"

	"github.com/spec-kit/maintenance-engine/internal/domain"
)

// PredictionUrgency buckets how soon a predicted issue needs attention.
type PredictionUrgency string

const (
	PredictionUrgencyHigh   PredictionUrgency = "HIGH"
	PredictionUrgencyMedium PredictionUrgency = "MEDIUM"
	PredictionUrgencyLow    PredictionUrgency = "LOW"
)

// PredictedMaintenance is one forecast line for a (category, location) group.
type PredictedMaintenance struct {
	Category          domain.IssueCategory
	Hostel            string
	Probability       float64
	EstimatedCost     float64
	MonthlyFrequency  float64
	DeteriorationRate float64
	RecommendedAction string
	Urgency           PredictionUrgency
	Timeframe         string
}

// Forecast aggregates all predictions for a facility over a horizon.
type Forecast struct {
	FacilityID         string
	HorizonDays        int
	Predictions        []PredictedMaintenance
	TotalEstimatedCost float64
	RecommendedBudget  float64
	CriticalActions    []string
	GeneratedAt        time.Time
}

// Analyzer extracts historical patterns and projects future maintenance load.
// It is read-only over its inputs and mutates no shared state.
type Analyzer struct {
	now func() time.Time
}

// NewAnalyzer creates an analyzer using the wall clock.
func NewAnalyzer() *Analyzer {
	return &Analyzer{now: time.Now}
}

// NewAnalyzerAt creates an analyzer with a fixed clock, for deterministic tests.
func NewAnalyzerAt(now func() time.Time) *Analyzer {
	return &Analyzer{now: now}
}

type patternKey struct {
	category domain.IssueCategory
	hostel   string
}

// Forecast groups resolved historical issues by (category, hostel) and derives
// a prediction per group from frequency, seasonality and deterioration trend.
func (a *Analyzer) Forecast(facilityID string, history []*domain.Issue, horizonDays int) Forecast {
	if horizonDays <= 0 {
		horizonDays = 30
	}
	now := a.now()

	groups := make(map[patternKey][]*domain.Issue)
	for _, issue := range history {
		if issue.ResolvedAt == nil {
			continue
		}
		key := patternKey{category: issue.Category, hostel: issue.Location.Hostel}
		groups[key] = append(groups[key], issue)
	}

	keys := make([]patternKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].category != keys[j].category {
			return keys[i].category < keys[j].category
		}
		return keys[i].hostel < keys[j].hostel
	})

	result := Forecast{
		FacilityID:  facilityID,
		HorizonDays: horizonDays,
		GeneratedAt: now,
	}

	for _, key := range keys {
		prediction := a.predict(key, groups[key], horizonDays, now)
		result.Predictions = append(result.Predictions, prediction)
		result.TotalEstimatedCost += prediction.EstimatedCost
		result.RecommendedBudget += prediction.EstimatedCost * prediction.Probability
		if prediction.Urgency == PredictionUrgencyHigh {
			result.CriticalActions = append(result.CriticalActions,
				fmt.Sprintf("%s at %s: %s", key.category, key.hostel, prediction.RecommendedAction))
		}
	}

	// 20% contingency on the probability-weighted cost.
	result.RecommendedBudget *= 1.2
	return result
}

func (a *Analyzer) predict(key patternKey, issues []*domain.Issue, horizonDays int, now time.Time) PredictedMaintenance {
	sorted := append([]*domain.Issue{}, issues...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	frequency := monthlyFrequency(sorted)
	rate := deteriorationRate(sorted)
	seasonal := seasonalFactor(sorted, now.Month())
	avgCost := averageCost(sorted)

	probability := frequency * (float64(horizonDays) / 30) * (1 + rate) * seasonal
	if probability > 0.95 {
		probability = 0.95
	}

	return PredictedMaintenance{
		Category:          key.category,
		Hostel:            key.hostel,
		Probability:       probability,
		EstimatedCost:     avgCost,
		MonthlyFrequency:  frequency,
		DeteriorationRate: rate,
		RecommendedAction: recommendAction(key.category, frequency, rate),
		Urgency:           bucketUrgency(frequency, rate),
		Timeframe:         timeframe(frequency),
	}
}

func monthlyFrequency(sorted []*domain.Issue) float64 {
	if len(sorted) == 0 {
		return 0
	}
	span := sorted[len(sorted)-1].CreatedAt.Sub(sorted[0].CreatedAt)
	months := span.Hours() / (24 * 30)
	if months < 1 {
		months = 1
	}
	return float64(len(sorted)) / months
}

func averageCost(issues []*domain.Issue) float64 {
	if len(issues) == 0 {
		return 0
	}
	var total float64
	for _, issue := range issues {
		cost := issue.ActualCost
		if cost == 0 {
			cost = issue.EstimatedCost
		}
		total += cost
	}
	return total / float64(len(issues))
}

// seasonalFactor is the month's share of the group's issues relative to a
// uniform spread, clamped to [0.5, 2.0] so sparse history cannot zero out or
// explode a prediction.
func seasonalFactor(issues []*domain.Issue, month time.Month) float64 {
	if len(issues) == 0 {
		return 1
	}
	var buckets [12]int
	for _, issue := range issues {
		buckets[int(issue.CreatedAt.Month())-1]++
	}
	mean := float64(len(issues)) / 12
	factor := float64(buckets[int(month)-1]) / mean
	if factor < 0.5 {
		return 0.5
	}
	if factor > 2.0 {
		return 2.0
	}
	return factor
}

// deteriorationRate fits a least-squares line through the inter-issue
// intervals. A negative slope means intervals are shrinking, which maps to a
// rate approaching 1; stable or growing intervals map to 0.
func deteriorationRate(sorted []*domain.Issue) float64 {
	if len(sorted) < 3 {
		return 0
	}
	intervals := make([]float64, 0, len(sorted)-1)
	var meanInterval float64
	for i := 1; i < len(sorted); i++ {
		days := sorted[i].CreatedAt.Sub(sorted[i-1].CreatedAt).Hours() / 24
		intervals = append(intervals, days)
		meanInterval += days
	}
	meanInterval /= float64(len(intervals))
	if meanInterval <= 0 {
		return 0
	}

	slope := regressionSlope(intervals)
	if slope >= 0 {
		return 0
	}
	rate := -slope / meanInterval
	if rate > 1 {
		rate = 1
	}
	return rate
}

func regressionSlope(values []float64) float64 {
	n := float64(len(values))
	var sumX, sumY, sumXY, sumXX float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denom
}

func recommendAction(category domain.IssueCategory, frequency, rate float64) string {
	switch {
	case frequency > 2:
		return "schedule preventive maintenance"
	case rate > 0.6:
		return "investigate root cause"
	case category == domain.CategoryElectrical || category == domain.CategoryPlumbing:
		return "schedule safety inspection"
	default:
		return "monitor"
	}
}

func bucketUrgency(frequency, rate float64) PredictionUrgency {
	switch {
	case frequency > 2 || rate > 0.6:
		return PredictionUrgencyHigh
	case frequency > 1 || rate > 0.3:
		return PredictionUrgencyMedium
	default:
		return PredictionUrgencyLow
	}
}

func timeframe(frequency float64) string {
	if frequency <= 0 {
		return "no recurrence expected"
	}
	days := 30 / frequency
	switch {
	case days <= 7:
		return "within a week"
	case days <= 30:
		return "within a month"
	case days <= 90:
		return "within three months"
	default:
		return "beyond three months"
	}
}
