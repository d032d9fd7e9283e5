package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/maintenance-engine/internal/domain"
)

var forecastNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return forecastNow }

func resolvedIssue(category domain.IssueCategory, hostel string, createdAt time.Time, cost float64) *domain.Issue {
	resolved := createdAt.Add(2 * time.Hour)
	return &domain.Issue{
		Category:   category,
		Location:   domain.Location{Hostel: hostel},
		CreatedAt:  createdAt,
		ResolvedAt: &resolved,
		ActualCost: cost,
	}
}

func TestForecastFrequentPattern(t *testing.T) {
	// Ten electrical issues in one hostel over roughly five months.
	var history []*domain.Issue
	start := forecastNow.AddDate(0, -5, 0)
	for i := 0; i < 10; i++ {
		history = append(history, resolvedIssue(
			domain.CategoryElectrical, "Hostel A", start.AddDate(0, 0, i*15), 200))
	}

	analyzer := NewAnalyzerAt(fixedClock)
	result := analyzer.Forecast("main-campus", history, 30)

	require.Len(t, result.Predictions, 1)
	prediction := result.Predictions[0]

	assert.Equal(t, domain.CategoryElectrical, prediction.Category)
	assert.Equal(t, "Hostel A", prediction.Hostel)
	assert.GreaterOrEqual(t, prediction.Probability, 0.5)
	assert.LessOrEqual(t, prediction.Probability, 0.95)
	assert.Greater(t, prediction.MonthlyFrequency, 2.0)
	assert.Equal(t, "schedule preventive maintenance", prediction.RecommendedAction)
	assert.Equal(t, PredictionUrgencyHigh, prediction.Urgency)
	assert.InDelta(t, 200.0, prediction.EstimatedCost, 0.001)
}

func TestForecastIgnoresUnresolved(t *testing.T) {
	open := &domain.Issue{
		Category:  domain.CategoryPlumbing,
		Location:  domain.Location{Hostel: "Hostel B"},
		CreatedAt: forecastNow.AddDate(0, -1, 0),
	}
	analyzer := NewAnalyzerAt(fixedClock)
	result := analyzer.Forecast("main-campus", []*domain.Issue{open}, 30)
	assert.Empty(t, result.Predictions)
}

func TestForecastGroupsByCategoryAndHostel(t *testing.T) {
	history := []*domain.Issue{
		resolvedIssue(domain.CategoryElectrical, "Hostel A", forecastNow.AddDate(0, -2, 0), 100),
		resolvedIssue(domain.CategoryElectrical, "Hostel B", forecastNow.AddDate(0, -2, 0), 100),
		resolvedIssue(domain.CategoryPlumbing, "Hostel A", forecastNow.AddDate(0, -2, 0), 100),
	}
	analyzer := NewAnalyzerAt(fixedClock)
	result := analyzer.Forecast("main-campus", history, 30)
	assert.Len(t, result.Predictions, 3)
}

func TestDeteriorationDetection(t *testing.T) {
	t.Run("shrinking intervals raise the rate", func(t *testing.T) {
		// Gaps of 40, 30, 20, 10, 5 days: the fault recurs faster each time.
		gaps := []int{0, 40, 70, 90, 100, 105}
		var history []*domain.Issue
		start := forecastNow.AddDate(0, -4, 0)
		for _, offset := range gaps {
			history = append(history, resolvedIssue(
				domain.CategoryHVAC, "Hostel C", start.AddDate(0, 0, offset), 150))
		}

		analyzer := NewAnalyzerAt(fixedClock)
		result := analyzer.Forecast("main-campus", history, 30)
		require.Len(t, result.Predictions, 1)
		assert.Greater(t, result.Predictions[0].DeteriorationRate, 0.0)
	})

	t.Run("evenly spaced issues are stable", func(t *testing.T) {
		var history []*domain.Issue
		start := forecastNow.AddDate(0, -4, 0)
		for i := 0; i < 5; i++ {
			history = append(history, resolvedIssue(
				domain.CategoryHVAC, "Hostel C", start.AddDate(0, 0, i*25), 150))
		}

		analyzer := NewAnalyzerAt(fixedClock)
		result := analyzer.Forecast("main-campus", history, 30)
		require.Len(t, result.Predictions, 1)
		assert.InDelta(t, 0.0, result.Predictions[0].DeteriorationRate, 0.001)
	})
}

func TestRecommendedBudgetCarriesContingency(t *testing.T) {
	history := []*domain.Issue{
		resolvedIssue(domain.CategoryElectrical, "Hostel A", forecastNow.AddDate(0, -2, 0), 300),
	}
	analyzer := NewAnalyzerAt(fixedClock)
	result := analyzer.Forecast("main-campus", history, 30)

	require.Len(t, result.Predictions, 1)
	p := result.Predictions[0]
	assert.InDelta(t, p.EstimatedCost*p.Probability*1.2, result.RecommendedBudget, 0.001)
	assert.InDelta(t, p.EstimatedCost, result.TotalEstimatedCost, 0.001)
}

func TestForecastEmptyHistory(t *testing.T) {
	analyzer := NewAnalyzerAt(fixedClock)
	result := analyzer.Forecast("main-campus", nil, 0)

	assert.Empty(t, result.Predictions)
	assert.Equal(t, 30, result.HorizonDays)
	assert.Zero(t, result.RecommendedBudget)
	assert.Equal(t, forecastNow, result.GeneratedAt)
}
