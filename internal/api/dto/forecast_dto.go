package dto

import (
	"time"

	"github.com/spec-kit/maintenance-engine/internal/domain"
	"github.com/spec-kit/maintenance-engine/internal/forecast"
)

// PredictionResponse is one forecast line.
type PredictionResponse struct {
	Category          domain.IssueCategory       `json:"category"`
	Hostel            string                     `json:"hostel"`
	Probability       float64                    `json:"probability"`
	EstimatedCost     float64                    `json:"estimated_cost"`
	MonthlyFrequency  float64                    `json:"monthly_frequency"`
	DeteriorationRate float64                    `json:"deterioration_rate"`
	RecommendedAction string                     `json:"recommended_action"`
	Urgency           forecast.PredictionUrgency `json:"urgency"`
	Timeframe         string                     `json:"timeframe"`
}

// ForecastResponse is the full facility forecast view.
type ForecastResponse struct {
	FacilityID         string               `json:"facility_id"`
	HorizonDays        int                  `json:"horizon_days"`
	Predictions        []PredictionResponse `json:"predictions"`
	TotalEstimatedCost float64              `json:"total_estimated_cost"`
	RecommendedBudget  float64              `json:"recommended_budget"`
	CriticalActions    []string             `json:"critical_actions"`
	GeneratedAt        time.Time            `json:"generated_at"`
}

// NewForecastResponse maps an engine forecast.
func NewForecastResponse(f forecast.Forecast) ForecastResponse {
	predictions := make([]PredictionResponse, 0, len(f.Predictions))
	for _, p := range f.Predictions {
		predictions = append(predictions, PredictionResponse{
			Category:          p.Category,
			Hostel:            p.Hostel,
			Probability:       p.Probability,
			EstimatedCost:     p.EstimatedCost,
			MonthlyFrequency:  p.MonthlyFrequency,
			DeteriorationRate: p.DeteriorationRate,
			RecommendedAction: p.RecommendedAction,
			Urgency:           p.Urgency,
			Timeframe:         p.Timeframe,
		})
	}
	return ForecastResponse{
		FacilityID:         f.FacilityID,
		HorizonDays:        f.HorizonDays,
		Predictions:        predictions,
		TotalEstimatedCost: f.TotalEstimatedCost,
		RecommendedBudget:  f.RecommendedBudget,
		CriticalActions:    f.CriticalActions,
		GeneratedAt:        f.GeneratedAt,
	}
}
