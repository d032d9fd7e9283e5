package engine

import (
	"time"

	"github.com/spec-kit/maintenance-engine/internal/domain"
)

// CostBreakdown aggregates spend across the cached issues.
type CostBreakdown struct {
	EstimatedTotal float64                          `json:"estimated_total"`
	ActualTotal    float64                          `json:"actual_total"`
	ByCategory     map[domain.IssueCategory]float64 `json:"by_category"`
}

// StaffPerformance is one technician's analytics row.
type StaffPerformance struct {
	StaffID              string  `json:"staff_id"`
	Name                 string  `json:"name"`
	CompletedIssues      int     `json:"completed_issues"`
	AvgResolutionMinutes float64 `json:"avg_resolution_minutes"`
	PerformanceRating    float64 `json:"performance_rating"`
	WorkloadFraction     float64 `json:"workload_fraction"`
}

// QueueStatus summarizes the scheduling queue.
type QueueStatus struct {
	Length     int     `json:"length"`
	TopIssueID string  `json:"top_issue_id,omitempty"`
	TopScore   float64 `json:"top_score,omitempty"`
}

// Analytics is the facility-wide reporting snapshot.
type Analytics struct {
	FacilityID       string                         `json:"facility_id"`
	GeneratedAt      time.Time                      `json:"generated_at"`
	ByCategory       map[domain.IssueCategory]int   `json:"by_category"`
	ByPriority       map[domain.IssuePriority]int   `json:"by_priority"`
	ByStatus         map[domain.IssueStatus]int     `json:"by_status"`
	SLACompliancePct float64                        `json:"sla_compliance_pct"`
	Costs            CostBreakdown                  `json:"costs"`
	StaffPerformance []StaffPerformance             `json:"staff_performance"`
	Queue            QueueStatus                    `json:"queue"`
	MaterialsToReorder []string                     `json:"materials_to_reorder,omitempty"`
}

// Analytics computes the reporting snapshot over the engine's caches. SLA
// compliance counts resolved issues that met their deadline plus open issues
// not yet overdue, against all issues carrying a deadline.
func (e *Engine) Analytics(facilityID string) Analytics {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	result := Analytics{
		FacilityID:  facilityID,
		GeneratedAt: now,
		ByCategory:  make(map[domain.IssueCategory]int),
		ByPriority:  make(map[domain.IssuePriority]int),
		ByStatus:    make(map[domain.IssueStatus]int),
		Costs:       CostBreakdown{ByCategory: make(map[domain.IssueCategory]float64)},
	}

	var withDeadline, compliant int
	for _, issue := range e.issues {
		if facilityID != "" && issue.FacilityID != facilityID {
			continue
		}
		result.ByCategory[issue.Category]++
		result.ByPriority[issue.Priority]++
		result.ByStatus[issue.Status]++
		result.Costs.EstimatedTotal += issue.EstimatedCost
		result.Costs.ActualTotal += issue.ActualCost
		cost := issue.ActualCost
		if cost == 0 {
			cost = issue.EstimatedCost
		}
		result.Costs.ByCategory[issue.Category] += cost

		if issue.SLADeadline == nil {
			continue
		}
		withDeadline++
		if issue.ResolvedAt != nil {
			if !issue.ResolvedAt.After(*issue.SLADeadline) {
				compliant++
			}
		} else if !issue.IsSLAOverdue(now) {
			compliant++
		}
	}
	if withDeadline > 0 {
		result.SLACompliancePct = 100 * float64(compliant) / float64(withDeadline)
	} else {
		result.SLACompliancePct = 100
	}

	for _, member := range e.staff {
		result.StaffPerformance = append(result.StaffPerformance, StaffPerformance{
			StaffID:              member.ID,
			Name:                 member.Name,
			CompletedIssues:      member.CompletedIssues,
			AvgResolutionMinutes: member.AvgResolutionMinutes,
			PerformanceRating:    member.PerformanceRating,
			WorkloadFraction:     member.WorkloadFraction(),
		})
	}

	seen := make(map[string]bool)
	for _, order := range e.workOrders {
		for _, material := range order.Materials {
			if material.NeedsReorder() && !seen[material.Name] {
				seen[material.Name] = true
				result.MaterialsToReorder = append(result.MaterialsToReorder, material.Name)
			}
		}
	}

	result.Queue.Length = e.queue.Len()
	if top := e.queue.Peek(); top != nil {
		result.Queue.TopIssueID = top.ID
		result.Queue.TopScore = top.PriorityScore()
	}
	return result
}
