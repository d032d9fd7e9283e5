package assignment

import (
	"sort"

	"github.com/spec-kit/maintenance-engine/internal/domain"
)

var priorityRank = map[domain.IssuePriority]int{
	domain.PriorityCritical: 0,
	domain.PriorityHigh:     1,
	domain.PriorityMedium:   2,
	domain.PriorityLow:      3,
}

// OptimizeSchedule distributes work orders across technicians with an
// earliest-finish-time heuristic: each order, taken in priority then
// scheduled-start order, goes to whichever technician's running schedule
// finishes it soonest. Inputs are not mutated.
func OptimizeSchedule(orders []*domain.WorkOrder, staff []*domain.MaintenanceStaff) map[string][]*domain.WorkOrder {
	if len(staff) == 0 {
		return map[string][]*domain.WorkOrder{}
	}

	ordered := append([]*domain.WorkOrder{}, orders...)
	sort.SliceStable(ordered, func(i, j int) bool {
		ri, rj := priorityRank[ordered[i].Priority], priorityRank[ordered[j].Priority]
		if ri != rj {
			return ri < rj
		}
		return ordered[i].ScheduledStart.Before(ordered[j].ScheduledStart)
	})

	schedules := make(map[string][]*domain.WorkOrder, len(staff))
	finishMinutes := make(map[string]int, len(staff))
	for _, member := range staff {
		schedules[member.ID] = nil
	}

	for _, order := range ordered {
		var bestID string
		bestFinish := -1
		for _, member := range staff {
			projected := finishMinutes[member.ID] + order.EstimatedMinutes
			if bestFinish < 0 || projected < bestFinish {
				bestID = member.ID
				bestFinish = projected
			}
		}
		schedules[bestID] = append(schedules[bestID], order)
		finishMinutes[bestID] = bestFinish
	}

	for id := range schedules {
		list := schedules[id]
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].ScheduledStart.Before(list[j].ScheduledStart)
		})
		schedules[id] = list
	}

	return schedules
}
