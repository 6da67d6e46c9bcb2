package reports

import "reviewhub/internal/domain/review"

// CycleSummary is the per-cycle completion rollup rendered by the report
// endpoints.
type CycleSummary struct {
	CycleID        string         `json:"cycleId"`
	CycleName      string         `json:"cycleName"`
	CycleStatus    string         `json:"cycleStatus"`
	Receivers      int            `json:"receivers"`
	ByStatus       map[string]int `json:"byStatus"`
	CompletionRate float64        `json:"completionRate"`
}

func BuildCycleSummary(cycle review.EvaluationCycle, views []review.ReceiverView) CycleSummary {
	summary := CycleSummary{
		CycleID:     cycle.ID,
		CycleName:   cycle.Name,
		CycleStatus: cycle.Status,
		Receivers:   len(views),
		ByStatus:    map[string]int{},
	}
	for _, view := range views {
		summary.ByStatus[view.Status]++
	}
	if summary.Receivers > 0 {
		summary.CompletionRate = float64(summary.ByStatus[review.ReceiverStatusCompleted]) / float64(summary.Receivers)
	}
	return summary
}
