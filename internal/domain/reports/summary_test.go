package reports

import (
	"testing"

	"reviewhub/internal/domain/review"
)

func view(status string) review.ReceiverView {
	return review.ReceiverView{Status: status}
}

func TestBuildCycleSummary(t *testing.T) {
	cycle := review.EvaluationCycle{ID: "c1", Name: "Annual 2025", Status: review.CycleStatusOpen}
	views := []review.ReceiverView{
		view(review.ReceiverStatusCompleted),
		view(review.ReceiverStatusCompleted),
		view(review.ReceiverStatusInProgress),
		view(review.ReceiverStatusNotAssigned),
	}

	summary := BuildCycleSummary(cycle, views)

	if summary.Receivers != 4 {
		t.Fatalf("expected 4 receivers, got %d", summary.Receivers)
	}
	if summary.ByStatus[review.ReceiverStatusCompleted] != 2 {
		t.Fatalf("expected 2 completed, got %d", summary.ByStatus[review.ReceiverStatusCompleted])
	}
	if summary.CompletionRate != 0.5 {
		t.Fatalf("expected completion rate 0.5, got %v", summary.CompletionRate)
	}
}

func TestBuildCycleSummaryHandlesNoReceivers(t *testing.T) {
	summary := BuildCycleSummary(review.EvaluationCycle{ID: "c1"}, nil)
	if summary.CompletionRate != 0 {
		t.Fatalf("expected zero completion rate, got %v", summary.CompletionRate)
	}
	if summary.Receivers != 0 {
		t.Fatalf("expected zero receivers, got %d", summary.Receivers)
	}
}

func TestRenderCycleSummaryPDFProducesDocument(t *testing.T) {
	summary := BuildCycleSummary(review.EvaluationCycle{ID: "c1", Name: "Annual 2025"}, []review.ReceiverView{view(review.ReceiverStatusCompleted)})
	data, err := RenderCycleSummaryPDF(summary, []review.ReceiverView{view(review.ReceiverStatusCompleted)})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty pdf")
	}
}
