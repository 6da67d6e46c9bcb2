package review

import (
	"errors"
	"testing"
	"time"
)

func date(value string) time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func TestValidateTransitionAllowedPath(t *testing.T) {
	steps := []struct{ from, to string }{
		{CycleStatusDraft, CycleStatusOpen},
		{CycleStatusOpen, CycleStatusClosed},
		{CycleStatusClosed, CycleStatusPublished},
	}
	for _, step := range steps {
		if err := ValidateTransition(step.from, step.to); err != nil {
			t.Fatalf("expected %s -> %s to be allowed, got %v", step.from, step.to, err)
		}
	}
}

func TestValidateTransitionRejectsEverythingElse(t *testing.T) {
	statuses := []string{CycleStatusDraft, CycleStatusOpen, CycleStatusClosed, CycleStatusPublished}
	allowed := map[string]string{
		CycleStatusDraft:  CycleStatusOpen,
		CycleStatusOpen:   CycleStatusClosed,
		CycleStatusClosed: CycleStatusPublished,
	}
	for _, from := range statuses {
		for _, to := range statuses {
			if allowed[from] == to {
				continue
			}
			if err := ValidateTransition(from, to); err == nil {
				t.Fatalf("expected %s -> %s to be rejected", from, to)
			}
		}
	}
}

func TestValidateTransitionMessages(t *testing.T) {
	cases := []struct {
		from string
		want error
	}{
		{CycleStatusDraft, ErrDraftCycleOnlyOpened},
		{CycleStatusOpen, ErrOpenCycleOnlyClosed},
		{CycleStatusClosed, ErrClosedCycleOnlyPublished},
		{CycleStatusPublished, ErrPublishedCycleImmutable},
	}
	for _, tc := range cases {
		if err := ValidateTransition(tc.from, CycleStatusDraft); !errors.Is(err, tc.want) {
			t.Fatalf("from %s: expected %v, got %v", tc.from, tc.want, err)
		}
	}
	if err := ValidateTransition("archived", CycleStatusOpen); !errors.Is(err, ErrUnknownCycleStatus) {
		t.Fatalf("expected unknown status rejection, got %v", err)
	}
}

func TestValidateCycleDates(t *testing.T) {
	base := EvaluationCycle{
		StartDate:        date("2025-01-01"),
		EndDate:          date("2025-01-31"),
		SelfEvalDeadline: date("2025-01-10"),
		FeedbackDeadline: date("2025-01-20"),
	}
	if err := ValidateCycleDates(base); err != nil {
		t.Fatalf("expected valid window, got %v", err)
	}

	boundary := base
	boundary.SelfEvalDeadline = base.StartDate
	boundary.FeedbackDeadline = base.EndDate
	if err := ValidateCycleDates(boundary); err != nil {
		t.Fatalf("expected deadlines on the window edges to be valid, got %v", err)
	}

	bad := base
	bad.SelfEvalDeadline = date("2025-02-05")
	if err := ValidateCycleDates(bad); !errors.Is(err, ErrInvalidDateWindow) {
		t.Fatalf("expected invalid window for late self-eval deadline, got %v", err)
	}

	bad = base
	bad.FeedbackDeadline = date("2024-12-30")
	if err := ValidateCycleDates(bad); !errors.Is(err, ErrInvalidDateWindow) {
		t.Fatalf("expected invalid window for early feedback deadline, got %v", err)
	}

	bad = base
	bad.EndDate = date("2024-12-01")
	if err := ValidateCycleDates(bad); !errors.Is(err, ErrInvalidDateWindow) {
		t.Fatalf("expected invalid window for reversed dates, got %v", err)
	}
}

func TestBuildAssignedReviewersFiltersSelf(t *testing.T) {
	reviewers := BuildAssignedReviewers("e1", []ReviewerRef{
		{ReviewerID: "r1", Role: "peer"},
		{ReviewerID: "e1", Role: "self"},
		{ReviewerID: "r2", Role: "manager"},
		{ReviewerID: "  ", Role: "peer"},
	})
	if len(reviewers) != 2 {
		t.Fatalf("expected 2 reviewers after self-filter, got %d", len(reviewers))
	}
	for _, reviewer := range reviewers {
		if reviewer.ReviewerID == "e1" {
			t.Fatal("reviewee must not appear in its own reviewer list")
		}
		if reviewer.Status != ReviewerStatusInProgress {
			t.Fatalf("expected in_progress, got %s", reviewer.Status)
		}
	}
}

func TestAggregateStatus(t *testing.T) {
	cases := []struct {
		statuses []string
		want     string
	}{
		{nil, ReceiverStatusNotAssigned},
		{[]string{ReviewerStatusCompleted}, ReceiverStatusCompleted},
		{[]string{ReviewerStatusCompleted, ReviewerStatusInProgress}, ReceiverStatusInProgress},
		{[]string{ReviewerStatusCompleted, ReviewerStatusCompleted}, ReceiverStatusCompleted},
		{[]string{ReviewerStatusInProgress}, ReceiverStatusInProgress},
		{[]string{"declined"}, ReceiverStatusNotAssigned},
		{[]string{"declined", ReviewerStatusCompleted}, ReceiverStatusNotAssigned},
	}
	for _, tc := range cases {
		reviewers := make([]AssignedReviewer, len(tc.statuses))
		for i, status := range tc.statuses {
			reviewers[i] = AssignedReviewer{ReviewerID: "r", Status: status}
		}
		if got := AggregateStatus(reviewers); got != tc.want {
			t.Fatalf("statuses %v: expected %s, got %s", tc.statuses, tc.want, got)
		}
	}
}

func TestValidateReceiverBatch(t *testing.T) {
	valid := ReceiverBatch{
		CycleID:         "c1",
		QuestionnaireID: "q1",
		Receivers:       []ReceiverInput{{EmployeeID: "e1"}, {EmployeeID: "e2"}},
	}
	if err := ValidateReceiverBatch(valid); err != nil {
		t.Fatalf("expected valid batch, got %v", err)
	}

	dup := valid
	dup.Receivers = []ReceiverInput{{EmployeeID: "e1"}, {EmployeeID: "e1"}}
	if err := ValidateReceiverBatch(dup); !errors.Is(err, ErrDuplicateReceiverInBatch) {
		t.Fatalf("expected duplicate rejection, got %v", err)
	}

	blank := valid
	blank.Receivers = []ReceiverInput{{EmployeeID: " "}}
	if err := ValidateReceiverBatch(blank); !errors.Is(err, ErrEmployeeIDRequired) {
		t.Fatalf("expected blank id rejection, got %v", err)
	}

	empty := valid
	empty.Receivers = nil
	if err := ValidateReceiverBatch(empty); !errors.Is(err, ErrEmptyReceiverList) {
		t.Fatalf("expected empty list rejection, got %v", err)
	}

	noCycle := valid
	noCycle.CycleID = ""
	if err := ValidateReceiverBatch(noCycle); !errors.Is(err, ErrCycleIDRequired) {
		t.Fatalf("expected missing cycle rejection, got %v", err)
	}
}

func TestDiffReceivers(t *testing.T) {
	existing := []FeedbackReceiver{
		{ID: "row1", EmployeeID: "e1", FullName: "Alice"},
		{ID: "row2", EmployeeID: "e2", FullName: "Bob"},
	}
	incoming := []ReceiverInput{
		{EmployeeID: "e2", FullName: "Bob Updated"},
		{EmployeeID: "e3", FullName: "Carol"},
		{EmployeeID: "", FullName: "Blank"},
	}

	diff := DiffReceivers(existing, incoming)

	if len(diff.Insert) != 1 || diff.Insert[0].EmployeeID != "e3" {
		t.Fatalf("expected e3 inserted, got %+v", diff.Insert)
	}
	if updated, ok := diff.Update["row2"]; !ok || updated.FullName != "Bob Updated" {
		t.Fatalf("expected row2 updated, got %+v", diff.Update)
	}
	if len(diff.Delete) != 1 || diff.Delete[0] != "row1" {
		t.Fatalf("expected row1 deleted, got %+v", diff.Delete)
	}
	if diff.Skipped != 1 {
		t.Fatalf("expected one skipped blank entry, got %d", diff.Skipped)
	}
}

func TestDiffReceiversTrimsEmployeeIDs(t *testing.T) {
	existing := []FeedbackReceiver{
		{ID: "row1", EmployeeID: "e1", FullName: "Alice"},
	}
	incoming := []ReceiverInput{
		{EmployeeID: " e1 ", FullName: "Alice Updated"},
		{EmployeeID: "\te2\n", FullName: "Bob"},
	}

	diff := DiffReceivers(existing, incoming)

	if updated, ok := diff.Update["row1"]; !ok || updated.EmployeeID != "e1" {
		t.Fatalf("expected row1 update to carry the trimmed id, got %+v", diff.Update)
	}
	if len(diff.Insert) != 1 || diff.Insert[0].EmployeeID != "e2" {
		t.Fatalf("expected insert to carry the trimmed id, got %+v", diff.Insert)
	}
	if len(diff.Delete) != 0 {
		t.Fatalf("expected no deletes, got %+v", diff.Delete)
	}
}
