package review

import (
	"strings"
	"time"
)

// ValidateTransition applies the cycle lifecycle table:
// draft → open → closed → published, published terminal.
func ValidateTransition(current, next string) error {
	switch current {
	case CycleStatusDraft:
		if next != CycleStatusOpen {
			return ErrDraftCycleOnlyOpened
		}
	case CycleStatusOpen:
		if next != CycleStatusClosed {
			return ErrOpenCycleOnlyClosed
		}
	case CycleStatusClosed:
		if next != CycleStatusPublished {
			return ErrClosedCycleOnlyPublished
		}
	case CycleStatusPublished:
		return ErrPublishedCycleImmutable
	default:
		return ErrUnknownCycleStatus
	}
	return nil
}

// ValidateCycleDates checks that both deadlines fall within [start, end].
func ValidateCycleDates(cycle EvaluationCycle) error {
	if cycle.StartDate.IsZero() || cycle.EndDate.IsZero() {
		return ErrInvalidDateWindow
	}
	if cycle.EndDate.Before(cycle.StartDate) {
		return ErrInvalidDateWindow
	}
	if outsideWindow(cycle.SelfEvalDeadline, cycle.StartDate, cycle.EndDate) {
		return ErrInvalidDateWindow
	}
	if outsideWindow(cycle.FeedbackDeadline, cycle.StartDate, cycle.EndDate) {
		return ErrInvalidDateWindow
	}
	return nil
}

func outsideWindow(deadline, start, end time.Time) bool {
	if deadline.IsZero() {
		return true
	}
	return deadline.Before(start) || deadline.After(end)
}

// BuildAssignedReviewers converts a reviewer request into assignment entries,
// dropping self-assignments and starting everyone at in_progress.
func BuildAssignedReviewers(revieweeID string, reviewers []ReviewerRef) []AssignedReviewer {
	assigned := make([]AssignedReviewer, 0, len(reviewers))
	for _, reviewer := range reviewers {
		id := strings.TrimSpace(reviewer.ReviewerID)
		if id == "" || id == revieweeID {
			continue
		}
		assigned = append(assigned, AssignedReviewer{
			ReviewerID: id,
			Role:       reviewer.Role,
			Status:     ReviewerStatusInProgress,
		})
	}
	return assigned
}

// AggregateStatus folds the reviewer statuses of one assignment record into
// the receiver-level status. Unrecognized statuses fall back to not_assigned.
func AggregateStatus(reviewers []AssignedReviewer) string {
	if len(reviewers) == 0 {
		return ReceiverStatusNotAssigned
	}
	completed := 0
	inProgress := 0
	for _, reviewer := range reviewers {
		switch reviewer.Status {
		case ReviewerStatusCompleted:
			completed++
		case ReviewerStatusInProgress:
			inProgress++
		}
	}
	if completed == len(reviewers) {
		return ReceiverStatusCompleted
	}
	if inProgress > 0 {
		return ReceiverStatusInProgress
	}
	return ReceiverStatusNotAssigned
}

// ValidateReceiverBatch checks the whole batch before anything is written.
func ValidateReceiverBatch(batch ReceiverBatch) error {
	if strings.TrimSpace(batch.CycleID) == "" {
		return ErrCycleIDRequired
	}
	if strings.TrimSpace(batch.QuestionnaireID) == "" {
		return ErrQuestionnaireRequired
	}
	if len(batch.Receivers) == 0 {
		return ErrEmptyReceiverList
	}
	seen := make(map[string]bool, len(batch.Receivers))
	for _, receiver := range batch.Receivers {
		id := strings.TrimSpace(receiver.EmployeeID)
		if id == "" {
			return ErrEmployeeIDRequired
		}
		if seen[id] {
			return ErrDuplicateReceiverInBatch
		}
		seen[id] = true
	}
	return nil
}

// ReceiverDiff is the upsert-and-prune plan for updateReceivers.
type ReceiverDiff struct {
	Insert []ReceiverInput
	Update map[string]ReceiverInput // keyed by existing receiver row id
	Delete []string                 // existing receiver row ids
	// Skipped counts incoming entries dropped for a blank employee id.
	Skipped int
}

// DiffReceivers compares persisted receivers with the incoming list:
// absent rows are deleted, matching rows updated in place, new ones inserted.
func DiffReceivers(existing []FeedbackReceiver, incoming []ReceiverInput) ReceiverDiff {
	diff := ReceiverDiff{Update: map[string]ReceiverInput{}}

	byEmployee := make(map[string]FeedbackReceiver, len(existing))
	for _, receiver := range existing {
		byEmployee[receiver.EmployeeID] = receiver
	}

	wanted := make(map[string]bool, len(incoming))
	for _, input := range incoming {
		id := strings.TrimSpace(input.EmployeeID)
		if id == "" {
			diff.Skipped++
			continue
		}
		if wanted[id] {
			continue
		}
		wanted[id] = true
		input.EmployeeID = id
		if current, ok := byEmployee[id]; ok {
			diff.Update[current.ID] = input
		} else {
			diff.Insert = append(diff.Insert, input)
		}
	}

	for _, receiver := range existing {
		if !wanted[receiver.EmployeeID] {
			diff.Delete = append(diff.Delete, receiver.ID)
		}
	}
	return diff
}
