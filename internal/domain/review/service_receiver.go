package review

import (
	"context"
	"log/slog"
	"strings"
)

// AddReceivers registers the employees who must receive feedback in a cycle.
// The whole batch is validated before any write and the insert is
// all-or-nothing. Re-adding an already registered employee is a conflict;
// replacement goes through UpdateReceivers.
func (s *Service) AddReceivers(ctx context.Context, orgID string, batch ReceiverBatch) ([]FeedbackReceiver, error) {
	if err := ValidateReceiverBatch(batch); err != nil {
		return nil, err
	}

	existing, err := s.store.ListReceivers(ctx, orgID, batch.CycleID, batch.QuestionnaireID)
	if err != nil {
		return nil, err
	}
	registered := make(map[string]bool, len(existing))
	for _, receiver := range existing {
		registered[receiver.EmployeeID] = true
	}
	for _, input := range batch.Receivers {
		if registered[strings.TrimSpace(input.EmployeeID)] {
			return nil, ErrReceiverExists
		}
	}

	receivers := make([]FeedbackReceiver, 0, len(batch.Receivers))
	for _, input := range batch.Receivers {
		receivers = append(receivers, FeedbackReceiver{
			OrganizationID:  orgID,
			CycleID:         batch.CycleID,
			QuestionnaireID: batch.QuestionnaireID,
			EmployeeID:      strings.TrimSpace(input.EmployeeID),
			FullName:        input.FullName,
			Department:      input.Department,
			Email:           input.Email,
		})
	}
	return s.store.InsertReceivers(ctx, receivers)
}

// UpdateReceivers reconciles the persisted receiver set with the incoming
// list: missing entries are pruned, matches updated, new ones inserted.
// Entries with a blank employee id are skipped with a warning instead of
// failing the batch.
func (s *Service) UpdateReceivers(ctx context.Context, orgID, cycleID string, batch ReceiverBatch) ([]FeedbackReceiver, error) {
	if strings.TrimSpace(cycleID) == "" {
		return nil, ErrCycleIDRequired
	}
	if strings.TrimSpace(batch.QuestionnaireID) == "" {
		return nil, ErrQuestionnaireRequired
	}

	existing, err := s.store.ListReceivers(ctx, orgID, cycleID, batch.QuestionnaireID)
	if err != nil {
		return nil, err
	}

	diff := DiffReceivers(existing, batch.Receivers)
	if diff.Skipped > 0 {
		slog.Warn("receiver entries skipped for blank employee id", "org", orgID, "cycle", cycleID, "skipped", diff.Skipped)
	}
	if err := s.store.ApplyReceiverDiff(ctx, orgID, cycleID, batch.QuestionnaireID, diff); err != nil {
		return nil, err
	}
	return s.store.ListReceivers(ctx, orgID, cycleID, batch.QuestionnaireID)
}

// ListReceiverStatuses returns every receiver of a cycle with the aggregated
// status recomputed from the assignment records, so completion events are
// visible immediately.
func (s *Service) ListReceiverStatuses(ctx context.Context, orgID, cycleID string) ([]ReceiverView, error) {
	receivers, err := s.store.ListReceiversByCycle(ctx, orgID, cycleID)
	if err != nil {
		return nil, err
	}
	providers, err := s.store.ListProvidersByCycle(ctx, orgID, cycleID)
	if err != nil {
		return nil, err
	}

	byEmployee := make(map[string]FeedbackProvider, len(providers))
	reviewerIDs := make([]string, 0, len(providers))
	for _, provider := range providers {
		byEmployee[provider.EmployeeID] = provider
		for _, reviewer := range provider.Reviewers {
			reviewerIDs = append(reviewerIDs, reviewer.ReviewerID)
		}
	}

	names := map[string]string{}
	if s.names != nil && len(reviewerIDs) > 0 {
		resolved, err := s.names.ResolveNames(ctx, orgID, reviewerIDs)
		if err != nil {
			slog.Warn("reviewer name enrichment failed", "org", orgID, "cycle", cycleID, "err", err)
		} else {
			names = resolved
		}
	}

	views := make([]ReceiverView, 0, len(receivers))
	for _, receiver := range receivers {
		view := ReceiverView{FeedbackReceiver: receiver, Status: ReceiverStatusNotAssigned}
		if provider, ok := byEmployee[receiver.EmployeeID]; ok {
			view.Status = AggregateStatus(provider.Reviewers)
			view.Reviewers = make([]ReviewerView, 0, len(provider.Reviewers))
			for _, reviewer := range provider.Reviewers {
				name, ok := names[reviewer.ReviewerID]
				if !ok || name == "" {
					name = "Unknown"
				}
				view.Reviewers = append(view.Reviewers, ReviewerView{
					ReviewerID: reviewer.ReviewerID,
					FullName:   name,
					Role:       reviewer.Role,
					Status:     reviewer.Status,
				})
			}
		}
		views = append(views, view)
	}
	return views, nil
}
