package review

import (
	"context"
	"log/slog"
	"strings"
)

// AssignReviewers registers the reviewer list for a reviewee. The call is
// idempotent: an existing record for (org, reviewee, cycle) is returned
// unchanged, never overwritten. Replacement goes through UpdateReviewers.
func (s *Service) AssignReviewers(ctx context.Context, orgID, revieweeID string, req AssignmentRequest) (FeedbackProvider, error) {
	if strings.TrimSpace(revieweeID) == "" {
		return FeedbackProvider{}, ErrEmployeeIDRequired
	}
	if strings.TrimSpace(req.CycleID) == "" {
		return FeedbackProvider{}, ErrCycleIDRequired
	}

	existing, ok, err := s.store.GetProvider(ctx, orgID, revieweeID, req.CycleID)
	if err != nil {
		return FeedbackProvider{}, err
	}
	if ok {
		return existing, nil
	}

	provider := FeedbackProvider{
		OrganizationID:  orgID,
		EmployeeID:      revieweeID,
		CycleID:         req.CycleID,
		QuestionnaireID: req.QuestionnaireID,
		Reviewers:       BuildAssignedReviewers(revieweeID, req.Reviewers),
	}
	return s.store.InsertProvider(ctx, provider)
}

// UpdateReviewers replaces the reviewer list of an existing assignment
// record. The record must match both the cycle and the questionnaire of the
// request; a mismatch on either is treated as not found, not corrected.
// Every reviewer restarts at in_progress.
func (s *Service) UpdateReviewers(ctx context.Context, orgID, revieweeID string, req AssignmentRequest) (FeedbackProvider, error) {
	if strings.TrimSpace(req.CycleID) == "" {
		return FeedbackProvider{}, ErrCycleIDRequired
	}

	existing, ok, err := s.store.GetProvider(ctx, orgID, revieweeID, req.CycleID)
	if err != nil {
		return FeedbackProvider{}, err
	}
	if !ok || existing.QuestionnaireID != req.QuestionnaireID {
		return FeedbackProvider{}, ErrProviderNotFound
	}

	reviewers := BuildAssignedReviewers(revieweeID, req.Reviewers)
	if err := s.store.ReplaceReviewers(ctx, orgID, existing.ID, reviewers); err != nil {
		return FeedbackProvider{}, err
	}
	existing.Reviewers = reviewers
	return existing, nil
}

func (s *Service) GetProvider(ctx context.Context, orgID, revieweeID, cycleID string) (FeedbackProvider, error) {
	provider, ok, err := s.store.GetProvider(ctx, orgID, revieweeID, cycleID)
	if err != nil {
		return FeedbackProvider{}, err
	}
	if !ok {
		return FeedbackProvider{}, ErrProviderNotFound
	}
	return provider, nil
}

// MarkCompleted flips one reviewer's assignment status after a feedback
// response lands. A missing record or reviewer is a logged no-op: responses
// may race with assignment edits and that loss is accepted.
func (s *Service) MarkCompleted(ctx context.Context, orgID, revieweeID, cycleID, reviewerID string) error {
	provider, ok, err := s.store.GetProvider(ctx, orgID, revieweeID, cycleID)
	if err != nil {
		return err
	}
	if !ok {
		slog.Warn("completion for unknown assignment record", "org", orgID, "employee", revieweeID, "cycle", cycleID, "reviewer", reviewerID)
		return nil
	}

	found := false
	for i := range provider.Reviewers {
		if provider.Reviewers[i].ReviewerID == reviewerID {
			provider.Reviewers[i].Status = ReviewerStatusCompleted
			found = true
			break
		}
	}
	if !found {
		slog.Warn("completion for unassigned reviewer", "org", orgID, "employee", revieweeID, "cycle", cycleID, "reviewer", reviewerID)
		return nil
	}
	return s.store.ReplaceReviewers(ctx, orgID, provider.ID, provider.Reviewers)
}

// SubmitResponse persists an immutable feedback response and flips the
// matching reviewer to completed.
func (s *Service) SubmitResponse(ctx context.Context, orgID string, response FeedbackResponse) (FeedbackResponse, error) {
	if strings.TrimSpace(response.EmployeeID) == "" {
		return FeedbackResponse{}, ErrEmployeeIDRequired
	}
	if strings.TrimSpace(response.CycleID) == "" {
		return FeedbackResponse{}, ErrCycleIDRequired
	}
	if strings.TrimSpace(response.ReviewerID) == "" {
		return FeedbackResponse{}, ErrReviewerIDRequired
	}

	response.Status = ResponseStatusCompleted
	response.SubmittedAt = s.now()
	saved, err := s.store.InsertResponse(ctx, orgID, response)
	if err != nil {
		return FeedbackResponse{}, err
	}

	if err := s.MarkCompleted(ctx, orgID, saved.EmployeeID, saved.CycleID, saved.ReviewerID); err != nil {
		return FeedbackResponse{}, err
	}
	return saved, nil
}

func (s *Service) ListResponses(ctx context.Context, orgID, employeeID, cycleID string) ([]FeedbackResponse, error) {
	return s.store.ListResponses(ctx, orgID, employeeID, cycleID)
}
