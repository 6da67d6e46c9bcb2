package review

import (
	"context"
	"log/slog"
	"strings"
)

// ComputeRating produces exactly one unpublished FinalRating for an employee
// in a cycle. It reads the feedback responses and self-evaluations so the
// surrounding data is validated and logged, but derives no numeric score
// from them yet.
func (s *Service) ComputeRating(ctx context.Context, orgID, employeeID, cycleID, computedBy string) (FinalRating, error) {
	if strings.TrimSpace(employeeID) == "" {
		return FinalRating{}, ErrEmployeeIDRequired
	}
	if strings.TrimSpace(cycleID) == "" {
		return FinalRating{}, ErrCycleIDRequired
	}

	responses, err := s.store.ListResponses(ctx, orgID, employeeID, cycleID)
	if err != nil {
		return FinalRating{}, err
	}
	if len(responses) == 0 {
		slog.Warn("computing rating without feedback responses", "org", orgID, "employee", employeeID, "cycle", cycleID)
	}
	selfEvals, err := s.store.ListSelfEvaluations(ctx, orgID, employeeID)
	if err != nil {
		return FinalRating{}, err
	}
	if len(selfEvals) == 0 {
		slog.Warn("computing rating without self-evaluation", "org", orgID, "employee", employeeID, "cycle", cycleID)
	}

	givenBy := strings.TrimSpace(computedBy)
	if givenBy == "" {
		givenBy = SystemActor
	}
	rating := FinalRating{
		EmployeeID:     employeeID,
		CycleID:        cycleID,
		OrganizationID: orgID,
		GivenBy:        givenBy,
		Published:      false,
	}
	return s.store.InsertRating(ctx, rating)
}

// PublishRating flips a rating to published. The transition is one-way: a
// published rating is rejected on re-publish and never reverts.
func (s *Service) PublishRating(ctx context.Context, orgID, ratingID string) (FinalRating, error) {
	rating, err := s.store.GetRating(ctx, orgID, ratingID)
	if err != nil {
		return FinalRating{}, err
	}
	if rating.Published {
		return FinalRating{}, ErrRatingAlreadyPublished
	}

	publishedAt := s.now()
	if err := s.store.MarkRatingPublished(ctx, orgID, ratingID, publishedAt); err != nil {
		return FinalRating{}, err
	}
	rating.Published = true
	rating.PublishedAt = &publishedAt
	return rating, nil
}

// GetRatings is a pure read; no match yields an empty collection.
func (s *Service) GetRatings(ctx context.Context, orgID, employeeID, cycleID string) ([]FinalRating, error) {
	ratings, err := s.store.ListRatings(ctx, orgID, employeeID, cycleID)
	if err != nil {
		return nil, err
	}
	if ratings == nil {
		ratings = []FinalRating{}
	}
	return ratings, nil
}

// SubmitSelfEvaluation stores a self-evaluation. At most one submitted
// self-evaluation may exist per employee and organization.
func (s *Service) SubmitSelfEvaluation(ctx context.Context, orgID string, selfEval SelfEvaluation) (SelfEvaluation, error) {
	if strings.TrimSpace(selfEval.EmployeeID) == "" {
		return SelfEvaluation{}, ErrEmployeeIDRequired
	}

	if selfEval.Submitted {
		exists, err := s.store.HasSubmittedSelfEvaluation(ctx, orgID, selfEval.EmployeeID)
		if err != nil {
			return SelfEvaluation{}, err
		}
		if exists {
			return SelfEvaluation{}, ErrSelfEvaluationExists
		}
	}

	selfEval.OrganizationID = orgID
	selfEval.SubmittedAt = s.now()
	return s.store.InsertSelfEvaluation(ctx, selfEval)
}

func (s *Service) GetSelfEvaluations(ctx context.Context, orgID, employeeID string) ([]SelfEvaluation, error) {
	return s.store.ListSelfEvaluations(ctx, orgID, employeeID)
}
