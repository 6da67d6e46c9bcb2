package review

import (
	"context"
	"time"
)

type StoreAPI interface {
	InsertCycle(ctx context.Context, cycle EvaluationCycle) (EvaluationCycle, error)
	GetCycle(ctx context.Context, orgID, cycleID string) (EvaluationCycle, error)
	UpdateCycle(ctx context.Context, cycle EvaluationCycle) (EvaluationCycle, error)
	UpdateCycleStatus(ctx context.Context, orgID, cycleID, status string) error
	DeleteCycle(ctx context.Context, orgID, cycleID string) error
	ListCycles(ctx context.Context, orgID string) ([]EvaluationCycle, error)
	CurrentActiveCycle(ctx context.Context, orgID string, today time.Time) (EvaluationCycle, error)

	GetProvider(ctx context.Context, orgID, employeeID, cycleID string) (FeedbackProvider, bool, error)
	InsertProvider(ctx context.Context, provider FeedbackProvider) (FeedbackProvider, error)
	ReplaceReviewers(ctx context.Context, orgID, providerID string, reviewers []AssignedReviewer) error
	ListProvidersByCycle(ctx context.Context, orgID, cycleID string) ([]FeedbackProvider, error)

	ListReceivers(ctx context.Context, orgID, cycleID, questionnaireID string) ([]FeedbackReceiver, error)
	ListReceiversByCycle(ctx context.Context, orgID, cycleID string) ([]FeedbackReceiver, error)
	InsertReceivers(ctx context.Context, receivers []FeedbackReceiver) ([]FeedbackReceiver, error)
	ApplyReceiverDiff(ctx context.Context, orgID, cycleID, questionnaireID string, diff ReceiverDiff) error

	InsertResponse(ctx context.Context, orgID string, response FeedbackResponse) (FeedbackResponse, error)
	ListResponses(ctx context.Context, orgID, employeeID, cycleID string) ([]FeedbackResponse, error)

	InsertSelfEvaluation(ctx context.Context, selfEval SelfEvaluation) (SelfEvaluation, error)
	HasSubmittedSelfEvaluation(ctx context.Context, orgID, employeeID string) (bool, error)
	ListSelfEvaluations(ctx context.Context, orgID, employeeID string) ([]SelfEvaluation, error)

	InsertRating(ctx context.Context, rating FinalRating) (FinalRating, error)
	GetRating(ctx context.Context, orgID, ratingID string) (FinalRating, error)
	MarkRatingPublished(ctx context.Context, orgID, ratingID string, publishedAt time.Time) error
	ListRatings(ctx context.Context, orgID, employeeID, cycleID string) ([]FinalRating, error)
}
