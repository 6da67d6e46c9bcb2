package notifications

const (
	TypeReviewAssigned    = "review_assigned"
	TypeFeedbackSubmitted = "feedback_submitted"
	TypeRatingPublished   = "rating_published"
	TypeCycleOpened       = "cycle_opened"
)
