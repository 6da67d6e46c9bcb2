package review

import "errors"

// Transition rejections carry the exact user-facing message for each source
// state.
var (
	ErrDraftCycleOnlyOpened     = errors.New("Draft cycle can only be opened")
	ErrOpenCycleOnlyClosed      = errors.New("Open cycle can only be closed")
	ErrClosedCycleOnlyPublished = errors.New("Closed cycle can only be published")
	ErrPublishedCycleImmutable  = errors.New("Published cycle cannot be modified")
	ErrUnknownCycleStatus       = errors.New("unknown cycle status")
)

var (
	ErrCycleNotFound    = errors.New("review cycle not found")
	ErrNoActiveCycle    = errors.New("no active review cycle for today")
	ErrProviderNotFound = errors.New("feedback provider record not found")
	ErrRatingNotFound   = errors.New("final rating not found")
)

var (
	ErrInvalidDateWindow     = errors.New("cycle deadlines must fall within the start and end dates")
	ErrCycleNameRequired     = errors.New("cycle name is required")
	ErrCycleIDRequired       = errors.New("cycle id is required")
	ErrQuestionnaireRequired = errors.New("questionnaire id is required")
	ErrEmployeeIDRequired    = errors.New("employee id is required")
	ErrReviewerIDRequired    = errors.New("reviewer id is required")
	ErrEmptyReceiverList     = errors.New("receiver list must not be empty")
)

var (
	ErrDuplicateReceiverInBatch = errors.New("duplicate employee id in receiver batch")
	ErrReceiverExists           = errors.New("feedback receiver already registered for this cycle")
	ErrSelfEvaluationExists     = errors.New("a submitted self-evaluation already exists for this employee")
	ErrRatingAlreadyPublished   = errors.New("final rating is already published")
)

// IsValidation reports whether err is a bad-input rejection.
func IsValidation(err error) bool {
	for _, candidate := range []error{
		ErrInvalidDateWindow, ErrCycleNameRequired, ErrCycleIDRequired,
		ErrQuestionnaireRequired, ErrEmployeeIDRequired, ErrReviewerIDRequired,
		ErrEmptyReceiverList,
	} {
		if errors.Is(err, candidate) {
			return true
		}
	}
	return false
}

// IsConflict reports whether err is a duplicate-resource rejection.
func IsConflict(err error) bool {
	for _, candidate := range []error{ErrDuplicateReceiverInBatch, ErrReceiverExists, ErrSelfEvaluationExists} {
		if errors.Is(err, candidate) {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err is a missing-resource rejection.
func IsNotFound(err error) bool {
	for _, candidate := range []error{ErrCycleNotFound, ErrNoActiveCycle, ErrProviderNotFound, ErrRatingNotFound} {
		if errors.Is(err, candidate) {
			return true
		}
	}
	return false
}

// IsInvalidOperation reports whether err is an illegal state transition.
func IsInvalidOperation(err error) bool {
	for _, candidate := range []error{
		ErrDraftCycleOnlyOpened, ErrOpenCycleOnlyClosed, ErrClosedCycleOnlyPublished,
		ErrPublishedCycleImmutable, ErrUnknownCycleStatus, ErrRatingAlreadyPublished,
	} {
		if errors.Is(err, candidate) {
			return true
		}
	}
	return false
}
