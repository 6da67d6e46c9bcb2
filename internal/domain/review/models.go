package review

import "time"

type EvaluationCycle struct {
	ID               string    `json:"id"`
	OrganizationID   string    `json:"organizationId"`
	Name             string    `json:"name"`
	Type             string    `json:"type"`
	Department       string    `json:"department,omitempty"`
	StartDate        time.Time `json:"startDate"`
	EndDate          time.Time `json:"endDate"`
	SelfEvalDeadline time.Time `json:"selfEvalDeadline"`
	FeedbackDeadline time.Time `json:"feedbackDeadline"`
	QuestionnaireID  string    `json:"questionnaireId,omitempty"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type AssignedReviewer struct {
	ReviewerID string `json:"reviewerId"`
	Role       string `json:"role"`
	Status     string `json:"status"`
}

// FeedbackProvider is the assignment record: one row per reviewee and cycle,
// holding the full reviewer list as a single document.
type FeedbackProvider struct {
	ID              string             `json:"id"`
	OrganizationID  string             `json:"organizationId"`
	EmployeeID      string             `json:"employeeId"`
	CycleID         string             `json:"cycleId"`
	QuestionnaireID string             `json:"questionnaireId"`
	Reviewers       []AssignedReviewer `json:"reviewers"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

type FeedbackReceiver struct {
	ID              string    `json:"id"`
	OrganizationID  string    `json:"organizationId"`
	CycleID         string    `json:"cycleId"`
	QuestionnaireID string    `json:"questionnaireId"`
	EmployeeID      string    `json:"employeeId"`
	FullName        string    `json:"fullName"`
	Department      string    `json:"department"`
	Email           string    `json:"email,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

type QuestionAnswer struct {
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
}

type FeedbackResponse struct {
	ID           string           `json:"id"`
	FormID       string           `json:"formId"`
	EmployeeID   string           `json:"employeeId"`
	CycleID      string           `json:"cycleId"`
	ReviewerID   string           `json:"reviewerId"`
	ReviewerRole string           `json:"reviewerRole"`
	Answers      []QuestionAnswer `json:"answers"`
	SubmittedAt  time.Time        `json:"submittedAt"`
	Status       string           `json:"status"`
}

type SelfEvaluation struct {
	ID             string           `json:"id"`
	EmployeeID     string           `json:"employeeId"`
	OrganizationID string           `json:"organizationId"`
	Responses      []QuestionAnswer `json:"responses"`
	SubmittedAt    time.Time        `json:"submittedAt"`
	Submitted      bool             `json:"submitted"`
}

type FinalRating struct {
	ID             string     `json:"id"`
	EmployeeID     string     `json:"employeeId"`
	CycleID        string     `json:"cycleId"`
	OrganizationID string     `json:"organizationId"`
	GivenBy        string     `json:"givenBy"`
	Published      bool       `json:"published"`
	PublishedAt    *time.Time `json:"publishedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// ReviewerRef is a reviewer entry in an assignment request.
type ReviewerRef struct {
	ReviewerID string `json:"reviewerId"`
	Role       string `json:"role"`
}

type AssignmentRequest struct {
	CycleID         string        `json:"cycleId"`
	QuestionnaireID string        `json:"questionnaireId"`
	Reviewers       []ReviewerRef `json:"reviewers"`
}

type ReceiverInput struct {
	EmployeeID string `json:"employeeId"`
	FullName   string `json:"fullName"`
	Department string `json:"department"`
	Email      string `json:"email"`
}

type ReceiverBatch struct {
	CycleID         string          `json:"cycleId"`
	QuestionnaireID string          `json:"questionnaireId"`
	Receivers       []ReceiverInput `json:"receivers"`
}

// ReviewerView is an AssignedReviewer enriched with a display name.
type ReviewerView struct {
	ReviewerID string `json:"reviewerId"`
	FullName   string `json:"fullName"`
	Role       string `json:"role"`
	Status     string `json:"status"`
}

// ReceiverView is a FeedbackReceiver with its aggregated status, derived
// fresh from the assignment record on every read.
type ReceiverView struct {
	FeedbackReceiver
	Status    string         `json:"status"`
	Reviewers []ReviewerView `json:"reviewers"`
}
