package review

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
)

func (s *Store) GetProvider(ctx context.Context, orgID, employeeID, cycleID string) (FeedbackProvider, bool, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT id, organization_id, employee_id, cycle_id, COALESCE(questionnaire_id::text, ''), reviewers, created_at, updated_at
    FROM feedback_providers
    WHERE organization_id = $1 AND employee_id = $2 AND cycle_id = $3
  `, orgID, employeeID, cycleID)
	provider, err := scanProvider(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return FeedbackProvider{}, false, nil
	}
	if err != nil {
		return FeedbackProvider{}, false, err
	}
	return provider, true, nil
}

func (s *Store) InsertProvider(ctx context.Context, provider FeedbackProvider) (FeedbackProvider, error) {
	reviewersJSON, err := json.Marshal(provider.Reviewers)
	if err != nil {
		return FeedbackProvider{}, err
	}
	row := s.DB.QueryRow(ctx, `
    INSERT INTO feedback_providers (organization_id, employee_id, cycle_id, questionnaire_id, reviewers)
    VALUES ($1, $2, $3, NULLIF($4, '')::uuid, $5)
    RETURNING id, organization_id, employee_id, cycle_id, COALESCE(questionnaire_id::text, ''), reviewers, created_at, updated_at
  `, provider.OrganizationID, provider.EmployeeID, provider.CycleID, provider.QuestionnaireID, reviewersJSON)
	return scanProvider(row)
}

// ReplaceReviewers swaps the reviewer document in one statement so
// concurrent completion flips serialize on the row.
func (s *Store) ReplaceReviewers(ctx context.Context, orgID, providerID string, reviewers []AssignedReviewer) error {
	reviewersJSON, err := json.Marshal(reviewers)
	if err != nil {
		return err
	}
	tag, err := s.DB.Exec(ctx, `
    UPDATE feedback_providers
    SET reviewers = $3, updated_at = now()
    WHERE organization_id = $1 AND id = $2
  `, orgID, providerID, reviewersJSON)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProviderNotFound
	}
	return nil
}

func (s *Store) ListProvidersByCycle(ctx context.Context, orgID, cycleID string) ([]FeedbackProvider, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, organization_id, employee_id, cycle_id, COALESCE(questionnaire_id::text, ''), reviewers, created_at, updated_at
    FROM feedback_providers
    WHERE organization_id = $1 AND cycle_id = $2
    ORDER BY created_at ASC
  `, orgID, cycleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var providers []FeedbackProvider
	for rows.Next() {
		provider, err := scanProvider(rows)
		if err != nil {
			return nil, err
		}
		providers = append(providers, provider)
	}
	return providers, rows.Err()
}

func scanProvider(row pgx.Row) (FeedbackProvider, error) {
	var provider FeedbackProvider
	var reviewersJSON []byte
	err := row.Scan(
		&provider.ID, &provider.OrganizationID, &provider.EmployeeID, &provider.CycleID,
		&provider.QuestionnaireID, &reviewersJSON, &provider.CreatedAt, &provider.UpdatedAt,
	)
	if err != nil {
		return FeedbackProvider{}, err
	}
	if err := json.Unmarshal(reviewersJSON, &provider.Reviewers); err != nil {
		return FeedbackProvider{}, err
	}
	return provider, nil
}

func (s *Store) InsertResponse(ctx context.Context, orgID string, response FeedbackResponse) (FeedbackResponse, error) {
	answersJSON, err := json.Marshal(response.Answers)
	if err != nil {
		return FeedbackResponse{}, err
	}
	row := s.DB.QueryRow(ctx, `
    INSERT INTO feedback_responses
      (organization_id, form_id, employee_id, cycle_id, reviewer_id, reviewer_role, answers, submitted_at, status)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    RETURNING id, COALESCE(form_id, ''), employee_id, cycle_id, reviewer_id, COALESCE(reviewer_role, ''), answers, submitted_at, status
  `, orgID, response.FormID, response.EmployeeID, response.CycleID, response.ReviewerID,
		response.ReviewerRole, answersJSON, response.SubmittedAt, response.Status)
	return scanResponse(row)
}

func (s *Store) ListResponses(ctx context.Context, orgID, employeeID, cycleID string) ([]FeedbackResponse, error) {
	query := `
    SELECT id, COALESCE(form_id, ''), employee_id, cycle_id, reviewer_id, COALESCE(reviewer_role, ''), answers, submitted_at, status
    FROM feedback_responses
    WHERE organization_id = $1 AND employee_id = $2
  `
	args := []any{orgID, employeeID}
	if cycleID != "" {
		query += " AND cycle_id = $3"
		args = append(args, cycleID)
	}
	query += " ORDER BY submitted_at ASC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var responses []FeedbackResponse
	for rows.Next() {
		response, err := scanResponse(rows)
		if err != nil {
			return nil, err
		}
		responses = append(responses, response)
	}
	return responses, rows.Err()
}

func scanResponse(row pgx.Row) (FeedbackResponse, error) {
	var response FeedbackResponse
	var answersJSON []byte
	err := row.Scan(
		&response.ID, &response.FormID, &response.EmployeeID, &response.CycleID,
		&response.ReviewerID, &response.ReviewerRole, &answersJSON, &response.SubmittedAt, &response.Status,
	)
	if err != nil {
		return FeedbackResponse{}, err
	}
	if err := json.Unmarshal(answersJSON, &response.Answers); err != nil {
		return FeedbackResponse{}, err
	}
	return response, nil
}
