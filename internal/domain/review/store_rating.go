package review

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
)

func (s *Store) InsertRating(ctx context.Context, rating FinalRating) (FinalRating, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO final_ratings (organization_id, employee_id, cycle_id, given_by, published)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING id, employee_id, cycle_id, organization_id, given_by, published, published_at, created_at
  `, rating.OrganizationID, rating.EmployeeID, rating.CycleID, rating.GivenBy, rating.Published)
	return scanRating(row)
}

func (s *Store) GetRating(ctx context.Context, orgID, ratingID string) (FinalRating, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, cycle_id, organization_id, given_by, published, published_at, created_at
    FROM final_ratings
    WHERE organization_id = $1 AND id = $2
  `, orgID, ratingID)
	rating, err := scanRating(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return FinalRating{}, ErrRatingNotFound
	}
	return rating, err
}

func (s *Store) MarkRatingPublished(ctx context.Context, orgID, ratingID string, publishedAt time.Time) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE final_ratings
    SET published = TRUE, published_at = $3
    WHERE organization_id = $1 AND id = $2
  `, orgID, ratingID, publishedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRatingNotFound
	}
	return nil
}

func (s *Store) ListRatings(ctx context.Context, orgID, employeeID, cycleID string) ([]FinalRating, error) {
	query := `
    SELECT id, employee_id, cycle_id, organization_id, given_by, published, published_at, created_at
    FROM final_ratings
    WHERE organization_id = $1
  `
	args := []any{orgID}
	if employeeID != "" {
		args = append(args, employeeID)
		query += " AND employee_id = $2"
	}
	if cycleID != "" {
		args = append(args, cycleID)
		query += " AND cycle_id = $" + strconv.Itoa(len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []FinalRating
	for rows.Next() {
		rating, err := scanRating(rows)
		if err != nil {
			return nil, err
		}
		ratings = append(ratings, rating)
	}
	return ratings, rows.Err()
}

func scanRating(row pgx.Row) (FinalRating, error) {
	var rating FinalRating
	err := row.Scan(
		&rating.ID, &rating.EmployeeID, &rating.CycleID, &rating.OrganizationID,
		&rating.GivenBy, &rating.Published, &rating.PublishedAt, &rating.CreatedAt,
	)
	if err != nil {
		return FinalRating{}, err
	}
	return rating, nil
}

func (s *Store) InsertSelfEvaluation(ctx context.Context, selfEval SelfEvaluation) (SelfEvaluation, error) {
	responsesJSON, err := json.Marshal(selfEval.Responses)
	if err != nil {
		return SelfEvaluation{}, err
	}
	row := s.DB.QueryRow(ctx, `
    INSERT INTO self_evaluations (organization_id, employee_id, responses, submitted_at, submitted)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING id, employee_id, organization_id, responses, submitted_at, submitted
  `, selfEval.OrganizationID, selfEval.EmployeeID, responsesJSON, selfEval.SubmittedAt, selfEval.Submitted)
	return scanSelfEvaluation(row)
}

func (s *Store) HasSubmittedSelfEvaluation(ctx context.Context, orgID, employeeID string) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM self_evaluations
    WHERE organization_id = $1 AND employee_id = $2 AND submitted = TRUE
  `, orgID, employeeID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) ListSelfEvaluations(ctx context.Context, orgID, employeeID string) ([]SelfEvaluation, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, organization_id, responses, submitted_at, submitted
    FROM self_evaluations
    WHERE organization_id = $1 AND employee_id = $2
    ORDER BY submitted_at DESC
  `, orgID, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var selfEvals []SelfEvaluation
	for rows.Next() {
		selfEval, err := scanSelfEvaluation(rows)
		if err != nil {
			return nil, err
		}
		selfEvals = append(selfEvals, selfEval)
	}
	return selfEvals, rows.Err()
}

func scanSelfEvaluation(row pgx.Row) (SelfEvaluation, error) {
	var selfEval SelfEvaluation
	var responsesJSON []byte
	err := row.Scan(
		&selfEval.ID, &selfEval.EmployeeID, &selfEval.OrganizationID,
		&responsesJSON, &selfEval.SubmittedAt, &selfEval.Submitted,
	)
	if err != nil {
		return SelfEvaluation{}, err
	}
	if err := json.Unmarshal(responsesJSON, &selfEval.Responses); err != nil {
		return SelfEvaluation{}, err
	}
	return selfEval, nil
}
