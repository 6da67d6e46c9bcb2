package review

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

const cycleColumns = `
    id, organization_id, name, type, COALESCE(department, ''),
    start_date, end_date, self_eval_deadline, feedback_deadline,
    COALESCE(questionnaire_id::text, ''), status, created_at, updated_at`

func (s *Store) InsertCycle(ctx context.Context, cycle EvaluationCycle) (EvaluationCycle, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO review_cycles
      (organization_id, name, type, department, start_date, end_date, self_eval_deadline, feedback_deadline, questionnaire_id, status)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, '')::uuid, $10)
    RETURNING`+cycleColumns+`
  `, cycle.OrganizationID, cycle.Name, cycle.Type, cycle.Department, cycle.StartDate, cycle.EndDate,
		cycle.SelfEvalDeadline, cycle.FeedbackDeadline, cycle.QuestionnaireID, cycle.Status)
	return scanCycle(row)
}

func (s *Store) GetCycle(ctx context.Context, orgID, cycleID string) (EvaluationCycle, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT`+cycleColumns+`
    FROM review_cycles
    WHERE organization_id = $1 AND id = $2
  `, orgID, cycleID)
	cycle, err := scanCycle(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return EvaluationCycle{}, ErrCycleNotFound
	}
	return cycle, err
}

func (s *Store) UpdateCycle(ctx context.Context, cycle EvaluationCycle) (EvaluationCycle, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE review_cycles
    SET name = $3, type = $4, department = $5, start_date = $6, end_date = $7,
        self_eval_deadline = $8, feedback_deadline = $9,
        questionnaire_id = NULLIF($10, '')::uuid, updated_at = now()
    WHERE organization_id = $1 AND id = $2
    RETURNING`+cycleColumns+`
  `, cycle.OrganizationID, cycle.ID, cycle.Name, cycle.Type, cycle.Department, cycle.StartDate,
		cycle.EndDate, cycle.SelfEvalDeadline, cycle.FeedbackDeadline, cycle.QuestionnaireID)
	updated, err := scanCycle(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return EvaluationCycle{}, ErrCycleNotFound
	}
	return updated, err
}

func (s *Store) UpdateCycleStatus(ctx context.Context, orgID, cycleID, status string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE review_cycles
    SET status = $3, updated_at = now()
    WHERE organization_id = $1 AND id = $2
  `, orgID, cycleID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCycleNotFound
	}
	return nil
}

func (s *Store) DeleteCycle(ctx context.Context, orgID, cycleID string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM review_cycles WHERE organization_id = $1 AND id = $2", orgID, cycleID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCycleNotFound
	}
	return nil
}

func (s *Store) ListCycles(ctx context.Context, orgID string) ([]EvaluationCycle, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+cycleColumns+`
    FROM review_cycles
    WHERE organization_id = $1
    ORDER BY created_at DESC
  `, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cycles []EvaluationCycle
	for rows.Next() {
		cycle, err := scanCycle(rows)
		if err != nil {
			return nil, err
		}
		cycles = append(cycles, cycle)
	}
	return cycles, rows.Err()
}

func (s *Store) CurrentActiveCycle(ctx context.Context, orgID string, today time.Time) (EvaluationCycle, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT`+cycleColumns+`
    FROM review_cycles
    WHERE organization_id = $1 AND status = $2 AND start_date <= $3 AND end_date >= $3
    ORDER BY created_at ASC
    LIMIT 1
  `, orgID, CycleStatusOpen, today)
	cycle, err := scanCycle(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return EvaluationCycle{}, ErrNoActiveCycle
	}
	return cycle, err
}

func scanCycle(row pgx.Row) (EvaluationCycle, error) {
	var cycle EvaluationCycle
	err := row.Scan(
		&cycle.ID, &cycle.OrganizationID, &cycle.Name, &cycle.Type, &cycle.Department,
		&cycle.StartDate, &cycle.EndDate, &cycle.SelfEvalDeadline, &cycle.FeedbackDeadline,
		&cycle.QuestionnaireID, &cycle.Status, &cycle.CreatedAt, &cycle.UpdatedAt,
	)
	if err != nil {
		return EvaluationCycle{}, err
	}
	return cycle, nil
}
