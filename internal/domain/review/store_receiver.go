package review

import (
	"context"

	"github.com/jackc/pgx/v5"
)

const receiverColumns = `
    id, organization_id, cycle_id, COALESCE(questionnaire_id::text, ''), employee_id,
    full_name, COALESCE(department, ''), COALESCE(email, ''), created_at`

func (s *Store) ListReceivers(ctx context.Context, orgID, cycleID, questionnaireID string) ([]FeedbackReceiver, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+receiverColumns+`
    FROM feedback_receivers
    WHERE organization_id = $1 AND cycle_id = $2 AND COALESCE(questionnaire_id::text, '') = $3
    ORDER BY created_at ASC
  `, orgID, cycleID, questionnaireID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReceivers(rows)
}

func (s *Store) ListReceiversByCycle(ctx context.Context, orgID, cycleID string) ([]FeedbackReceiver, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+receiverColumns+`
    FROM feedback_receivers
    WHERE organization_id = $1 AND cycle_id = $2
    ORDER BY created_at ASC
  `, orgID, cycleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReceivers(rows)
}

// InsertReceivers writes the whole batch in one transaction; a failure on
// any row leaves nothing behind.
func (s *Store) InsertReceivers(ctx context.Context, receivers []FeedbackReceiver) ([]FeedbackReceiver, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	inserted := make([]FeedbackReceiver, 0, len(receivers))
	for _, receiver := range receivers {
		row := tx.QueryRow(ctx, `
      INSERT INTO feedback_receivers (organization_id, cycle_id, questionnaire_id, employee_id, full_name, department, email)
      VALUES ($1, $2, NULLIF($3, '')::uuid, $4, $5, $6, NULLIF($7, ''))
      RETURNING`+receiverColumns+`
    `, receiver.OrganizationID, receiver.CycleID, receiver.QuestionnaireID, receiver.EmployeeID,
			receiver.FullName, receiver.Department, receiver.Email)
		saved, err := scanReceiver(row)
		if err != nil {
			return nil, err
		}
		inserted = append(inserted, saved)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return inserted, nil
}

// ApplyReceiverDiff runs the upsert-and-prune plan in one transaction.
func (s *Store) ApplyReceiverDiff(ctx context.Context, orgID, cycleID, questionnaireID string, diff ReceiverDiff) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, id := range diff.Delete {
		if _, err := tx.Exec(ctx, "DELETE FROM feedback_receivers WHERE organization_id = $1 AND id = $2", orgID, id); err != nil {
			return err
		}
	}
	for id, input := range diff.Update {
		if _, err := tx.Exec(ctx, `
      UPDATE feedback_receivers
      SET full_name = $3, department = $4, email = NULLIF($5, '')
      WHERE organization_id = $1 AND id = $2
    `, orgID, id, input.FullName, input.Department, input.Email); err != nil {
			return err
		}
	}
	for _, input := range diff.Insert {
		if _, err := tx.Exec(ctx, `
      INSERT INTO feedback_receivers (organization_id, cycle_id, questionnaire_id, employee_id, full_name, department, email)
      VALUES ($1, $2, NULLIF($3, '')::uuid, $4, $5, $6, NULLIF($7, ''))
    `, orgID, cycleID, questionnaireID, input.EmployeeID, input.FullName, input.Department, input.Email); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func collectReceivers(rows pgx.Rows) ([]FeedbackReceiver, error) {
	var receivers []FeedbackReceiver
	for rows.Next() {
		receiver, err := scanReceiver(rows)
		if err != nil {
			return nil, err
		}
		receivers = append(receivers, receiver)
	}
	return receivers, rows.Err()
}

func scanReceiver(row pgx.Row) (FeedbackReceiver, error) {
	var receiver FeedbackReceiver
	err := row.Scan(
		&receiver.ID, &receiver.OrganizationID, &receiver.CycleID, &receiver.QuestionnaireID,
		&receiver.EmployeeID, &receiver.FullName, &receiver.Department, &receiver.Email, &receiver.CreatedAt,
	)
	if err != nil {
		return FeedbackReceiver{}, err
	}
	return receiver, nil
}
