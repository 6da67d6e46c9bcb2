package questionnaire

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"

	"reviewhub/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) Insert(ctx context.Context, q Questionnaire, setKey string) (string, error) {
	questionsJSON, err := json.Marshal(q.Questions)
	if err != nil {
		return "", err
	}
	var id string
	err = s.DB.QueryRow(ctx, `
    INSERT INTO questionnaires (organization_id, name, department, questions, question_set_key)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING id
  `, q.OrganizationID, q.Name, q.Department, questionsJSON, setKey).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) SetKeyExists(ctx context.Context, orgID, setKey string) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM questionnaires
    WHERE organization_id = $1 AND question_set_key = $2
  `, orgID, setKey).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) GetByID(ctx context.Context, orgID, id string) (Questionnaire, bool, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT id, organization_id, name, COALESCE(department, ''), questions, created_at
    FROM questionnaires
    WHERE organization_id = $1 AND id = $2
  `, orgID, id)
	return scanQuestionnaire(row)
}

// FirstByDepartment returns the oldest questionnaire registered for a
// department. ok=false means none exists, which callers treat as non-fatal.
func (s *Store) FirstByDepartment(ctx context.Context, orgID, department string) (Questionnaire, bool, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT id, organization_id, name, COALESCE(department, ''), questions, created_at
    FROM questionnaires
    WHERE organization_id = $1 AND department = $2
    ORDER BY created_at ASC
    LIMIT 1
  `, orgID, department)
	return scanQuestionnaire(row)
}

func (s *Store) List(ctx context.Context, orgID string) ([]Questionnaire, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, organization_id, name, COALESCE(department, ''), questions, created_at
    FROM questionnaires
    WHERE organization_id = $1
    ORDER BY created_at DESC
  `, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Questionnaire
	for rows.Next() {
		var q Questionnaire
		var questionsJSON []byte
		if err := rows.Scan(&q.ID, &q.OrganizationID, &q.Name, &q.Department, &questionsJSON, &q.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(questionsJSON, &q.Questions); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestionnaire(row rowScanner) (Questionnaire, bool, error) {
	var q Questionnaire
	var questionsJSON []byte
	if err := row.Scan(&q.ID, &q.OrganizationID, &q.Name, &q.Department, &questionsJSON, &q.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Questionnaire{}, false, nil
		}
		return Questionnaire{}, false, err
	}
	if err := json.Unmarshal(questionsJSON, &q.Questions); err != nil {
		return Questionnaire{}, false, err
	}
	return q, true, nil
}
