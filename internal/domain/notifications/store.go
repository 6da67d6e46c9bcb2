package notifications

import (
	"context"

	"reviewhub/internal/platform/querier"
)

type StoreAPI interface {
	CreateNotification(ctx context.Context, orgID, employeeID, ntype, title, body string) error
	EmployeeEmail(ctx context.Context, orgID, employeeID string) (string, error)
	ListNotifications(ctx context.Context, orgID, employeeID string, limit, offset int) ([]map[string]any, error)
	CountNotifications(ctx context.Context, orgID, employeeID string) (int, error)
	MarkRead(ctx context.Context, orgID, employeeID, notificationID string) error
}

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) CreateNotification(ctx context.Context, orgID, employeeID, ntype, title, body string) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO notifications (organization_id, employee_id, type, title, body)
    VALUES ($1,$2,$3,$4,$5)
  `, orgID, employeeID, ntype, title, body)
	return err
}

func (s *Store) EmployeeEmail(ctx context.Context, orgID, employeeID string) (string, error) {
	var email string
	if err := s.DB.QueryRow(ctx, "SELECT COALESCE(email, '') FROM employees WHERE organization_id = $1 AND id = $2", orgID, employeeID).Scan(&email); err != nil {
		return "", err
	}
	return email, nil
}

func (s *Store) ListNotifications(ctx context.Context, orgID, employeeID string, limit, offset int) ([]map[string]any, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, type, title, body, read_at, created_at
    FROM notifications
    WHERE organization_id = $1 AND employee_id = $2
    ORDER BY created_at DESC
    LIMIT $3 OFFSET $4
  `, orgID, employeeID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []map[string]any
	for rows.Next() {
		var id, ntype, title, body string
		var readAt, createdAt any
		if err := rows.Scan(&id, &ntype, &title, &body, &readAt, &createdAt); err != nil {
			return nil, err
		}
		out = append(out, map[string]any{
			"id":        id,
			"type":      ntype,
			"title":     title,
			"body":      body,
			"readAt":    readAt,
			"createdAt": createdAt,
		})
	}
	return out, rows.Err()
}

func (s *Store) CountNotifications(ctx context.Context, orgID, employeeID string) (int, error) {
	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM notifications WHERE organization_id = $1 AND employee_id = $2", orgID, employeeID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) MarkRead(ctx context.Context, orgID, employeeID, notificationID string) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE notifications
    SET read_at = now()
    WHERE organization_id = $1 AND employee_id = $2 AND id = $3
  `, orgID, employeeID, notificationID)
	return err
}
