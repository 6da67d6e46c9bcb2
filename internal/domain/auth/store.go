package auth

import (
	"context"

	"reviewhub/internal/platform/querier"
)

type AuthUser struct {
	ID             string
	OrganizationID string
	EmployeeID     string
	Email          string
	PasswordHash   string
	Role           string
	DisplayName    string
	Status         string
}

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) FindActiveUserByEmail(ctx context.Context, email string) (AuthUser, error) {
	var user AuthUser
	err := s.DB.QueryRow(ctx, `
    SELECT id, organization_id, COALESCE(employee_id::text, ''), email, password_hash, role, display_name, status
    FROM users
    WHERE email = $1 AND status = 'active'
  `, email).Scan(&user.ID, &user.OrganizationID, &user.EmployeeID, &user.Email, &user.PasswordHash, &user.Role, &user.DisplayName, &user.Status)
	if err != nil {
		return AuthUser{}, err
	}
	return user, nil
}

func (s *Store) UpdateLastLogin(ctx context.Context, userID string) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET last_login_at = now() WHERE id = $1", userID)
	return err
}
