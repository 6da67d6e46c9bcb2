package auth

import (
	"context"
	"errors"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

// Login verifies credentials and returns the matching user. It deliberately
// returns the same error for unknown email and wrong password.
func (s *Service) Login(ctx context.Context, email, password string) (AuthUser, error) {
	user, err := s.Store.FindActiveUserByEmail(ctx, email)
	if err != nil {
		return AuthUser{}, ErrInvalidCredentials
	}
	if err := CheckPassword(user.PasswordHash, password); err != nil {
		return AuthUser{}, ErrInvalidCredentials
	}
	if err := s.Store.UpdateLastLogin(ctx, user.ID); err != nil {
		return AuthUser{}, err
	}
	return user, nil
}
