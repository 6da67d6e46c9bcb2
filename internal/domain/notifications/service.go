package notifications

import (
	"context"
	"log/slog"
)

type Mailer interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

type Service struct {
	store        StoreAPI
	Mailer       Mailer
	EmailEnabled bool
	From         string
}

func New(store StoreAPI, mailer Mailer) *Service {
	return &Service{store: store, Mailer: mailer, From: "no-reply@example.com"}
}

// Notify records an in-app notification for an employee and, when email is
// enabled, fans it out best-effort. Email failures never fail the caller.
func (s *Service) Notify(ctx context.Context, orgID, employeeID, ntype, title, body string) error {
	if employeeID == "" {
		return nil
	}
	if err := s.store.CreateNotification(ctx, orgID, employeeID, ntype, title, body); err != nil {
		return err
	}

	if s.Mailer == nil || !s.EmailEnabled {
		return nil
	}
	email, err := s.store.EmployeeEmail(ctx, orgID, employeeID)
	if err != nil {
		slog.Warn("notification email lookup failed", "err", err)
		return nil
	}
	if email == "" {
		return nil
	}
	if err := s.Mailer.Send(ctx, s.From, email, title, body); err != nil {
		slog.Warn("notification email send failed", "err", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, orgID, employeeID string, limit, offset int) ([]map[string]any, error) {
	return s.store.ListNotifications(ctx, orgID, employeeID, limit, offset)
}

func (s *Service) Count(ctx context.Context, orgID, employeeID string) (int, error) {
	return s.store.CountNotifications(ctx, orgID, employeeID)
}

func (s *Service) MarkRead(ctx context.Context, orgID, employeeID, notificationID string) error {
	return s.store.MarkRead(ctx, orgID, employeeID, notificationID)
}
