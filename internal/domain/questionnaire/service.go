package questionnaire

import (
	"context"
	"strings"
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) Create(ctx context.Context, q Questionnaire) (string, error) {
	trimmed := q.Questions[:0]
	for _, question := range q.Questions {
		if strings.TrimSpace(question.Text) == "" {
			continue
		}
		trimmed = append(trimmed, question)
	}
	q.Questions = trimmed
	if len(q.Questions) == 0 {
		return "", ErrNoQuestions
	}

	setKey := QuestionSetKey(q.Questions)
	exists, err := s.store.SetKeyExists(ctx, q.OrganizationID, setKey)
	if err != nil {
		return "", err
	}
	if exists {
		return "", ErrDuplicateSet
	}
	return s.store.Insert(ctx, q, setKey)
}

func (s *Service) Get(ctx context.Context, orgID, id string) (Questionnaire, bool, error) {
	return s.store.GetByID(ctx, orgID, id)
}

func (s *Service) FirstByDepartment(ctx context.Context, orgID, department string) (Questionnaire, bool, error) {
	if strings.TrimSpace(department) == "" {
		return Questionnaire{}, false, nil
	}
	return s.store.FirstByDepartment(ctx, orgID, department)
}

func (s *Service) List(ctx context.Context, orgID string) ([]Questionnaire, error) {
	return s.store.List(ctx, orgID)
}
