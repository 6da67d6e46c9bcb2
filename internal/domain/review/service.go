package review

import (
	"context"
	"time"

	"reviewhub/internal/domain/questionnaire"
)

// QuestionnaireDirectory is the questionnaire lookup the cycle auto-link
// depends on. ok=false is a silent miss, never an error for the caller.
type QuestionnaireDirectory interface {
	FirstByDepartment(ctx context.Context, orgID, department string) (questionnaire.Questionnaire, bool, error)
}

// NameResolver enriches reviewer lists with display names. Unresolvable ids
// map to a sentinel name instead of failing the read.
type NameResolver interface {
	ResolveNames(ctx context.Context, orgID string, employeeIDs []string) (map[string]string, error)
}

type Service struct {
	store          StoreAPI
	questionnaires QuestionnaireDirectory
	names          NameResolver
	now            func() time.Time
}

func NewService(store StoreAPI, questionnaires QuestionnaireDirectory, names NameResolver) *Service {
	return &Service{
		store:          store,
		questionnaires: questionnaires,
		names:          names,
		now:            time.Now,
	}
}
