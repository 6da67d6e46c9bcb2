package review

import (
	"context"
	"log/slog"
	"strings"
)

func (s *Service) CreateCycle(ctx context.Context, orgID string, cycle EvaluationCycle) (EvaluationCycle, error) {
	cycle.OrganizationID = orgID
	cycle.Name = strings.TrimSpace(cycle.Name)
	if cycle.Name == "" {
		return EvaluationCycle{}, ErrCycleNameRequired
	}
	if err := ValidateCycleDates(cycle); err != nil {
		return EvaluationCycle{}, err
	}

	if cycle.QuestionnaireID == "" && cycle.Department != "" && s.questionnaires != nil {
		linked, ok, err := s.questionnaires.FirstByDepartment(ctx, orgID, cycle.Department)
		if err != nil {
			slog.Warn("cycle questionnaire auto-link failed", "org", orgID, "department", cycle.Department, "err", err)
		} else if ok {
			cycle.QuestionnaireID = linked.ID
		}
	}

	cycle.Status = CycleStatusDraft
	return s.store.InsertCycle(ctx, cycle)
}

func (s *Service) GetCycle(ctx context.Context, orgID, cycleID string) (EvaluationCycle, error) {
	return s.store.GetCycle(ctx, orgID, cycleID)
}

func (s *Service) ListCycles(ctx context.Context, orgID string) ([]EvaluationCycle, error) {
	return s.store.ListCycles(ctx, orgID)
}

// UpdateCycle full-replaces the mutable fields of a non-published cycle.
func (s *Service) UpdateCycle(ctx context.Context, orgID, cycleID string, patch EvaluationCycle) (EvaluationCycle, error) {
	current, err := s.store.GetCycle(ctx, orgID, cycleID)
	if err != nil {
		return EvaluationCycle{}, err
	}
	if current.Status == CycleStatusPublished {
		return EvaluationCycle{}, ErrPublishedCycleImmutable
	}

	patch.ID = current.ID
	patch.OrganizationID = orgID
	patch.Status = current.Status
	patch.Name = strings.TrimSpace(patch.Name)
	if patch.Name == "" {
		return EvaluationCycle{}, ErrCycleNameRequired
	}
	if err := ValidateCycleDates(patch); err != nil {
		return EvaluationCycle{}, err
	}
	return s.store.UpdateCycle(ctx, patch)
}

func (s *Service) UpdateCycleStatus(ctx context.Context, orgID, cycleID, next string) (EvaluationCycle, error) {
	current, err := s.store.GetCycle(ctx, orgID, cycleID)
	if err != nil {
		return EvaluationCycle{}, err
	}
	if err := ValidateTransition(current.Status, next); err != nil {
		return EvaluationCycle{}, err
	}
	if err := s.store.UpdateCycleStatus(ctx, orgID, cycleID, next); err != nil {
		return EvaluationCycle{}, err
	}
	current.Status = next
	return current, nil
}

func (s *Service) DeleteCycle(ctx context.Context, orgID, cycleID string) error {
	return s.store.DeleteCycle(ctx, orgID, cycleID)
}

// CurrentActiveCycle returns the open cycle whose window contains today.
// With overlapping open cycles the earliest created wins; uniqueness is not
// enforced anywhere.
func (s *Service) CurrentActiveCycle(ctx context.Context, orgID string) (EvaluationCycle, error) {
	return s.store.CurrentActiveCycle(ctx, orgID, s.now())
}
