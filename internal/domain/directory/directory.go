package directory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"reviewhub/internal/platform/querier"
)

// UnknownName is returned for employee ids that do not resolve within the
// organization. Callers render it as-is instead of failing the request.
const UnknownName = "Unknown"

type EmployeeRef struct {
	EmployeeID string `json:"employeeId"`
	FullName   string `json:"fullName"`
	Department string `json:"department"`
	Email      string `json:"email"`
}

type Service struct {
	DB querier.Querier
}

func New(db querier.Querier) *Service {
	return &Service{DB: db}
}

func (s *Service) GetEmployee(ctx context.Context, orgID, employeeID string) (EmployeeRef, bool, error) {
	var ref EmployeeRef
	err := s.DB.QueryRow(ctx, `
    SELECT id, full_name, COALESCE(department, ''), COALESCE(email, '')
    FROM employees
    WHERE organization_id = $1 AND id = $2
  `, orgID, employeeID).Scan(&ref.EmployeeID, &ref.FullName, &ref.Department, &ref.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return EmployeeRef{}, false, nil
	}
	if err != nil {
		return EmployeeRef{}, false, err
	}
	return ref, true, nil
}

// ResolveNames maps every requested employee id to a display name. Ids that
// do not resolve map to UnknownName.
func (s *Service) ResolveNames(ctx context.Context, orgID string, employeeIDs []string) (map[string]string, error) {
	names := make(map[string]string, len(employeeIDs))
	for _, id := range employeeIDs {
		names[id] = UnknownName
	}
	if len(employeeIDs) == 0 {
		return names, nil
	}

	rows, err := s.DB.Query(ctx, `
    SELECT id, full_name
    FROM employees
    WHERE organization_id = $1 AND id::text = ANY($2)
  `, orgID, employeeIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[id] = name
	}
	return names, rows.Err()
}
