package employee

import (
	"context"
)

// EmployeeRepository is the narrow slice of the employee directory this
// subsystem depends on. The full employee aggregate lives elsewhere.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)

	// UpdateWorkType changes the session-creation policy for an employee.
	UpdateWorkType(ctx context.Context, id string, workType WorkType) (Employee, error)
}
