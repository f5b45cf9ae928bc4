package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)

	// ListByManager returns the employees whose manager_id references the
	// given manager, ordered by full name.
	ListByManager(ctx context.Context, managerID string) ([]Employee, error)
}
