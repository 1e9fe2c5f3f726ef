package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, e Employee) (Employee, error)
	GetByID(ctx context.Context, id string, branchID string) (Employee, error)

	// GetByCode resolves the kiosk code to an employee within the branch.
	GetByCode(ctx context.Context, code int, branchID string) (Employee, error)

	List(ctx context.Context, filter EmployeeFilter, branchID string) ([]Employee, int64, error)
	Update(ctx context.Context, e Employee) error
	Deactivate(ctx context.Context, id string, branchID string) error
	NextCode(ctx context.Context, branchID string) (int, error)
}
