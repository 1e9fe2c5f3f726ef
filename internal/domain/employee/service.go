package employee

import "context"

type EmployeeService interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	Get(ctx context.Context, id string, branchID string) (EmployeeResponse, error)
	List(ctx context.Context, filter EmployeeFilter, branchID string) (ListEmployeesResponse, error)
	Update(ctx context.Context, branchID string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Deactivate(ctx context.Context, id string, branchID string) error
}
