package employee

import (
	"context"
	"time"

	"github.com/eigenfit/eigenfit-backend-go/internal/domain/employee"
)

type EmployeeServiceImpl struct {
	employee.EmployeeRepository
}

func NewEmployeeService(repo employee.EmployeeRepository) *EmployeeServiceImpl {
	return &EmployeeServiceImpl{EmployeeRepository: repo}
}

func toResponse(e employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:        e.ID,
		BranchID:  e.BranchID,
		Code:      e.Code,
		FullName:  e.FullName,
		Email:     e.Email,
		Phone:     e.Phone,
		Position:  e.Position,
		Active:    e.Active,
		CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: e.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	code, err := s.EmployeeRepository.NextCode(ctx, req.BranchID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	created, err := s.EmployeeRepository.Create(ctx, employee.Employee{
		BranchID: req.BranchID,
		Code:     code,
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Position: req.Position,
		Active:   true,
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return toResponse(created), nil
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string, branchID string) (employee.EmployeeResponse, error) {
	e, err := s.EmployeeRepository.GetByID(ctx, id, branchID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toResponse(e), nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, filter employee.EmployeeFilter, branchID string) (employee.ListEmployeesResponse, error) {
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeesResponse{}, err
	}

	employees, total, err := s.EmployeeRepository.List(ctx, filter, branchID)
	if err != nil {
		return employee.ListEmployeesResponse{}, err
	}

	items := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		items = append(items, toResponse(e))
	}

	return employee.ListEmployeesResponse{Items: items, Total: total}, nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, branchID string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	e, err := s.EmployeeRepository.GetByID(ctx, req.ID, branchID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.FullName != nil {
		e.FullName = *req.FullName
	}
	if req.Email != nil {
		e.Email = *req.Email
	}
	if req.Phone != nil {
		e.Phone = req.Phone
	}
	if req.Position != nil {
		e.Position = *req.Position
	}
	if req.Active != nil {
		e.Active = *req.Active
	}

	if err := s.EmployeeRepository.Update(ctx, e); err != nil {
		return employee.EmployeeResponse{}, err
	}

	return s.Get(ctx, e.ID, branchID)
}

// Deactivate implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Deactivate(ctx context.Context, id string, branchID string) error {
	return s.EmployeeRepository.Deactivate(ctx, id, branchID)
}
