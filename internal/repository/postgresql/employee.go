package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/eigenfit/eigenfit-backend-go/internal/domain/employee"
	"github.com/eigenfit/eigenfit-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (branch_id, code, full_name, email, phone, position, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, branch_id, code, full_name, email, phone, position, active, created_at, updated_at
	`

	var created employee.Employee
	err := q.QueryRow(ctx, query, e.BranchID, e.Code, e.FullName, e.Email, e.Phone, e.Position, e.Active).Scan(
		&created.ID, &created.BranchID, &created.Code, &created.FullName, &created.Email,
		&created.Phone, &created.Position, &created.Active, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return employee.Employee{}, employee.ErrEmailExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return created, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string, branchID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, branch_id, code, full_name, email, phone, position, active, created_at, updated_at
		FROM employees
		WHERE id = $1 AND branch_id = $2
	`

	var e employee.Employee
	err := q.QueryRow(ctx, query, id, branchID).Scan(
		&e.ID, &e.BranchID, &e.Code, &e.FullName, &e.Email, &e.Phone,
		&e.Position, &e.Active, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee %s: %w", id, err)
	}

	return e, nil
}

// GetByCode implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByCode(ctx context.Context, code int, branchID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, branch_id, code, full_name, email, phone, position, active, created_at, updated_at
		FROM employees
		WHERE code = $1 AND branch_id = $2
	`

	var e employee.Employee
	err := q.QueryRow(ctx, query, code, branchID).Scan(
		&e.ID, &e.BranchID, &e.Code, &e.FullName, &e.Email, &e.Phone,
		&e.Position, &e.Active, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by code %d: %w", code, err)
	}

	return e, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter, branchID string) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := `WHERE branch_id = $1`
	args := []any{branchID}

	if filter.Search != "" {
		if code, err := strconv.Atoi(filter.Search); err == nil {
			args = append(args, code)
			where += fmt.Sprintf(` AND code = $%d`, len(args))
		} else {
			args = append(args, "%"+filter.Search+"%")
			where += fmt.Sprintf(` AND full_name ILIKE $%d`, len(args))
		}
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM employees ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	listQuery := fmt.Sprintf(`
		SELECT id, branch_id, code, full_name, email, phone, position, active, created_at, updated_at
		FROM employees
		%s
		ORDER BY full_name
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var e employee.Employee
		if err := rows.Scan(&e.ID, &e.BranchID, &e.Code, &e.FullName, &e.Email, &e.Phone, &e.Position, &e.Active, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, 0, err
		}
		employees = append(employees, e)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, e employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET full_name = $1, email = $2, phone = $3, position = $4, active = $5, updated_at = NOW()
		WHERE id = $6 AND branch_id = $7
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, e.FullName, e.Email, e.Phone, e.Position, e.Active, e.ID, e.BranchID).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.ErrEmployeeNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return employee.ErrEmailExists
		}
		return fmt.Errorf("failed to update employee %s: %w", e.ID, err)
	}

	return nil
}

// Deactivate implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Deactivate(ctx context.Context, id string, branchID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET active = FALSE, updated_at = NOW()
		WHERE id = $1 AND branch_id = $2
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, id, branchID).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to deactivate employee %s: %w", id, err)
	}

	return nil
}

// NextCode implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) NextCode(ctx context.Context, branchID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var next int
	err := q.QueryRow(ctx, `SELECT COALESCE(MAX(code), 0) + 1 FROM employees WHERE branch_id = $1`, branchID).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("failed to compute next employee code: %w", err)
	}

	return next, nil
}
