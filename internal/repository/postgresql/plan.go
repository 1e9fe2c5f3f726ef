package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/eigenfit/eigenfit-backend-go/internal/domain/master/plan"
	"github.com/eigenfit/eigenfit-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type planRepositoryImpl struct {
	db *database.DB
}

func NewPlanRepository(db *database.DB) plan.PlanRepository {
	return &planRepositoryImpl{db: db}
}

// Create implements plan.PlanRepository.
func (r *planRepositoryImpl) Create(ctx context.Context, p plan.Plan) (plan.Plan, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO membership_plans (branch_id, name, description, duration_months, price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, branch_id, name, description, duration_months, price, created_at, updated_at
	`

	var created plan.Plan
	err := q.QueryRow(ctx, query, p.BranchID, p.Name, p.Description, p.DurationMonths, p.Price).Scan(
		&created.ID, &created.BranchID, &created.Name, &created.Description,
		&created.DurationMonths, &created.Price, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return plan.Plan{}, fmt.Errorf("failed to create membership plan: %w", err)
	}

	return created, nil
}

// GetByID implements plan.PlanRepository.
func (r *planRepositoryImpl) GetByID(ctx context.Context, id string, branchID string) (plan.Plan, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, branch_id, name, description, duration_months, price, created_at, updated_at
		FROM membership_plans
		WHERE id = $1 AND branch_id = $2 AND deleted_at IS NULL
	`

	var p plan.Plan
	err := q.QueryRow(ctx, query, id, branchID).Scan(
		&p.ID, &p.BranchID, &p.Name, &p.Description, &p.DurationMonths,
		&p.Price, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return plan.Plan{}, plan.ErrPlanNotFound
		}
		return plan.Plan{}, fmt.Errorf("failed to get membership plan %s: %w", id, err)
	}

	return p, nil
}

// GetByIDs implements plan.PlanRepository.
func (r *planRepositoryImpl) GetByIDs(ctx context.Context, ids []string, branchID string) ([]plan.Plan, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, branch_id, name, description, duration_months, price, created_at, updated_at
		FROM membership_plans
		WHERE id = ANY($1) AND branch_id = $2 AND deleted_at IS NULL
	`

	rows, err := q.Query(ctx, query, ids, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get membership plans: %w", err)
	}
	defer rows.Close()

	var plans []plan.Plan
	for rows.Next() {
		var p plan.Plan
		if err := rows.Scan(&p.ID, &p.BranchID, &p.Name, &p.Description, &p.DurationMonths, &p.Price, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return plans, nil
}

// ListByBranch implements plan.PlanRepository.
func (r *planRepositoryImpl) ListByBranch(ctx context.Context, branchID string) ([]plan.Plan, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, branch_id, name, description, duration_months, price, created_at, updated_at
		FROM membership_plans
		WHERE branch_id = $1 AND deleted_at IS NULL
		ORDER BY price
	`

	rows, err := q.Query(ctx, query, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list membership plans: %w", err)
	}
	defer rows.Close()

	var plans []plan.Plan
	for rows.Next() {
		var p plan.Plan
		if err := rows.Scan(&p.ID, &p.BranchID, &p.Name, &p.Description, &p.DurationMonths, &p.Price, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return plans, nil
}

// Update implements plan.PlanRepository.
func (r *planRepositoryImpl) Update(ctx context.Context, p plan.Plan) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE membership_plans
		SET name = $1, description = $2, duration_months = $3, price = $4, updated_at = NOW()
		WHERE id = $5 AND branch_id = $6 AND deleted_at IS NULL
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, p.Name, p.Description, p.DurationMonths, p.Price, p.ID, p.BranchID).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return plan.ErrPlanNotFound
		}
		return fmt.Errorf("failed to update membership plan %s: %w", p.ID, err)
	}

	return nil
}

// Delete implements plan.PlanRepository.
func (r *planRepositoryImpl) Delete(ctx context.Context, id string, branchID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE membership_plans
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND branch_id = $2 AND deleted_at IS NULL
		RETURNING id
	`

	var deletedID string
	err := q.QueryRow(ctx, query, id, branchID).Scan(&deletedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return plan.ErrPlanNotFound
		}
		return fmt.Errorf("failed to delete membership plan %s: %w", id, err)
	}

	return nil
}

// CountActiveMemberships implements plan.PlanRepository.
func (r *planRepositoryImpl) CountActiveMemberships(ctx context.Context, id string, branchID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM memberships
		WHERE plan_id = $1 AND branch_id = $2 AND status = 'active'
	`

	var count int
	if err := q.QueryRow(ctx, query, id, branchID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active memberships for plan %s: %w", id, err)
	}

	return count, nil
}
