package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eigenfit/eigenfit-backend-go/internal/domain/membership"
	"github.com/eigenfit/eigenfit-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type membershipRepositoryImpl struct {
	db *database.DB
}

func NewMembershipRepository(db *database.DB) membership.MembershipRepository {
	return &membershipRepositoryImpl{db: db}
}

const membershipRowColumns = `
	ms.id, ms.branch_id, ms.member_id, ms.plan_id, ms.start_date, ms.due_date,
	ms.status, ms.payment_amount, ms.created_at, ms.updated_at,
	p.name, p.duration_months
`

// Create implements membership.MembershipRepository.
func (r *membershipRepositoryImpl) Create(ctx context.Context, m membership.Membership) (membership.Membership, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO memberships (branch_id, member_id, plan_id, start_date, due_date, status, payment_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, branch_id, member_id, plan_id, start_date, due_date, status, payment_amount, created_at, updated_at
	`

	var created membership.Membership
	err := q.QueryRow(ctx, query,
		m.BranchID, m.MemberID, m.PlanID, m.StartDate, m.DueDate, m.Status, m.PaymentAmount,
	).Scan(
		&created.ID, &created.BranchID, &created.MemberID, &created.PlanID,
		&created.StartDate, &created.DueDate, &created.Status, &created.PaymentAmount,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return membership.Membership{}, fmt.Errorf("failed to create membership: %w", err)
	}

	return created, nil
}

// GetByID implements membership.MembershipRepository.
func (r *membershipRepositoryImpl) GetByID(ctx context.Context, id string, branchID string) (membership.Membership, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, branch_id, member_id, plan_id, start_date, due_date, status, payment_amount, created_at, updated_at
		FROM memberships
		WHERE id = $1 AND branch_id = $2
	`

	var m membership.Membership
	err := q.QueryRow(ctx, query, id, branchID).Scan(
		&m.ID, &m.BranchID, &m.MemberID, &m.PlanID, &m.StartDate, &m.DueDate,
		&m.Status, &m.PaymentAmount, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return membership.Membership{}, membership.ErrMembershipNotFound
		}
		return membership.Membership{}, fmt.Errorf("failed to get membership %s: %w", id, err)
	}

	return m, nil
}

// ListByMember implements membership.MembershipRepository.
func (r *membershipRepositoryImpl) ListByMember(ctx context.Context, memberID string, branchID string) ([]membership.MembershipRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + membershipRowColumns + `
		FROM memberships ms
		JOIN membership_plans p ON p.id = ms.plan_id
		WHERE ms.member_id = $1 AND ms.branch_id = $2
		ORDER BY ms.due_date DESC
	`

	rows, err := q.Query(ctx, query, memberID, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	defer rows.Close()

	return scanMembershipRows(rows)
}

// ListActiveByMemberAndPlans implements membership.MembershipRepository.
func (r *membershipRepositoryImpl) ListActiveByMemberAndPlans(ctx context.Context, memberID string, branchID string, planIDs []string) ([]membership.MembershipRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + membershipRowColumns + `
		FROM memberships ms
		JOIN membership_plans p ON p.id = ms.plan_id
		WHERE ms.member_id = $1 AND ms.branch_id = $2 AND ms.plan_id = ANY($3) AND ms.status = 'active'
		ORDER BY ms.due_date DESC
	`

	rows, err := q.Query(ctx, query, memberID, branchID, planIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list active memberships: %w", err)
	}
	defer rows.Close()

	return scanMembershipRows(rows)
}

// UpdateStatus implements membership.MembershipRepository.
func (r *membershipRepositoryImpl) UpdateStatus(ctx context.Context, id string, branchID string, status membership.Status) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE memberships
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND branch_id = $3
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, status, id, branchID).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return membership.ErrMembershipNotFound
		}
		return fmt.Errorf("failed to update membership status %s: %w", id, err)
	}

	return nil
}

// DeactivateActiveByMemberAndPlans implements membership.MembershipRepository.
func (r *membershipRepositoryImpl) DeactivateActiveByMemberAndPlans(ctx context.Context, memberID string, branchID string, planIDs []string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE memberships
		SET status = 'renewed', updated_at = NOW()
		WHERE member_id = $1 AND branch_id = $2 AND plan_id = ANY($3) AND status = 'active'
	`

	if _, err := q.Exec(ctx, query, memberID, branchID, planIDs); err != nil {
		return fmt.Errorf("failed to deactivate superseded memberships: %w", err)
	}

	return nil
}

// MarkOverdueBefore implements membership.MembershipRepository.
func (r *membershipRepositoryImpl) MarkOverdueBefore(ctx context.Context, cutoff time.Time) ([]membership.MembershipRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH flipped AS (
			UPDATE memberships
			SET status = 'overdue', updated_at = NOW()
			WHERE status = 'active' AND due_date < $1
			RETURNING id, branch_id, member_id, plan_id, start_date, due_date, status, payment_amount, created_at, updated_at
		)
		SELECT ms.id, ms.branch_id, ms.member_id, ms.plan_id, ms.start_date, ms.due_date,
			ms.status, ms.payment_amount, ms.created_at, ms.updated_at,
			p.name, p.duration_months
		FROM flipped ms
		JOIN membership_plans p ON p.id = ms.plan_id
	`

	rows, err := q.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to mark overdue memberships: %w", err)
	}
	defer rows.Close()

	return scanMembershipRows(rows)
}

// ListExpiringBetween implements membership.MembershipRepository.
func (r *membershipRepositoryImpl) ListExpiringBetween(ctx context.Context, from, to time.Time) ([]membership.MembershipRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + membershipRowColumns + `
		FROM memberships ms
		JOIN membership_plans p ON p.id = ms.plan_id
		WHERE ms.status = 'active' AND ms.due_date >= $1 AND ms.due_date < $2
		ORDER BY ms.due_date
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list expiring memberships: %w", err)
	}
	defer rows.Close()

	return scanMembershipRows(rows)
}

func scanMembershipRows(rows pgx.Rows) ([]membership.MembershipRow, error) {
	var result []membership.MembershipRow
	for rows.Next() {
		var m membership.MembershipRow
		err := rows.Scan(
			&m.ID, &m.BranchID, &m.MemberID, &m.PlanID, &m.StartDate, &m.DueDate,
			&m.Status, &m.PaymentAmount, &m.CreatedAt, &m.UpdatedAt,
			&m.PlanName, &m.PlanDurationMonths,
		)
		if err != nil {
			return nil, err
		}
		result = append(result, m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
