package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/eigenfit/eigenfit-backend-go/internal/domain/business"
	"github.com/eigenfit/eigenfit-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type businessRepositoryImpl struct {
	db *database.DB
}

func NewBusinessRepository(db *database.DB) business.BusinessRepository {
	return &businessRepositoryImpl{db: db}
}

// RevenueBetween implements business.BusinessRepository.
func (r *businessRepositoryImpl) RevenueBetween(ctx context.Context, branchID string, from, to time.Time) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(payment_amount), 0)
		FROM memberships
		WHERE branch_id = $1 AND created_at >= $2 AND created_at < $3
	`

	var revenue decimal.Decimal
	if err := q.QueryRow(ctx, query, branchID, from, to).Scan(&revenue); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum revenue: %w", err)
	}

	return revenue, nil
}

// CountMembers implements business.BusinessRepository.
func (r *businessRepositoryImpl) CountMembers(ctx context.Context, branchID string, activeOnly bool) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT COUNT(*) FROM members WHERE branch_id = $1`
	if activeOnly {
		query += ` AND active`
	}

	var count int
	if err := q.QueryRow(ctx, query, branchID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count members: %w", err)
	}

	return count, nil
}

// CountActiveMembersAt implements business.BusinessRepository.
//
// A member counts as active at a point in time when they held a
// non-canceled membership covering that date.
func (r *businessRepositoryImpl) CountActiveMembersAt(ctx context.Context, branchID string, at time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(DISTINCT member_id)
		FROM memberships
		WHERE branch_id = $1 AND status <> 'canceled' AND start_date <= $2 AND due_date >= $2
	`

	var count int
	if err := q.QueryRow(ctx, query, branchID, at).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active members: %w", err)
	}

	return count, nil
}

// CountRegistrationsBetween implements business.BusinessRepository.
func (r *businessRepositoryImpl) CountRegistrationsBetween(ctx context.Context, branchID string, from, to time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM members
		WHERE branch_id = $1 AND created_at >= $2 AND created_at < $3
	`

	var count int
	if err := q.QueryRow(ctx, query, branchID, from, to).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count registrations: %w", err)
	}

	return count, nil
}

// CountRetained implements business.BusinessRepository.
func (r *businessRepositoryImpl) CountRetained(ctx context.Context, branchID string, periodStart time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(DISTINCT prev.member_id)
		FROM memberships prev
		JOIN memberships cur ON cur.member_id = prev.member_id AND cur.branch_id = prev.branch_id
		WHERE prev.branch_id = $1
			AND prev.status <> 'canceled' AND prev.start_date <= $2 AND prev.due_date >= $2
			AND cur.status = 'active' AND cur.due_date >= NOW()
	`

	var count int
	if err := q.QueryRow(ctx, query, branchID, periodStart).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count retained members: %w", err)
	}

	return count, nil
}

// MembershipSummary implements business.BusinessRepository.
func (r *businessRepositoryImpl) MembershipSummary(ctx context.Context, branchID string, expiringUntil time.Time) (business.MembershipSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'active'),
			COUNT(*) FILTER (WHERE status = 'active' AND due_date >= NOW() AND due_date < $2),
			COUNT(*) FILTER (WHERE status = 'overdue'),
			COUNT(*) FILTER (WHERE status = 'canceled')
		FROM memberships
		WHERE branch_id = $1
	`

	var s business.MembershipSummary
	err := q.QueryRow(ctx, query, branchID, expiringUntil).Scan(
		&s.Active, &s.Expiring7Days, &s.Overdue, &s.Canceled,
	)
	if err != nil {
		return business.MembershipSummary{}, fmt.Errorf("failed to summarize memberships: %w", err)
	}

	return s, nil
}

// VisitsPerDay implements business.BusinessRepository.
func (r *businessRepositoryImpl) VisitsPerDay(ctx context.Context, branchID string, from, to time.Time, tz string) (map[string]int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT to_char(check_in AT TIME ZONE $4, 'YYYY-MM-DD') AS day, COUNT(*)
		FROM attendances
		WHERE branch_id = $1 AND check_in >= $2 AND check_in < $3
		GROUP BY day
	`

	rows, err := q.Query(ctx, query, branchID, from, to, tz)
	if err != nil {
		return nil, fmt.Errorf("failed to group visits per day: %w", err)
	}
	defer rows.Close()

	visits := make(map[string]int)
	for rows.Next() {
		var day string
		var count int
		if err := rows.Scan(&day, &count); err != nil {
			return nil, err
		}
		visits[day] = count
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return visits, nil
}

// PopularPlans implements business.BusinessRepository.
func (r *businessRepositoryImpl) PopularPlans(ctx context.Context, branchID string, limit int) ([]business.PopularPlan, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id, p.name, COUNT(ms.id) AS subscribers, p.price
		FROM membership_plans p
		LEFT JOIN memberships ms ON ms.plan_id = p.id AND ms.status = 'active'
		WHERE p.branch_id = $1 AND p.deleted_at IS NULL
		GROUP BY p.id, p.name, p.price
		ORDER BY subscribers DESC, p.name
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, branchID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list popular plans: %w", err)
	}
	defer rows.Close()

	var plans []business.PopularPlan
	for rows.Next() {
		var p business.PopularPlan
		if err := rows.Scan(&p.PlanID, &p.PlanName, &p.Subscribers, &p.Price); err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return plans, nil
}

// RecentPayments implements business.BusinessRepository.
func (r *businessRepositoryImpl) RecentPayments(ctx context.Context, branchID string, limit int) ([]business.RecentPayment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ms.id, m.full_name, p.name, ms.payment_amount, to_char(ms.created_at, 'YYYY-MM-DD"T"HH24:MI:SS"Z"')
		FROM memberships ms
		JOIN members m ON m.id = ms.member_id
		JOIN membership_plans p ON p.id = ms.plan_id
		WHERE ms.branch_id = $1
		ORDER BY ms.created_at DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, branchID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent payments: %w", err)
	}
	defer rows.Close()

	var payments []business.RecentPayment
	for rows.Next() {
		var p business.RecentPayment
		if err := rows.Scan(&p.MembershipID, &p.MemberName, &p.PlanName, &p.Amount, &p.PaidAt); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return payments, nil
}

// InactiveMembers implements business.BusinessRepository.
func (r *businessRepositoryImpl) InactiveMembers(ctx context.Context, branchID string, since time.Time, limit int) ([]business.InactiveMember, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT m.id, m.full_name, m.code,
			to_char(MAX(a.check_in), 'YYYY-MM-DD'),
			COALESCE(EXTRACT(DAY FROM NOW() - MAX(a.check_in))::int, -1)
		FROM members m
		LEFT JOIN attendances a ON a.person_id = m.id AND a.person_role = 'member'
		WHERE m.branch_id = $1 AND m.active
		GROUP BY m.id, m.full_name, m.code
		HAVING MAX(a.check_in) IS NULL OR MAX(a.check_in) < $2
		ORDER BY MAX(a.check_in) ASC NULLS FIRST
		LIMIT $3
	`

	rows, err := q.Query(ctx, query, branchID, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list inactive members: %w", err)
	}
	defer rows.Close()

	var members []business.InactiveMember
	for rows.Next() {
		var m business.InactiveMember
		var lastVisit *string
		if err := rows.Scan(&m.MemberID, &m.MemberName, &m.MemberCode, &lastVisit, &m.DaysInactive); err != nil {
			return nil, err
		}
		if lastVisit != nil {
			m.LastVisitDate = *lastVisit
		}
		members = append(members, m)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return members, nil
}
