package business

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// BusinessRepository answers the aggregate queries behind the owner
// dashboard. Each method is a single SQL aggregate so the service can fan
// them out concurrently.
type BusinessRepository interface {
	// RevenueBetween sums membership payments recorded in [from, to).
	RevenueBetween(ctx context.Context, branchID string, from, to time.Time) (decimal.Decimal, error)

	CountMembers(ctx context.Context, branchID string, activeOnly bool) (int, error)
	CountActiveMembersAt(ctx context.Context, branchID string, at time.Time) (int, error)
	CountRegistrationsBetween(ctx context.Context, branchID string, from, to time.Time) (int, error)

	// CountRetained counts members active at the period start that are
	// still active now.
	CountRetained(ctx context.Context, branchID string, periodStart time.Time) (int, error)

	MembershipSummary(ctx context.Context, branchID string, expiringUntil time.Time) (MembershipSummary, error)
	// VisitsPerDay groups check-ins in [from, to) by calendar day in the
	// given timezone, keyed YYYY-MM-DD.
	VisitsPerDay(ctx context.Context, branchID string, from, to time.Time, tz string) (map[string]int, error)
	PopularPlans(ctx context.Context, branchID string, limit int) ([]PopularPlan, error)
	RecentPayments(ctx context.Context, branchID string, limit int) ([]RecentPayment, error)
	InactiveMembers(ctx context.Context, branchID string, since time.Time, limit int) ([]InactiveMember, error)
}
