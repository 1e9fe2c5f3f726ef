package membership

import (
	"context"
	"time"
)

// MembershipRow joins a membership with its plan for listings and the
// renewal suggestion.
type MembershipRow struct {
	Membership
	PlanName           string
	PlanDurationMonths int
}

type MembershipRepository interface {
	Create(ctx context.Context, m Membership) (Membership, error)
	GetByID(ctx context.Context, id string, branchID string) (Membership, error)
	ListByMember(ctx context.Context, memberID string, branchID string) ([]MembershipRow, error)

	// ListActiveByMemberAndPlans returns the member's active memberships
	// limited to the given plans, for computing the renewal base date.
	ListActiveByMemberAndPlans(ctx context.Context, memberID string, branchID string, planIDs []string) ([]MembershipRow, error)

	UpdateStatus(ctx context.Context, id string, branchID string, status Status) error

	// DeactivateActiveByMemberAndPlans flips the member's active rows for
	// the given plans to renewed, so a renewal supersedes them.
	DeactivateActiveByMemberAndPlans(ctx context.Context, memberID string, branchID string, planIDs []string) error

	// MarkOverdueBefore flips active memberships with due_date before the
	// cutoff to overdue and returns the affected rows for notification.
	MarkOverdueBefore(ctx context.Context, cutoff time.Time) ([]MembershipRow, error)

	// ListExpiringBetween returns active memberships whose due_date falls
	// in [from, to), for renewal reminders.
	ListExpiringBetween(ctx context.Context, from, to time.Time) ([]MembershipRow, error)
}
