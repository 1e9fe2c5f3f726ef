package plan

import "context"

type PlanRepository interface {
	Create(ctx context.Context, p Plan) (Plan, error)
	GetByID(ctx context.Context, id string, branchID string) (Plan, error)
	GetByIDs(ctx context.Context, ids []string, branchID string) ([]Plan, error)
	ListByBranch(ctx context.Context, branchID string) ([]Plan, error)
	Update(ctx context.Context, p Plan) error
	Delete(ctx context.Context, id string, branchID string) error

	// CountActiveMemberships reports how many active memberships reference
	// the plan; deletion is rejected while the count is non-zero.
	CountActiveMemberships(ctx context.Context, id string, branchID string) (int, error)
}
