package plan

import "context"

type PlanService interface {
	Create(ctx context.Context, req CreatePlanRequest) (PlanResponse, error)
	Get(ctx context.Context, id string, branchID string) (PlanResponse, error)
	List(ctx context.Context, branchID string) ([]PlanResponse, error)
	Update(ctx context.Context, branchID string, req UpdatePlanRequest) (PlanResponse, error)

	// Delete soft-deletes the plan. Plans still referenced by active
	// memberships cannot be deleted.
	Delete(ctx context.Context, id string, branchID string) error
}
