package master

import (
	"context"
	"time"

	"github.com/eigenfit/eigenfit-backend-go/internal/domain/master/plan"
)

type PlanServiceImpl struct {
	plan.PlanRepository
}

func NewPlanService(repo plan.PlanRepository) *PlanServiceImpl {
	return &PlanServiceImpl{PlanRepository: repo}
}

func toPlanResponse(p plan.Plan) plan.PlanResponse {
	return plan.PlanResponse{
		ID:             p.ID,
		BranchID:       p.BranchID,
		Name:           p.Name,
		Description:    p.Description,
		DurationMonths: p.DurationMonths,
		Price:          p.Price,
		CreatedAt:      p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// Create implements plan.PlanService.
func (s *PlanServiceImpl) Create(ctx context.Context, req plan.CreatePlanRequest) (plan.PlanResponse, error) {
	if err := req.Validate(); err != nil {
		return plan.PlanResponse{}, err
	}

	created, err := s.PlanRepository.Create(ctx, plan.Plan{
		BranchID:       req.BranchID,
		Name:           req.Name,
		Description:    req.Description,
		DurationMonths: req.DurationMonths,
		Price:          req.Price,
	})
	if err != nil {
		return plan.PlanResponse{}, err
	}

	return toPlanResponse(created), nil
}

// Get implements plan.PlanService.
func (s *PlanServiceImpl) Get(ctx context.Context, id string, branchID string) (plan.PlanResponse, error) {
	p, err := s.PlanRepository.GetByID(ctx, id, branchID)
	if err != nil {
		return plan.PlanResponse{}, err
	}
	return toPlanResponse(p), nil
}

// List implements plan.PlanService.
func (s *PlanServiceImpl) List(ctx context.Context, branchID string) ([]plan.PlanResponse, error) {
	plans, err := s.PlanRepository.ListByBranch(ctx, branchID)
	if err != nil {
		return nil, err
	}

	items := make([]plan.PlanResponse, 0, len(plans))
	for _, p := range plans {
		items = append(items, toPlanResponse(p))
	}

	return items, nil
}

// Update implements plan.PlanService.
func (s *PlanServiceImpl) Update(ctx context.Context, branchID string, req plan.UpdatePlanRequest) (plan.PlanResponse, error) {
	if err := req.Validate(); err != nil {
		return plan.PlanResponse{}, err
	}

	p, err := s.PlanRepository.GetByID(ctx, req.ID, branchID)
	if err != nil {
		return plan.PlanResponse{}, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.DurationMonths != nil {
		p.DurationMonths = *req.DurationMonths
	}
	if req.Price != nil {
		p.Price = *req.Price
	}

	if err := s.PlanRepository.Update(ctx, p); err != nil {
		return plan.PlanResponse{}, err
	}

	return s.Get(ctx, p.ID, branchID)
}

// Delete implements plan.PlanService.
func (s *PlanServiceImpl) Delete(ctx context.Context, id string, branchID string) error {
	count, err := s.PlanRepository.CountActiveMemberships(ctx, id, branchID)
	if err != nil {
		return err
	}
	if count > 0 {
		return plan.ErrPlanInUse
	}

	return s.PlanRepository.Delete(ctx, id, branchID)
}
