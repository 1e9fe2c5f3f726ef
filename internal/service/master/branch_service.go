package master

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/eigenfit/eigenfit-backend-go/internal/domain/master/branch"
	"github.com/eigenfit/eigenfit-backend-go/internal/domain/master/plan"
	"github.com/eigenfit/eigenfit-backend-go/internal/fixtures"
	"golang.org/x/crypto/bcrypt"
)

type BranchServiceImpl struct {
	branch.BranchRepository
	plan.PlanRepository

	defaultTimezone string
	defaultPIN      string
}

func NewBranchService(repo branch.BranchRepository, planRepo plan.PlanRepository, defaultTimezone, defaultPIN string) *BranchServiceImpl {
	return &BranchServiceImpl{
		BranchRepository: repo,
		PlanRepository:   planRepo,
		defaultTimezone:  defaultTimezone,
		defaultPIN:       defaultPIN,
	}
}

func toBranchResponse(b branch.Branch) branch.BranchResponse {
	return branch.BranchResponse{
		ID:        b.ID,
		Name:      b.Name,
		Address:   b.Address,
		Timezone:  b.Timezone,
		CreatedAt: b.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: b.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// Create implements branch.BranchService. New branches start with the
// configured default kiosk PIN; owners change it from the kiosk settings
// screen.
func (s *BranchServiceImpl) Create(ctx context.Context, req branch.CreateBranchRequest) (branch.BranchResponse, error) {
	if err := req.Validate(); err != nil {
		return branch.BranchResponse{}, err
	}

	tz := req.Timezone
	if tz == "" {
		tz = s.defaultTimezone
	}

	pinHash, err := bcrypt.GenerateFromPassword([]byte(s.defaultPIN), bcrypt.DefaultCost)
	if err != nil {
		return branch.BranchResponse{}, fmt.Errorf("failed to hash default kiosk pin: %w", err)
	}

	created, err := s.BranchRepository.Create(ctx, branch.Branch{
		Name:         req.Name,
		Address:      req.Address,
		Timezone:     tz,
		KioskPINHash: string(pinHash),
	})
	if err != nil {
		return branch.BranchResponse{}, err
	}

	// Seed the starter plan catalog. A failed seed leaves a usable branch,
	// so it only logs.
	for _, p := range fixtures.GetDefaultPlans(created.ID) {
		if _, err := s.PlanRepository.Create(ctx, p); err != nil {
			slog.Error("Failed to seed default plan", "branch_id", created.ID, "plan", p.Name, "error", err)
		}
	}

	return toBranchResponse(created), nil
}

// Get implements branch.BranchService.
func (s *BranchServiceImpl) Get(ctx context.Context, id string) (branch.BranchResponse, error) {
	b, err := s.BranchRepository.GetByID(ctx, id)
	if err != nil {
		return branch.BranchResponse{}, err
	}
	return toBranchResponse(b), nil
}

// List implements branch.BranchService.
func (s *BranchServiceImpl) List(ctx context.Context) ([]branch.BranchResponse, error) {
	branches, err := s.BranchRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]branch.BranchResponse, 0, len(branches))
	for _, b := range branches {
		items = append(items, toBranchResponse(b))
	}

	return items, nil
}

// Update implements branch.BranchService.
func (s *BranchServiceImpl) Update(ctx context.Context, req branch.UpdateBranchRequest) (branch.BranchResponse, error) {
	if err := req.Validate(); err != nil {
		return branch.BranchResponse{}, err
	}

	b, err := s.BranchRepository.GetByID(ctx, req.ID)
	if err != nil {
		return branch.BranchResponse{}, err
	}

	if req.Name != nil {
		b.Name = *req.Name
	}
	if req.Address != nil {
		b.Address = req.Address
	}
	if req.Timezone != nil {
		b.Timezone = *req.Timezone
	}

	if err := s.BranchRepository.Update(ctx, b); err != nil {
		return branch.BranchResponse{}, err
	}

	return s.Get(ctx, b.ID)
}
