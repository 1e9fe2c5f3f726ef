package membership

import (
	"context"
	"fmt"
	"time"

	"github.com/eigenfit/eigenfit-backend-go/internal/domain/master/branch"
	"github.com/eigenfit/eigenfit-backend-go/internal/domain/master/plan"
	"github.com/eigenfit/eigenfit-backend-go/internal/domain/member"
	"github.com/eigenfit/eigenfit-backend-go/internal/domain/membership"
	"github.com/eigenfit/eigenfit-backend-go/internal/pkg/database"
	"github.com/eigenfit/eigenfit-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
)

type MembershipServiceImpl struct {
	membership.MembershipRepository
	plan.PlanRepository
	member.MemberRepository
	branch.BranchRepository

	transact func(ctx context.Context, fn func(ctx context.Context) error) error
	now      func() time.Time
}

func NewMembershipService(
	membershipRepo membership.MembershipRepository,
	planRepo plan.PlanRepository,
	memberRepo member.MemberRepository,
	branchRepo branch.BranchRepository,
	db *database.DB,
) *MembershipServiceImpl {
	return &MembershipServiceImpl{
		MembershipRepository: membershipRepo,
		PlanRepository:       planRepo,
		MemberRepository:     memberRepo,
		BranchRepository:     branchRepo,
		transact: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return postgresql.WithTransaction(ctx, db, fn)
		},
		now: time.Now,
	}
}

func (s *MembershipServiceImpl) location(ctx context.Context, branchID string) (*time.Location, error) {
	tz, err := s.BranchRepository.GetTimezone(ctx, branchID)
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC, nil
	}
	return loc, nil
}

func toResponse(m membership.MembershipRow) membership.MembershipResponse {
	return membership.MembershipResponse{
		ID:            m.ID,
		BranchID:      m.BranchID,
		MemberID:      m.MemberID,
		PlanID:        m.PlanID,
		PlanName:      m.PlanName,
		StartDate:     m.StartDate.Format("2006-01-02"),
		DueDate:       m.DueDate.Format("2006-01-02"),
		Status:        m.Status,
		PaymentAmount: m.PaymentAmount,
	}
}

// suggestion resolves the selected plans and computes the prefill values.
// The due-date base is the latest active due date among the selected
// plans, or today in the branch timezone when none extends past today.
func (s *MembershipServiceImpl) suggestion(ctx context.Context, branchID, memberID string, planIDs []string) ([]plan.Plan, decimal.Decimal, time.Time, error) {
	fetched, err := s.PlanRepository.GetByIDs(ctx, planIDs, branchID)
	if err != nil {
		return nil, decimal.Zero, time.Time{}, err
	}
	if len(fetched) != len(planIDs) {
		return nil, decimal.Zero, time.Time{}, plan.ErrPlanNotFound
	}

	// Keep selection order; the repository does not guarantee one.
	byID := make(map[string]plan.Plan, len(fetched))
	for _, p := range fetched {
		byID[p.ID] = p
	}
	plans := make([]plan.Plan, 0, len(planIDs))
	for _, id := range planIDs {
		plans = append(plans, byID[id])
	}

	loc, err := s.location(ctx, branchID)
	if err != nil {
		return nil, decimal.Zero, time.Time{}, err
	}

	price := decimal.Zero
	longest := 0
	for _, p := range plans {
		price = price.Add(p.Price)
		if p.DurationMonths > longest {
			longest = p.DurationMonths
		}
	}

	nowLocal := s.now().In(loc)
	base := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, loc)

	active, err := s.MembershipRepository.ListActiveByMemberAndPlans(ctx, memberID, branchID, planIDs)
	if err != nil {
		return nil, decimal.Zero, time.Time{}, err
	}
	for _, m := range active {
		due := time.Date(m.DueDate.Year(), m.DueDate.Month(), m.DueDate.Day(), 0, 0, 0, 0, loc)
		if due.After(base) {
			base = due
		}
	}

	return plans, price, base.AddDate(0, longest, 0), nil
}

// Suggest implements membership.MembershipService.
func (s *MembershipServiceImpl) Suggest(ctx context.Context, req membership.SuggestionRequest) (membership.SuggestionResponse, error) {
	if err := req.Validate(); err != nil {
		return membership.SuggestionResponse{}, err
	}

	if _, err := s.MemberRepository.GetByID(ctx, req.MemberID, req.BranchID); err != nil {
		return membership.SuggestionResponse{}, err
	}

	_, price, due, err := s.suggestion(ctx, req.BranchID, req.MemberID, req.PlanIDs)
	if err != nil {
		return membership.SuggestionResponse{}, err
	}

	return membership.SuggestionResponse{
		SuggestedPrice:   price,
		SuggestedDueDate: due.Format("2006-01-02"),
	}, nil
}

// Renew implements membership.MembershipService.
//
// One membership row is recorded per selected plan, and the rows being
// superseded are flipped to renewed in the same transaction, so a partial
// failure leaves the member exactly as they were. A negotiated total
// overrides the suggested price; the difference lands on the first plan so
// the stored amounts still sum to what was actually paid.
func (s *MembershipServiceImpl) Renew(ctx context.Context, req membership.RenewRequest) (membership.ListMembershipsResponse, error) {
	if err := req.Validate(); err != nil {
		return membership.ListMembershipsResponse{}, err
	}

	if _, err := s.MemberRepository.GetByID(ctx, req.MemberID, req.BranchID); err != nil {
		return membership.ListMembershipsResponse{}, err
	}

	plans, _, suggestedDue, err := s.suggestion(ctx, req.BranchID, req.MemberID, req.PlanIDs)
	if err != nil {
		return membership.ListMembershipsResponse{}, err
	}

	loc, err := s.location(ctx, req.BranchID)
	if err != nil {
		return membership.ListMembershipsResponse{}, err
	}

	due := suggestedDue
	if req.DueDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", req.DueDate, loc)
		if err != nil {
			return membership.ListMembershipsResponse{}, fmt.Errorf("invalid due_date: %w", err)
		}
		due = parsed
	}

	amounts := make([]decimal.Decimal, len(plans))
	for i, p := range plans {
		amounts[i] = p.Price
	}
	if req.PaymentAmount != nil {
		rest := decimal.Zero
		for _, a := range amounts[1:] {
			rest = rest.Add(a)
		}
		amounts[0] = req.PaymentAmount.Sub(rest)
	}

	nowLocal := s.now().In(loc)
	start := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, loc)

	var items []membership.MembershipResponse
	err = s.transact(ctx, func(txCtx context.Context) error {
		if err := s.MembershipRepository.DeactivateActiveByMemberAndPlans(txCtx, req.MemberID, req.BranchID, req.PlanIDs); err != nil {
			return err
		}

		for i, p := range plans {
			created, err := s.MembershipRepository.Create(txCtx, membership.Membership{
				BranchID:      req.BranchID,
				MemberID:      req.MemberID,
				PlanID:        p.ID,
				StartDate:     start,
				DueDate:       due,
				Status:        membership.StatusActive,
				PaymentAmount: amounts[i],
			})
			if err != nil {
				return err
			}
			items = append(items, toResponse(membership.MembershipRow{
				Membership:         created,
				PlanName:           p.Name,
				PlanDurationMonths: p.DurationMonths,
			}))
		}

		return nil
	})
	if err != nil {
		return membership.ListMembershipsResponse{}, err
	}

	return membership.ListMembershipsResponse{Items: items}, nil
}

// ListByMember implements membership.MembershipService.
func (s *MembershipServiceImpl) ListByMember(ctx context.Context, memberID string, branchID string) (membership.ListMembershipsResponse, error) {
	rows, err := s.MembershipRepository.ListByMember(ctx, memberID, branchID)
	if err != nil {
		return membership.ListMembershipsResponse{}, err
	}

	items := make([]membership.MembershipResponse, 0, len(rows))
	for _, m := range rows {
		items = append(items, toResponse(m))
	}

	return membership.ListMembershipsResponse{Items: items}, nil
}

// Cancel implements membership.MembershipService.
func (s *MembershipServiceImpl) Cancel(ctx context.Context, req membership.CancelRequest) error {
	return s.MembershipRepository.UpdateStatus(ctx, req.ID, req.BranchID, membership.StatusCanceled)
}
