package membership

import (
	"context"
	"testing"
	"time"

	"github.com/eigenfit/eigenfit-backend-go/internal/domain/master/branch"
	"github.com/eigenfit/eigenfit-backend-go/internal/domain/master/plan"
	"github.com/eigenfit/eigenfit-backend-go/internal/domain/member"
	"github.com/eigenfit/eigenfit-backend-go/internal/domain/membership"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlanRepo struct {
	plan.PlanRepository
	plans map[string]plan.Plan
}

func (f *fakePlanRepo) GetByIDs(_ context.Context, ids []string, _ string) ([]plan.Plan, error) {
	var out []plan.Plan
	for _, id := range ids {
		if p, ok := f.plans[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeMembershipRepo struct {
	membership.MembershipRepository
	active  []membership.MembershipRow
	created []membership.Membership

	deactivatedPlanIDs []string
}

func (f *fakeMembershipRepo) ListActiveByMemberAndPlans(context.Context, string, string, []string) ([]membership.MembershipRow, error) {
	return f.active, nil
}

func (f *fakeMembershipRepo) DeactivateActiveByMemberAndPlans(_ context.Context, _ string, _ string, planIDs []string) error {
	f.deactivatedPlanIDs = append(f.deactivatedPlanIDs, planIDs...)
	return nil
}

func (f *fakeMembershipRepo) Create(_ context.Context, m membership.Membership) (membership.Membership, error) {
	m.ID = "ms-new"
	f.created = append(f.created, m)
	return m, nil
}

type fakeMemberRepo struct {
	member.MemberRepository
}

func (f *fakeMemberRepo) GetByID(context.Context, string, string) (member.Member, error) {
	return member.Member{ID: "m1", FullName: "Ana"}, nil
}

type fakeBranchRepo struct {
	branch.BranchRepository
}

func (f *fakeBranchRepo) GetTimezone(context.Context, string) (string, error) {
	return "America/Mexico_City", nil
}

func price(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func newSuggestService(plans map[string]plan.Plan, active []membership.MembershipRow) (*MembershipServiceImpl, *fakeMembershipRepo) {
	msRepo := &fakeMembershipRepo{active: active}
	svc := NewMembershipService(msRepo, &fakePlanRepo{plans: plans}, &fakeMemberRepo{}, &fakeBranchRepo{}, nil)
	// The fakes are not backed by a database, so run the renewal body
	// without a real transaction.
	svc.transact = func(ctx context.Context, fn func(ctx context.Context) error) error {
		return fn(ctx)
	}
	svc.now = func() time.Time {
		loc, _ := time.LoadLocation("America/Mexico_City")
		return time.Date(2026, 8, 28, 15, 0, 0, 0, loc)
	}
	return svc, msRepo
}

func TestSuggest_SumsPricesAndUsesLongestDuration(t *testing.T) {
	t.Parallel()

	plans := map[string]plan.Plan{
		"p-gym":  {ID: "p-gym", Name: "Gimnasio", Price: price(400), DurationMonths: 1},
		"p-kick": {ID: "p-kick", Name: "Kickboxing", Price: price(450), DurationMonths: 3},
	}
	svc, _ := newSuggestService(plans, nil)

	got, err := svc.Suggest(context.Background(), membership.SuggestionRequest{
		BranchID: "b1",
		MemberID: "m1",
		PlanIDs:  []string{"p-gym", "p-kick"},
	})

	require.NoError(t, err)
	assert.True(t, got.SuggestedPrice.Equal(price(850)), "got %s", got.SuggestedPrice)
	// Today plus the longest selected duration (3 months).
	assert.Equal(t, "2026-11-28", got.SuggestedDueDate)
}

func TestSuggest_BaseIsLatestActiveDueDate(t *testing.T) {
	t.Parallel()

	loc, err := time.LoadLocation("America/Mexico_City")
	require.NoError(t, err)

	plans := map[string]plan.Plan{
		"p-gym": {ID: "p-gym", Name: "Gimnasio", Price: price(400), DurationMonths: 1},
	}
	active := []membership.MembershipRow{
		{Membership: membership.Membership{
			PlanID:  "p-gym",
			DueDate: time.Date(2026, 9, 10, 0, 0, 0, 0, loc),
			Status:  membership.StatusActive,
		}},
	}
	svc, _ := newSuggestService(plans, active)

	got, err := svc.Suggest(context.Background(), membership.SuggestionRequest{
		BranchID: "b1",
		MemberID: "m1",
		PlanIDs:  []string{"p-gym"},
	})

	require.NoError(t, err)
	// The member is paid through Sep 10, so the renewal extends from there.
	assert.Equal(t, "2026-10-10", got.SuggestedDueDate)
}

func TestSuggest_PastDueDateFallsBackToToday(t *testing.T) {
	t.Parallel()

	loc, err := time.LoadLocation("America/Mexico_City")
	require.NoError(t, err)

	plans := map[string]plan.Plan{
		"p-gym": {ID: "p-gym", Name: "Gimnasio", Price: price(400), DurationMonths: 1},
	}
	active := []membership.MembershipRow{
		{Membership: membership.Membership{
			PlanID:  "p-gym",
			DueDate: time.Date(2026, 8, 1, 0, 0, 0, 0, loc),
			Status:  membership.StatusActive,
		}},
	}
	svc, _ := newSuggestService(plans, active)

	got, err := svc.Suggest(context.Background(), membership.SuggestionRequest{
		BranchID: "b1",
		MemberID: "m1",
		PlanIDs:  []string{"p-gym"},
	})

	require.NoError(t, err)
	assert.Equal(t, "2026-09-28", got.SuggestedDueDate)
}

func TestSuggest_UnknownPlan(t *testing.T) {
	t.Parallel()

	svc, _ := newSuggestService(map[string]plan.Plan{}, nil)

	_, err := svc.Suggest(context.Background(), membership.SuggestionRequest{
		BranchID: "b1",
		MemberID: "m1",
		PlanIDs:  []string{"nope"},
	})

	assert.ErrorIs(t, err, plan.ErrPlanNotFound)
}

func TestRenew_RecordsOneMembershipPerPlan(t *testing.T) {
	t.Parallel()

	plans := map[string]plan.Plan{
		"p-gym":  {ID: "p-gym", Name: "Gimnasio", Price: price(400), DurationMonths: 1},
		"p-pool": {ID: "p-pool", Name: "Alberca 4 dias", Price: price(800), DurationMonths: 1},
	}
	svc, msRepo := newSuggestService(plans, nil)

	got, err := svc.Renew(context.Background(), membership.RenewRequest{
		BranchID: "b1",
		MemberID: "m1",
		PlanIDs:  []string{"p-gym", "p-pool"},
	})

	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	require.Len(t, msRepo.created, 2)
	assert.True(t, msRepo.created[0].PaymentAmount.Equal(price(400)))
	assert.True(t, msRepo.created[1].PaymentAmount.Equal(price(800)))
	assert.Equal(t, membership.StatusActive, msRepo.created[0].Status)
	assert.Equal(t, "2026-09-28", got.Items[0].DueDate)
}

func TestRenew_DeactivatesSupersededMemberships(t *testing.T) {
	t.Parallel()

	loc, err := time.LoadLocation("America/Mexico_City")
	require.NoError(t, err)

	plans := map[string]plan.Plan{
		"p-gym": {ID: "p-gym", Name: "Gimnasio", Price: price(400), DurationMonths: 1},
	}
	active := []membership.MembershipRow{
		{Membership: membership.Membership{
			ID:      "ms-old",
			PlanID:  "p-gym",
			DueDate: time.Date(2026, 9, 10, 0, 0, 0, 0, loc),
			Status:  membership.StatusActive,
		}},
	}
	svc, msRepo := newSuggestService(plans, active)

	_, err = svc.Renew(context.Background(), membership.RenewRequest{
		BranchID: "b1",
		MemberID: "m1",
		PlanIDs:  []string{"p-gym"},
	})

	require.NoError(t, err)
	// The old row for the renewed plan is flipped before the new row
	// lands, inside the same transaction.
	assert.Equal(t, []string{"p-gym"}, msRepo.deactivatedPlanIDs)
	require.Len(t, msRepo.created, 1)
	assert.Equal(t, membership.StatusActive, msRepo.created[0].Status)
}

func TestRenew_NegotiatedTotalLandsOnFirstPlan(t *testing.T) {
	t.Parallel()

	plans := map[string]plan.Plan{
		"p-gym":  {ID: "p-gym", Name: "Gimnasio", Price: price(400), DurationMonths: 1},
		"p-pool": {ID: "p-pool", Name: "Alberca 4 dias", Price: price(800), DurationMonths: 1},
	}
	svc, msRepo := newSuggestService(plans, nil)

	negotiated := price(1000)
	_, err := svc.Renew(context.Background(), membership.RenewRequest{
		BranchID:      "b1",
		MemberID:      "m1",
		PlanIDs:       []string{"p-gym", "p-pool"},
		PaymentAmount: &negotiated,
	})

	require.NoError(t, err)
	require.Len(t, msRepo.created, 2)
	assert.True(t, msRepo.created[0].PaymentAmount.Equal(price(200)))
	assert.True(t, msRepo.created[1].PaymentAmount.Equal(price(800)))
}
