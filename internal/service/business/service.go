package business

import (
	"context"
	"math"
	"time"

	"github.com/eigenfit/eigenfit-backend-go/internal/domain/business"
	"github.com/eigenfit/eigenfit-backend-go/internal/domain/master/branch"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type BusinessServiceImpl struct {
	business.BusinessRepository
	branch.BranchRepository

	now func() time.Time
}

func NewBusinessService(repo business.BusinessRepository, branchRepo branch.BranchRepository) *BusinessServiceImpl {
	return &BusinessServiceImpl{
		BusinessRepository: repo,
		BranchRepository:   branchRepo,
		now:                time.Now,
	}
}

var dayLabels = [...]string{"Dom", "Lun", "Mar", "Mie", "Jue", "Vie", "Sab"}

func changePct(current, previous decimal.Decimal) int {
	if previous.IsZero() {
		if current.IsZero() {
			return 0
		}
		return 100
	}
	ratio, _ := current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Float64()
	return int(math.Round(ratio))
}

// Dashboard implements business.BusinessService. The eleven aggregate
// queries are independent, so they fan out concurrently and the first
// failure cancels the rest.
func (s *BusinessServiceImpl) Dashboard(ctx context.Context, branchID string, filter business.DashboardFilter) (business.DashboardResponse, error) {
	if err := filter.Validate(); err != nil {
		return business.DashboardResponse{}, err
	}

	tz, err := s.BranchRepository.GetTimezone(ctx, branchID)
	if err != nil {
		return business.DashboardResponse{}, err
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}

	now := s.now()
	nowLocal := now.In(loc)
	monthStart := time.Date(nowLocal.Year(), nowLocal.Month(), 1, 0, 0, 0, 0, loc)
	prevMonthStart := monthStart.AddDate(0, -1, 0)
	todayStart := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, loc)
	weekFrom := todayStart.AddDate(0, 0, -6)

	var (
		monthRevenue, prevRevenue           decimal.Decimal
		activeNow, activePrev, totalMembers int
		regsNow, regsPrev                   int
		retainedNow, retainedPrev           int
		activeAtMonthStart, activeAtPrev    int
		summary                             business.MembershipSummary
		visitsByDay                         map[string]int
		popular                             []business.PopularPlan
		payments                            []business.RecentPayment
		inactive                            []business.InactiveMember
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		monthRevenue, err = s.BusinessRepository.RevenueBetween(gctx, branchID, monthStart, now)
		return err
	})
	g.Go(func() (err error) {
		prevRevenue, err = s.BusinessRepository.RevenueBetween(gctx, branchID, prevMonthStart, monthStart)
		return err
	})
	g.Go(func() (err error) {
		activeNow, err = s.BusinessRepository.CountActiveMembersAt(gctx, branchID, now)
		return err
	})
	g.Go(func() (err error) {
		activePrev, err = s.BusinessRepository.CountActiveMembersAt(gctx, branchID, monthStart)
		return err
	})
	g.Go(func() (err error) {
		totalMembers, err = s.BusinessRepository.CountMembers(gctx, branchID, false)
		return err
	})
	g.Go(func() (err error) {
		regsNow, err = s.BusinessRepository.CountRegistrationsBetween(gctx, branchID, monthStart, now)
		return err
	})
	g.Go(func() (err error) {
		regsPrev, err = s.BusinessRepository.CountRegistrationsBetween(gctx, branchID, prevMonthStart, monthStart)
		return err
	})
	g.Go(func() (err error) {
		retainedNow, err = s.BusinessRepository.CountRetained(gctx, branchID, monthStart)
		if err != nil {
			return err
		}
		activeAtMonthStart, err = s.BusinessRepository.CountActiveMembersAt(gctx, branchID, monthStart)
		return err
	})
	g.Go(func() (err error) {
		retainedPrev, err = s.BusinessRepository.CountRetained(gctx, branchID, prevMonthStart)
		if err != nil {
			return err
		}
		activeAtPrev, err = s.BusinessRepository.CountActiveMembersAt(gctx, branchID, prevMonthStart)
		return err
	})
	g.Go(func() (err error) {
		summary, err = s.BusinessRepository.MembershipSummary(gctx, branchID, now.AddDate(0, 0, 7))
		return err
	})
	g.Go(func() (err error) {
		visitsByDay, err = s.BusinessRepository.VisitsPerDay(gctx, branchID, weekFrom, todayStart.AddDate(0, 0, 1), tz)
		return err
	})
	g.Go(func() (err error) {
		popular, err = s.BusinessRepository.PopularPlans(gctx, branchID, filter.PopularPlansLimit)
		return err
	})
	g.Go(func() (err error) {
		payments, err = s.BusinessRepository.RecentPayments(gctx, branchID, filter.RecentPaymentsLimit)
		return err
	})
	g.Go(func() (err error) {
		inactive, err = s.BusinessRepository.InactiveMembers(gctx, branchID,
			now.AddDate(0, 0, -filter.InactiveDays), filter.InactiveLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		return business.DashboardResponse{}, err
	}

	retention := retentionPct(retainedNow, activeAtMonthStart)
	prevRetention := retentionPct(retainedPrev, activeAtPrev)

	weekly := make([]business.WeekdayVisits, 0, 7)
	for d := weekFrom; !d.After(todayStart); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		weekly = append(weekly, business.WeekdayVisits{
			Date:     key,
			DayLabel: dayLabels[int(d.Weekday())],
			Visits:   visitsByDay[key],
		})
	}

	return business.DashboardResponse{
		GeneratedAt: now.UTC().Format(time.RFC3339),
		KPIs: business.KPIs{
			MonthRevenue: business.KPIMoney{
				Value:     monthRevenue,
				ChangePct: changePct(monthRevenue, prevRevenue),
			},
			ActiveMembers: business.KPICount{
				Value:  activeNow,
				Change: activeNow - activePrev,
			},
			TotalMembers: totalMembers,
			NewRegistrations: business.KPICount{
				Value:  regsNow,
				Change: regsNow - regsPrev,
			},
			RetentionRatePct: business.KPICount{
				Value:  retention,
				Change: retention - prevRetention,
			},
		},
		MembershipSummary: summary,
		WeeklyAttendance:  weekly,
		PopularPlans:      popular,
		RecentPayments:    payments,
		InactiveMembers:   inactive,
	}, nil
}

func retentionPct(retained, base int) int {
	if base == 0 {
		return 0
	}
	return int(math.Round(float64(retained) / float64(base) * 100))
}
