package business

import (
	"github.com/eigenfit/eigenfit-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type DashboardFilter struct {
	InactiveDays        int `json:"inactive_days"`
	PopularPlansLimit   int `json:"popular_plans_limit"`
	RecentPaymentsLimit int `json:"recent_payments_limit"`
	InactiveLimit       int `json:"inactive_members_limit"`
}

func (f *DashboardFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.InactiveDays < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "inactive_days",
			Message: "inactive_days must be a positive number",
		})
	}
	if f.InactiveDays == 0 {
		f.InactiveDays = 30 // Default window
	}

	if f.PopularPlansLimit <= 0 {
		f.PopularPlansLimit = 4
	}
	if f.RecentPaymentsLimit <= 0 {
		f.RecentPaymentsLimit = 5
	}
	if f.InactiveLimit <= 0 {
		f.InactiveLimit = 5
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// KPIMoney is a money figure with its percent change against the
// previous month.
type KPIMoney struct {
	Value     decimal.Decimal `json:"value"`
	ChangePct int             `json:"change_pct"`
}

// KPICount is a count with its absolute change against the previous month.
type KPICount struct {
	Value  int `json:"value"`
	Change int `json:"change"`
}

type KPIs struct {
	MonthRevenue     KPIMoney `json:"month_revenue"`
	ActiveMembers    KPICount `json:"active_members"`
	TotalMembers     int      `json:"total_members"`
	NewRegistrations KPICount `json:"new_registrations"`
	RetentionRatePct KPICount `json:"retention_rate_pct"`
}

type MembershipSummary struct {
	Active        int `json:"active"`
	Expiring7Days int `json:"expiring_7_days"`
	Overdue       int `json:"overdue"`
	Canceled      int `json:"canceled"`
}

type WeekdayVisits struct {
	Date     string `json:"date"`
	DayLabel string `json:"day_label"`
	Visits   int    `json:"visits"`
}

type PopularPlan struct {
	PlanID      string          `json:"plan_id"`
	PlanName    string          `json:"plan_name"`
	Subscribers int             `json:"subscribers"`
	Price       decimal.Decimal `json:"price"`
}

type RecentPayment struct {
	MembershipID string          `json:"membership_id"`
	MemberName   string          `json:"member_name"`
	PlanName     string          `json:"plan_name"`
	Amount       decimal.Decimal `json:"amount"`
	PaidAt       string          `json:"paid_at"`
}

type InactiveMember struct {
	MemberID      string `json:"member_id"`
	MemberName    string `json:"member_name"`
	MemberCode    int    `json:"member_code"`
	LastVisitDate string `json:"last_visit_date,omitempty"`
	DaysInactive  int    `json:"days_inactive"`
}

type DashboardResponse struct {
	GeneratedAt       string            `json:"generated_at"`
	KPIs              KPIs              `json:"kpis"`
	MembershipSummary MembershipSummary `json:"membership_summary"`
	WeeklyAttendance  []WeekdayVisits   `json:"weekly_attendance"`
	PopularPlans      []PopularPlan     `json:"popular_plans"`
	RecentPayments    []RecentPayment   `json:"recent_payments"`
	InactiveMembers   []InactiveMember  `json:"inactive_members"`
}
