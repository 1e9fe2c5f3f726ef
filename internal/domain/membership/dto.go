package membership

import (
	"github.com/eigenfit/eigenfit-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type RenewRequest struct {
	BranchID string   `json:"branch_id"`
	MemberID string   `json:"member_id"`
	PlanIDs  []string `json:"plan_ids"`

	// PaymentAmount overrides the suggested price when the front desk
	// negotiates a different one. Nil means use the suggestion.
	PaymentAmount *decimal.Decimal `json:"payment_amount,omitempty"`

	// DueDate overrides the suggested due date, YYYY-MM-DD. Empty means
	// use the suggestion.
	DueDate string `json:"due_date,omitempty"`
}

func (r *RenewRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.BranchID) {
		errs = append(errs, validator.ValidationError{
			Field:   "branch_id",
			Message: "branch_id is required",
		})
	}

	if validator.IsEmpty(r.MemberID) {
		errs = append(errs, validator.ValidationError{
			Field:   "member_id",
			Message: "member_id is required",
		})
	}

	if len(r.PlanIDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "plan_ids",
			Message: "at least one plan is required",
		})
	}

	if r.PaymentAmount != nil && r.PaymentAmount.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "payment_amount",
			Message: "payment_amount must not be negative",
		})
	}

	if _, ok := validator.IsValidDate(r.DueDate); !validator.IsEmpty(r.DueDate) && !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "due_date",
			Message: "due_date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// SuggestionRequest asks for the prefilled price and due date shown when
// the front desk opens the renewal form.
type SuggestionRequest struct {
	BranchID string   `json:"branch_id"`
	MemberID string   `json:"member_id"`
	PlanIDs  []string `json:"plan_ids"`
}

func (r *SuggestionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.BranchID) {
		errs = append(errs, validator.ValidationError{
			Field:   "branch_id",
			Message: "branch_id is required",
		})
	}

	if validator.IsEmpty(r.MemberID) {
		errs = append(errs, validator.ValidationError{
			Field:   "member_id",
			Message: "member_id is required",
		})
	}

	if len(r.PlanIDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "plan_ids",
			Message: "at least one plan is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// SuggestionResponse carries the prefill: the summed plan prices and the
// due date pushed out by the longest selected plan.
type SuggestionResponse struct {
	SuggestedPrice   decimal.Decimal `json:"suggested_price"`
	SuggestedDueDate string          `json:"suggested_due_date"`
}

type MembershipResponse struct {
	ID            string          `json:"id"`
	BranchID      string          `json:"branch_id"`
	MemberID      string          `json:"member_id"`
	PlanID        string          `json:"plan_id"`
	PlanName      string          `json:"plan_name"`
	StartDate     string          `json:"start_date"`
	DueDate       string          `json:"due_date"`
	Status        Status          `json:"status"`
	PaymentAmount decimal.Decimal `json:"payment_amount"`
}

type ListMembershipsResponse struct {
	Items []MembershipResponse `json:"items"`
}

type CancelRequest struct {
	ID       string `json:"-"`
	BranchID string `json:"-"`
}
