package plan

import (
	"github.com/eigenfit/eigenfit-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreatePlanRequest struct {
	BranchID       string          `json:"branch_id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	DurationMonths int             `json:"duration_months"`
	Price          decimal.Decimal `json:"price"`
}

func (r *CreatePlanRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.BranchID) {
		errs = append(errs, validator.ValidationError{
			Field:   "branch_id",
			Message: "branch_id is required",
		})
	}

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if r.DurationMonths < 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "duration_months",
			Message: "duration_months must be at least 1",
		})
	}

	if r.Price.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "price",
			Message: "price must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdatePlanRequest struct {
	ID             string           `json:"-"`
	Name           *string          `json:"name,omitempty"`
	Description    *string          `json:"description,omitempty"`
	DurationMonths *int             `json:"duration_months,omitempty"`
	Price          *decimal.Decimal `json:"price,omitempty"`
}

func (r *UpdatePlanRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if r.DurationMonths != nil && *r.DurationMonths < 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "duration_months",
			Message: "duration_months must be at least 1",
		})
	}

	if r.Price != nil && r.Price.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "price",
			Message: "price must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PlanResponse struct {
	ID             string          `json:"id"`
	BranchID       string          `json:"branch_id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	DurationMonths int             `json:"duration_months"`
	Price          decimal.Decimal `json:"price"`
	CreatedAt      string          `json:"created_at"`
	UpdatedAt      string          `json:"updated_at"`
}
