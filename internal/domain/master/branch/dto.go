package branch

import (
	"github.com/eigenfit/eigenfit-backend-go/internal/pkg/validator"
)

type CreateBranchRequest struct {
	Name     string  `json:"name"`
	Address  *string `json:"address,omitempty"`
	Timezone string  `json:"timezone,omitempty"`
}

func (r *CreateBranchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if r.Timezone != "" && !validator.IsValidTimezone(r.Timezone) {
		errs = append(errs, validator.ValidationError{
			Field:   "timezone",
			Message: "timezone must be a valid IANA zone name",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateBranchRequest struct {
	ID       string  `json:"-"`
	Name     *string `json:"name,omitempty"`
	Address  *string `json:"address,omitempty"`
	Timezone *string `json:"timezone,omitempty"`
}

func (r *UpdateBranchRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if r.Timezone != nil && !validator.IsValidTimezone(*r.Timezone) {
		errs = append(errs, validator.ValidationError{
			Field:   "timezone",
			Message: "timezone must be a valid IANA zone name",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BranchResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Address   *string `json:"address,omitempty"`
	Timezone  string  `json:"timezone"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}
