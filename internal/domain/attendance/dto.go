package attendance

import (
	"github.com/eigenfit/eigenfit-backend-go/internal/pkg/validator"
)

type CheckInRequest struct {
	BranchID string `json:"branch_id"`
	MemberID string `json:"member_id"`
}

func (r *CheckInRequest) Validate() error {
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

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListAttendancesFilter struct {
	// AttendanceDate is a calendar day in the branch business timezone,
	// formatted YYYY-MM-DD. Empty means today.
	AttendanceDate string `json:"attendance_date"`
	Limit          int    `json:"limit"`
}

func (f *ListAttendancesFilter) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(f.AttendanceDate); !validator.IsEmpty(f.AttendanceDate) && !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "attendance_date",
			Message: "attendance_date must be in YYYY-MM-DD format",
		})
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 50 // Default limit
	}
	if f.Limit > 200 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 200",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceResponse struct {
	ID         string     `json:"id"`
	BranchID   string     `json:"branch_id"`
	PersonID   string     `json:"member_id"`
	Role       PersonRole `json:"role"`
	PersonName string     `json:"member_name"`
	PersonCode int        `json:"member_code"`
	CheckIn    string     `json:"check_in"`
	CheckOut   *string    `json:"check_out,omitempty"`
}

type ListAttendancesResponse struct {
	Items []AttendanceResponse `json:"items"`
	Total int64                `json:"total"`
}
