package kiosk

import (
	"github.com/eigenfit/eigenfit-backend-go/internal/pkg/validator"
)

type CheckRequest struct {
	BranchID string `json:"branch_id"`
	Code     string `json:"code"`
}

func (r *CheckRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.BranchID) {
		errs = append(errs, validator.ValidationError{
			Field:   "branch_id",
			Message: "branch_id is required",
		})
	}

	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// FeedbackType distinguishes the two outcomes of a kiosk check.
type FeedbackType string

const (
	FeedbackCheckIn  FeedbackType = "in"
	FeedbackCheckOut FeedbackType = "out"
)

// CheckFeedback is what the kiosk screen shows after a successful check.
// Rank is the identity's position on the streak leaderboard, 0 when the
// identity is an employee or has no streak.
type CheckFeedback struct {
	Type         FeedbackType `json:"type"`
	Code         string       `json:"code"`
	Name         string       `json:"name"`
	Rank         int          `json:"rank,omitempty"`
	AttendanceID string       `json:"attendance_id,omitempty"`
}

type VerifyPINRequest struct {
	BranchID string `json:"branch_id"`
	PIN      string `json:"pin"`
}

func (r *VerifyPINRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.BranchID) {
		errs = append(errs, validator.ValidationError{
			Field:   "branch_id",
			Message: "branch_id is required",
		})
	}

	if !validator.IsValidPIN(r.PIN) {
		errs = append(errs, validator.ValidationError{
			Field:   "pin",
			Message: "pin must be exactly 4 digits",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdatePINRequest struct {
	BranchID   string `json:"branch_id"`
	CurrentPIN string `json:"current_pin"`
	NewPIN     string `json:"new_pin"`
}

func (r *UpdatePINRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.BranchID) {
		errs = append(errs, validator.ValidationError{
			Field:   "branch_id",
			Message: "branch_id is required",
		})
	}

	if !validator.IsValidPIN(r.CurrentPIN) {
		errs = append(errs, validator.ValidationError{
			Field:   "current_pin",
			Message: "current_pin must be exactly 4 digits",
		})
	}

	if !validator.IsValidPIN(r.NewPIN) {
		errs = append(errs, validator.ValidationError{
			Field:   "new_pin",
			Message: "new_pin must be exactly 4 digits",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
