package response

import (
	"errors"
	"net/http"

	"github.com/eigenfit/eigenfit-backend-go/internal/domain/attendance"
	"github.com/eigenfit/eigenfit-backend-go/internal/domain/auth"
	"github.com/eigenfit/eigenfit-backend-go/internal/domain/billing"
	"github.com/eigenfit/eigenfit-backend-go/internal/domain/employee"
	"github.com/eigenfit/eigenfit-backend-go/internal/domain/kiosk"
	"github.com/eigenfit/eigenfit-backend-go/internal/domain/master/branch"
	"github.com/eigenfit/eigenfit-backend-go/internal/domain/master/plan"
	"github.com/eigenfit/eigenfit-backend-go/internal/domain/member"
	"github.com/eigenfit/eigenfit-backend-go/internal/domain/membership"
	"github.com/eigenfit/eigenfit-backend-go/internal/domain/user"
	"github.com/eigenfit/eigenfit-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Token is invalid")
	case errors.Is(err, auth.ErrInvalidOAuthState):
		Unauthorized(w, "OAuth state mismatch")
	case errors.Is(err, auth.ErrEmailNotVerified):
		Forbidden(w, "Google account email is not verified")
	case errors.Is(err, auth.ErrInvalidRefreshToken):
		Unauthorized(w, "Refresh token is invalid or expired")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token has been revoked")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrOwnerPrivilegeRequired):
		Forbidden(w, "Owner privilege required")

	// Branch and plan errors
	case errors.Is(err, branch.ErrBranchNotFound):
		NotFound(w, "Branch not found")
	case errors.Is(err, branch.ErrInvalidKioskPIN):
		Unauthorized(w, "Invalid kiosk PIN")
	case errors.Is(err, plan.ErrPlanNotFound):
		NotFound(w, "Membership plan not found")
	case errors.Is(err, plan.ErrPlanInUse):
		Conflict(w, "Plan has active memberships and cannot be deleted")

	// Member and employee errors
	case errors.Is(err, member.ErrMemberNotFound):
		NotFound(w, "Member not found")
	case errors.Is(err, member.ErrEmailExists):
		Conflict(w, "Email already registered in this branch")
	case errors.Is(err, member.ErrCodeExists):
		Conflict(w, "Member code already taken in this branch")
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered in this branch")

	// Attendance and kiosk errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "An open session already exists for this person")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Attendance record is already checked out")
	case errors.Is(err, kiosk.ErrInvalidCode):
		ValidationError(w, map[string]string{"code": "Code must be a number or E- followed by a number"})
	case errors.Is(err, kiosk.ErrUnknownCode):
		// Name the role and the formatted code when the lookup carried
		// them, e.g. "Employee E-5 not found".
		msg := "No member or employee matches this code"
		var unknown *kiosk.UnknownCodeError
		if errors.As(err, &unknown) {
			msg = unknown.Error()
		}
		NotFound(w, msg)
	case errors.Is(err, kiosk.ErrIdentityInactive):
		Forbidden(w, "This member or employee is deactivated")

	// Membership errors
	case errors.Is(err, membership.ErrMembershipNotFound):
		NotFound(w, "Membership not found")
	case errors.Is(err, membership.ErrNoPlansSelected):
		BadRequest(w, "At least one plan must be selected", nil)

	// Billing errors
	case errors.Is(err, billing.ErrSubscriptionNotFound):
		NotFound(w, "Subscription not found")
	case errors.Is(err, billing.ErrInvoiceNotFound):
		NotFound(w, "Invoice not found")
	case errors.Is(err, billing.ErrPendingInvoiceExists):
		Conflict(w, "A pending invoice already exists; pay or wait for it to expire")
	case errors.Is(err, billing.ErrInvalidWebhookToken):
		Unauthorized(w, "Invalid webhook callback token")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
