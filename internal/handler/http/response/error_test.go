package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eigenfit/eigenfit-backend-go/internal/domain/attendance"
	"github.com/eigenfit/eigenfit-backend-go/internal/domain/auth"
	"github.com/eigenfit/eigenfit-backend-go/internal/domain/billing"
	"github.com/eigenfit/eigenfit-backend-go/internal/domain/kiosk"
	"github.com/eigenfit/eigenfit-backend-go/internal/domain/master/branch"
	"github.com/eigenfit/eigenfit-backend-go/internal/domain/master/plan"
	"github.com/eigenfit/eigenfit-backend-go/internal/domain/member"
	"github.com/eigenfit/eigenfit-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError_StatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"member not found", member.ErrMemberNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"unknown kiosk code", kiosk.ErrUnknownCode, http.StatusNotFound, "NOT_FOUND"},
		{"invalid kiosk code", kiosk.ErrInvalidCode, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"inactive identity", kiosk.ErrIdentityInactive, http.StatusForbidden, "FORBIDDEN"},
		{"already checked in", attendance.ErrAlreadyCheckedIn, http.StatusConflict, "CONFLICT"},
		{"already checked out", attendance.ErrAlreadyCheckedOut, http.StatusConflict, "CONFLICT"},
		{"plan in use", plan.ErrPlanInUse, http.StatusConflict, "CONFLICT"},
		{"duplicate email", member.ErrEmailExists, http.StatusConflict, "CONFLICT"},
		{"bad kiosk pin", branch.ErrInvalidKioskPIN, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"pending invoice", billing.ErrPendingInvoiceExists, http.StatusConflict, "CONFLICT"},
		{"bad webhook token", billing.ErrInvalidWebhookToken, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"revoked token", auth.ErrTokenRevoked, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"unmapped error", assert.AnError, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}

func TestHandleError_UnknownKioskCodeNamesRoleAndCode(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	HandleError(rec, &kiosk.UnknownCodeError{Role: kiosk.RoleEmployee, Code: "E-5"})

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.Equal(t, "NOT_FOUND", body.Error.Code)
	assert.Equal(t, "Employee E-5 not found", body.Error.Message)
}

func TestHandleError_ValidationErrorsCarryFieldDetails(t *testing.T) {
	t.Parallel()

	errs := validator.ValidationErrors{
		{Field: "branch_id", Message: "branch_id is required"},
		{Field: "code", Message: "code is required"},
	}

	rec := httptest.NewRecorder()
	HandleError(rec, errs)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.Equal(t, "branch_id is required", body.Error.Details["branch_id"])
	assert.Equal(t, "code is required", body.Error.Details["code"])
}
