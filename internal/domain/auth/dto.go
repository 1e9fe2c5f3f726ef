package auth

import "github.com/eigenfit/eigenfit-backend-go/internal/pkg/validator"

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"-"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`

	// RefreshExpiresAt drives the refresh cookie lifetime; it is never
	// serialized.
	RefreshExpiresAt int64 `json:"-"`
}

type AccessTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"-"`
}

func (r *RefreshTokenRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RefreshToken) {
		errs = append(errs, validator.ValidationError{
			Field:   "refresh_token",
			Message: "refresh_token is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// OAuthCallbackRequest carries the query parameters Google sends back.
type OAuthCallbackRequest struct {
	State string `json:"state"`
	Code  string `json:"code"`
}

func (r *OAuthCallbackRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.State) {
		errs = append(errs, validator.ValidationError{
			Field:   "state",
			Message: "state is required",
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

type MeResponse struct {
	ID       string  `json:"id"`
	Email    string  `json:"email"`
	Name     string  `json:"name"`
	Role     string  `json:"role"`
	BranchID *string `json:"branch_id,omitempty"`
}
