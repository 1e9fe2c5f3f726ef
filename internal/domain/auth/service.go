package auth

import "context"

// AuthService signs users in through Google and manages token lifetimes.
// There is no password login; identity is delegated entirely to the IdP.
type AuthService interface {
	// LoginURL returns the Google consent URL plus the state value the
	// callback must echo back.
	LoginURL(ctx context.Context) (url string, state string, err error)

	// OAuthCallback exchanges the authorization code, provisioning the
	// user on first login.
	OAuthCallback(ctx context.Context, req OAuthCallbackRequest, expectedState string) (TokenResponse, error)

	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)
	Logout(ctx context.Context, accessToken string, refreshToken string) error
	Me(ctx context.Context, userID string) (MeResponse, error)
}
