package auth

import "errors"

var (
	ErrInvalidToken        = errors.New("token is invalid")
	ErrInvalidOAuthState   = errors.New("oauth state mismatch")
	ErrEmailNotVerified    = errors.New("google account email is not verified")
	ErrInvalidRefreshToken = errors.New("refresh token is invalid or expired")
	ErrTokenRevoked        = errors.New("token has been revoked")
)
