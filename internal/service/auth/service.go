package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/eigenfit/eigenfit-backend-go/internal/domain/auth"
	"github.com/eigenfit/eigenfit-backend-go/internal/domain/user"
	"github.com/eigenfit/eigenfit-backend-go/internal/pkg/jwt"
	"github.com/eigenfit/eigenfit-backend-go/internal/pkg/oauth"
	jwxjwt "github.com/lestrrat-go/jwx/v2/jwt"
)

type AuthServiceImpl struct {
	user.UserRepository

	google oauth.GoogleService
	jwt    jwt.Service
}

func NewAuthService(userRepo user.UserRepository, google oauth.GoogleService, jwtService jwt.Service) *AuthServiceImpl {
	return &AuthServiceImpl{
		UserRepository: userRepo,
		google:         google,
		jwt:            jwtService,
	}
}

// LoginURL implements auth.AuthService.
func (s *AuthServiceImpl) LoginURL(_ context.Context) (string, string, error) {
	state := s.google.GenerateState("web")
	if state == "" {
		return "", "", errors.New("failed to generate oauth state")
	}
	return s.google.RedirectURL(state), state, nil
}

// OAuthCallback implements auth.AuthService.
func (s *AuthServiceImpl) OAuthCallback(ctx context.Context, req auth.OAuthCallbackRequest, expectedState string) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}
	if expectedState == "" || req.State != expectedState {
		return auth.TokenResponse{}, auth.ErrInvalidOAuthState
	}

	token, err := s.google.VerifyToken(ctx, req.Code)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	info, err := s.google.VerifyUser(ctx, token)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to fetch google profile: %w", err)
	}
	if !info.VerifiedEmail {
		return auth.TokenResponse{}, auth.ErrEmailNotVerified
	}

	u, err := s.resolveUser(ctx, info)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	accessToken, expiresAt, err := s.jwt.GenerateAccessToken(u.ID, u.Email, u.BranchID, u.Role)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	refreshToken, refreshExpiresAt, err := s.jwt.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return auth.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        expiresAt,
		TokenType:        "Bearer",
		RefreshExpiresAt: refreshExpiresAt,
	}, nil
}

// resolveUser finds the account for a Google identity, provisioning an owner
// account on first login. Profile fields follow what Google reports.
func (s *AuthServiceImpl) resolveUser(ctx context.Context, info oauth.GoogleInformation) (user.User, error) {
	u, err := s.UserRepository.GetByGoogleID(ctx, info.GoogleID)
	if err == nil {
		if u.Name != info.Name || u.Email != info.Email {
			u.Name = info.Name
			u.Email = info.Email
			if err := s.UserRepository.Update(ctx, u); err != nil {
				return user.User{}, err
			}
		}
		return u, nil
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return user.User{}, err
	}

	// An account created before the Google ID was known (e.g. invited staff)
	// is matched by email and linked.
	u, err = s.UserRepository.GetByEmail(ctx, info.Email)
	if err == nil {
		u.GoogleID = info.GoogleID
		u.Name = info.Name
		if err := s.UserRepository.Update(ctx, u); err != nil {
			return user.User{}, err
		}
		return u, nil
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return user.User{}, err
	}

	return s.UserRepository.Create(ctx, user.User{
		Email:    info.Email,
		Name:     info.Name,
		GoogleID: info.GoogleID,
		Role:     user.RoleOwner,
	})
}

// RefreshToken implements auth.AuthService.
func (s *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AccessTokenResponse{}, err
	}
	if s.jwt.IsTokenRevoked(req.RefreshToken) {
		return auth.AccessTokenResponse{}, auth.ErrTokenRevoked
	}

	token, err := s.jwt.JWTAuth().Decode(req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidRefreshToken
	}
	if err := jwxjwt.Validate(token); err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidRefreshToken
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != "refresh" {
		return auth.AccessTokenResponse{}, auth.ErrInvalidRefreshToken
	}
	userIDVal, ok := token.Get("user_id")
	if !ok {
		return auth.AccessTokenResponse{}, auth.ErrInvalidRefreshToken
	}
	userID, ok := userIDVal.(string)
	if !ok {
		return auth.AccessTokenResponse{}, auth.ErrInvalidRefreshToken
	}

	u, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.AccessTokenResponse{}, err
	}

	accessToken, expiresAt, err := s.jwt.GenerateAccessToken(u.ID, u.Email, u.BranchID, u.Role)
	if err != nil {
		return auth.AccessTokenResponse{}, err
	}

	return auth.AccessTokenResponse{
		AccessToken: accessToken,
		ExpiresIn:   expiresAt,
		TokenType:   "Bearer",
	}, nil
}

// Logout implements auth.AuthService.
func (s *AuthServiceImpl) Logout(_ context.Context, accessToken string, refreshToken string) error {
	if accessToken != "" {
		s.jwt.RevokeToken(accessToken)
	}
	if refreshToken != "" {
		s.jwt.RevokeToken(refreshToken)
	}
	return nil
}

// Me implements auth.AuthService.
func (s *AuthServiceImpl) Me(ctx context.Context, userID string) (auth.MeResponse, error) {
	u, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.MeResponse{}, err
	}

	return auth.MeResponse{
		ID:       u.ID,
		Email:    u.Email,
		Name:     u.Name,
		Role:     string(u.Role),
		BranchID: u.BranchID,
	}, nil
}
