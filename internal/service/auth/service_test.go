package auth

import (
	"context"
	"testing"

	"github.com/eigenfit/eigenfit-backend-go/internal/domain/auth"
	"github.com/eigenfit/eigenfit-backend-go/internal/domain/user"
	"github.com/eigenfit/eigenfit-backend-go/internal/pkg/jwt"
	"github.com/eigenfit/eigenfit-backend-go/internal/pkg/oauth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type fakeUserRepo struct {
	user.UserRepository

	byGoogleID map[string]user.User
	byEmail    map[string]user.User
	byID       map[string]user.User

	created []user.User
	updated []user.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByGoogleID(_ context.Context, googleID string) (user.User, error) {
	u, ok := f.byGoogleID[googleID]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	u.ID = "user-1"
	f.created = append(f.created, u)
	return u, nil
}

func (f *fakeUserRepo) Update(_ context.Context, u user.User) error {
	f.updated = append(f.updated, u)
	return nil
}

type fakeGoogleService struct {
	info oauth.GoogleInformation
}

func (f *fakeGoogleService) GenerateState(string) string { return "state-1" }

func (f *fakeGoogleService) RedirectURL(state string) string {
	return "https://accounts.google.test/auth?state=" + state
}

func (f *fakeGoogleService) VerifyToken(context.Context, string) (*oauth2.Token, error) {
	return &oauth2.Token{AccessToken: "google-token"}, nil
}

func (f *fakeGoogleService) VerifyUser(context.Context, *oauth2.Token) (oauth.GoogleInformation, error) {
	return f.info, nil
}

func newAuthService(repo *fakeUserRepo, google *fakeGoogleService) *AuthServiceImpl {
	return NewAuthService(repo, google, jwt.NewJWTService("test-secret", "1h", "168h"))
}

func TestOAuthCallback_RejectsStateMismatch(t *testing.T) {
	t.Parallel()

	svc := newAuthService(&fakeUserRepo{}, &fakeGoogleService{})

	_, err := svc.OAuthCallback(context.Background(),
		auth.OAuthCallbackRequest{State: "tampered", Code: "code-1"}, "state-1")

	assert.ErrorIs(t, err, auth.ErrInvalidOAuthState)
}

func TestOAuthCallback_RejectsUnverifiedEmail(t *testing.T) {
	t.Parallel()

	google := &fakeGoogleService{
		info: oauth.GoogleInformation{GoogleID: "g-1", Email: "gaby@gym.mx", Name: "Gaby", VerifiedEmail: false},
	}
	svc := newAuthService(&fakeUserRepo{}, google)

	_, err := svc.OAuthCallback(context.Background(),
		auth.OAuthCallbackRequest{State: "state-1", Code: "code-1"}, "state-1")

	assert.ErrorIs(t, err, auth.ErrEmailNotVerified)
}

func TestOAuthCallback_ProvisionsOwnerOnFirstLogin(t *testing.T) {
	t.Parallel()

	repo := &fakeUserRepo{}
	google := &fakeGoogleService{
		info: oauth.GoogleInformation{GoogleID: "g-1", Email: "gaby@gym.mx", Name: "Gaby", VerifiedEmail: true},
	}
	svc := newAuthService(repo, google)

	got, err := svc.OAuthCallback(context.Background(),
		auth.OAuthCallbackRequest{State: "state-1", Code: "code-1"}, "state-1")

	require.NoError(t, err)
	assert.NotEmpty(t, got.AccessToken)
	assert.NotEmpty(t, got.RefreshToken)
	assert.Equal(t, "Bearer", got.TokenType)

	require.Len(t, repo.created, 1)
	assert.Equal(t, user.RoleOwner, repo.created[0].Role)
	assert.Equal(t, "g-1", repo.created[0].GoogleID)
	assert.Empty(t, repo.updated)
}

func TestOAuthCallback_LinksInvitedStaffByEmail(t *testing.T) {
	t.Parallel()

	branchID := "branch-1"
	repo := &fakeUserRepo{
		byEmail: map[string]user.User{
			"staff@gym.mx": {ID: "user-2", Email: "staff@gym.mx", Name: "Staff", BranchID: &branchID, Role: user.RoleStaff},
		},
	}
	google := &fakeGoogleService{
		info: oauth.GoogleInformation{GoogleID: "g-2", Email: "staff@gym.mx", Name: "Ana Staff", VerifiedEmail: true},
	}
	svc := newAuthService(repo, google)

	_, err := svc.OAuthCallback(context.Background(),
		auth.OAuthCallbackRequest{State: "state-1", Code: "code-1"}, "state-1")

	require.NoError(t, err)
	assert.Empty(t, repo.created)
	require.Len(t, repo.updated, 1)
	assert.Equal(t, "g-2", repo.updated[0].GoogleID)
	assert.Equal(t, user.RoleStaff, repo.updated[0].Role)
}

func TestRefreshToken_IssuesNewAccessToken(t *testing.T) {
	t.Parallel()

	repo := &fakeUserRepo{
		byID: map[string]user.User{
			"user-1": {ID: "user-1", Email: "gaby@gym.mx", Name: "Gaby", Role: user.RoleOwner},
		},
	}
	jwtService := jwt.NewJWTService("test-secret", "1h", "168h")
	svc := NewAuthService(repo, &fakeGoogleService{}, jwtService)

	refreshToken, _, err := jwtService.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	got, err := svc.RefreshToken(context.Background(), auth.RefreshTokenRequest{RefreshToken: refreshToken})

	require.NoError(t, err)
	assert.NotEmpty(t, got.AccessToken)
	assert.Equal(t, "Bearer", got.TokenType)
}

func TestRefreshToken_RejectsRevokedToken(t *testing.T) {
	t.Parallel()

	jwtService := jwt.NewJWTService("test-secret", "1h", "168h")
	svc := NewAuthService(&fakeUserRepo{}, &fakeGoogleService{}, jwtService)

	refreshToken, _, err := jwtService.GenerateRefreshToken("user-1")
	require.NoError(t, err)
	jwtService.RevokeToken(refreshToken)

	_, err = svc.RefreshToken(context.Background(), auth.RefreshTokenRequest{RefreshToken: refreshToken})

	assert.ErrorIs(t, err, auth.ErrTokenRevoked)
}

func TestRefreshToken_RejectsAccessTokenAsRefresh(t *testing.T) {
	t.Parallel()

	jwtService := jwt.NewJWTService("test-secret", "1h", "168h")
	svc := NewAuthService(&fakeUserRepo{}, &fakeGoogleService{}, jwtService)

	accessToken, _, err := jwtService.GenerateAccessToken("user-1", "gaby@gym.mx", nil, user.RoleOwner)
	require.NoError(t, err)

	_, err = svc.RefreshToken(context.Background(), auth.RefreshTokenRequest{RefreshToken: accessToken})

	assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)
}
