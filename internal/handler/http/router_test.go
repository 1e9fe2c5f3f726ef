package http

import (
	"net/http"
	"testing"

	"github.com/eigenfit/eigenfit-backend-go/internal/config"
	"github.com/eigenfit/eigenfit-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

// noopHandler satisfies every handler interface so the routing table can
// be built without real services. The handlers are never invoked here.
type noopHandler struct{}

func (noopHandler) LoginWithGoogle(http.ResponseWriter, *http.Request)     {}
func (noopHandler) OAuthCallbackGoogle(http.ResponseWriter, *http.Request) {}
func (noopHandler) RefreshToken(http.ResponseWriter, *http.Request)        {}
func (noopHandler) Logout(http.ResponseWriter, *http.Request)              {}
func (noopHandler) Me(http.ResponseWriter, *http.Request)                  {}
func (noopHandler) Create(http.ResponseWriter, *http.Request)              {}
func (noopHandler) Get(http.ResponseWriter, *http.Request)                 {}
func (noopHandler) List(http.ResponseWriter, *http.Request)                {}
func (noopHandler) Update(http.ResponseWriter, *http.Request)              {}
func (noopHandler) Delete(http.ResponseWriter, *http.Request)              {}
func (noopHandler) Deactivate(http.ResponseWriter, *http.Request)          {}
func (noopHandler) CheckIn(http.ResponseWriter, *http.Request)             {}
func (noopHandler) CheckOut(http.ResponseWriter, *http.Request)            {}
func (noopHandler) ListCurrent(http.ResponseWriter, *http.Request)         {}
func (noopHandler) ListByDate(http.ResponseWriter, *http.Request)          {}
func (noopHandler) Suggest(http.ResponseWriter, *http.Request)             {}
func (noopHandler) Renew(http.ResponseWriter, *http.Request)               {}
func (noopHandler) ListByMember(http.ResponseWriter, *http.Request)        {}
func (noopHandler) Cancel(http.ResponseWriter, *http.Request)              {}
func (noopHandler) Check(http.ResponseWriter, *http.Request)               {}
func (noopHandler) VerifyPIN(http.ResponseWriter, *http.Request)           {}
func (noopHandler) UpdatePIN(http.ResponseWriter, *http.Request)           {}
func (noopHandler) TodayStats(http.ResponseWriter, *http.Request)          {}
func (noopHandler) Leaderboard(http.ResponseWriter, *http.Request)         {}
func (noopHandler) StreamToken(http.ResponseWriter, *http.Request)         {}
func (noopHandler) Events(http.ResponseWriter, *http.Request)              {}
func (noopHandler) Dashboard(http.ResponseWriter, *http.Request)           {}
func (noopHandler) Status(http.ResponseWriter, *http.Request)              {}
func (noopHandler) History(http.ResponseWriter, *http.Request)             {}
func (noopHandler) Checkout(http.ResponseWriter, *http.Request)            {}
func (noopHandler) Webhook(http.ResponseWriter, *http.Request)             {}

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	stub := noopHandler{}
	return NewRouter(&config.Config{}, jwt.NewJWTService("test-secret", "15m", "168h"), Handlers{
		Auth:       stub,
		Branch:     stub,
		Plan:       stub,
		Member:     stub,
		Employee:   stub,
		Attendance: stub,
		Membership: stub,
		Kiosk:      stub,
		Business:   stub,
		Billing:    stub,
	})
}

func TestRouter_AttendanceRoutes(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)

	tests := []struct {
		method string
		path   string
		want   bool
	}{
		{http.MethodPost, "/api/v1/attendances/check-in", true},
		{http.MethodGet, "/api/v1/attendances/", true},
		{http.MethodGet, "/api/v1/attendances/current", true},
		{http.MethodGet, "/api/v1/attendances/stats/today", true},
		{http.MethodGet, "/api/v1/attendances/leaderboard/streak", true},
		{http.MethodPost, "/api/v1/attendances/a1/check-out", true},

		// Check-in lives under its own path, not the collection root, and
		// there is exactly one today-stats endpoint.
		{http.MethodPost, "/api/v1/attendances/", false},
		{http.MethodGet, "/api/v1/attendances/today-stats", false},
		{http.MethodGet, "/api/v1/kiosk/today-stats", false},
	}

	for _, tt := range tests {
		got := r.Match(chi.NewRouteContext(), tt.method, tt.path)
		assert.Equal(t, tt.want, got, "%s %s", tt.method, tt.path)
	}
}

func TestRouter_KioskRoutes(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)

	assert.True(t, r.Match(chi.NewRouteContext(), http.MethodPost, "/api/v1/kiosk/check"))
	assert.True(t, r.Match(chi.NewRouteContext(), http.MethodPost, "/api/v1/kiosk/pin/verify"))
	assert.True(t, r.Match(chi.NewRouteContext(), http.MethodPut, "/api/v1/kiosk/pin"))
	assert.True(t, r.Match(chi.NewRouteContext(), http.MethodGet, "/api/v1/kiosk/stream-token"))
	assert.True(t, r.Match(chi.NewRouteContext(), http.MethodGet, "/api/v1/kiosk/events"))
}
