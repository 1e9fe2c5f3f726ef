package http

import (
	"log/slog"
	"os"

	"github.com/eigenfit/eigenfit-backend-go/internal/config"
	"github.com/eigenfit/eigenfit-backend-go/internal/handler/http/middleware"
	"github.com/eigenfit/eigenfit-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type Handlers struct {
	Auth       AuthHandler
	Branch     BranchHandler
	Plan       PlanHandler
	Member     MemberHandler
	Employee   EmployeeHandler
	Attendance AttendanceHandler
	Membership MembershipHandler
	Kiosk      KioskHandler
	Business   BusinessHandler
	Billing    BillingHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "eigenfit-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Branch-ID"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
			r.Route("/login/oauth", func(r chi.Router) {
				r.Get("/google", h.Auth.LoginWithGoogle)
			})
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", h.Auth.OAuthCallbackGoogle)
			})
		})

		// Gateway callbacks and the kiosk event stream authenticate
		// themselves (callback token, kiosk stream token).
		r.Post("/billing/webhook", h.Billing.Webhook)
		r.Get("/kiosk/events", h.Kiosk.Events)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService))

			r.Get("/auth/me", h.Auth.Me)

			// Owner only, not branch scoped
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireOwner)

				r.Route("/branches", func(r chi.Router) {
					r.Get("/", h.Branch.List)
					r.Post("/", h.Branch.Create)
					r.Get("/{id}", h.Branch.Get)
					r.Put("/{id}", h.Branch.Update)
				})

				r.Route("/billing", func(r chi.Router) {
					r.Get("/status", h.Billing.Status)
					r.Get("/history", h.Billing.History)
					r.Post("/checkout", h.Billing.Checkout)
				})
			})

			// Branch scoped
			r.Group(func(r chi.Router) {
				r.Use(middleware.BranchScope)

				r.Route("/members", func(r chi.Router) {
					r.Get("/", h.Member.List)
					r.Post("/", h.Member.Create)
					r.Get("/{id}", h.Member.Get)
					r.Put("/{id}", h.Member.Update)
					r.Delete("/{id}", h.Member.Deactivate)

					r.Route("/{memberID}/memberships", func(r chi.Router) {
						r.Get("/", h.Membership.ListByMember)
						r.Post("/", h.Membership.Renew)
						r.Post("/suggestion", h.Membership.Suggest)
					})
				})

				r.Route("/employees", func(r chi.Router) {
					r.Get("/", h.Employee.List)
					r.Post("/", h.Employee.Create)
					r.Get("/{id}", h.Employee.Get)
					r.Put("/{id}", h.Employee.Update)
					r.Delete("/{id}", h.Employee.Deactivate)
				})

				r.Route("/plans", func(r chi.Router) {
					r.Get("/", h.Plan.List)
					r.Post("/", h.Plan.Create)
					r.Get("/{id}", h.Plan.Get)
					r.Put("/{id}", h.Plan.Update)
					r.Delete("/{id}", h.Plan.Delete)
				})

				r.Route("/attendances", func(r chi.Router) {
					r.Get("/", h.Attendance.ListByDate)
					r.Post("/check-in", h.Attendance.CheckIn)
					r.Get("/current", h.Attendance.ListCurrent)
					r.Get("/stats/today", h.Kiosk.TodayStats)
					r.Get("/leaderboard/streak", h.Kiosk.Leaderboard)
					r.Post("/{id}/check-out", h.Attendance.CheckOut)
				})

				r.Post("/memberships/{id}/cancel", h.Membership.Cancel)

				r.Route("/kiosk", func(r chi.Router) {
					r.Post("/check", h.Kiosk.Check)
					r.Post("/pin/verify", h.Kiosk.VerifyPIN)
					r.Put("/pin", h.Kiosk.UpdatePIN)
					r.Get("/stream-token", h.Kiosk.StreamToken)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireOwner)
					r.Get("/business/dashboard", h.Business.Dashboard)
				})
			})
		})
	})
	return r
}
