package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eigenfit/eigenfit-backend-go/internal/config"
	cronJobs "github.com/eigenfit/eigenfit-backend-go/internal/handler/cron"
	appHTTP "github.com/eigenfit/eigenfit-backend-go/internal/handler/http"
	"github.com/eigenfit/eigenfit-backend-go/internal/pkg/cron"
	"github.com/eigenfit/eigenfit-backend-go/internal/pkg/database"
	"github.com/eigenfit/eigenfit-backend-go/internal/pkg/email"
	"github.com/eigenfit/eigenfit-backend-go/internal/pkg/jwt"
	"github.com/eigenfit/eigenfit-backend-go/internal/pkg/oauth"
	"github.com/eigenfit/eigenfit-backend-go/internal/pkg/sse"
	"github.com/eigenfit/eigenfit-backend-go/internal/pkg/xendit"
	"github.com/eigenfit/eigenfit-backend-go/internal/repository/postgresql"
	attendanceService "github.com/eigenfit/eigenfit-backend-go/internal/service/attendance"
	serviceAuth "github.com/eigenfit/eigenfit-backend-go/internal/service/auth"
	billingService "github.com/eigenfit/eigenfit-backend-go/internal/service/billing"
	businessService "github.com/eigenfit/eigenfit-backend-go/internal/service/business"
	employeeService "github.com/eigenfit/eigenfit-backend-go/internal/service/employee"
	kioskService "github.com/eigenfit/eigenfit-backend-go/internal/service/kiosk"
	"github.com/eigenfit/eigenfit-backend-go/internal/service/master"
	memberService "github.com/eigenfit/eigenfit-backend-go/internal/service/member"
	membershipService "github.com/eigenfit/eigenfit-backend-go/internal/service/membership"
	visitstatsService "github.com/eigenfit/eigenfit-backend-go/internal/service/visitstats"
	"github.com/shopspring/decimal"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	monthlyPrice, err := decimal.NewFromString(cfg.Billing.MonthlyPrice)
	if err != nil {
		log.Fatal("Invalid BILLING_MONTHLY_PRICE: ", err)
	}

	userRepo := postgresql.NewUserRepository(db)
	branchRepo := postgresql.NewBranchRepository(db)
	planRepo := postgresql.NewPlanRepository(db)
	memberRepo := postgresql.NewMemberRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	membershipRepo := postgresql.NewMembershipRepository(db)
	visitStatsRepo := postgresql.NewVisitStatsRepository(db)
	businessRepo := postgresql.NewBusinessRepository(db)
	billingRepo := postgresql.NewBillingRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	GoogleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service: ", err)
	}
	xenditClient := xendit.NewClient(cfg.Xendit)
	webhookVerifier := xendit.NewWebhookVerifier(cfg.Xendit.WebhookToken)
	hub := sse.NewHub()

	authSvc := serviceAuth.NewAuthService(userRepo, GoogleService, JWTService)
	branchSvc := master.NewBranchService(branchRepo, planRepo, cfg.App.DefaultTimezone, cfg.Kiosk.DefaultPIN)
	planSvc := master.NewPlanService(planRepo)
	memberSvc := memberService.NewMemberService(memberRepo)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	statsSvc := visitstatsService.NewVisitStatsService(visitStatsRepo, branchRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, memberRepo, branchRepo, hub)
	kioskSvc := kioskService.NewKioskService(memberRepo, employeeRepo, attendanceRepo, branchRepo, statsSvc, hub)
	membershipSvc := membershipService.NewMembershipService(membershipRepo, planRepo, memberRepo, branchRepo, db)
	businessSvc := businessService.NewBusinessService(businessRepo, branchRepo)
	billingSvc := billingService.NewBillingService(billingRepo, userRepo, xenditClient, webhookVerifier, monthlyPrice, cfg.App.FrontendURL)

	handlers := appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authSvc, JWTService, cfg.App.FrontendURL),
		Branch:     appHTTP.NewBranchHandler(branchSvc),
		Plan:       appHTTP.NewPlanHandler(planSvc),
		Member:     appHTTP.NewMemberHandler(memberSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Membership: appHTTP.NewMembershipHandler(membershipSvc),
		Kiosk:      appHTTP.NewKioskHandler(kioskSvc, statsSvc, JWTService, hub),
		Business:   appHTTP.NewBusinessHandler(businessSvc),
		Billing:    appHTTP.NewBillingHandler(billingSvc),
	}

	scheduler := cron.NewScheduler()
	jobs := cronJobs.NewJobs(
		membershipRepo,
		memberRepo,
		branchRepo,
		emailService,
		billingSvc,
		statsSvc,
		hub,
		cfg.Kiosk.StatsRefreshInterval,
	)
	jobs.Register(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(cfg, JWTService, handlers)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{
		Addr:    port,
		Handler: router,
	}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Println("Forced shutdown:", err)
	}
}
