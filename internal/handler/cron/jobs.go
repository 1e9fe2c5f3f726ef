package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/eigenfit/eigenfit-backend-go/internal/domain/billing"
	"github.com/eigenfit/eigenfit-backend-go/internal/domain/master/branch"
	"github.com/eigenfit/eigenfit-backend-go/internal/domain/member"
	"github.com/eigenfit/eigenfit-backend-go/internal/domain/membership"
	"github.com/eigenfit/eigenfit-backend-go/internal/domain/visitstats"
	"github.com/eigenfit/eigenfit-backend-go/internal/pkg/cron"
	"github.com/eigenfit/eigenfit-backend-go/internal/pkg/email"
	"github.com/eigenfit/eigenfit-backend-go/internal/pkg/sse"
)

const renewalReminderWindow = 7 * 24 * time.Hour

// Jobs bundles the background work: membership state sweeps, renewal
// reminders, SaaS billing expiry, and the kiosk snapshot refresh.
type Jobs struct {
	membershipRepo membership.MembershipRepository
	memberRepo     member.MemberRepository
	branchRepo     branch.BranchRepository
	emailService   email.EmailService
	billingService billing.BillingService
	statsService   visitstats.VisitStatsService
	hub            *sse.Hub

	statsRefreshInterval time.Duration
}

func NewJobs(
	membershipRepo membership.MembershipRepository,
	memberRepo member.MemberRepository,
	branchRepo branch.BranchRepository,
	emailService email.EmailService,
	billingService billing.BillingService,
	statsService visitstats.VisitStatsService,
	hub *sse.Hub,
	statsRefreshInterval time.Duration,
) *Jobs {
	return &Jobs{
		membershipRepo:       membershipRepo,
		memberRepo:           memberRepo,
		branchRepo:           branchRepo,
		emailService:         emailService,
		billingService:       billingService,
		statsService:         statsService,
		hub:                  hub,
		statsRefreshInterval: statsRefreshInterval,
	}
}

// Register wires every job into the scheduler.
func (j *Jobs) Register(s *cron.Scheduler) {
	s.AddJob("membership-overdue-sweep", 24*time.Hour, j.MarkOverdueMemberships)
	s.AddJob("membership-renewal-reminders", 24*time.Hour, j.SendRenewalReminders)
	s.AddJob("billing-expire-lapsed", time.Hour, j.ExpireLapsedSubscriptions)
	s.AddJob("kiosk-stats-refresh", j.statsRefreshInterval, j.RefreshVisitSnapshots)
}

// MarkOverdueMemberships flips active memberships past their due date to
// overdue and emails the affected members. A failed email never fails the
// sweep; the status change is the part that matters.
func (j *Jobs) MarkOverdueMemberships(ctx context.Context) error {
	flipped, err := j.membershipRepo.MarkOverdueBefore(ctx, time.Now())
	if err != nil {
		return err
	}

	for _, row := range flipped {
		j.notifyMember(ctx, row, j.emailService.SendMembershipOverdue)
	}

	if len(flipped) > 0 {
		slog.Info("Overdue sweep completed", "flipped", len(flipped))
	}
	return nil
}

// SendRenewalReminders emails members whose membership expires within the
// next seven days.
func (j *Jobs) SendRenewalReminders(ctx context.Context) error {
	now := time.Now()
	expiring, err := j.membershipRepo.ListExpiringBetween(ctx, now, now.Add(renewalReminderWindow))
	if err != nil {
		return err
	}

	for _, row := range expiring {
		j.notifyMember(ctx, row, j.emailService.SendRenewalReminder)
	}

	return nil
}

func (j *Jobs) notifyMember(ctx context.Context, row membership.MembershipRow, send func(to, memberName, branchName, planName, dueDate string) error) {
	m, err := j.memberRepo.GetByID(ctx, row.MemberID, row.BranchID)
	if err != nil {
		slog.Error("Failed to load member for notification", "membership_id", row.ID, "error", err)
		return
	}

	b, err := j.branchRepo.GetByID(ctx, row.BranchID)
	if err != nil {
		slog.Error("Failed to load branch for notification", "membership_id", row.ID, "error", err)
		return
	}

	if err := send(m.Email, m.FullName, b.Name, row.PlanName, row.DueDate.Format("2006-01-02")); err != nil {
		slog.Error("Failed to send membership email", "membership_id", row.ID, "error", err)
	}
}

// ExpireLapsedSubscriptions downgrades owner subscriptions whose paid
// period has ended.
func (j *Jobs) ExpireLapsedSubscriptions(ctx context.Context) error {
	expired, err := j.billingService.ExpireLapsed(ctx)
	if err != nil {
		return err
	}
	if expired > 0 {
		slog.Info("Expired lapsed subscriptions", "count", expired)
	}
	return nil
}

// RefreshVisitSnapshots rebuilds the visit snapshot for every branch with
// at least one connected kiosk and notifies its subscribers. Branches with
// no one watching are skipped.
func (j *Jobs) RefreshVisitSnapshots(ctx context.Context) error {
	branches, err := j.branchRepo.List(ctx)
	if err != nil {
		return err
	}

	for _, b := range branches {
		if j.hub.SubscriberCount(b.ID) == 0 {
			continue
		}
		if _, err := j.statsService.Rebuild(ctx, b.ID); err != nil {
			slog.Error("Failed to rebuild visit snapshot", "branch_id", b.ID, "error", err)
			continue
		}
		j.hub.Publish(b.ID, sse.Event{BranchID: b.ID, Event: "refresh"})
	}

	return nil
}
