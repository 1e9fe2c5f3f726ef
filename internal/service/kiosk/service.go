package kiosk

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eigenfit/eigenfit-backend-go/internal/domain/attendance"
	"github.com/eigenfit/eigenfit-backend-go/internal/domain/employee"
	"github.com/eigenfit/eigenfit-backend-go/internal/domain/kiosk"
	"github.com/eigenfit/eigenfit-backend-go/internal/domain/master/branch"
	"github.com/eigenfit/eigenfit-backend-go/internal/domain/member"
	"github.com/eigenfit/eigenfit-backend-go/internal/domain/visitstats"
	"github.com/eigenfit/eigenfit-backend-go/internal/pkg/sse"
	"golang.org/x/crypto/bcrypt"
)

type KioskServiceImpl struct {
	member.MemberRepository
	employee.EmployeeRepository
	attendance.AttendanceRepository
	branch.BranchRepository

	stats visitstats.VisitStatsService
	hub   *sse.Hub
	now   func() time.Time
}

func NewKioskService(
	memberRepo member.MemberRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	branchRepo branch.BranchRepository,
	stats visitstats.VisitStatsService,
	hub *sse.Hub,
) *KioskServiceImpl {
	return &KioskServiceImpl{
		MemberRepository:     memberRepo,
		EmployeeRepository:   employeeRepo,
		AttendanceRepository: attendanceRepo,
		BranchRepository:     branchRepo,
		stats:                stats,
		hub:                  hub,
		now:                  time.Now,
	}
}

// resolvedPerson is a member or employee found by kiosk code.
type resolvedPerson struct {
	id     string
	name   string
	role   attendance.PersonRole
	active bool
}

func (s *KioskServiceImpl) lookup(ctx context.Context, code kiosk.Code, branchID string) (resolvedPerson, error) {
	if code.Role == kiosk.RoleEmployee {
		e, err := s.EmployeeRepository.GetByCode(ctx, code.Number, branchID)
		if err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return resolvedPerson{}, &kiosk.UnknownCodeError{Role: code.Role, Code: kiosk.FormatCode(code)}
			}
			return resolvedPerson{}, err
		}
		return resolvedPerson{id: e.ID, name: e.FullName, role: attendance.RoleEmployee, active: e.Active}, nil
	}

	m, err := s.MemberRepository.GetByCode(ctx, code.Number, branchID)
	if err != nil {
		if errors.Is(err, member.ErrMemberNotFound) {
			return resolvedPerson{}, &kiosk.UnknownCodeError{Role: code.Role, Code: kiosk.FormatCode(code)}
		}
		return resolvedPerson{}, err
	}
	return resolvedPerson{id: m.ID, name: m.FullName, role: attendance.RoleMember, active: m.Active}, nil
}

// Check implements kiosk.KioskService.
//
// The open-record read decides the direction of the toggle. The read is
// always fresh; when two terminals race on the same code, the partial
// unique index behind AttendanceRepository.Create rejects the loser.
func (s *KioskServiceImpl) Check(ctx context.Context, req kiosk.CheckRequest) (kiosk.CheckFeedback, error) {
	if err := req.Validate(); err != nil {
		return kiosk.CheckFeedback{}, err
	}

	code, err := kiosk.ParseCode(req.Code)
	if err != nil {
		return kiosk.CheckFeedback{}, err
	}

	person, err := s.lookup(ctx, code, req.BranchID)
	if err != nil {
		return kiosk.CheckFeedback{}, err
	}
	if !person.active {
		return kiosk.CheckFeedback{}, kiosk.ErrIdentityInactive
	}

	open, err := s.AttendanceRepository.GetOpenByPerson(ctx, person.id, req.BranchID)
	switch {
	case err == nil:
		return s.checkOut(ctx, req.BranchID, code, person, open)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		return s.checkIn(ctx, req.BranchID, code, person)
	default:
		return kiosk.CheckFeedback{}, fmt.Errorf("failed to read open attendance: %w", err)
	}
}

func (s *KioskServiceImpl) checkIn(ctx context.Context, branchID string, code kiosk.Code, person resolvedPerson) (kiosk.CheckFeedback, error) {
	created, err := s.AttendanceRepository.Create(ctx, attendance.Attendance{
		BranchID: branchID,
		PersonID: person.id,
		Role:     person.role,
		CheckIn:  s.now().UTC(),
	})
	if err != nil {
		return kiosk.CheckFeedback{}, err
	}

	s.afterToggle(ctx, branchID)

	return kiosk.CheckFeedback{
		Type:         kiosk.FeedbackCheckIn,
		Code:         kiosk.FormatCode(code),
		Name:         person.name,
		Rank:         s.rankOf(ctx, branchID, person),
		AttendanceID: created.ID,
	}, nil
}

func (s *KioskServiceImpl) checkOut(ctx context.Context, branchID string, code kiosk.Code, person resolvedPerson, open attendance.Attendance) (kiosk.CheckFeedback, error) {
	closed, err := s.AttendanceRepository.CheckOut(ctx, open.ID, branchID, s.now().UTC())
	if err != nil {
		return kiosk.CheckFeedback{}, err
	}

	s.afterToggle(ctx, branchID)

	return kiosk.CheckFeedback{
		Type:         kiosk.FeedbackCheckOut,
		Code:         kiosk.FormatCode(code),
		Name:         person.name,
		Rank:         s.rankOf(ctx, branchID, person),
		AttendanceID: closed.ID,
	}, nil
}

// afterToggle rebuilds today's snapshot and tells every kiosk terminal of
// the branch to refresh. Both are best effort; the toggle itself already
// succeeded.
func (s *KioskServiceImpl) afterToggle(ctx context.Context, branchID string) {
	_, _ = s.stats.Rebuild(ctx, branchID)
	s.hub.Publish(branchID, sse.Event{BranchID: branchID, Event: "refresh"})
}

func (s *KioskServiceImpl) rankOf(ctx context.Context, branchID string, person resolvedPerson) int {
	if person.role != attendance.RoleMember {
		return 0
	}
	rank, err := s.stats.MemberRank(ctx, branchID, person.id)
	if err != nil {
		return 0
	}
	return rank
}

// VerifyPIN implements kiosk.KioskService.
func (s *KioskServiceImpl) VerifyPIN(ctx context.Context, req kiosk.VerifyPINRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	hash, err := s.BranchRepository.GetKioskPINHash(ctx, req.BranchID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.PIN)); err != nil {
		return branch.ErrInvalidKioskPIN
	}

	return nil
}

// UpdatePIN implements kiosk.KioskService.
func (s *KioskServiceImpl) UpdatePIN(ctx context.Context, req kiosk.UpdatePINRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if err := s.VerifyPIN(ctx, kiosk.VerifyPINRequest{BranchID: req.BranchID, PIN: req.CurrentPIN}); err != nil {
		return err
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPIN), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash kiosk pin: %w", err)
	}

	return s.BranchRepository.UpdateKioskPINHash(ctx, req.BranchID, string(newHash))
}
