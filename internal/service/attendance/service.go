package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/eigenfit/eigenfit-backend-go/internal/domain/attendance"
	"github.com/eigenfit/eigenfit-backend-go/internal/domain/master/branch"
	"github.com/eigenfit/eigenfit-backend-go/internal/domain/member"
	"github.com/eigenfit/eigenfit-backend-go/internal/pkg/sse"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	member.MemberRepository
	branch.BranchRepository

	hub *sse.Hub
	now func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	memberRepo member.MemberRepository,
	branchRepo branch.BranchRepository,
	hub *sse.Hub,
) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		MemberRepository:     memberRepo,
		BranchRepository:     branchRepo,
		hub:                  hub,
		now:                  time.Now,
	}
}

func (s *AttendanceServiceImpl) location(ctx context.Context, branchID string) (*time.Location, error) {
	tz, err := s.BranchRepository.GetTimezone(ctx, branchID)
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC, nil
	}
	return loc, nil
}

func toResponse(v attendance.VisitRow) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:         v.ID,
		BranchID:   v.BranchID,
		PersonID:   v.PersonID,
		Role:       v.Role,
		PersonName: v.PersonName,
		PersonCode: v.PersonCode,
		CheckIn:    v.CheckIn.UTC().Format(time.RFC3339),
	}
	if v.CheckOut != nil {
		out := v.CheckOut.UTC().Format(time.RFC3339)
		resp.CheckOut = &out
	}
	return resp
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	m, err := s.MemberRepository.GetByID(ctx, req.MemberID, req.BranchID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	created, err := s.AttendanceRepository.Create(ctx, attendance.Attendance{
		BranchID: req.BranchID,
		PersonID: m.ID,
		Role:     attendance.RoleMember,
		CheckIn:  s.now().UTC(),
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	s.hub.Publish(req.BranchID, sse.Event{BranchID: req.BranchID, Event: "refresh"})

	return toResponse(attendance.VisitRow{
		Attendance: created,
		PersonName: m.FullName,
		PersonCode: m.Code,
	}), nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, id string, branchID string) (attendance.AttendanceResponse, error) {
	closed, err := s.AttendanceRepository.CheckOut(ctx, id, branchID, s.now().UTC())
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	s.hub.Publish(branchID, sse.Event{BranchID: branchID, Event: "refresh"})

	row := attendance.VisitRow{Attendance: closed}
	if closed.Role == attendance.RoleMember {
		if m, err := s.MemberRepository.GetByID(ctx, closed.PersonID, branchID); err == nil {
			row.PersonName = m.FullName
			row.PersonCode = m.Code
		}
	}

	return toResponse(row), nil
}

// ListCurrent implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListCurrent(ctx context.Context, branchID string) (attendance.ListAttendancesResponse, error) {
	open, err := s.AttendanceRepository.ListOpen(ctx, branchID)
	if err != nil {
		return attendance.ListAttendancesResponse{}, err
	}

	items := make([]attendance.AttendanceResponse, 0, len(open))
	for _, v := range open {
		items = append(items, toResponse(v))
	}

	return attendance.ListAttendancesResponse{Items: items, Total: int64(len(items))}, nil
}

// ListByDate implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListByDate(ctx context.Context, branchID string, filter attendance.ListAttendancesFilter) (attendance.ListAttendancesResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendancesResponse{}, err
	}

	loc, err := s.location(ctx, branchID)
	if err != nil {
		return attendance.ListAttendancesResponse{}, err
	}

	var dayStart time.Time
	if filter.AttendanceDate == "" {
		nowLocal := s.now().In(loc)
		dayStart = time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, loc)
	} else {
		parsed, err := time.ParseInLocation("2006-01-02", filter.AttendanceDate, loc)
		if err != nil {
			return attendance.ListAttendancesResponse{}, fmt.Errorf("invalid attendance_date: %w", err)
		}
		dayStart = parsed
	}

	visits, total, err := s.AttendanceRepository.ListByRange(ctx, branchID, dayStart, dayStart.AddDate(0, 0, 1), filter.Limit)
	if err != nil {
		return attendance.ListAttendancesResponse{}, err
	}

	items := make([]attendance.AttendanceResponse, 0, len(visits))
	for _, v := range visits {
		items = append(items, toResponse(v))
	}

	return attendance.ListAttendancesResponse{Items: items, Total: total}, nil
}
