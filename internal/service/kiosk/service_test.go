package kiosk

import (
	"context"
	"testing"
	"time"

	"github.com/eigenfit/eigenfit-backend-go/internal/domain/attendance"
	"github.com/eigenfit/eigenfit-backend-go/internal/domain/employee"
	"github.com/eigenfit/eigenfit-backend-go/internal/domain/kiosk"
	"github.com/eigenfit/eigenfit-backend-go/internal/domain/master/branch"
	"github.com/eigenfit/eigenfit-backend-go/internal/domain/member"
	"github.com/eigenfit/eigenfit-backend-go/internal/domain/visitstats"
	"github.com/eigenfit/eigenfit-backend-go/internal/pkg/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// Unstubbed interface methods panic if reached, which is what we want:
// the resolver must only touch the calls each scenario expects.

type fakeMemberRepo struct {
	member.MemberRepository
	byCode map[int]member.Member
}

func (f *fakeMemberRepo) GetByCode(_ context.Context, code int, _ string) (member.Member, error) {
	m, ok := f.byCode[code]
	if !ok {
		return member.Member{}, member.ErrMemberNotFound
	}
	return m, nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	byCode map[int]employee.Employee
}

func (f *fakeEmployeeRepo) GetByCode(_ context.Context, code int, _ string) (employee.Employee, error) {
	e, ok := f.byCode[code]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository

	openByPerson map[string]attendance.Attendance

	createdWith   []attendance.Attendance
	checkedOutIDs []string
}

func (f *fakeAttendanceRepo) GetOpenByPerson(_ context.Context, personID string, _ string) (attendance.Attendance, error) {
	a, ok := f.openByPerson[personID]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return a, nil
}

func (f *fakeAttendanceRepo) Create(_ context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	if _, exists := f.openByPerson[a.PersonID]; exists {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
	}
	a.ID = "att-new"
	f.createdWith = append(f.createdWith, a)
	return a, nil
}

func (f *fakeAttendanceRepo) CheckOut(_ context.Context, id string, _ string, at time.Time) (attendance.Attendance, error) {
	f.checkedOutIDs = append(f.checkedOutIDs, id)
	return attendance.Attendance{ID: id, CheckOut: &at}, nil
}

type fakeBranchRepo struct {
	branch.BranchRepository
	pinHash string
}

func (f *fakeBranchRepo) GetKioskPINHash(_ context.Context, _ string) (string, error) {
	return f.pinHash, nil
}

func (f *fakeBranchRepo) UpdateKioskPINHash(_ context.Context, _ string, hash string) error {
	f.pinHash = hash
	return nil
}

type fakeStats struct {
	rebuilds int
	ranks    map[string]int
}

func (f *fakeStats) Today(context.Context, string) (visitstats.Snapshot, error) {
	return visitstats.Snapshot{}, nil
}

func (f *fakeStats) Rebuild(context.Context, string) (visitstats.Snapshot, error) {
	f.rebuilds++
	return visitstats.Snapshot{}, nil
}

func (f *fakeStats) StreakLeaderboard(context.Context, string, int) (visitstats.LeaderboardResponse, error) {
	return visitstats.LeaderboardResponse{}, nil
}

func (f *fakeStats) MemberRank(_ context.Context, _ string, memberID string) (int, error) {
	return f.ranks[memberID], nil
}

func newTestService(members *fakeMemberRepo, employees *fakeEmployeeRepo, atts *fakeAttendanceRepo, branches *fakeBranchRepo, stats *fakeStats) *KioskServiceImpl {
	return NewKioskService(members, employees, atts, branches, stats, sse.NewHub())
}

func TestCheck_MemberWithNoOpenRecordChecksIn(t *testing.T) {
	t.Parallel()

	members := &fakeMemberRepo{byCode: map[int]member.Member{
		310: {ID: "m-310", FullName: "Ana Torres", Code: 310, Active: true},
	}}
	atts := &fakeAttendanceRepo{openByPerson: map[string]attendance.Attendance{}}
	stats := &fakeStats{ranks: map[string]int{"m-310": 3}}

	svc := newTestService(members, &fakeEmployeeRepo{}, atts, &fakeBranchRepo{}, stats)

	fb, err := svc.Check(context.Background(), kiosk.CheckRequest{BranchID: "b1", Code: "310"})

	require.NoError(t, err)
	assert.Equal(t, kiosk.FeedbackCheckIn, fb.Type)
	assert.Equal(t, "310", fb.Code)
	assert.Equal(t, "Ana Torres", fb.Name)
	assert.Equal(t, 3, fb.Rank)

	require.Len(t, atts.createdWith, 1)
	assert.Equal(t, "m-310", atts.createdWith[0].PersonID)
	assert.Equal(t, attendance.RoleMember, atts.createdWith[0].Role)
	assert.Empty(t, atts.checkedOutIDs)
	assert.Equal(t, 1, stats.rebuilds)
}

func TestCheck_EmployeeWithOpenRecordChecksOut(t *testing.T) {
	t.Parallel()

	employees := &fakeEmployeeRepo{byCode: map[int]employee.Employee{
		5: {ID: "e-5", FullName: "Luis Mata", Code: 5, Active: true},
	}}
	atts := &fakeAttendanceRepo{openByPerson: map[string]attendance.Attendance{
		"e-5": {ID: "att-9", PersonID: "e-5", Role: attendance.RoleEmployee},
	}}

	svc := newTestService(&fakeMemberRepo{}, employees, atts, &fakeBranchRepo{}, &fakeStats{})

	fb, err := svc.Check(context.Background(), kiosk.CheckRequest{BranchID: "b1", Code: "E-5"})

	require.NoError(t, err)
	assert.Equal(t, kiosk.FeedbackCheckOut, fb.Type)
	assert.Equal(t, "E-5", fb.Code)
	assert.Equal(t, 0, fb.Rank)

	assert.Equal(t, []string{"att-9"}, atts.checkedOutIDs)
	assert.Empty(t, atts.createdWith)
}

func TestCheck_UnknownCode(t *testing.T) {
	t.Parallel()

	svc := newTestService(
		&fakeMemberRepo{byCode: map[int]member.Member{}},
		&fakeEmployeeRepo{byCode: map[int]employee.Employee{}},
		&fakeAttendanceRepo{},
		&fakeBranchRepo{},
		&fakeStats{},
	)

	_, err := svc.Check(context.Background(), kiosk.CheckRequest{BranchID: "b1", Code: "999"})
	assert.ErrorIs(t, err, kiosk.ErrUnknownCode)
	assert.EqualError(t, err, "Member 999 not found")

	_, err = svc.Check(context.Background(), kiosk.CheckRequest{BranchID: "b1", Code: "E-999"})
	assert.ErrorIs(t, err, kiosk.ErrUnknownCode)
	assert.EqualError(t, err, "Employee E-999 not found")
}

func TestCheck_ParseFailureMakesNoCalls(t *testing.T) {
	t.Parallel()

	atts := &fakeAttendanceRepo{}
	svc := newTestService(&fakeMemberRepo{}, &fakeEmployeeRepo{}, atts, &fakeBranchRepo{}, &fakeStats{})

	_, err := svc.Check(context.Background(), kiosk.CheckRequest{BranchID: "b1", Code: "abc"})

	assert.ErrorIs(t, err, kiosk.ErrInvalidCode)
	assert.Empty(t, atts.createdWith)
	assert.Empty(t, atts.checkedOutIDs)
}

func TestCheck_InactiveMemberRejected(t *testing.T) {
	t.Parallel()

	members := &fakeMemberRepo{byCode: map[int]member.Member{
		310: {ID: "m-310", FullName: "Ana Torres", Code: 310, Active: false},
	}}
	svc := newTestService(members, &fakeEmployeeRepo{}, &fakeAttendanceRepo{}, &fakeBranchRepo{}, &fakeStats{})

	_, err := svc.Check(context.Background(), kiosk.CheckRequest{BranchID: "b1", Code: "310"})
	assert.ErrorIs(t, err, kiosk.ErrIdentityInactive)
}

func TestVerifyPIN(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("1234"), bcrypt.MinCost)
	require.NoError(t, err)

	branches := &fakeBranchRepo{pinHash: string(hash)}
	svc := newTestService(&fakeMemberRepo{}, &fakeEmployeeRepo{}, &fakeAttendanceRepo{}, branches, &fakeStats{})

	err = svc.VerifyPIN(context.Background(), kiosk.VerifyPINRequest{BranchID: "b1", PIN: "1234"})
	assert.NoError(t, err)

	err = svc.VerifyPIN(context.Background(), kiosk.VerifyPINRequest{BranchID: "b1", PIN: "9999"})
	assert.ErrorIs(t, err, branch.ErrInvalidKioskPIN)
}

func TestUpdatePIN(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("1234"), bcrypt.MinCost)
	require.NoError(t, err)

	branches := &fakeBranchRepo{pinHash: string(hash)}
	svc := newTestService(&fakeMemberRepo{}, &fakeEmployeeRepo{}, &fakeAttendanceRepo{}, branches, &fakeStats{})

	err = svc.UpdatePIN(context.Background(), kiosk.UpdatePINRequest{
		BranchID:   "b1",
		CurrentPIN: "1234",
		NewPIN:     "4321",
	})
	require.NoError(t, err)

	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(branches.pinHash), []byte("4321")))

	err = svc.UpdatePIN(context.Background(), kiosk.UpdatePINRequest{
		BranchID:   "b1",
		CurrentPIN: "0000",
		NewPIN:     "5678",
	})
	assert.ErrorIs(t, err, branch.ErrInvalidKioskPIN)
}
