package attendance

import "context"

type AttendanceService interface {
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, id string, branchID string) (AttendanceResponse, error)

	// ListCurrent returns members who are inside the gym right now.
	ListCurrent(ctx context.Context, branchID string) (ListAttendancesResponse, error)

	// ListByDate lists visits for one calendar day in the branch timezone.
	ListByDate(ctx context.Context, branchID string, filter ListAttendancesFilter) (ListAttendancesResponse, error)
}
