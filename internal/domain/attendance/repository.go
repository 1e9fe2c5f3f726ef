package attendance

import (
	"context"
	"time"
)

// VisitRow is an attendance record joined with the person it belongs to,
// for roster-style listings.
type VisitRow struct {
	Attendance
	PersonName string
	PersonCode int
}

type AttendanceRepository interface {
	// Create inserts an open record. Returns ErrAlreadyCheckedIn when the
	// person already has an open session in the branch.
	Create(ctx context.Context, a Attendance) (Attendance, error)

	GetByID(ctx context.Context, id string, branchID string) (Attendance, error)

	// GetOpenByPerson returns the person's open record, if any.
	GetOpenByPerson(ctx context.Context, personID string, branchID string) (Attendance, error)

	// ListOpen returns every open record in the branch, newest check-in first.
	ListOpen(ctx context.Context, branchID string) ([]VisitRow, error)

	// ListByRange returns records whose check-in falls in [from, to),
	// newest first. Callers compute the window in the branch timezone.
	ListByRange(ctx context.Context, branchID string, from, to time.Time, limit int) ([]VisitRow, int64, error)

	// CheckOut closes the record at the given time. Returns
	// ErrAlreadyCheckedOut when the record is already closed.
	CheckOut(ctx context.Context, id string, branchID string, at time.Time) (Attendance, error)
}
