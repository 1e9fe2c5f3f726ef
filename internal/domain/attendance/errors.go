package attendance

import "errors"

var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrAlreadyCheckedIn   = errors.New("member already has an open session")
	ErrAlreadyCheckedOut  = errors.New("attendance record is already checked out")
)
