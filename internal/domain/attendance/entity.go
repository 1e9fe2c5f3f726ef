package attendance

import "time"

// PersonRole tells which roster an attendance record points into.
type PersonRole string

const (
	RoleMember   PersonRole = "member"
	RoleEmployee PersonRole = "employee"
)

// Attendance is a single visit by a member or an employee. CheckOut is nil
// while the session is open. At most one open record may exist per
// (branch_id, person_id); the database enforces this with a partial unique
// index and the service re-checks it inside the check-in transaction.
type Attendance struct {
	ID        string
	BranchID  string
	PersonID  string
	Role      PersonRole
	CheckIn   time.Time
	CheckOut  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOpen reports whether the visit has not been checked out yet.
func (a Attendance) IsOpen() bool {
	return a.CheckOut == nil
}
