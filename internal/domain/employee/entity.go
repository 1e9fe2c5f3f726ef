package employee

import "time"

// Employee is branch staff. Code is the integer typed at the kiosk with the
// employee prefix, so employee 5 checks in as "E-5".
type Employee struct {
	ID        string
	BranchID  string
	Code      int
	FullName  string
	Email     string
	Phone     *string
	Position  string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
