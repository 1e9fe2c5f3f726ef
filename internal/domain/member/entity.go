package member

import "time"

// Member is a gym client. Code is the small human-facing integer the member
// types at the kiosk; it is unique per branch and formatted bare (e.g. "310").
type Member struct {
	ID        string
	BranchID  string
	Code      int
	FullName  string
	Email     string
	Phone     *string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
