package branch

import "time"

// Branch is a tenant location (a gym). Nearly every query in the system is
// scoped by branch ID.
type Branch struct {
	ID      string
	Name    string
	Address *string
	// Timezone is the fixed business timezone of the branch. "Today" and
	// "current hour" for attendance reporting are always computed in this
	// zone, regardless of where the viewer or the server runs.
	Timezone     string
	KioskPINHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
