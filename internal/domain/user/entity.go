package user

import "time"

type Role string

const (
	RoleOwner Role = "owner"
	RoleStaff Role = "staff"
)

// User is an operator account (gym owner or front-desk staff). Identity is
// delegated to Google OAuth; no password is ever stored.
type User struct {
	ID        string
	Email     string
	Name      string
	GoogleID  string
	BranchID  *string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}
