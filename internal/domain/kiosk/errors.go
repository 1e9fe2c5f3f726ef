package kiosk

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownCode      = errors.New("no member or employee matches this code")
	ErrIdentityInactive = errors.New("identity is deactivated")
)

// UnknownCodeError names the role and the formatted code of a lookup miss,
// so the kiosk can show exactly what was typed. It unwraps to
// ErrUnknownCode.
type UnknownCodeError struct {
	Role Role
	Code string
}

func (e *UnknownCodeError) Error() string {
	return fmt.Sprintf("%s %s not found", e.RoleLabel(), e.Code)
}

func (e *UnknownCodeError) Unwrap() error { return ErrUnknownCode }

// RoleLabel is the display name of the role, capitalized for feedback
// messages.
func (e *UnknownCodeError) RoleLabel() string {
	if e.Role == RoleEmployee {
		return "Employee"
	}
	return "Member"
}
