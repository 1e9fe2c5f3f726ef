package branch

import "errors"

var (
	ErrBranchNotFound  = errors.New("branch not found")
	ErrInvalidKioskPIN = errors.New("invalid kiosk PIN")
)
