package member

import "errors"

var (
	ErrMemberNotFound = errors.New("member not found")
	ErrEmailExists    = errors.New("email already registered in this branch")
	ErrCodeExists     = errors.New("member code already taken in this branch")
)
