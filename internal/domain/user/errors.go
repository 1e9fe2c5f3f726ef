package user

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrOwnerPrivilegeRequired = errors.New("owner privilege required")
)
