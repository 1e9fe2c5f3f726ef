package membership

import "errors"

var (
	ErrMembershipNotFound = errors.New("membership not found")
	ErrNoPlansSelected    = errors.New("no plans selected for renewal")
)
