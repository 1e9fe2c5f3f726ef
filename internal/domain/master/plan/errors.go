package plan

import "errors"

var (
	ErrPlanNotFound = errors.New("membership plan not found")
	ErrPlanInUse    = errors.New("membership plan has active memberships")
)
