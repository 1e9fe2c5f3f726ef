package branch

import "context"

type BranchRepository interface {
	Create(ctx context.Context, b Branch) (Branch, error)
	GetByID(ctx context.Context, id string) (Branch, error)
	List(ctx context.Context) ([]Branch, error)
	Update(ctx context.Context, b Branch) error

	// GetTimezone returns the branch business timezone. Callers must use it
	// for every "today" / "current hour" computation.
	GetTimezone(ctx context.Context, branchID string) (string, error)

	GetKioskPINHash(ctx context.Context, branchID string) (string, error)
	UpdateKioskPINHash(ctx context.Context, branchID string, pinHash string) error
}
