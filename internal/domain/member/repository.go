package member

import "context"

// MemberRepository defines data access for the member roster. All methods
// take branchID to prevent cross-branch data access.
type MemberRepository interface {
	Create(ctx context.Context, m Member) (Member, error)
	GetByID(ctx context.Context, id string, branchID string) (Member, error)

	// GetByCode resolves the kiosk code to a member within the branch.
	GetByCode(ctx context.Context, code int, branchID string) (Member, error)

	List(ctx context.Context, filter MemberFilter, branchID string) ([]Member, int64, error)
	Update(ctx context.Context, m Member) error
	Deactivate(ctx context.Context, id string, branchID string) error

	// NextCode returns the next free kiosk code for the branch (max+1).
	NextCode(ctx context.Context, branchID string) (int, error)
}
