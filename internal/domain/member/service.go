package member

import "context"

// MemberService defines business logic for the member roster
type MemberService interface {
	Create(ctx context.Context, req CreateMemberRequest) (MemberResponse, error)
	Get(ctx context.Context, id string, branchID string) (MemberResponse, error)
	List(ctx context.Context, filter MemberFilter, branchID string) (ListMembersResponse, error)
	Update(ctx context.Context, branchID string, req UpdateMemberRequest) (MemberResponse, error)
	Deactivate(ctx context.Context, id string, branchID string) error
}
