package membership

import "context"

type MembershipService interface {
	// Suggest computes the renewal prefill: price is the sum of selected
	// plan prices, due date is the base date plus the longest selected
	// plan duration. The base is the latest active due date among the
	// selected plans, or today when none is later.
	Suggest(ctx context.Context, req SuggestionRequest) (SuggestionResponse, error)

	// Renew records one membership per selected plan.
	Renew(ctx context.Context, req RenewRequest) (ListMembershipsResponse, error)

	ListByMember(ctx context.Context, memberID string, branchID string) (ListMembershipsResponse, error)
	Cancel(ctx context.Context, req CancelRequest) error
}
