package visitstats

import "context"

type VisitStatsService interface {
	// Today returns the cached snapshot for the branch, rebuilding it
	// when nothing is cached yet.
	Today(ctx context.Context, branchID string) (Snapshot, error)

	// Rebuild recomputes the snapshot from storage. Rebuilding twice
	// over the same data yields the same buckets and totals.
	Rebuild(ctx context.Context, branchID string) (Snapshot, error)

	StreakLeaderboard(ctx context.Context, branchID string, limit int) (LeaderboardResponse, error)

	// MemberRank returns the member's leaderboard position, 0 when the
	// member is not ranked.
	MemberRank(ctx context.Context, branchID string, memberID string) (int, error)
}
