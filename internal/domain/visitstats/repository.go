package visitstats

import (
	"context"
	"time"
)

// MemberVisit is one check-in with the member it belongs to. Aggregation
// happens in Go so day boundaries follow the branch timezone, not the
// database session timezone.
type MemberVisit struct {
	MemberID   string
	MemberName string
	MemberCode int
	CheckIn    time.Time
}

type VisitStatsRepository interface {
	// CheckInTimes returns every check-in timestamp in [from, to).
	CheckInTimes(ctx context.Context, branchID string, from, to time.Time) ([]time.Time, error)

	// MemberVisits returns check-ins with member identity in [from, to),
	// for streak and leaderboard computation.
	MemberVisits(ctx context.Context, branchID string, from, to time.Time) ([]MemberVisit, error)
}
