package visitstats

import (
	"context"
	"fmt"
	"time"

	"github.com/eigenfit/eigenfit-backend-go/internal/domain/master/branch"
	"github.com/eigenfit/eigenfit-backend-go/internal/domain/visitstats"
)

// streakWindow bounds how far back leaderboard queries reach. Six months
// of visits is enough for any realistic streak.
const streakWindow = -6

type VisitStatsServiceImpl struct {
	visitstats.VisitStatsRepository
	branch.BranchRepository

	cache *snapshotCache
	now   func() time.Time
}

func NewVisitStatsService(
	statsRepo visitstats.VisitStatsRepository,
	branchRepo branch.BranchRepository,
) *VisitStatsServiceImpl {
	return &VisitStatsServiceImpl{
		VisitStatsRepository: statsRepo,
		BranchRepository:     branchRepo,
		cache:                newSnapshotCache(),
		now:                  time.Now,
	}
}

func (s *VisitStatsServiceImpl) location(ctx context.Context, branchID string) (*time.Location, error) {
	tz, err := s.BranchRepository.GetTimezone(ctx, branchID)
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC, nil
	}
	return loc, nil
}

// Today implements visitstats.VisitStatsService. A cached snapshot is
// only served for the branch-local day it was built for; anything older
// forces a rebuild so the first request after midnight never sees
// yesterday's buckets.
func (s *VisitStatsServiceImpl) Today(ctx context.Context, branchID string) (visitstats.Snapshot, error) {
	if snap, ok := s.cache.Get(branchID); ok {
		loc, err := s.location(ctx, branchID)
		if err != nil {
			return visitstats.Snapshot{}, err
		}
		if snap.Date == s.now().In(loc).Format("2006-01-02") {
			return snap, nil
		}
	}
	return s.Rebuild(ctx, branchID)
}

// Rebuild implements visitstats.VisitStatsService.
//
// The sequence number is taken before touching the database. When two
// rebuilds race, whichever started later wins the cache regardless of
// which one finished first.
func (s *VisitStatsServiceImpl) Rebuild(ctx context.Context, branchID string) (visitstats.Snapshot, error) {
	loc, err := s.location(ctx, branchID)
	if err != nil {
		return visitstats.Snapshot{}, err
	}

	seq := s.cache.NextSeq(branchID)

	now := s.now()
	nowLocal := now.In(loc)
	todayStart := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, loc)
	tomorrowStart := todayStart.AddDate(0, 0, 1)

	todayTimes, err := s.VisitStatsRepository.CheckInTimes(ctx, branchID, todayStart, tomorrowStart)
	if err != nil {
		return visitstats.Snapshot{}, fmt.Errorf("failed to load today's check-ins: %w", err)
	}

	agg := AggregateDay(todayTimes, loc)
	currentHour := ClampHour(nowLocal.Hour())

	// The trend reads the hour before the current one; at the opening
	// hour the bucket is compared with itself, which always reads flat.
	curIdx := currentHour - visitstats.HourMin
	prevIdx := curIdx
	if prevIdx > 0 {
		prevIdx--
	}

	snap := visitstats.Snapshot{
		BranchID:    branchID,
		Date:        todayStart.Format("2006-01-02"),
		TotalVisits: agg.TotalVisits,
		CurrentHour: currentHour,
		Buckets:     agg.Buckets,
		Plot:        BuildPlot(agg.Buckets, currentHour),
		Trend:       ComputeTrend(agg.Buckets[curIdx].Visits, agg.Buckets[prevIdx].Visits),
		Sequence:    seq,
		GeneratedAt: now.UTC().Format(time.RFC3339),
	}

	if !s.cache.Store(snap) {
		// A newer rebuild already landed; serve that one.
		if cur, ok := s.cache.Get(branchID); ok {
			return cur, nil
		}
	}

	return snap, nil
}

// StreakLeaderboard implements visitstats.VisitStatsService.
func (s *VisitStatsServiceImpl) StreakLeaderboard(ctx context.Context, branchID string, limit int) (visitstats.LeaderboardResponse, error) {
	entries, err := s.computeLeaderboard(ctx, branchID)
	if err != nil {
		return visitstats.LeaderboardResponse{}, err
	}

	if limit <= 0 {
		limit = 10
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}

	return visitstats.LeaderboardResponse{Items: entries}, nil
}

// MemberRank implements visitstats.VisitStatsService.
func (s *VisitStatsServiceImpl) MemberRank(ctx context.Context, branchID string, memberID string) (int, error) {
	entries, err := s.computeLeaderboard(ctx, branchID)
	if err != nil {
		return 0, err
	}

	for _, e := range entries {
		if e.MemberID == memberID {
			return e.Rank, nil
		}
	}

	return 0, nil
}

func (s *VisitStatsServiceImpl) computeLeaderboard(ctx context.Context, branchID string) ([]visitstats.StreakEntry, error) {
	loc, err := s.location(ctx, branchID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	from := now.AddDate(0, streakWindow, 0)

	visits, err := s.VisitStatsRepository.MemberVisits(ctx, branchID, from, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load member visits: %w", err)
	}

	return ComputeStreaks(visits, loc, now), nil
}
