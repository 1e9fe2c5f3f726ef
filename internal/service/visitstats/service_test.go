package visitstats

import (
	"context"
	"testing"
	"time"

	"github.com/eigenfit/eigenfit-backend-go/internal/domain/master/branch"
	"github.com/eigenfit/eigenfit-backend-go/internal/domain/visitstats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStatsRepo struct {
	visitstats.VisitStatsRepository

	checkIns []time.Time
}

func (f *fakeStatsRepo) CheckInTimes(_ context.Context, _ string, from, to time.Time) ([]time.Time, error) {
	var out []time.Time
	for _, t := range f.checkIns {
		if !t.Before(from) && t.Before(to) {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeBranchRepo struct {
	branch.BranchRepository
}

func (f *fakeBranchRepo) GetTimezone(context.Context, string) (string, error) {
	return "America/Mexico_City", nil
}

func newStatsService(t *testing.T, checkIns []time.Time, now time.Time) *VisitStatsServiceImpl {
	t.Helper()
	svc := NewVisitStatsService(&fakeStatsRepo{checkIns: checkIns}, &fakeBranchRepo{})
	svc.now = func() time.Time { return now }
	return svc
}

func TestRebuild_TrendReadsAdjacentHourBuckets(t *testing.T) {
	t.Parallel()
	loc := mustLoc(t, "America/Mexico_City")

	// Three visits at 08:xx; at 10:30 both the 10 and 9 o'clock buckets
	// are empty, so the morning rush two hours ago must not register.
	checkIns := []time.Time{
		at(t, loc, 8, 5),
		at(t, loc, 8, 20),
		at(t, loc, 8, 40),
	}
	svc := newStatsService(t, checkIns, at(t, loc, 10, 30))

	snap, err := svc.Rebuild(context.Background(), "b1")

	require.NoError(t, err)
	assert.Equal(t, 10, snap.CurrentHour)
	assert.Equal(t, 0, snap.Trend.CurrentVisits)
	assert.Equal(t, 0, snap.Trend.PreviousVisits)
	assert.Equal(t, 0, snap.Trend.DeltaPct)
	assert.Equal(t, visitstats.TrendFlat, snap.Trend.Direction)
}

func TestRebuild_TrendComparesCurrentHourWithPreviousHour(t *testing.T) {
	t.Parallel()
	loc := mustLoc(t, "America/Mexico_City")

	checkIns := []time.Time{
		at(t, loc, 9, 10),
		at(t, loc, 9, 25),
		at(t, loc, 9, 40),
		at(t, loc, 9, 55),
		at(t, loc, 10, 5),
		at(t, loc, 10, 15),
	}
	svc := newStatsService(t, checkIns, at(t, loc, 10, 30))

	snap, err := svc.Rebuild(context.Background(), "b1")

	require.NoError(t, err)
	assert.Equal(t, 2, snap.Trend.CurrentVisits)
	assert.Equal(t, 4, snap.Trend.PreviousVisits)
	assert.Equal(t, -50, snap.Trend.DeltaPct)
	assert.Equal(t, visitstats.TrendDown, snap.Trend.Direction)
}

func TestRebuild_TrendAtOpeningHourIsFlat(t *testing.T) {
	t.Parallel()
	loc := mustLoc(t, "America/Mexico_City")

	checkIns := []time.Time{at(t, loc, 5, 10)}
	svc := newStatsService(t, checkIns, at(t, loc, 5, 30))

	snap, err := svc.Rebuild(context.Background(), "b1")

	require.NoError(t, err)
	// At the opening hour the previous bucket is the same bucket.
	assert.Equal(t, snap.Trend.CurrentVisits, snap.Trend.PreviousVisits)
	assert.Equal(t, 0, snap.Trend.DeltaPct)
	assert.Equal(t, visitstats.TrendFlat, snap.Trend.Direction)
}

func TestToday_ServesCachedSnapshotForSameDay(t *testing.T) {
	t.Parallel()
	loc := mustLoc(t, "America/Mexico_City")

	svc := newStatsService(t, []time.Time{at(t, loc, 8, 0)}, at(t, loc, 9, 0))

	first, err := svc.Rebuild(context.Background(), "b1")
	require.NoError(t, err)

	second, err := svc.Today(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, first.Sequence, second.Sequence)
	assert.Equal(t, first.GeneratedAt, second.GeneratedAt)
}

func TestToday_RebuildsAcrossDayBoundary(t *testing.T) {
	t.Parallel()
	loc := mustLoc(t, "America/Mexico_City")

	evening := time.Date(2026, 8, 27, 22, 0, 0, 0, loc)
	checkIns := []time.Time{
		time.Date(2026, 8, 27, 18, 0, 0, 0, loc),
		time.Date(2026, 8, 27, 21, 30, 0, 0, loc),
	}
	svc := newStatsService(t, checkIns, evening)

	stale, err := svc.Rebuild(context.Background(), "b1")
	require.NoError(t, err)
	require.Equal(t, "2026-08-27", stale.Date)
	require.Equal(t, 2, stale.TotalVisits)

	// Next morning the cached snapshot belongs to yesterday and must be
	// rebuilt, not served.
	svc.now = func() time.Time { return time.Date(2026, 8, 28, 9, 0, 0, 0, loc) }

	fresh, err := svc.Today(context.Background(), "b1")

	require.NoError(t, err)
	assert.Equal(t, "2026-08-28", fresh.Date)
	assert.Equal(t, 0, fresh.TotalVisits)
	assert.Equal(t, 9, fresh.CurrentHour)
}
