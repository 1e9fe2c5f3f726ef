package visitstats

import (
	"testing"
	"time"

	"github.com/eigenfit/eigenfit-backend-go/internal/domain/visitstats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLoc(t *testing.T, name string) *time.Location {
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func at(t *testing.T, loc *time.Location, hour, min int) time.Time {
	return time.Date(2026, 8, 28, hour, min, 0, 0, loc)
}

func TestAggregateDay_BucketsByLocalHour(t *testing.T) {
	t.Parallel()
	loc := mustLoc(t, "America/Mexico_City")

	checkIns := []time.Time{
		at(t, loc, 6, 15),
		at(t, loc, 6, 45),
		at(t, loc, 18, 0),
		at(t, loc, 18, 59),
		at(t, loc, 18, 30),
	}

	agg := AggregateDay(checkIns, loc)

	assert.Equal(t, 5, agg.TotalVisits)
	assert.Len(t, agg.Buckets, visitstats.HourMax-visitstats.HourMin+1)
	assert.Equal(t, visitstats.HourMin, agg.Buckets[0].Hour)
	assert.Equal(t, visitstats.HourMax, agg.Buckets[len(agg.Buckets)-1].Hour)

	counts := make(map[int]int)
	for _, b := range agg.Buckets {
		counts[b.Hour] = b.Visits
	}
	assert.Equal(t, 2, counts[6])
	assert.Equal(t, 3, counts[18])
	assert.Equal(t, 0, counts[12])
}

func TestAggregateDay_OutOfRangeCountsTotalOnly(t *testing.T) {
	t.Parallel()
	loc := mustLoc(t, "America/Mexico_City")

	// 03:00 is before opening; it must be excluded from buckets but still
	// appear in the raw total.
	checkIns := []time.Time{
		at(t, loc, 3, 0),
		at(t, loc, 10, 0),
	}

	agg := AggregateDay(checkIns, loc)

	assert.Equal(t, 2, agg.TotalVisits)
	sum := 0
	for _, b := range agg.Buckets {
		sum += b.Visits
	}
	assert.Equal(t, 1, sum)
}

func TestAggregateDay_UsesBranchTimezone(t *testing.T) {
	t.Parallel()
	loc := mustLoc(t, "America/Mexico_City")

	// 04:30 UTC is 22:30 the previous evening in Mexico City during CST.
	utc := time.Date(2026, 1, 15, 4, 30, 0, 0, time.UTC)

	agg := AggregateDay([]time.Time{utc}, loc)

	counts := make(map[int]int)
	for _, b := range agg.Buckets {
		counts[b.Hour] = b.Visits
	}
	assert.Equal(t, 1, counts[22])
}

func TestAggregateDay_Idempotent(t *testing.T) {
	t.Parallel()
	loc := mustLoc(t, "America/Mexico_City")

	checkIns := []time.Time{
		at(t, loc, 7, 0),
		at(t, loc, 7, 30),
		at(t, loc, 20, 10),
	}

	first := AggregateDay(checkIns, loc)
	second := AggregateDay(checkIns, loc)

	assert.Equal(t, first, second)
}

func TestComputeTrend(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		current   int
		previous  int
		wantPct   int
		wantDir   visitstats.TrendDirection
	}{
		{"both zero", 0, 0, 0, visitstats.TrendFlat},
		{"previous zero", 12, 0, 100, visitstats.TrendUp},
		{"growth", 30, 20, 50, visitstats.TrendUp},
		{"decline", 15, 20, -25, visitstats.TrendDown},
		{"unchanged", 20, 20, 0, visitstats.TrendFlat},
		{"rounds to nearest", 10, 3, 233, visitstats.TrendUp},
		{"drop to zero", 0, 8, -100, visitstats.TrendDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTrend(tt.current, tt.previous)
			assert.Equal(t, tt.wantPct, got.DeltaPct)
			assert.Equal(t, tt.wantDir, got.Direction)
		})
	}
}

func TestClampHour(t *testing.T) {
	t.Parallel()

	assert.Equal(t, visitstats.HourMin, ClampHour(2))
	assert.Equal(t, visitstats.HourMin, ClampHour(visitstats.HourMin))
	assert.Equal(t, 14, ClampHour(14))
	assert.Equal(t, visitstats.HourMax, ClampHour(visitstats.HourMax))
}

func TestBuildPlot_NormalizesAndCutsAtCurrentHour(t *testing.T) {
	t.Parallel()

	buckets := []visitstats.HourBucket{
		{Hour: 5, Visits: 2},
		{Hour: 6, Visits: 8},
		{Hour: 7, Visits: 4},
		{Hour: 8, Visits: 0},
	}

	plot := BuildPlot(buckets, 7)

	require.Len(t, plot, 3)
	assert.Equal(t, 0.25, plot[0].Y)
	assert.Equal(t, 1.0, plot[1].Y)
	assert.Equal(t, 0.5, plot[2].Y)
}

func TestBuildPlot_EmptyDayStaysFlat(t *testing.T) {
	t.Parallel()

	buckets := []visitstats.HourBucket{
		{Hour: 5, Visits: 0},
		{Hour: 6, Visits: 0},
	}

	plot := BuildPlot(buckets, 6)

	require.Len(t, plot, 2)
	for _, p := range plot {
		assert.Equal(t, 0.0, p.Y)
	}
}
