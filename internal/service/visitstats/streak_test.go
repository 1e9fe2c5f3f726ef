package visitstats

import (
	"testing"
	"time"

	"github.com/eigenfit/eigenfit-backend-go/internal/domain/visitstats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Friday in the current week. Monday of this week is Aug 24.
func streakNow(loc *time.Location) time.Time {
	return time.Date(2026, 8, 28, 12, 0, 0, 0, loc)
}

func visitOn(loc *time.Location, id, name string, code, day int) visitstats.MemberVisit {
	return visitstats.MemberVisit{
		MemberID:   id,
		MemberName: name,
		MemberCode: code,
		CheckIn:    time.Date(2026, 8, day, 10, 0, 0, 0, loc),
	}
}

func TestComputeStreaks_CountsAcrossQualifyingWeeks(t *testing.T) {
	t.Parallel()
	loc := mustLoc(t, "America/Mexico_City")

	// Four visit days Mon-Thu in the prior week, two in the current one.
	visits := []visitstats.MemberVisit{
		visitOn(loc, "m1", "Ana", 310, 17),
		visitOn(loc, "m1", "Ana", 310, 18),
		visitOn(loc, "m1", "Ana", 310, 19),
		visitOn(loc, "m1", "Ana", 310, 20),
		visitOn(loc, "m1", "Ana", 310, 24),
		visitOn(loc, "m1", "Ana", 310, 26),
	}

	entries := ComputeStreaks(visits, loc, streakNow(loc))

	require.Len(t, entries, 1)
	assert.Equal(t, 6, entries[0].StreakDays)
	assert.Equal(t, 6, entries[0].MonthVisits)
	assert.Equal(t, 1, entries[0].Rank)
}

func TestComputeStreaks_WeekWithTooFewDaysBreaksRun(t *testing.T) {
	t.Parallel()
	loc := mustLoc(t, "America/Mexico_City")

	// Only three visit days in the prior week: two rest days are allowed
	// on a Mon-Sat week, a third breaks the streak.
	visits := []visitstats.MemberVisit{
		visitOn(loc, "m1", "Ana", 310, 17),
		visitOn(loc, "m1", "Ana", 310, 18),
		visitOn(loc, "m1", "Ana", 310, 19),
		visitOn(loc, "m1", "Ana", 310, 25),
		visitOn(loc, "m1", "Ana", 310, 26),
	}

	entries := ComputeStreaks(visits, loc, streakNow(loc))

	require.Len(t, entries, 1)
	assert.Equal(t, 2, entries[0].StreakDays)
}

func TestComputeStreaks_CurrentPartialWeekCannotBreak(t *testing.T) {
	t.Parallel()
	loc := mustLoc(t, "America/Mexico_City")

	// One visit so far this week on top of a full prior week. The current
	// week is still running, so its low count must not end the streak.
	visits := []visitstats.MemberVisit{
		visitOn(loc, "m1", "Ana", 310, 17),
		visitOn(loc, "m1", "Ana", 310, 18),
		visitOn(loc, "m1", "Ana", 310, 20),
		visitOn(loc, "m1", "Ana", 310, 21),
		visitOn(loc, "m1", "Ana", 310, 27),
	}

	entries := ComputeStreaks(visits, loc, streakNow(loc))

	require.Len(t, entries, 1)
	assert.Equal(t, 5, entries[0].StreakDays)
}

func TestComputeStreaks_SundaysDoNotCount(t *testing.T) {
	t.Parallel()
	loc := mustLoc(t, "America/Mexico_City")

	// Aug 23 2026 is a Sunday. It counts toward month visits but never
	// toward streak days.
	visits := []visitstats.MemberVisit{
		visitOn(loc, "m1", "Ana", 310, 23),
		visitOn(loc, "m1", "Ana", 310, 24),
	}

	entries := ComputeStreaks(visits, loc, streakNow(loc))

	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].StreakDays)
	assert.Equal(t, 2, entries[0].MonthVisits)
}

func TestComputeStreaks_MultipleVisitsSameDayCountOnce(t *testing.T) {
	t.Parallel()
	loc := mustLoc(t, "America/Mexico_City")

	visits := []visitstats.MemberVisit{
		visitOn(loc, "m1", "Ana", 310, 26),
		{
			MemberID:   "m1",
			MemberName: "Ana",
			MemberCode: 310,
			CheckIn:    time.Date(2026, 8, 26, 19, 0, 0, 0, loc),
		},
	}

	entries := ComputeStreaks(visits, loc, streakNow(loc))

	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].StreakDays)
	assert.Equal(t, 2, entries[0].MonthVisits)
}

func TestComputeStreaks_Ordering(t *testing.T) {
	t.Parallel()
	loc := mustLoc(t, "America/Mexico_City")

	visits := []visitstats.MemberVisit{
		// Carla: streak 2 this week.
		visitOn(loc, "m3", "Carla", 12, 24),
		visitOn(loc, "m3", "Carla", 12, 25),
		// Beto: streak 2, fewer month visits than Ana.
		visitOn(loc, "m2", "Beto", 11, 24),
		visitOn(loc, "m2", "Beto", 11, 25),
		// Ana: streak 2 plus an extra same-day visit for the tiebreak.
		visitOn(loc, "m1", "Ana", 10, 24),
		visitOn(loc, "m1", "Ana", 10, 25),
		{
			MemberID:   "m1",
			MemberName: "Ana",
			MemberCode: 10,
			CheckIn:    time.Date(2026, 8, 25, 19, 0, 0, 0, loc),
		},
	}

	entries := ComputeStreaks(visits, loc, streakNow(loc))

	require.Len(t, entries, 3)
	// Ana wins on month visits, then Beto before Carla by name.
	assert.Equal(t, "Ana", entries[0].MemberName)
	assert.Equal(t, "Beto", entries[1].MemberName)
	assert.Equal(t, "Carla", entries[2].MemberName)
	assert.Equal(t, []int{1, 2, 3}, []int{entries[0].Rank, entries[1].Rank, entries[2].Rank})
}
