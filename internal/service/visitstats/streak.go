package visitstats

import (
	"sort"
	"time"

	"github.com/eigenfit/eigenfit-backend-go/internal/domain/visitstats"
)

// Streak rules: Sundays never count, and a member may rest two days per
// Monday-to-Saturday week. A completed week with at least four distinct
// visit days keeps the streak alive; the current, still-running week can
// never break it.
const minVisitDaysPerWeek = 4

type memberDays struct {
	id          string
	name        string
	code        int
	days        map[string]bool // visit days keyed YYYY-MM-DD, Sundays excluded
	monthVisits int
}

// ComputeStreaks turns raw visits into a ranked leaderboard. Days and weeks
// are evaluated in loc; now anchors the current week and month.
func ComputeStreaks(visits []visitstats.MemberVisit, loc *time.Location, now time.Time) []visitstats.StreakEntry {
	nowLocal := now.In(loc)
	monthStart := time.Date(nowLocal.Year(), nowLocal.Month(), 1, 0, 0, 0, 0, loc)

	byMember := make(map[string]*memberDays)
	for _, v := range visits {
		md, ok := byMember[v.MemberID]
		if !ok {
			md = &memberDays{id: v.MemberID, name: v.MemberName, code: v.MemberCode, days: make(map[string]bool)}
			byMember[v.MemberID] = md
		}

		local := v.CheckIn.In(loc)
		if !local.Before(monthStart) {
			md.monthVisits++
		}
		if local.Weekday() == time.Sunday {
			continue
		}
		md.days[local.Format("2006-01-02")] = true
	}

	var entries []visitstats.StreakEntry
	for _, md := range byMember {
		streak := streakDays(md.days, nowLocal)
		if streak == 0 && md.monthVisits == 0 {
			continue
		}
		entries = append(entries, visitstats.StreakEntry{
			MemberID:    md.id,
			MemberName:  md.name,
			MemberCode:  md.code,
			StreakDays:  streak,
			MonthVisits: md.monthVisits,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].StreakDays != entries[j].StreakDays {
			return entries[i].StreakDays > entries[j].StreakDays
		}
		if entries[i].MonthVisits != entries[j].MonthVisits {
			return entries[i].MonthVisits > entries[j].MonthVisits
		}
		return entries[i].MemberName < entries[j].MemberName
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries
}

// streakDays counts distinct visit days in the unbroken run of weeks ending
// now. It walks back one week at a time from the current one and stops at
// the first completed week with fewer than minVisitDaysPerWeek visit days.
func streakDays(days map[string]bool, nowLocal time.Time) int {
	weekStart := mondayOf(nowLocal)

	total := countWeekDays(days, weekStart)

	// Prior, completed weeks must each meet the minimum.
	for {
		weekStart = weekStart.AddDate(0, 0, -7)
		n := countWeekDays(days, weekStart)
		if n < minVisitDaysPerWeek {
			break
		}
		total += n
	}

	return total
}

// countWeekDays counts visit days in the Monday-to-Saturday week starting
// at weekStart.
func countWeekDays(days map[string]bool, weekStart time.Time) int {
	n := 0
	for i := 0; i < 6; i++ {
		day := weekStart.AddDate(0, 0, i)
		if days[day.Format("2006-01-02")] {
			n++
		}
	}
	return n
}

func mondayOf(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	wd := int(day.Weekday())
	if wd == 0 {
		wd = 7 // Sunday belongs to the week that just ended
	}
	return day.AddDate(0, 0, -(wd - 1))
}
