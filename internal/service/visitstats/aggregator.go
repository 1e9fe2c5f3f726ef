package visitstats

import (
	"math"
	"time"

	"github.com/eigenfit/eigenfit-backend-go/internal/domain/visitstats"
)

// DayAggregate is the hourly breakdown of one calendar day. Buckets always
// span [HourMin, HourMax]; TotalVisits includes check-ins that fall outside
// that range.
type DayAggregate struct {
	Buckets     []visitstats.HourBucket
	TotalVisits int
}

// AggregateDay buckets check-in times by hour of day in loc. Running it
// twice over the same input produces the same result, so a rebuild never
// drifts.
func AggregateDay(checkIns []time.Time, loc *time.Location) DayAggregate {
	agg := DayAggregate{
		Buckets: make([]visitstats.HourBucket, 0, visitstats.HourMax-visitstats.HourMin+1),
	}

	counts := make(map[int]int)
	for _, t := range checkIns {
		agg.TotalVisits++
		h := t.In(loc).Hour()
		if h < visitstats.HourMin || h > visitstats.HourMax {
			continue
		}
		counts[h]++
	}

	for h := visitstats.HourMin; h <= visitstats.HourMax; h++ {
		agg.Buckets = append(agg.Buckets, visitstats.HourBucket{Hour: h, Visits: counts[h]})
	}

	return agg
}

// ComputeTrend compares the current hour's bucket against the previous
// hour's bucket of the same day.
func ComputeTrend(current, previous int) visitstats.Trend {
	trend := visitstats.Trend{
		CurrentVisits:  current,
		PreviousVisits: previous,
		Direction:      visitstats.TrendFlat,
	}

	switch {
	case current == 0 && previous == 0:
		return trend
	case previous == 0:
		trend.DeltaPct = 100
		trend.Direction = visitstats.TrendUp
		return trend
	}

	trend.DeltaPct = int(math.Round(float64(current-previous) / float64(previous) * 100))
	if trend.DeltaPct > 0 {
		trend.Direction = visitstats.TrendUp
	} else if trend.DeltaPct < 0 {
		trend.Direction = visitstats.TrendDown
	}

	return trend
}

// ClampHour pins an hour to the displayable range.
func ClampHour(h int) int {
	if h < visitstats.HourMin {
		return visitstats.HourMin
	}
	if h > visitstats.HourMax {
		return visitstats.HourMax
	}
	return h
}

// BuildPlot normalizes buckets for the kiosk sparkline. Y values are scaled
// by the day's busiest hour (treated as at least 1 so an empty day stays
// flat at zero), and only hours up to currentHour are drawn.
func BuildPlot(buckets []visitstats.HourBucket, currentHour int) []visitstats.PlotPoint {
	maxVisits := 1
	for _, b := range buckets {
		if b.Visits > maxVisits {
			maxVisits = b.Visits
		}
	}

	var plot []visitstats.PlotPoint
	for _, b := range buckets {
		if b.Hour > currentHour {
			break
		}
		plot = append(plot, visitstats.PlotPoint{
			Hour: b.Hour,
			Y:    float64(b.Visits) / float64(maxVisits),
		})
	}

	return plot
}
