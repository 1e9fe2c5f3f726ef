package visitstats

// Business hours bound the histogram. Visits outside [HourMin, HourMax]
// still count toward TotalVisits but get no bucket.
const (
	HourMin = 5
	HourMax = 23
)

// TrendDirection summarizes the current hour against the hour before it.
type TrendDirection string

const (
	TrendUp   TrendDirection = "up"
	TrendDown TrendDirection = "down"
	TrendFlat TrendDirection = "flat"
)

// Trend compares the current hour's bucket with the previous one, same
// day. Both bucket values are exposed so the kiosk can render them next
// to the delta.
type Trend struct {
	CurrentVisits  int            `json:"current_visits"`
	PreviousVisits int            `json:"previous_visits"`
	DeltaPct       int            `json:"delta_pct"`
	Direction      TrendDirection `json:"direction"`
}

type HourBucket struct {
	Hour   int `json:"hour"`
	Visits int `json:"visits"`
}

// PlotPoint is a pre-normalized point for the kiosk sparkline. Y is the
// bucket count divided by the day's max bucket, so it always falls in [0, 1].
type PlotPoint struct {
	Hour int     `json:"hour"`
	Y    float64 `json:"y"`
}

// Snapshot is one branch's aggregated picture of today. Sequence increases
// monotonically per branch; consumers drop snapshots older than the one
// they already hold.
type Snapshot struct {
	BranchID    string       `json:"branch_id"`
	Date        string       `json:"date"`
	TotalVisits int          `json:"total_visits"`
	CurrentHour int          `json:"current_hour"`
	Buckets     []HourBucket `json:"buckets"`
	Plot        []PlotPoint  `json:"plot"`
	Trend       Trend        `json:"trend"`
	Sequence    uint64       `json:"sequence"`
	GeneratedAt string       `json:"generated_at"`
}

type StreakEntry struct {
	MemberID    string `json:"member_id"`
	MemberName  string `json:"member_name"`
	MemberCode  int    `json:"member_code"`
	StreakDays  int    `json:"streak_days"`
	MonthVisits int    `json:"month_visits"`
	Rank        int    `json:"rank"`
}

type LeaderboardResponse struct {
	Items []StreakEntry `json:"items"`
}
