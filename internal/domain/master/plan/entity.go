package plan

import (
	"time"

	"github.com/shopspring/decimal"
)

// Plan is a membership plan sold by a branch (e.g. "Gimnasio", "Kickboxing").
type Plan struct {
	ID             string
	BranchID       string
	Name           string
	Description    string
	DurationMonths int
	Price          decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
