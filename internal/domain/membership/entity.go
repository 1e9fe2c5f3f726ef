package membership

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusOverdue  Status = "overdue"
	StatusCanceled Status = "canceled"
	// StatusRenewed marks rows superseded by a newer renewal.
	StatusRenewed Status = "renewed"
)

// Membership ties a member to a plan for a paid period. DueDate is the day
// the period ends, stored as a date in the branch business timezone.
type Membership struct {
	ID            string
	BranchID      string
	MemberID      string
	PlanID        string
	StartDate     time.Time
	DueDate       time.Time
	Status        Status
	PaymentAmount decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
