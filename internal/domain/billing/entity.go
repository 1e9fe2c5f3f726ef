package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

type SubscriptionStatus string

const (
	SubscriptionTrial   SubscriptionStatus = "trial"
	SubscriptionActive  SubscriptionStatus = "active"
	SubscriptionPastDue SubscriptionStatus = "past_due"
	SubscriptionExpired SubscriptionStatus = "expired"
)

// Subscription is the owner's platform subscription, one per account.
type Subscription struct {
	ID               string
	OwnerID          string
	Status           SubscriptionStatus
	MonthlyPrice     decimal.Decimal
	CurrentPeriodEnd time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type InvoiceStatus string

const (
	InvoicePending InvoiceStatus = "pending"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceExpired InvoiceStatus = "expired"
)

// Invoice mirrors a payment-gateway invoice for the subscription.
type Invoice struct {
	ID              string
	OwnerID         string
	SubscriptionID  string
	ExternalID      string
	GatewayInvoice  string
	Amount          decimal.Decimal
	Status          InvoiceStatus
	InvoiceURL      string
	PaidAt          *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
