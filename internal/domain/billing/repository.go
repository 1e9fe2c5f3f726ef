package billing

import (
	"context"
	"time"
)

type BillingRepository interface {
	GetSubscriptionByOwner(ctx context.Context, ownerID string) (Subscription, error)
	CreateSubscription(ctx context.Context, s Subscription) (Subscription, error)
	UpdateSubscription(ctx context.Context, s Subscription) error

	CreateInvoice(ctx context.Context, inv Invoice) (Invoice, error)
	GetInvoiceByExternalID(ctx context.Context, externalID string) (Invoice, error)
	GetPendingInvoice(ctx context.Context, ownerID string) (Invoice, error)
	UpdateInvoice(ctx context.Context, inv Invoice) error
	ListInvoicesByOwner(ctx context.Context, ownerID string) ([]Invoice, error)

	// ListLapsedSubscriptions returns active or past-due subscriptions
	// whose period ended before the cutoff.
	ListLapsedSubscriptions(ctx context.Context, cutoff time.Time) ([]Subscription, error)
}
