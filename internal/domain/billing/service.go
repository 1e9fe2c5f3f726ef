package billing

import "context"

type BillingService interface {
	Status(ctx context.Context, ownerID string) (SubscriptionStatusResponse, error)
	History(ctx context.Context, ownerID string) (HistoryResponse, error)

	// Checkout creates a payment-gateway invoice for the next billing
	// period and returns its hosted payment URL. Returns
	// ErrPendingInvoiceExists when an unpaid invoice is outstanding.
	Checkout(ctx context.Context, ownerID string) (CheckoutResponse, error)

	// HandleWebhook applies a gateway callback after token verification.
	HandleWebhook(ctx context.Context, callbackToken string, payload []byte) error

	// ExpireLapsed downgrades subscriptions whose period has ended.
	ExpireLapsed(ctx context.Context) (int, error)
}
