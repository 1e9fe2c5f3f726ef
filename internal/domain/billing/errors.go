package billing

import "errors"

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrInvoiceNotFound      = errors.New("invoice not found")
	ErrPendingInvoiceExists = errors.New("a pending invoice already exists")
	ErrInvalidWebhookToken  = errors.New("invalid webhook callback token")
)
