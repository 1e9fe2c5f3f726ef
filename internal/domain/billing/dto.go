package billing

import (
	"github.com/shopspring/decimal"
)

type SubscriptionStatusResponse struct {
	Status           SubscriptionStatus `json:"status"`
	MonthlyPrice     decimal.Decimal    `json:"monthly_price"`
	CurrentPeriodEnd string             `json:"current_period_end"`
}

type CheckoutResponse struct {
	InvoiceID  string          `json:"invoice_id"`
	InvoiceURL string          `json:"invoice_url"`
	Amount     decimal.Decimal `json:"amount"`
	ExpiresAt  string          `json:"expires_at"`
}

type InvoiceResponse struct {
	ID         string          `json:"id"`
	ExternalID string          `json:"external_id"`
	Amount     decimal.Decimal `json:"amount"`
	Status     InvoiceStatus   `json:"status"`
	InvoiceURL string          `json:"invoice_url,omitempty"`
	PaidAt     *string         `json:"paid_at,omitempty"`
	CreatedAt  string          `json:"created_at"`
}

type HistoryResponse struct {
	Items []InvoiceResponse `json:"items"`
}
