package xendit

import (
	"github.com/eigenfit/eigenfit-backend-go/internal/config"
	xenditSDK "github.com/xendit/xendit-go/v7"
	"github.com/xendit/xendit-go/v7/invoice"
)

// Client narrows the official SDK to the invoice operations the billing
// flow needs.
type Client struct {
	invoiceAPI invoice.InvoiceApi
}

func NewClient(cfg config.XenditConfig) *Client {
	sdk := xenditSDK.NewClient(cfg.APIKey)
	return &Client{invoiceAPI: sdk.InvoiceApi}
}
