package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/eigenfit/eigenfit-backend-go/internal/domain/billing"
	"github.com/eigenfit/eigenfit-backend-go/internal/domain/user"
	"github.com/eigenfit/eigenfit-backend-go/internal/pkg/xendit"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const trialDays = 14

// invoiceGateway is the slice of the payment gateway the service needs.
type invoiceGateway interface {
	CreateInvoice(req xendit.CreateInvoiceRequest) (*xendit.InvoiceResponse, error)
}

type BillingServiceImpl struct {
	billing.BillingRepository
	user.UserRepository

	gateway      invoiceGateway
	verifier     *xendit.WebhookVerifier
	monthlyPrice decimal.Decimal
	frontendURL  string
	now          func() time.Time
}

func NewBillingService(
	repo billing.BillingRepository,
	userRepo user.UserRepository,
	gateway invoiceGateway,
	verifier *xendit.WebhookVerifier,
	monthlyPrice decimal.Decimal,
	frontendURL string,
) *BillingServiceImpl {
	return &BillingServiceImpl{
		BillingRepository: repo,
		UserRepository:    userRepo,
		gateway:           gateway,
		verifier:          verifier,
		monthlyPrice:      monthlyPrice,
		frontendURL:       frontendURL,
		now:               time.Now,
	}
}

// getOrCreateSubscription provisions a trial on first contact.
func (s *BillingServiceImpl) getOrCreateSubscription(ctx context.Context, ownerID string) (billing.Subscription, error) {
	sub, err := s.BillingRepository.GetSubscriptionByOwner(ctx, ownerID)
	if err == nil {
		return sub, nil
	}
	if !errors.Is(err, billing.ErrSubscriptionNotFound) {
		return billing.Subscription{}, err
	}

	return s.BillingRepository.CreateSubscription(ctx, billing.Subscription{
		OwnerID:          ownerID,
		Status:           billing.SubscriptionTrial,
		MonthlyPrice:     s.monthlyPrice,
		CurrentPeriodEnd: s.now().AddDate(0, 0, trialDays),
	})
}

// Status implements billing.BillingService.
func (s *BillingServiceImpl) Status(ctx context.Context, ownerID string) (billing.SubscriptionStatusResponse, error) {
	sub, err := s.getOrCreateSubscription(ctx, ownerID)
	if err != nil {
		return billing.SubscriptionStatusResponse{}, err
	}

	return billing.SubscriptionStatusResponse{
		Status:           sub.Status,
		MonthlyPrice:     sub.MonthlyPrice,
		CurrentPeriodEnd: sub.CurrentPeriodEnd.UTC().Format(time.RFC3339),
	}, nil
}

// History implements billing.BillingService.
func (s *BillingServiceImpl) History(ctx context.Context, ownerID string) (billing.HistoryResponse, error) {
	invoices, err := s.BillingRepository.ListInvoicesByOwner(ctx, ownerID)
	if err != nil {
		return billing.HistoryResponse{}, err
	}

	items := make([]billing.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		item := billing.InvoiceResponse{
			ID:         inv.ID,
			ExternalID: inv.ExternalID,
			Amount:     inv.Amount,
			Status:     inv.Status,
			InvoiceURL: inv.InvoiceURL,
			CreatedAt:  inv.CreatedAt.UTC().Format(time.RFC3339),
		}
		if inv.PaidAt != nil {
			paidAt := inv.PaidAt.UTC().Format(time.RFC3339)
			item.PaidAt = &paidAt
		}
		items = append(items, item)
	}

	return billing.HistoryResponse{Items: items}, nil
}

// Checkout implements billing.BillingService.
func (s *BillingServiceImpl) Checkout(ctx context.Context, ownerID string) (billing.CheckoutResponse, error) {
	sub, err := s.getOrCreateSubscription(ctx, ownerID)
	if err != nil {
		return billing.CheckoutResponse{}, err
	}

	if _, err := s.BillingRepository.GetPendingInvoice(ctx, ownerID); err == nil {
		return billing.CheckoutResponse{}, billing.ErrPendingInvoiceExists
	} else if !errors.Is(err, billing.ErrInvoiceNotFound) {
		return billing.CheckoutResponse{}, err
	}

	owner, err := s.UserRepository.GetByID(ctx, ownerID)
	if err != nil {
		return billing.CheckoutResponse{}, err
	}

	externalID := fmt.Sprintf("sub-%s-%s", ownerID, uuid.NewString())
	created, err := s.gateway.CreateInvoice(xendit.CreateInvoiceRequest{
		ExternalID:         externalID,
		Amount:             sub.MonthlyPrice,
		Description:        "EigenFit monthly subscription",
		PayerEmail:         owner.Email,
		CustomerName:       owner.Name,
		SuccessRedirectURL: s.frontendURL + "/billing?status=success",
		FailureRedirectURL: s.frontendURL + "/billing?status=failed",
		Items: []xendit.InvoiceItem{
			{Name: "Monthly subscription", Quantity: 1, Price: sub.MonthlyPrice},
		},
		Metadata: map[string]string{"owner_id": ownerID},
	})
	if err != nil {
		return billing.CheckoutResponse{}, fmt.Errorf("failed to create gateway invoice: %w", err)
	}

	stored, err := s.BillingRepository.CreateInvoice(ctx, billing.Invoice{
		OwnerID:        ownerID,
		SubscriptionID: sub.ID,
		ExternalID:     externalID,
		GatewayInvoice: created.ID,
		Amount:         sub.MonthlyPrice,
		Status:         billing.InvoicePending,
		InvoiceURL:     created.InvoiceURL,
	})
	if err != nil {
		return billing.CheckoutResponse{}, err
	}

	return billing.CheckoutResponse{
		InvoiceID:  stored.ID,
		InvoiceURL: stored.InvoiceURL,
		Amount:     stored.Amount,
		ExpiresAt:  created.ExpiryDate.UTC().Format(time.RFC3339),
	}, nil
}

// HandleWebhook implements billing.BillingService.
func (s *BillingServiceImpl) HandleWebhook(ctx context.Context, callbackToken string, payload []byte) error {
	if !s.verifier.VerifySignature(callbackToken) {
		return billing.ErrInvalidWebhookToken
	}

	var event xendit.InvoiceWebhookPayload
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("failed to decode webhook payload: %w", err)
	}

	inv, err := s.BillingRepository.GetInvoiceByExternalID(ctx, event.ExternalID)
	if err != nil {
		return err
	}

	switch event.Status {
	case xendit.InvoiceStatusPaid, xendit.InvoiceStatusSettled:
		return s.applyPayment(ctx, inv)
	case xendit.InvoiceStatusExpired:
		inv.Status = billing.InvoiceExpired
		return s.BillingRepository.UpdateInvoice(ctx, inv)
	default:
		// Other statuses (e.g. PENDING echoes) carry no state change.
		return nil
	}
}

func (s *BillingServiceImpl) applyPayment(ctx context.Context, inv billing.Invoice) error {
	if inv.Status == billing.InvoicePaid {
		// Webhooks may be delivered more than once.
		return nil
	}

	now := s.now()
	inv.Status = billing.InvoicePaid
	inv.PaidAt = &now
	if err := s.BillingRepository.UpdateInvoice(ctx, inv); err != nil {
		return err
	}

	sub, err := s.BillingRepository.GetSubscriptionByOwner(ctx, inv.OwnerID)
	if err != nil {
		return err
	}

	// Extend from the current period end when still in the future, so
	// paying early never shortens the subscription.
	base := now
	if sub.CurrentPeriodEnd.After(now) {
		base = sub.CurrentPeriodEnd
	}
	sub.Status = billing.SubscriptionActive
	sub.CurrentPeriodEnd = base.AddDate(0, 1, 0)

	return s.BillingRepository.UpdateSubscription(ctx, sub)
}

// ExpireLapsed implements billing.BillingService.
func (s *BillingServiceImpl) ExpireLapsed(ctx context.Context) (int, error) {
	lapsed, err := s.BillingRepository.ListLapsedSubscriptions(ctx, s.now())
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, sub := range lapsed {
		sub.Status = billing.SubscriptionExpired
		if err := s.BillingRepository.UpdateSubscription(ctx, sub); err != nil {
			return expired, err
		}
		expired++
	}

	return expired, nil
}
