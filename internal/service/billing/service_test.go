package billing

import (
	"context"
	"testing"
	"time"

	"github.com/eigenfit/eigenfit-backend-go/internal/domain/billing"
	"github.com/eigenfit/eigenfit-backend-go/internal/domain/user"
	"github.com/eigenfit/eigenfit-backend-go/internal/pkg/xendit"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBillingRepo struct {
	billing.BillingRepository

	sub        *billing.Subscription
	pending    *billing.Invoice
	byExternal map[string]billing.Invoice
	lapsed     []billing.Subscription

	createdInvoices []billing.Invoice
	updatedInvoices []billing.Invoice
	updatedSubs     []billing.Subscription
}

func (f *fakeBillingRepo) GetSubscriptionByOwner(context.Context, string) (billing.Subscription, error) {
	if f.sub == nil {
		return billing.Subscription{}, billing.ErrSubscriptionNotFound
	}
	return *f.sub, nil
}

func (f *fakeBillingRepo) CreateSubscription(_ context.Context, s billing.Subscription) (billing.Subscription, error) {
	s.ID = "sub-1"
	f.sub = &s
	return s, nil
}

func (f *fakeBillingRepo) UpdateSubscription(_ context.Context, s billing.Subscription) error {
	f.updatedSubs = append(f.updatedSubs, s)
	f.sub = &s
	return nil
}

func (f *fakeBillingRepo) GetPendingInvoice(context.Context, string) (billing.Invoice, error) {
	if f.pending == nil {
		return billing.Invoice{}, billing.ErrInvoiceNotFound
	}
	return *f.pending, nil
}

func (f *fakeBillingRepo) CreateInvoice(_ context.Context, inv billing.Invoice) (billing.Invoice, error) {
	inv.ID = "inv-1"
	f.createdInvoices = append(f.createdInvoices, inv)
	return inv, nil
}

func (f *fakeBillingRepo) GetInvoiceByExternalID(_ context.Context, externalID string) (billing.Invoice, error) {
	inv, ok := f.byExternal[externalID]
	if !ok {
		return billing.Invoice{}, billing.ErrInvoiceNotFound
	}
	return inv, nil
}

func (f *fakeBillingRepo) UpdateInvoice(_ context.Context, inv billing.Invoice) error {
	f.updatedInvoices = append(f.updatedInvoices, inv)
	return nil
}

func (f *fakeBillingRepo) ListLapsedSubscriptions(context.Context, time.Time) ([]billing.Subscription, error) {
	return f.lapsed, nil
}

type fakeUserRepo struct {
	user.UserRepository
}

func (f *fakeUserRepo) GetByID(context.Context, string) (user.User, error) {
	return user.User{ID: "owner-1", Email: "owner@gym.mx", Name: "Gaby"}, nil
}

type fakeGateway struct {
	lastReq xendit.CreateInvoiceRequest
}

func (f *fakeGateway) CreateInvoice(req xendit.CreateInvoiceRequest) (*xendit.InvoiceResponse, error) {
	f.lastReq = req
	return &xendit.InvoiceResponse{
		ID:         "xnd-123",
		ExternalID: req.ExternalID,
		Status:     xendit.InvoiceStatusPending,
		InvoiceURL: "https://checkout.example/xnd-123",
		ExpiryDate: time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC),
	}, nil
}

func newBillingService(repo *fakeBillingRepo, gateway *fakeGateway) *BillingServiceImpl {
	svc := NewBillingService(
		repo,
		&fakeUserRepo{},
		gateway,
		xendit.NewWebhookVerifier("cb-token"),
		decimal.NewFromInt(499),
		"https://app.eigenfit.mx",
	)
	svc.now = func() time.Time {
		return time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestStatus_ProvisionsTrialOnFirstContact(t *testing.T) {
	t.Parallel()

	repo := &fakeBillingRepo{}
	svc := newBillingService(repo, &fakeGateway{})

	got, err := svc.Status(context.Background(), "owner-1")

	require.NoError(t, err)
	assert.Equal(t, billing.SubscriptionTrial, got.Status)
	require.NotNil(t, repo.sub)
	// Trial runs 14 days from first contact.
	assert.Equal(t, time.Date(2026, 9, 11, 12, 0, 0, 0, time.UTC), repo.sub.CurrentPeriodEnd)
}

func TestCheckout_RejectsWhenPendingInvoiceExists(t *testing.T) {
	t.Parallel()

	repo := &fakeBillingRepo{
		sub:     &billing.Subscription{ID: "sub-1", OwnerID: "owner-1", Status: billing.SubscriptionActive, MonthlyPrice: decimal.NewFromInt(499)},
		pending: &billing.Invoice{ID: "inv-0", Status: billing.InvoicePending},
	}
	svc := newBillingService(repo, &fakeGateway{})

	_, err := svc.Checkout(context.Background(), "owner-1")

	assert.ErrorIs(t, err, billing.ErrPendingInvoiceExists)
	assert.Empty(t, repo.createdInvoices)
}

func TestCheckout_CreatesGatewayInvoice(t *testing.T) {
	t.Parallel()

	repo := &fakeBillingRepo{
		sub: &billing.Subscription{ID: "sub-1", OwnerID: "owner-1", Status: billing.SubscriptionActive, MonthlyPrice: decimal.NewFromInt(499)},
	}
	gateway := &fakeGateway{}
	svc := newBillingService(repo, gateway)

	got, err := svc.Checkout(context.Background(), "owner-1")

	require.NoError(t, err)
	assert.Equal(t, "inv-1", got.InvoiceID)
	assert.Equal(t, "https://checkout.example/xnd-123", got.InvoiceURL)
	assert.True(t, got.Amount.Equal(decimal.NewFromInt(499)))

	assert.Equal(t, "owner@gym.mx", gateway.lastReq.PayerEmail)
	require.Len(t, repo.createdInvoices, 1)
	stored := repo.createdInvoices[0]
	assert.Equal(t, "xnd-123", stored.GatewayInvoice)
	assert.Equal(t, billing.InvoicePending, stored.Status)
	assert.Equal(t, gateway.lastReq.ExternalID, stored.ExternalID)
}

func TestHandleWebhook_RejectsBadCallbackToken(t *testing.T) {
	t.Parallel()

	svc := newBillingService(&fakeBillingRepo{}, &fakeGateway{})

	err := svc.HandleWebhook(context.Background(), "wrong-token", []byte(`{}`))

	assert.ErrorIs(t, err, billing.ErrInvalidWebhookToken)
}

func TestHandleWebhook_PaidExtendsSubscription(t *testing.T) {
	t.Parallel()

	periodEnd := time.Date(2026, 9, 11, 12, 0, 0, 0, time.UTC)
	repo := &fakeBillingRepo{
		sub: &billing.Subscription{ID: "sub-1", OwnerID: "owner-1", Status: billing.SubscriptionTrial, MonthlyPrice: decimal.NewFromInt(499), CurrentPeriodEnd: periodEnd},
		byExternal: map[string]billing.Invoice{
			"sub-owner-1-100": {ID: "inv-1", OwnerID: "owner-1", ExternalID: "sub-owner-1-100", Status: billing.InvoicePending},
		},
	}
	svc := newBillingService(repo, &fakeGateway{})

	err := svc.HandleWebhook(context.Background(), "cb-token",
		[]byte(`{"id":"xnd-123","external_id":"sub-owner-1-100","status":"PAID"}`))

	require.NoError(t, err)
	require.Len(t, repo.updatedInvoices, 1)
	assert.Equal(t, billing.InvoicePaid, repo.updatedInvoices[0].Status)
	require.NotNil(t, repo.updatedInvoices[0].PaidAt)

	require.Len(t, repo.updatedSubs, 1)
	assert.Equal(t, billing.SubscriptionActive, repo.updatedSubs[0].Status)
	// Paying before the period ends extends from the period end, not from
	// the payment date.
	assert.Equal(t, periodEnd.AddDate(0, 1, 0), repo.updatedSubs[0].CurrentPeriodEnd)
}

func TestHandleWebhook_PaidIsIdempotent(t *testing.T) {
	t.Parallel()

	repo := &fakeBillingRepo{
		sub: &billing.Subscription{ID: "sub-1", OwnerID: "owner-1", Status: billing.SubscriptionActive},
		byExternal: map[string]billing.Invoice{
			"ext-1": {ID: "inv-1", OwnerID: "owner-1", ExternalID: "ext-1", Status: billing.InvoicePaid},
		},
	}
	svc := newBillingService(repo, &fakeGateway{})

	err := svc.HandleWebhook(context.Background(), "cb-token",
		[]byte(`{"external_id":"ext-1","status":"SETTLED"}`))

	require.NoError(t, err)
	assert.Empty(t, repo.updatedInvoices)
	assert.Empty(t, repo.updatedSubs)
}

func TestHandleWebhook_ExpiredMarksInvoice(t *testing.T) {
	t.Parallel()

	repo := &fakeBillingRepo{
		byExternal: map[string]billing.Invoice{
			"ext-1": {ID: "inv-1", ExternalID: "ext-1", Status: billing.InvoicePending},
		},
	}
	svc := newBillingService(repo, &fakeGateway{})

	err := svc.HandleWebhook(context.Background(), "cb-token",
		[]byte(`{"external_id":"ext-1","status":"EXPIRED"}`))

	require.NoError(t, err)
	require.Len(t, repo.updatedInvoices, 1)
	assert.Equal(t, billing.InvoiceExpired, repo.updatedInvoices[0].Status)
	assert.Empty(t, repo.updatedSubs)
}

func TestExpireLapsed_DowngradesEverySubscription(t *testing.T) {
	t.Parallel()

	repo := &fakeBillingRepo{
		lapsed: []billing.Subscription{
			{ID: "sub-1", Status: billing.SubscriptionActive},
			{ID: "sub-2", Status: billing.SubscriptionTrial},
		},
	}
	svc := newBillingService(repo, &fakeGateway{})

	count, err := svc.ExpireLapsed(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.Len(t, repo.updatedSubs, 2)
	for _, s := range repo.updatedSubs {
		assert.Equal(t, billing.SubscriptionExpired, s.Status)
	}
}
