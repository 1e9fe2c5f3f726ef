package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eigenfit/eigenfit-backend-go/internal/domain/billing"
	"github.com/eigenfit/eigenfit-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type billingRepositoryImpl struct {
	db *database.DB
}

func NewBillingRepository(db *database.DB) billing.BillingRepository {
	return &billingRepositoryImpl{db: db}
}

const subscriptionColumns = `id, owner_id, status, monthly_price, current_period_end, created_at, updated_at`

const invoiceColumns = `id, owner_id, subscription_id, external_id, gateway_invoice_id, amount, status, invoice_url, paid_at, created_at, updated_at`

func scanSubscription(row pgx.Row) (billing.Subscription, error) {
	var s billing.Subscription
	err := row.Scan(&s.ID, &s.OwnerID, &s.Status, &s.MonthlyPrice, &s.CurrentPeriodEnd, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func scanInvoice(row pgx.Row) (billing.Invoice, error) {
	var inv billing.Invoice
	err := row.Scan(
		&inv.ID, &inv.OwnerID, &inv.SubscriptionID, &inv.ExternalID, &inv.GatewayInvoice,
		&inv.Amount, &inv.Status, &inv.InvoiceURL, &inv.PaidAt, &inv.CreatedAt, &inv.UpdatedAt,
	)
	return inv, err
}

// GetSubscriptionByOwner implements billing.BillingRepository.
func (r *billingRepositoryImpl) GetSubscriptionByOwner(ctx context.Context, ownerID string) (billing.Subscription, error) {
	q := GetQuerier(ctx, r.db)

	s, err := scanSubscription(q.QueryRow(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions WHERE owner_id = $1`, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return billing.Subscription{}, billing.ErrSubscriptionNotFound
		}
		return billing.Subscription{}, fmt.Errorf("failed to get subscription: %w", err)
	}

	return s, nil
}

// CreateSubscription implements billing.BillingRepository.
func (r *billingRepositoryImpl) CreateSubscription(ctx context.Context, s billing.Subscription) (billing.Subscription, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO subscriptions (owner_id, status, monthly_price, current_period_end)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + subscriptionColumns

	created, err := scanSubscription(q.QueryRow(ctx, query, s.OwnerID, s.Status, s.MonthlyPrice, s.CurrentPeriodEnd))
	if err != nil {
		return billing.Subscription{}, fmt.Errorf("failed to create subscription: %w", err)
	}

	return created, nil
}

// UpdateSubscription implements billing.BillingRepository.
func (r *billingRepositoryImpl) UpdateSubscription(ctx context.Context, s billing.Subscription) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE subscriptions
		SET status = $1, monthly_price = $2, current_period_end = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, s.Status, s.MonthlyPrice, s.CurrentPeriodEnd, s.ID).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return billing.ErrSubscriptionNotFound
		}
		return fmt.Errorf("failed to update subscription %s: %w", s.ID, err)
	}

	return nil
}

// CreateInvoice implements billing.BillingRepository.
func (r *billingRepositoryImpl) CreateInvoice(ctx context.Context, inv billing.Invoice) (billing.Invoice, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO billing_invoices (owner_id, subscription_id, external_id, gateway_invoice_id, amount, status, invoice_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + invoiceColumns

	created, err := scanInvoice(q.QueryRow(ctx, query,
		inv.OwnerID, inv.SubscriptionID, inv.ExternalID, inv.GatewayInvoice,
		inv.Amount, inv.Status, inv.InvoiceURL,
	))
	if err != nil {
		return billing.Invoice{}, fmt.Errorf("failed to create billing invoice: %w", err)
	}

	return created, nil
}

// GetInvoiceByExternalID implements billing.BillingRepository.
func (r *billingRepositoryImpl) GetInvoiceByExternalID(ctx context.Context, externalID string) (billing.Invoice, error) {
	q := GetQuerier(ctx, r.db)

	inv, err := scanInvoice(q.QueryRow(ctx,
		`SELECT `+invoiceColumns+` FROM billing_invoices WHERE external_id = $1`, externalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return billing.Invoice{}, billing.ErrInvoiceNotFound
		}
		return billing.Invoice{}, fmt.Errorf("failed to get billing invoice: %w", err)
	}

	return inv, nil
}

// GetPendingInvoice implements billing.BillingRepository.
func (r *billingRepositoryImpl) GetPendingInvoice(ctx context.Context, ownerID string) (billing.Invoice, error) {
	q := GetQuerier(ctx, r.db)

	inv, err := scanInvoice(q.QueryRow(ctx,
		`SELECT `+invoiceColumns+` FROM billing_invoices WHERE owner_id = $1 AND status = 'pending' ORDER BY created_at DESC LIMIT 1`,
		ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return billing.Invoice{}, billing.ErrInvoiceNotFound
		}
		return billing.Invoice{}, fmt.Errorf("failed to get pending invoice: %w", err)
	}

	return inv, nil
}

// UpdateInvoice implements billing.BillingRepository.
func (r *billingRepositoryImpl) UpdateInvoice(ctx context.Context, inv billing.Invoice) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE billing_invoices
		SET status = $1, invoice_url = $2, paid_at = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, inv.Status, inv.InvoiceURL, inv.PaidAt, inv.ID).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return billing.ErrInvoiceNotFound
		}
		return fmt.Errorf("failed to update billing invoice %s: %w", inv.ID, err)
	}

	return nil
}

// ListInvoicesByOwner implements billing.BillingRepository.
func (r *billingRepositoryImpl) ListInvoicesByOwner(ctx context.Context, ownerID string) ([]billing.Invoice, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT `+invoiceColumns+` FROM billing_invoices WHERE owner_id = $1 ORDER BY created_at DESC`,
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list billing invoices: %w", err)
	}
	defer rows.Close()

	var invoices []billing.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return invoices, nil
}

// ListLapsedSubscriptions implements billing.BillingRepository.
func (r *billingRepositoryImpl) ListLapsedSubscriptions(ctx context.Context, cutoff time.Time) ([]billing.Subscription, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions WHERE status IN ('active', 'past_due', 'trial') AND current_period_end < $1`,
		cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list lapsed subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []billing.Subscription
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return subs, nil
}
