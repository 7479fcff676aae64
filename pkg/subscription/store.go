package subscription

import (
	"context"

	"github.com/google/uuid"
)

// Store defines subscription persistence. Each tenant has exactly one
// subscription, so TenantID serves as the primary key.
type Store interface {
	// Get retrieves a subscription by tenant ID.
	// Returns ErrSubscriptionNotFound if no subscription exists.
	Get(ctx context.Context, tenantID uuid.UUID) (*Subscription, error)

	// Save creates or updates a subscription, keyed by TenantID.
	Save(ctx context.Context, sub *Subscription) error
}

// InvoiceStore defines persistence for the append-only invoice history.
type InvoiceStore interface {
	// Create appends a new invoice.
	Create(ctx context.Context, inv *Invoice) error

	// Get retrieves an invoice by ID.
	// Returns ErrInvoiceNotFound if no invoice exists.
	Get(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// ListByTenant returns a tenant's invoices, newest first.
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*Invoice, error)

	// Update persists status changes on an existing invoice.
	Update(ctx context.Context, inv *Invoice) error
}
