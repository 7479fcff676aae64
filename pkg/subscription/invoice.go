package subscription

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the payment state of a billing document.
type InvoiceStatus string

const (
	InvoicePending   InvoiceStatus = "pending"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceFailed    InvoiceStatus = "failed"
	InvoiceCancelled InvoiceStatus = "cancelled"
	InvoiceOverdue   InvoiceStatus = "overdue"
)

// invoiceTransitions enumerates the legal status moves. Paid, failed and
// cancelled are terminal; overdue invoices can still be settled or voided.
var invoiceTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoicePending: {InvoicePaid, InvoiceFailed, InvoiceCancelled, InvoiceOverdue},
	InvoiceOverdue: {InvoicePaid, InvoiceCancelled},
}

// InvoiceItem is one priced line on an invoice.
type InvoiceItem struct {
	Description string
	Quantity    int64
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
}

// Invoice is an append-only billing document covering exactly one
// subscription period. Amounts satisfy amount = subtotal − discount + tax;
// the period pair never changes after creation.
type Invoice struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	PlanID      string
	PeriodStart time.Time
	PeriodEnd   time.Time
	Items       []InvoiceItem
	Subtotal    decimal.Decimal
	Discount    decimal.Decimal
	Tax         decimal.Decimal
	Amount      decimal.Decimal
	Status      InvoiceStatus
	CreatedAt   time.Time
	PaidAt      *time.Time
}

// NewInvoice builds a pending invoice for one subscription period.
// Subtotal is derived from the items; the total is subtotal − discount + tax.
func NewInvoice(tenantID uuid.UUID, planID string, periodStart, periodEnd time.Time, items []InvoiceItem, discount, tax decimal.Decimal) *Invoice {
	subtotal := decimal.Zero
	for i := range items {
		items[i].Amount = items[i].UnitPrice.Mul(decimal.NewFromInt(items[i].Quantity)).Round(2)
		subtotal = subtotal.Add(items[i].Amount)
	}

	return &Invoice{
		ID:          uuid.New(),
		TenantID:    tenantID,
		PlanID:      planID,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Items:       items,
		Subtotal:    subtotal,
		Discount:    discount,
		Tax:         tax,
		Amount:      subtotal.Sub(discount).Add(tax).Round(2),
		Status:      InvoicePending,
		CreatedAt:   time.Now().UTC(),
	}
}

// Transition moves the invoice to a new status, enforcing the legal moves.
func (inv *Invoice) Transition(to InvoiceStatus) error {
	for _, allowed := range invoiceTransitions[inv.Status] {
		if allowed == to {
			inv.Status = to
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidInvoiceTransition, inv.Status, to)
}

// MarkPaid settles the invoice at the given instant.
func (inv *Invoice) MarkPaid(now time.Time) error {
	if err := inv.Transition(InvoicePaid); err != nil {
		return err
	}
	paidAt := now.UTC()
	inv.PaidAt = &paidAt
	return nil
}
