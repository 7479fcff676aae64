package billing_test

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/srana86/frameX-sub009/pkg/subscription"
)

// In-memory stores backing the billing handler tests.

type memStore struct {
	mu   sync.Mutex
	subs map[uuid.UUID]subscription.Subscription
}

func newMemStore() *memStore {
	return &memStore{subs: make(map[uuid.UUID]subscription.Subscription)}
}

func (m *memStore) Get(_ context.Context, tenantID uuid.UUID) (*subscription.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sub, ok := m.subs[tenantID]
	if !ok {
		return nil, subscription.ErrSubscriptionNotFound
	}
	out := sub
	return &out, nil
}

func (m *memStore) Save(_ context.Context, sub *subscription.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs[sub.TenantID] = *sub
	return nil
}

type memInvoices struct {
	mu   sync.Mutex
	docs map[uuid.UUID]subscription.Invoice
}

func newMemInvoices() *memInvoices {
	return &memInvoices{docs: make(map[uuid.UUID]subscription.Invoice)}
}

func (m *memInvoices) Create(_ context.Context, inv *subscription.Invoice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[inv.ID] = *inv
	return nil
}

func (m *memInvoices) Get(_ context.Context, id uuid.UUID) (*subscription.Invoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.docs[id]
	if !ok {
		return nil, subscription.ErrInvoiceNotFound
	}
	out := inv
	return &out, nil
}

func (m *memInvoices) ListByTenant(_ context.Context, tenantID uuid.UUID) ([]*subscription.Invoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*subscription.Invoice
	for _, inv := range m.docs {
		if inv.TenantID == tenantID {
			cp := inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memInvoices) Update(_ context.Context, inv *subscription.Invoice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[inv.ID]; !ok {
		return subscription.ErrInvoiceNotFound
	}
	m.docs[inv.ID] = *inv
	return nil
}
