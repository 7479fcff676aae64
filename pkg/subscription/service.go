package subscription

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlansSource defines how base plan definitions are loaded into the service.
type PlansSource interface {
	Load(ctx context.Context) ([]BasePlanConfig, error)
}

// StaticPlans is a PlansSource over a fixed in-memory plan list.
func StaticPlans(configs ...BasePlanConfig) PlansSource {
	return staticPlans(configs)
}

type staticPlans []BasePlanConfig

func (s staticPlans) Load(context.Context) ([]BasePlanConfig, error) {
	return s, nil
}

// ResourceCounterFunc returns the current usage for a tenant resource.
// Must be fast and ideally cached as it's called on every resource creation
// attempt.
type ResourceCounterFunc func(ctx context.Context, tenantID uuid.UUID) (int64, error)

// Service manages the subscription lifecycle: plan purchase, renewal
// payments, cancellation, read-time status projection and plan limit
// enforcement.
type Service interface {
	Plans() []Plan
	Plan(id string) (Plan, error)

	Purchase(ctx context.Context, tenantID uuid.UUID, planID string) (*Subscription, *Invoice, error)
	IssueRenewalInvoice(ctx context.Context, tenantID uuid.UUID) (*Invoice, error)
	ApplyPayment(ctx context.Context, tenantID, invoiceID uuid.UUID) (*Subscription, error)
	Cancel(ctx context.Context, tenantID uuid.UUID) error

	Subscription(ctx context.Context, tenantID uuid.UUID) (*Subscription, error)
	Status(ctx context.Context, tenantID uuid.UUID) (StatusDetails, error)
	Invoices(ctx context.Context, tenantID uuid.UUID) ([]*Invoice, error)

	CanCreate(ctx context.Context, tenantID uuid.UUID, res Resource) error
	GetUsage(ctx context.Context, tenantID uuid.UUID, res Resource) (used, limit int64, err error)
	HasFeature(ctx context.Context, tenantID uuid.UUID, feature Feature) bool
}

type service struct {
	plans    map[string]Plan
	counters map[Resource]ResourceCounterFunc
	store    Store
	invoices InvoiceStore
	now      func() time.Time
}

// ServiceOption configures optional service settings.
type ServiceOption func(*service)

// WithCounter registers a usage counter for a resource.
func WithCounter(res Resource, fn ResourceCounterFunc) ServiceOption {
	return func(s *service) {
		if fn != nil {
			s.counters[res] = fn
		}
	}
}

// WithClock overrides the wall clock, for tests exercising period math.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates a Service with the given dependencies.
// Panics if required parameters are nil to fail fast during initialization.
func NewService(ctx context.Context, src PlansSource, store Store, invoices InvoiceStore, opts ...ServiceOption) (Service, error) {
	if src == nil {
		panic("subscription: PlansSource is required")
	}
	if store == nil {
		panic("subscription: Store is required")
	}
	if invoices == nil {
		panic("subscription: InvoiceStore is required")
	}

	configs, err := src.Load(ctx)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}

	plans := make(map[string]Plan)
	for _, cfg := range configs {
		if cfg.ID == "" || cfg.BaseMonthlyPrice.IsNegative() {
			return nil, ErrInvalidPlanConfiguration
		}
		for _, variant := range cfg.Variants() {
			if _, exists := plans[variant.ID]; exists {
				return nil, errors.Join(ErrInvalidPlanConfiguration, errors.New("duplicate plan variant "+variant.ID))
			}
			plans[variant.ID] = variant
		}
	}

	s := &service{
		plans:    plans,
		counters: make(map[Resource]ResourceCounterFunc),
		store:    store,
		invoices: invoices,
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *service) Plans() []Plan {
	out := make([]Plan, 0, len(s.plans))
	for _, p := range s.plans {
		out = append(out, p)
	}
	return out
}

func (s *service) Plan(id string) (Plan, error) {
	plan, ok := s.plans[id]
	if !ok {
		return Plan{}, ErrPlanNotFound
	}
	return plan, nil
}

// Purchase creates the tenant's subscription on first plan purchase together
// with the pending invoice for the first period. The cycle discount appears
// on the invoice as the difference between the undiscounted monthly subtotal
// and the variant price.
func (s *service) Purchase(ctx context.Context, tenantID uuid.UUID, planID string) (*Subscription, *Invoice, error) {
	plan, err := s.Plan(planID)
	if err != nil {
		return nil, nil, err
	}

	if existing, err := s.store.Get(ctx, tenantID); err == nil {
		details := StatusDetailsAt(existing, s.now())
		if !details.IsExpired {
			return nil, nil, ErrSubscriptionAlreadyExists
		}
	} else if !errors.Is(err, ErrSubscriptionNotFound) {
		return nil, nil, err
	}

	now := s.now()
	sub := &Subscription{
		TenantID:           tenantID,
		PlanID:             plan.ID,
		Cycle:              plan.Cycle,
		Status:             StatusActive,
		CurrentPeriodStart: now,
		CurrentPeriodEnd:   PeriodEnd(now, plan.Cycle),
		AutoRenew:          true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if plan.TrialDays > 0 {
		trialEnd := now.AddDate(0, 0, plan.TrialDays)
		sub.Status = StatusTrial
		sub.TrialEndsAt = &trialEnd
	}

	// Invoice first: a failure here leaves no subscription behind, and a
	// save failure below cancels the invoice, so neither error path ends
	// with an active subscription missing its first-period invoice.
	inv := s.periodInvoice(tenantID, plan, sub.CurrentPeriodStart, sub.CurrentPeriodEnd)
	if err := s.invoices.Create(ctx, inv); err != nil {
		return nil, nil, err
	}
	if err := s.store.Save(ctx, sub); err != nil {
		if tErr := inv.Transition(InvoiceCancelled); tErr == nil {
			_ = s.invoices.Update(ctx, inv)
		}
		return nil, nil, err
	}
	return sub, inv, nil
}

// IssueRenewalInvoice creates the pending invoice for the period following
// the current one. Called by the billing flow ahead of (or at) period end.
func (s *service) IssueRenewalInvoice(ctx context.Context, tenantID uuid.UUID) (*Invoice, error) {
	sub, err := s.store.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if sub.CancelAtPeriodEnd || sub.Status == StatusCancelled {
		return nil, ErrSubscriptionNotRenewable
	}
	plan, err := s.Plan(sub.PlanID)
	if err != nil {
		return nil, err
	}

	inv := s.periodInvoice(tenantID, plan, sub.CurrentPeriodEnd, PeriodEnd(sub.CurrentPeriodEnd, plan.Cycle))
	if err := s.invoices.Create(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// ApplyPayment settles an invoice and advances the subscription. A renewal
// invoice (periodStart == currentPeriodEnd) moves the period window forward
// and clears any grace window; the initial invoice re-activates the current
// period. Any other period pair is rejected.
func (s *service) ApplyPayment(ctx context.Context, tenantID, invoiceID uuid.UUID) (*Subscription, error) {
	sub, err := s.store.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	inv, err := s.invoices.Get(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.TenantID != tenantID {
		return nil, ErrInvoiceNotFound
	}

	now := s.now()
	switch {
	case inv.PeriodStart.Equal(sub.CurrentPeriodEnd):
		sub.CurrentPeriodStart = inv.PeriodStart
		sub.CurrentPeriodEnd = inv.PeriodEnd
	case inv.PeriodStart.Equal(sub.CurrentPeriodStart) && inv.PeriodEnd.Equal(sub.CurrentPeriodEnd):
		// initial invoice, period unchanged
	default:
		return nil, ErrInvoicePeriodMismatch
	}

	if err := inv.MarkPaid(now); err != nil {
		return nil, err
	}

	sub.Status = StatusActive
	sub.GracePeriodEndsAt = nil
	sub.UpdatedAt = now

	if err := s.invoices.Update(ctx, inv); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// Cancel flags the subscription to lapse at period end. Service continues
// until the paid period runs out; no grace window follows a cancellation.
func (s *service) Cancel(ctx context.Context, tenantID uuid.UUID) error {
	sub, err := s.store.Get(ctx, tenantID)
	if err != nil {
		return err
	}
	now := s.now()
	sub.CancelAtPeriodEnd = true
	sub.AutoRenew = false
	sub.CancelledAt = &now
	sub.UpdatedAt = now
	return s.store.Save(ctx, sub)
}

func (s *service) Subscription(ctx context.Context, tenantID uuid.UUID) (*Subscription, error) {
	return s.store.Get(ctx, tenantID)
}

// Status computes the read-time status snapshot, persisting lapse
// transitions as a side effect: an unpaid period opens the grace window, a
// lapsed grace window (or a cancelled period end) marks the record expired.
func (s *service) Status(ctx context.Context, tenantID uuid.UUID) (StatusDetails, error) {
	sub, err := s.store.Get(ctx, tenantID)
	if err != nil {
		if errors.Is(err, ErrSubscriptionNotFound) {
			return StatusDetailsAt(nil, s.now()), nil
		}
		return StatusDetails{}, err
	}

	now := s.now()
	if changed := s.applyLapse(sub, now); changed {
		if err := s.store.Save(ctx, sub); err != nil {
			return StatusDetails{}, err
		}
	}
	return StatusDetailsAt(sub, now), nil
}

// applyLapse advances the persisted status when the period or grace window
// has run out. Returns true when the record changed.
func (s *service) applyLapse(sub *Subscription, now time.Time) bool {
	if !now.After(sub.CurrentPeriodEnd) || sub.Status == StatusExpired {
		return false
	}

	if sub.CancelAtPeriodEnd {
		sub.Status = StatusExpired
		sub.UpdatedAt = now
		return true
	}

	if sub.GracePeriodEndsAt == nil {
		graceEnd := GracePeriodEnd(sub.CurrentPeriodEnd)
		sub.GracePeriodEndsAt = &graceEnd
		sub.Status = StatusGracePeriod
		sub.UpdatedAt = now
		return true
	}

	if now.After(*sub.GracePeriodEndsAt) {
		sub.Status = StatusExpired
		sub.UpdatedAt = now
		return true
	}
	return false
}

func (s *service) Invoices(ctx context.Context, tenantID uuid.UUID) ([]*Invoice, error) {
	return s.invoices.ListByTenant(ctx, tenantID)
}

// CanCreate checks if a tenant can create a new resource instance under its
// plan limits.
func (s *service) CanCreate(ctx context.Context, tenantID uuid.UUID, res Resource) error {
	plan, err := s.tenantPlan(ctx, tenantID)
	if err != nil {
		return err
	}

	limit, ok := plan.Limit(res)
	if !ok {
		return ErrInvalidResource
	}
	if limit == Unlimited {
		return nil
	}

	counter, ok := s.counters[res]
	if !ok {
		return ErrNoCounterRegistered
	}
	current, err := counter(ctx, tenantID)
	if err != nil {
		return errors.Join(ErrFailedToCountResourceUsage, err)
	}
	if current >= limit {
		return ErrLimitExceeded
	}
	return nil
}

// GetUsage returns the current usage and limit for a resource.
func (s *service) GetUsage(ctx context.Context, tenantID uuid.UUID, res Resource) (int64, int64, error) {
	plan, err := s.tenantPlan(ctx, tenantID)
	if err != nil {
		return 0, 0, err
	}
	limit, ok := plan.Limit(res)
	if !ok {
		return 0, 0, ErrInvalidResource
	}

	counter, ok := s.counters[res]
	if !ok {
		return 0, 0, ErrNoCounterRegistered
	}
	current, err := counter(ctx, tenantID)
	if err != nil {
		return 0, 0, errors.Join(ErrFailedToCountResourceUsage, err)
	}
	return current, limit, nil
}

// HasFeature reports whether the tenant's plan enables a capability.
// Unknown tenants and lookup failures read as feature-off.
func (s *service) HasFeature(ctx context.Context, tenantID uuid.UUID, feature Feature) bool {
	plan, err := s.tenantPlan(ctx, tenantID)
	if err != nil {
		return false
	}
	return plan.HasFeature(feature)
}

func (s *service) tenantPlan(ctx context.Context, tenantID uuid.UUID) (Plan, error) {
	sub, err := s.store.Get(ctx, tenantID)
	if err != nil {
		return Plan{}, err
	}
	return s.Plan(sub.PlanID)
}

func (s *service) periodInvoice(tenantID uuid.UUID, plan Plan, start, end time.Time) *Invoice {
	months := int64(plan.Cycle.Months())
	item := InvoiceItem{
		Description: plan.Name + " subscription",
		Quantity:    months,
		UnitPrice:   plan.BaseMonthly,
	}
	subtotal := plan.BaseMonthly.Mul(decimal.NewFromInt(months)).Round(2)
	discount := subtotal.Sub(plan.Price)
	return NewInvoice(tenantID, plan.ID, start, end, []InvoiceItem{item}, discount, decimal.Zero)
}
