package subscription

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// GracePeriodDays is the fixed window after period expiry during which
// service continues before hard cutoff.
const GracePeriodDays = 7

// Subscription is the persisted record of a tenant's paid plan.
// Each tenant has exactly one subscription; TenantID is the primary key.
// The caller-facing view is always the derived StatusDetails, recomputed on
// every read.
type Subscription struct {
	TenantID           uuid.UUID // primary key - one subscription per tenant
	PlanID             string    // variant plan ID
	Cycle              BillingCycle
	Status             Status
	CurrentPeriodStart time.Time
	CurrentPeriodEnd   time.Time
	TrialEndsAt        *time.Time // set only for plans with trials
	GracePeriodEndsAt  *time.Time // always periodEnd + 7 days when set
	CancelAtPeriodEnd  bool
	AutoRenew          bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
	CancelledAt        *time.Time // set when the tenant cancels
}

func (s *Subscription) IsActive() bool {
	return s.Status == StatusActive
}

func (s *Subscription) IsTrial() bool {
	return s.Status == StatusTrial
}

func (s *Subscription) IsCancelled() bool {
	return s.Status == StatusCancelled
}

// PeriodEnd advances a period start by the cycle's calendar months.
// time.AddDate normalizes out-of-range days, so a start on Jan 31 advanced by
// one month lands on Mar 2/3 rather than a "last day of February" clamp; this
// matches the billing dates already issued to tenants and must not change.
func PeriodEnd(start time.Time, cycle BillingCycle) time.Time {
	return start.AddDate(0, cycle.Months(), 0)
}

// GracePeriodEnd returns the hard-cutoff timestamp for a lapsed period.
func GracePeriodEnd(periodEnd time.Time) time.Time {
	return periodEnd.AddDate(0, 0, GracePeriodDays)
}

// DaysUntilExpiryAt returns the whole days remaining until periodEnd,
// rounding partial days up. Negative when the period has already lapsed.
func DaysUntilExpiryAt(periodEnd, now time.Time) int {
	return int(math.Ceil(periodEnd.Sub(now).Hours() / 24))
}

// DaysUntilExpiry is DaysUntilExpiryAt against the wall clock.
func DaysUntilExpiry(periodEnd time.Time) int {
	return DaysUntilExpiryAt(periodEnd, time.Now().UTC())
}

// IsInGracePeriodAt reports whether the subscription has lapsed but is still
// inside its grace window at the given instant. Always false when no grace
// window has been set.
func (s *Subscription) IsInGracePeriodAt(now time.Time) bool {
	if s == nil || s.GracePeriodEndsAt == nil {
		return false
	}
	return now.After(s.CurrentPeriodEnd) && !now.After(*s.GracePeriodEndsAt)
}

// IsInGracePeriod is IsInGracePeriodAt against the wall clock.
func (s *Subscription) IsInGracePeriod() bool {
	return s.IsInGracePeriodAt(time.Now().UTC())
}
