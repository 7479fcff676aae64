package subscription

import "time"

// Renewal notice thresholds in days remaining. The 4–7 and 1–3 day windows
// drive dashboard banners and the payment wall; downstream gating depends on
// these exact boundaries.
const (
	renewalNoticeMaxDays = 7
	renewalNoticeMinDays = 4
	urgentNoticeMaxDays  = 3
	urgentNoticeMinDays  = 1
)

// StatusDetails is the derived, never-persisted view of a subscription used
// by dashboard banners and by the payment-gating middleware. It must be
// recomputed on every read because the wall clock is an implicit input.
type StatusDetails struct {
	Status             Status `json:"status"`
	IsActive           bool   `json:"isActive"`
	IsTrial            bool   `json:"isTrial"`
	IsExpired          bool   `json:"isExpired"`
	IsGracePeriod      bool   `json:"isGracePeriod"`
	DaysRemaining      int    `json:"daysRemaining"`
	GraceDaysRemaining int    `json:"graceDaysRemaining"`
	ShowRenewalNotice  bool   `json:"showRenewalNotice"`
	ShowUrgentNotice   bool   `json:"showUrgentNotice"`
	ShowExpiredNotice  bool   `json:"showExpiredNotice"`
	RequiresPayment    bool   `json:"requiresPayment"`
}

// StatusDetailsAt computes the status snapshot at a fixed instant.
// A nil subscription (tenant never purchased a plan) yields the fully
// expired, payment-required sentinel.
func StatusDetailsAt(s *Subscription, now time.Time) StatusDetails {
	if s == nil {
		return StatusDetails{
			Status:            StatusExpired,
			IsExpired:         true,
			ShowExpiredNotice: true,
			RequiresPayment:   true,
		}
	}

	lapsed := now.After(s.CurrentPeriodEnd)
	expired := lapsed && (s.GracePeriodEndsAt == nil || now.After(*s.GracePeriodEndsAt))
	grace := !expired && s.IsInGracePeriodAt(now)

	details := StatusDetails{
		Status:        s.Status,
		IsActive:      s.Status == StatusActive && !lapsed,
		IsTrial:       s.Status == StatusTrial,
		IsExpired:     expired,
		IsGracePeriod: grace,
		DaysRemaining: DaysUntilExpiryAt(s.CurrentPeriodEnd, now),
	}

	if grace {
		details.GraceDaysRemaining = DaysUntilExpiryAt(*s.GracePeriodEndsAt, now)
	}

	if details.IsActive {
		days := details.DaysRemaining
		details.ShowRenewalNotice = days >= renewalNoticeMinDays && days <= renewalNoticeMaxDays
		details.ShowUrgentNotice = days >= urgentNoticeMinDays && days <= urgentNoticeMaxDays
	}

	details.ShowExpiredNotice = expired || grace
	details.RequiresPayment = expired || grace || s.Status == StatusPastDue

	return details
}

// StatusDetailsOf is StatusDetailsAt against the wall clock.
func StatusDetailsOf(s *Subscription) StatusDetails {
	return StatusDetailsAt(s, time.Now().UTC())
}
