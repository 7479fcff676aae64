package subscription

import "errors"

var (
	ErrPlanNotFound             = errors.New("subscription plan not found")
	ErrInvalidBillingCycle      = errors.New("invalid billing cycle")
	ErrInvalidPlanConfiguration = errors.New("invalid subscription plan configuration")

	ErrLimitExceeded       = errors.New("subscription limit exceeded")
	ErrInvalidResource     = errors.New("invalid subscription resource")
	ErrNoCounterRegistered = errors.New("no usage counter registered for resource")

	ErrSubscriptionNotFound      = errors.New("subscription not found")
	ErrSubscriptionAlreadyExists = errors.New("subscription already exists")
	ErrSubscriptionNotRenewable  = errors.New("subscription is not renewable")

	ErrInvoiceNotFound          = errors.New("invoice not found")
	ErrInvalidInvoiceTransition = errors.New("invalid invoice status transition")
	ErrInvoicePeriodMismatch    = errors.New("invoice period does not match subscription period")

	ErrFailedToLoadPlans          = errors.New("failed to load subscription plans")
	ErrFailedToCountResourceUsage = errors.New("failed to count resource usage")
)
