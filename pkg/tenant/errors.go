package tenant

import "errors"

var (
	// ErrTenantNotFound is returned when a tenant cannot be found.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrInvalidIdentifier is returned when the identifier format is invalid.
	ErrInvalidIdentifier = errors.New("invalid tenant identifier")

	// ErrNoTenantInContext is returned when no tenant is found in context.
	ErrNoTenantInContext = errors.New("no tenant in context")

	// ErrInactiveTenant is returned when trying to use a deactivated tenant.
	ErrInactiveTenant = errors.New("tenant is inactive")

	// ErrPaymentRequired is returned when the tenant's subscription has
	// lapsed and the requested operation needs an active subscription.
	ErrPaymentRequired = errors.New("subscription payment required")

	// ErrDedicatedDatabaseUnavailable is returned when a dedicated-mode
	// tenant has no usable database connection string.
	ErrDedicatedDatabaseUnavailable = errors.New("dedicated tenant database unavailable")
)
