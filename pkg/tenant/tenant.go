package tenant

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DatabaseMode selects where a tenant's data lives: the shared cluster
// database or a database dedicated to the tenant.
type DatabaseMode string

const (
	DatabaseShared    DatabaseMode = "shared"
	DatabaseDedicated DatabaseMode = "dedicated"
)

// Valid reports whether the mode is one of the supported values.
// The empty string is treated as shared for records written before the
// dedicated tier existed.
func (m DatabaseMode) Valid() bool {
	return m == DatabaseShared || m == DatabaseDedicated || m == ""
}

// IsDedicated reports whether the tenant runs on its own database.
func (m DatabaseMode) IsDedicated() bool {
	return m == DatabaseDedicated
}

// Tenant carries the request-scoped view of a storefront tenant: identity,
// plan binding and database placement. It is intentionally small; anything
// heavier belongs in the tenant's own database.
type Tenant struct {
	ID           uuid.UUID    `json:"id"`
	Subdomain    string       `json:"subdomain"`
	Name         string       `json:"name"`
	PlanID       string       `json:"plan_id"`
	Active       bool         `json:"active"`
	DatabaseMode DatabaseMode `json:"database_mode"`
	// DatabaseURL is the connection string of the dedicated database.
	// Empty for shared-mode tenants.
	DatabaseURL  string    `json:"-"`
	DatabaseName string    `json:"database_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// Provider loads tenant records from the control-plane store.
// Implementations decide which identifier formats they accept
// (UUID, subdomain, custom domain).
type Provider interface {
	// GetByIdentifier retrieves a tenant using any unique identifier.
	// Returns ErrTenantNotFound if no tenant matches.
	GetByIdentifier(ctx context.Context, identifier string) (*Tenant, error)
}
