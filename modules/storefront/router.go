// Package storefront composes the tenant-facing admin API: tenant
// resolution, subscription payment gating, and the domain service routers.
package storefront

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/srana86/frameX-sub009/core"
	"github.com/srana86/frameX-sub009/pkg/subscription"
	"github.com/srana86/frameX-sub009/pkg/tenant"
)

// RouterConfig wires the storefront module. Resolver, Provider and
// Subscriptions are required; service handlers are optional and only
// mounted when provided.
type RouterConfig struct {
	Resolver      tenant.Resolver
	Provider      tenant.Provider
	Subscriptions subscription.Service

	// TenantCache overrides the default in-memory tenant cache;
	// deployments with more than one instance pass the Redis cache here.
	TenantCache tenant.Cache

	Orders    http.Handler
	Customers http.Handler
	Billing   http.Handler

	// Healthchecks run on GET /health; the endpoint bypasses tenant
	// resolution.
	Healthchecks map[string]func(context.Context) error
}

// Router assembles the storefront API. Mutating routes under tenant scope
// are blocked with 402 while the tenant's subscription requires payment;
// billing routes stay reachable so the tenant can pay its way back in.
func Router(cfg RouterConfig) chi.Router {
	if cfg.Resolver == nil {
		panic("storefront: tenant resolver is required")
	}
	if cfg.Provider == nil {
		panic("storefront: tenant provider is required")
	}
	if cfg.Subscriptions == nil {
		panic("storefront: subscription service is required")
	}

	tenantOpts := []tenant.Option{
		tenant.WithSkipPaths([]string{"/health"}),
	}
	if cfg.TenantCache != nil {
		tenantOpts = append(tenantOpts, tenant.WithCache(cfg.TenantCache))
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(tenant.Middleware(cfg.Resolver, cfg.Provider, tenantOpts...))

	r.Get("/health", healthHandler(cfg.Healthchecks))

	r.Group(func(r chi.Router) {
		r.Use(tenant.RequireTenant(nil))

		if cfg.Billing != nil {
			r.Mount("/billing", cfg.Billing)
		}

		r.Group(func(r chi.Router) {
			r.Use(tenant.RequireActiveSubscription(paymentCheck(cfg.Subscriptions), nil))

			if cfg.Orders != nil {
				r.Mount("/orders", cfg.Orders)
			}
			if cfg.Customers != nil {
				r.Mount("/customers", cfg.Customers)
			}
		})
	})

	return r
}

// paymentCheck adapts the subscription status read to the payment gate.
func paymentCheck(subs subscription.Service) tenant.PaymentCheckFunc {
	return func(ctx context.Context, tenantID uuid.UUID) (bool, error) {
		details, err := subs.Status(ctx, tenantID)
		if err != nil {
			return false, err
		}
		return details.RequiresPayment, nil
	}
}

func healthHandler(checks map[string]func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]string{}
		healthy := true
		for name, check := range checks {
			if err := check(r.Context()); err != nil {
				status[name] = err.Error()
				healthy = false
				continue
			}
			status[name] = "ok"
		}
		if !healthy {
			core.Render(w, r, core.JSONStatus(http.StatusServiceUnavailable, status))
			return
		}
		core.Render(w, r, core.JSON(status))
	}
}
