// Package tenant provides multi-tenant request plumbing for storefront
// applications: identifier resolution from HTTP requests, cached tenant
// lookup, context propagation, subscription payment gating and per-tenant
// database placement.
//
// # Resolution
//
// A Resolver extracts the tenant identifier from the request. Storefronts
// typically resolve by subdomain, internal APIs by header, and both can be
// combined:
//
//	resolver := tenant.NewCompositeResolver(
//	    tenant.NewSubdomainResolver(".shops.example.com"),
//	    tenant.NewHeaderResolver("X-Tenant-ID"),
//	)
//
// The middleware loads the tenant through a Provider, caches it, and puts
// it on the request context:
//
//	r.Use(tenant.Middleware(resolver, provider,
//	    tenant.WithCache(tenant.NewRedisCache(redisClient)),
//	    tenant.WithSkipPaths([]string{"/health"}),
//	))
//
// Handlers read it back with FromContext or MustFromContext.
//
// # Payment gating
//
// RequireActiveSubscription blocks mutating requests with 402 Payment
// Required while the tenant's subscription is lapsed, keeping the store
// readable throughout:
//
//	r.Use(tenant.RequireActiveSubscription(func(ctx context.Context, id uuid.UUID) (bool, error) {
//	    details, err := subs.Status(ctx, id)
//	    return details.RequiresPayment, err
//	}, nil))
//
// # Database placement
//
// DatabaseResolver maps a tenant to its mongo database: a named database on
// the shared cluster, or a dedicated deployment for tenants whose plan
// includes one. Dedicated clients are dialed lazily and reused.
package tenant
