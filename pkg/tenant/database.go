package tenant

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// DialFunc opens a mongo client for a dedicated tenant database.
// Injected so tests can substitute a fake dialer.
type DialFunc func(ctx context.Context, connectionURL string) (*mongo.Client, error)

func defaultDial(_ context.Context, connectionURL string) (*mongo.Client, error) {
	return mongo.Connect(options.Client().ApplyURI(connectionURL))
}

// DatabaseResolver hands out the *mongo.Database a tenant's data lives in.
// Shared-mode tenants get a database on the shared cluster named after the
// tenant; dedicated-mode tenants get a lazily dialed client of their own,
// kept open and reused across requests.
type DatabaseResolver struct {
	shared *mongo.Client
	dial   DialFunc

	mu        sync.Mutex
	dedicated map[string]*mongo.Client // keyed by connection URL
}

// DatabaseResolverOption configures a DatabaseResolver.
type DatabaseResolverOption func(*DatabaseResolver)

// WithDialFunc overrides how dedicated databases are dialed.
func WithDialFunc(dial DialFunc) DatabaseResolverOption {
	return func(r *DatabaseResolver) {
		if dial != nil {
			r.dial = dial
		}
	}
}

// NewDatabaseResolver creates a resolver over the shared cluster client.
// Panics if sharedClient is nil to fail fast during initialization.
func NewDatabaseResolver(sharedClient *mongo.Client, opts ...DatabaseResolverOption) *DatabaseResolver {
	if sharedClient == nil {
		panic("tenant: shared mongo client is required")
	}
	r := &DatabaseResolver{
		shared:    sharedClient,
		dial:      defaultDial,
		dedicated: make(map[string]*mongo.Client),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Database returns the database for the tenant according to its
// DatabaseMode. The database name defaults to "tenant_<id>" when the record
// does not carry one.
func (r *DatabaseResolver) Database(ctx context.Context, t *Tenant) (*mongo.Database, error) {
	if t == nil {
		return nil, ErrNoTenantInContext
	}

	name := t.DatabaseName
	if name == "" {
		name = "tenant_" + t.ID.String()
	}

	if !t.DatabaseMode.IsDedicated() {
		return r.shared.Database(name), nil
	}

	if t.DatabaseURL == "" {
		return nil, ErrDedicatedDatabaseUnavailable
	}
	client, err := r.clientFor(ctx, t.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return client.Database(name), nil
}

// DatabaseFromContext resolves the database of the tenant on the context.
func (r *DatabaseResolver) DatabaseFromContext(ctx context.Context) (*mongo.Database, error) {
	t, ok := FromContext(ctx)
	if !ok {
		return nil, ErrNoTenantInContext
	}
	return r.Database(ctx, t)
}

func (r *DatabaseResolver) clientFor(ctx context.Context, url string) (*mongo.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if client, ok := r.dedicated[url]; ok {
		return client, nil
	}
	client, err := r.dial(ctx, url)
	if err != nil {
		return nil, err
	}
	r.dedicated[url] = client
	return client, nil
}

// Close disconnects all dedicated clients. The shared client belongs to the
// caller and is left open.
func (r *DatabaseResolver) Close(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var firstErr error
	for url, client := range r.dedicated {
		if err := client.Disconnect(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(r.dedicated, url)
	}
	return firstErr
}
