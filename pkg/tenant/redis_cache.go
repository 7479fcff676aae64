package tenant

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisCache stores tenant records in Redis as JSON. It lets multiple
// application instances share one tenant lookup cache, and invalidation
// (Delete on tenant update) takes effect across the fleet immediately.
type redisCache struct {
	client    *redis.Client
	keyPrefix string
}

// RedisCacheKeyPrefix namespaces tenant cache keys in a shared Redis.
const RedisCacheKeyPrefix = "tenant:cache:"

// redisTenantDoc is the cache wire format. Tenant itself hides DatabaseURL
// from JSON to keep it out of API responses, but the cache must round-trip
// it or dedicated-mode tenants would lose their connection string.
type redisTenantDoc struct {
	Tenant
	DatabaseURL string `json:"database_url,omitempty"`
}

// NewRedisCache creates a Cache backed by the given Redis client.
// The client's lifecycle belongs to the caller; Close on the cache is a no-op.
func NewRedisCache(client *redis.Client) Cache {
	if client == nil {
		panic("tenant: redis client is required")
	}
	return &redisCache{client: client, keyPrefix: RedisCacheKeyPrefix}
}

func (c *redisCache) Get(ctx context.Context, key string) (*Tenant, bool) {
	raw, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	var doc redisTenantDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		// Stale or foreign payload; drop it so the next lookup repopulates.
		c.client.Del(ctx, c.keyPrefix+key)
		return nil, false
	}
	t := doc.Tenant
	t.DatabaseURL = doc.DatabaseURL
	return &t, true
}

func (c *redisCache) Set(ctx context.Context, key string, t *Tenant, ttl time.Duration) {
	raw, err := json.Marshal(redisTenantDoc{Tenant: *t, DatabaseURL: t.DatabaseURL})
	if err != nil {
		return
	}
	c.client.Set(ctx, c.keyPrefix+key, raw, ttl)
}

func (c *redisCache) Delete(ctx context.Context, key string) {
	c.client.Del(ctx, c.keyPrefix+key)
}

func (c *redisCache) Close() error { return nil }
