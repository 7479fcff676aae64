package tenant_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srana86/frameX-sub009/pkg/tenant"
)

func TestInMemoryCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("set and get", func(t *testing.T) {
		t.Parallel()
		cache := tenant.NewInMemoryCache()
		defer cache.Close()

		stored := &tenant.Tenant{ID: uuid.New(), Subdomain: "acme"}
		cache.Set(ctx, "acme", stored, time.Minute)

		got, ok := cache.Get(ctx, "acme")
		require.True(t, ok)
		assert.Equal(t, stored, got)
	})

	t.Run("miss", func(t *testing.T) {
		t.Parallel()
		cache := tenant.NewInMemoryCache()
		defer cache.Close()

		_, ok := cache.Get(ctx, "missing")
		assert.False(t, ok)
	})

	t.Run("ttl expiry", func(t *testing.T) {
		t.Parallel()
		cache := tenant.NewInMemoryCache()
		defer cache.Close()

		cache.Set(ctx, "acme", &tenant.Tenant{Subdomain: "acme"}, 10*time.Millisecond)
		time.Sleep(20 * time.Millisecond)

		_, ok := cache.Get(ctx, "acme")
		assert.False(t, ok)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()
		cache := tenant.NewInMemoryCache()
		defer cache.Close()

		cache.Set(ctx, "acme", &tenant.Tenant{Subdomain: "acme"}, time.Minute)
		cache.Delete(ctx, "acme")

		_, ok := cache.Get(ctx, "acme")
		assert.False(t, ok)
	})

	t.Run("lru eviction", func(t *testing.T) {
		t.Parallel()
		cache := tenant.NewInMemoryCacheWithSize(2)
		defer cache.Close()

		cache.Set(ctx, "a", &tenant.Tenant{Subdomain: "a"}, time.Minute)
		cache.Set(ctx, "b", &tenant.Tenant{Subdomain: "b"}, time.Minute)

		// Touch "a" so "b" becomes the eviction candidate.
		_, ok := cache.Get(ctx, "a")
		require.True(t, ok)

		cache.Set(ctx, "c", &tenant.Tenant{Subdomain: "c"}, time.Minute)

		_, ok = cache.Get(ctx, "a")
		assert.True(t, ok)
		_, ok = cache.Get(ctx, "b")
		assert.False(t, ok)
		_, ok = cache.Get(ctx, "c")
		assert.True(t, ok)
	})

	t.Run("overwrite does not evict", func(t *testing.T) {
		t.Parallel()
		cache := tenant.NewInMemoryCacheWithSize(2)
		defer cache.Close()

		cache.Set(ctx, "a", &tenant.Tenant{Subdomain: "a"}, time.Minute)
		cache.Set(ctx, "b", &tenant.Tenant{Subdomain: "b"}, time.Minute)
		cache.Set(ctx, "a", &tenant.Tenant{Subdomain: "a2"}, time.Minute)

		got, ok := cache.Get(ctx, "a")
		require.True(t, ok)
		assert.Equal(t, "a2", got.Subdomain)
		_, ok = cache.Get(ctx, "b")
		assert.True(t, ok)
	})

	t.Run("close is idempotent", func(t *testing.T) {
		t.Parallel()
		cache := tenant.NewInMemoryCache()
		require.NoError(t, cache.Close())
		require.NoError(t, cache.Close())
	})

	t.Run("concurrent access", func(t *testing.T) {
		t.Parallel()
		cache := tenant.NewInMemoryCacheWithSize(64)
		defer cache.Close()

		done := make(chan struct{})
		for i := 0; i < 8; i++ {
			go func(n int) {
				defer func() { done <- struct{}{} }()
				for j := 0; j < 100; j++ {
					key := fmt.Sprintf("t-%d", (n+j)%32)
					cache.Set(ctx, key, &tenant.Tenant{Subdomain: key}, time.Minute)
					cache.Get(ctx, key)
					if j%10 == 0 {
						cache.Delete(ctx, key)
					}
				}
			}(i)
		}
		for k := 0; k < 8; k++ {
			<-done
		}
	})
}

func TestNoOpCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := tenant.NewNoOpCache()

	cache.Set(ctx, "acme", &tenant.Tenant{Subdomain: "acme"}, time.Minute)
	_, ok := cache.Get(ctx, "acme")
	assert.False(t, ok)
	assert.NoError(t, cache.Close())
}
