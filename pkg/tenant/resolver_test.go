package tenant_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srana86/frameX-sub009/pkg/tenant"
)

func requestWithHost(host string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
	req.Host = host
	return req
}

func TestSubdomainResolver(t *testing.T) {
	t.Parallel()

	t.Run("with suffix", func(t *testing.T) {
		t.Parallel()
		r := tenant.NewSubdomainResolver(".shops.example.com")

		tests := []struct {
			host string
			want string
		}{
			{"acme.shops.example.com", "acme"},
			{"acme.shops.example.com:8080", "acme"},
			{"www.shops.example.com", ""},
			{"shops.example.com", ""},
			{"a.b.shops.example.com", ""},
			{"other.example.com", ""},
		}
		for _, tc := range tests {
			got, err := r.Resolve(requestWithHost(tc.host))
			require.NoError(t, err, tc.host)
			assert.Equal(t, tc.want, got, tc.host)
		}
	})

	t.Run("without suffix", func(t *testing.T) {
		t.Parallel()
		r := tenant.NewSubdomainResolver("")

		tests := []struct {
			host string
			want string
		}{
			{"acme.example.com", "acme"},
			{"www.example.com", ""},
			{"example.com", ""},
			{"localhost", ""},
			{"localhost:3000", ""},
		}
		for _, tc := range tests {
			got, err := r.Resolve(requestWithHost(tc.host))
			require.NoError(t, err, tc.host)
			assert.Equal(t, tc.want, got, tc.host)
		}
	})
}

func TestHeaderResolver(t *testing.T) {
	t.Parallel()

	r := tenant.NewHeaderResolver("")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Tenant-ID", "acme")

	got, err := r.Resolve(req)
	require.NoError(t, err)
	assert.Equal(t, "acme", got)

	got, err = r.Resolve(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPathResolver(t *testing.T) {
	t.Parallel()

	r := tenant.NewPathResolver(2)

	got, err := r.Resolve(httptest.NewRequest(http.MethodGet, "/tenants/acme/orders", nil))
	require.NoError(t, err)
	assert.Equal(t, "acme", got)

	got, err = r.Resolve(httptest.NewRequest(http.MethodGet, "/tenants", nil))
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = r.Resolve(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = tenant.NewPathResolver(0).Resolve(httptest.NewRequest(http.MethodGet, "/a/b", nil))
	assert.Error(t, err)
}

func TestCompositeResolver(t *testing.T) {
	t.Parallel()

	t.Run("first non-empty wins", func(t *testing.T) {
		t.Parallel()
		r := tenant.NewCompositeResolver(
			tenant.NewSubdomainResolver(".shops.example.com"),
			tenant.NewHeaderResolver("X-Tenant-ID"),
		)

		req := requestWithHost("api.example.com")
		req.Header.Set("X-Tenant-ID", "acme")

		got, err := r.Resolve(req)
		require.NoError(t, err)
		assert.Equal(t, "acme", got)
	})

	t.Run("errors are joined when nothing resolves", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		r := tenant.NewCompositeResolver(
			tenant.ResolverFunc(func(*http.Request) (string, error) { return "", boom }),
			tenant.ResolverFunc(func(*http.Request) (string, error) { return "", nil }),
		)

		_, err := r.Resolve(httptest.NewRequest(http.MethodGet, "/", nil))
		assert.ErrorIs(t, err, boom)
	})

	t.Run("resolver error is skipped when a later one succeeds", func(t *testing.T) {
		t.Parallel()
		r := tenant.NewCompositeResolver(
			tenant.ResolverFunc(func(*http.Request) (string, error) { return "", errors.New("boom") }),
			tenant.ResolverFunc(func(*http.Request) (string, error) { return "acme", nil }),
		)

		got, err := r.Resolve(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Equal(t, "acme", got)
	})
}
