package order_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srana86/frameX-sub009/pkg/tenant"
	"github.com/srana86/frameX-sub009/svc/order"
)

func newTestRouter(src *fakeSource) (http.Handler, *tenant.Tenant) {
	current := &tenant.Tenant{ID: uuid.New(), Subdomain: "acme", Active: true}
	h := order.NewHandler(order.NewServiceWithSource(src), nil)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(tenant.WithTenant(req.Context(), current)))
		})
	})
	r.Mount("/orders", h.Routes())
	return r, current
}

func TestHandler_List(t *testing.T) {
	t.Parallel()

	t.Run("returns envelope with data and meta", func(t *testing.T) {
		t.Parallel()
		src := &fakeSource{
			rows:  []order.Order{{ID: "o1", OrderNumber: "SO-1001", Status: order.StatusPending}},
			total: 11,
		}
		router, _ := newTestRouter(src)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders?limit=10&page=2", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var body struct {
			Data []order.Order `json:"data"`
			Meta struct {
				Page      int   `json:"page"`
				Limit     int   `json:"limit"`
				Total     int64 `json:"total"`
				TotalPage int64 `json:"totalPage"`
			} `json:"meta"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Data, 1)
		assert.Equal(t, "SO-1001", body.Data[0].OrderNumber)
		assert.Equal(t, 2, body.Meta.Page)
		assert.Equal(t, int64(11), body.Meta.Total)
		assert.Equal(t, int64(2), body.Meta.TotalPage)
	})

	t.Run("malformed pagination maps to 400", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(&fakeSource{})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders?page=abc", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("tenant override attempt maps to 400", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(&fakeSource{})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders?tenantId=evil", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_Get(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()
		src := &fakeSource{rows: []order.Order{{ID: "o1", OrderNumber: "SO-1001"}}}
		router, _ := newTestRouter(src)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders/o1", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var body struct {
			Data order.Order `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "SO-1001", body.Data.OrderNumber)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(&fakeSource{})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders/missing", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
