package binder_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srana86/frameX-sub009/pkg/binder"
)

type purchaseRequest struct {
	PlanID string `json:"plan_id"`
}

func jsonRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestJSON(t *testing.T) {
	t.Parallel()

	t.Run("decodes valid body", func(t *testing.T) {
		t.Parallel()
		var req purchaseRequest
		err := binder.JSON(jsonRequest(`{"plan_id":"growth_12m"}`), &req)
		require.NoError(t, err)
		assert.Equal(t, "growth_12m", req.PlanID)
	})

	t.Run("content type with charset", func(t *testing.T) {
		t.Parallel()
		r := jsonRequest(`{"plan_id":"growth_1m"}`)
		r.Header.Set("Content-Type", "application/json; charset=utf-8")

		var req purchaseRequest
		assert.NoError(t, binder.JSON(r, &req))
	})

	t.Run("missing content type", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
		var req purchaseRequest
		assert.ErrorIs(t, binder.JSON(r, &req), binder.ErrMissingContentType)
	})

	t.Run("wrong content type", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
		r.Header.Set("Content-Type", "text/plain")
		var req purchaseRequest
		assert.ErrorIs(t, binder.JSON(r, &req), binder.ErrUnsupportedMediaType)
	})

	t.Run("unknown fields rejected", func(t *testing.T) {
		t.Parallel()
		var req purchaseRequest
		err := binder.JSON(jsonRequest(`{"plan_id":"x","admin":true}`), &req)
		assert.ErrorIs(t, err, binder.ErrInvalidJSON)
	})

	t.Run("empty body", func(t *testing.T) {
		t.Parallel()
		var req purchaseRequest
		assert.ErrorIs(t, binder.JSON(jsonRequest(``), &req), binder.ErrInvalidJSON)
	})

	t.Run("trailing garbage", func(t *testing.T) {
		t.Parallel()
		var req purchaseRequest
		err := binder.JSON(jsonRequest(`{"plan_id":"x"}{"again":1}`), &req)
		assert.ErrorIs(t, err, binder.ErrInvalidJSON)
	})
}

func TestPathUUID(t *testing.T) {
	t.Parallel()

	withParam := func(name, value string) *http.Request {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add(name, value)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		want := uuid.New()
		got, err := binder.PathUUID(withParam("id", want.String()), "id")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()
		_, err := binder.PathUUID(httptest.NewRequest(http.MethodGet, "/", nil), "id")
		assert.ErrorIs(t, err, binder.ErrInvalidPathParam)
	})

	t.Run("malformed", func(t *testing.T) {
		t.Parallel()
		_, err := binder.PathUUID(withParam("id", "not-a-uuid"), "id")
		assert.ErrorIs(t, err, binder.ErrInvalidPathParam)
	})
}

func TestPathString(t *testing.T) {
	t.Parallel()

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("slug", "acme")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	got, err := binder.PathString(req, "slug")
	require.NoError(t, err)
	assert.Equal(t, "acme", got)

	_, err = binder.PathString(httptest.NewRequest(http.MethodGet, "/", nil), "slug")
	assert.ErrorIs(t, err, binder.ErrInvalidPathParam)
}
