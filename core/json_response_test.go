package core_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srana86/frameX-sub009/core"
)

func renderJSON(t *testing.T, resp core.Response) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, resp.Render(rec, req))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestJSON(t *testing.T) {
	t.Parallel()

	rec, body := renderJSON(t, core.JSON(map[string]string{"name": "acme"}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, map[string]any{"name": "acme"}, body["data"])
	assert.NotContains(t, body, "error")
}

func TestJSONWithMeta(t *testing.T) {
	t.Parallel()

	meta := map[string]any{"page": 2, "total": 42}
	_, body := renderJSON(t, core.JSONWithMeta([]string{"a", "b"}, meta))

	assert.Equal(t, []any{"a", "b"}, body["data"])
	assert.Equal(t, float64(2), body["meta"].(map[string]any)["page"])
}

func TestJSONStatus(t *testing.T) {
	t.Parallel()

	rec, body := renderJSON(t, core.JSONStatus(http.StatusCreated, map[string]string{"id": "1"}))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "1", body["data"].(map[string]any)["id"])
}

func TestJSONError(t *testing.T) {
	t.Parallel()

	t.Run("http error", func(t *testing.T) {
		t.Parallel()
		rec, body := renderJSON(t, core.JSONError(core.ErrNotFound))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		errBody := body["error"].(map[string]any)
		assert.Equal(t, "not_found", errBody["code"])
	})

	t.Run("wrapped http error", func(t *testing.T) {
		t.Parallel()
		wrapped := errors.Join(core.ErrPaymentRequired, errors.New("subscription lapsed"))
		rec, body := renderJSON(t, core.JSONError(wrapped))

		assert.Equal(t, http.StatusPaymentRequired, rec.Code)
		assert.Equal(t, "payment_required", body["error"].(map[string]any)["code"])
	})

	t.Run("validation error", func(t *testing.T) {
		t.Parallel()
		valErr := core.ValidationError{}
		valErr.Add("email", "is required")
		valErr.Add("email", "must be valid")

		rec, body := renderJSON(t, core.JSONError(valErr))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		errBody := body["error"].(map[string]any)
		assert.Equal(t, "validation_error", errBody["code"])
		details := errBody["details"].(map[string]any)
		assert.Len(t, details["email"], 2)
	})

	t.Run("unknown error hides the message", func(t *testing.T) {
		t.Parallel()
		rec, body := renderJSON(t, core.JSONError(errors.New("pg: connection refused")))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		errBody := body["error"].(map[string]any)
		assert.Equal(t, "internal_server_error", errBody["code"])
		assert.NotContains(t, errBody["message"], "connection refused")
	})
}

func TestRender(t *testing.T) {
	t.Parallel()

	t.Run("nil response writes 204", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		core.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil), nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("renders response", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		core.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil), core.JSON("ok"))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
