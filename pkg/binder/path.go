package binder

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// PathUUID reads a chi URL parameter and parses it as a UUID.
func PathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return uuid.UUID{}, fmt.Errorf("%w: %s is required", ErrInvalidPathParam, name)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("%w: %s must be a UUID", ErrInvalidPathParam, name)
	}
	return id, nil
}

// PathString reads a chi URL parameter, failing on empty values.
func PathString(r *http.Request, name string) (string, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return "", fmt.Errorf("%w: %s is required", ErrInvalidPathParam, name)
	}
	return raw, nil
}
