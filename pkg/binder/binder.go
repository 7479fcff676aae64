// Package binder parses HTTP request payloads into typed values.
// Services combine it with the core response layer: a binding failure maps
// to a 400/415 in the JSON error envelope.
package binder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
)

var (
	ErrMissingContentType   = errors.New("missing content type")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrInvalidJSON          = errors.New("invalid JSON")
	ErrInvalidPathParam     = errors.New("invalid path parameter")
)

// maxJSONBody caps request bodies at 1 MiB; storefront API payloads are
// small and anything bigger is abuse.
const maxJSONBody = 1 << 20

// JSON decodes a strict JSON body into v: content type must be
// application/json, unknown fields are rejected, and trailing garbage after
// the document is an error.
func JSON(r *http.Request, v any) error {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return fmt.Errorf("%w: expected application/json", ErrMissingContentType)
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != "application/json" {
		return fmt.Errorf("%w: got %q, expected application/json", ErrUnsupportedMediaType, contentType)
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", ErrInvalidJSON)
		}
		return errors.Join(ErrInvalidJSON, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: unexpected data after JSON document", ErrInvalidJSON)
	}
	return nil
}
