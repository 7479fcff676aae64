// Package core provides the HTTP response layer shared by all services:
// a Response abstraction, typed HTTP errors and the JSON envelope used by
// the storefront and admin APIs.
package core

import "net/http"

// Response renders itself to an http.ResponseWriter.
// Implementations set headers, status code, and write the body.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// Render writes a response, falling back to a plain 500 when rendering
// itself fails mid-write.
func Render(w http.ResponseWriter, r *http.Request, resp Response) {
	if resp == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err := resp.Render(w, r); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
