package query

import (
	"net/http"
	"net/url"
)

// Params is the raw key/value bag taken from an HTTP query string.
// Multi-value parameters collapse to their first value.
type Params map[string]string

// Reserved parameter names that drive the builder itself or the UI and are
// never treated as entity filters.
const (
	ParamSearchTerm = "searchTerm"
	ParamQ          = "q"
	ParamSort       = "sort"
	ParamLimit      = "limit"
	ParamPage       = "page"
	ParamFields     = "fields"
)

// reservedParams also covers UI-only toggles the storefront apps append to
// list URLs; they carry no filtering semantics on the server.
var reservedParams = map[string]struct{}{
	ParamSearchTerm: {},
	ParamQ:          {},
	ParamSort:       {},
	ParamLimit:      {},
	ParamPage:       {},
	ParamFields:     {},
	"enabled":       {},
	"newest":        {},
	"popular":       {},
	"featured":      {},
}

// IsReserved reports whether the parameter name is reserved and therefore
// excluded from the filter phase.
func IsReserved(name string) bool {
	_, ok := reservedParams[name]
	return ok
}

// ParamsFromValues flattens url.Values into Params, keeping the first value
// of each parameter.
func ParamsFromValues(values url.Values) Params {
	params := make(Params, len(values))
	for key, vals := range values {
		if len(vals) > 0 {
			params[key] = vals[0]
		}
	}
	return params
}

// ParamsFromRequest extracts Params from the request's query string.
func ParamsFromRequest(r *http.Request) Params {
	return ParamsFromValues(r.URL.Query())
}

// SearchTerm returns the free-text search term, preferring "searchTerm" over
// the short "q" alias. Empty string means no search was requested.
func (p Params) SearchTerm() string {
	if term, ok := p[ParamSearchTerm]; ok && term != "" {
		return term
	}
	return p[ParamQ]
}
