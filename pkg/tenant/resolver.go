package tenant

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Resolver extracts a tenant identifier from an HTTP request.
type Resolver interface {
	// Resolve extracts the tenant identifier from the request.
	// Returns empty string if no tenant identifier is found.
	Resolve(r *http.Request) (string, error)
}

// ResolverFunc adapts an ordinary function to the Resolver interface.
type ResolverFunc func(r *http.Request) (string, error)

func (f ResolverFunc) Resolve(r *http.Request) (string, error) {
	return f(r)
}

// SubdomainResolver reads the tenant identifier from the request subdomain,
// e.g. "acme" from "acme.shops.example.com".
type SubdomainResolver struct {
	// Suffix is the base domain to strip, including the leading dot
	// (e.g. ".shops.example.com"). When empty the first host label is used
	// as long as the host has at least three labels.
	Suffix string
}

// NewSubdomainResolver creates a subdomain resolver for the given base domain.
func NewSubdomainResolver(suffix string) *SubdomainResolver {
	return &SubdomainResolver{Suffix: suffix}
}

func (r *SubdomainResolver) Resolve(req *http.Request) (string, error) {
	host := req.Host
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		host = host[:idx]
	}

	if r.Suffix != "" {
		if !strings.HasSuffix(host, r.Suffix) || len(host) <= len(r.Suffix) {
			return "", nil
		}
		sub := host[:len(host)-len(r.Suffix)]
		// Nested subdomains (a.b.shops.example.com) are not tenants.
		if sub == "" || sub == "www" || strings.Contains(sub, ".") {
			return "", nil
		}
		return sub, nil
	}

	parts := strings.Split(host, ".")
	// Need subdomain.domain.tld at minimum; the bare domain is not a tenant.
	if len(parts) < 3 || parts[0] == "" || parts[0] == "www" {
		return "", nil
	}
	return parts[0], nil
}

// HeaderResolver reads the tenant identifier from an HTTP header. Intended
// for internal APIs and admin tooling where the caller names the tenant
// explicitly.
type HeaderResolver struct {
	HeaderName string
}

// NewHeaderResolver creates a header resolver, defaulting to X-Tenant-ID.
func NewHeaderResolver(headerName string) *HeaderResolver {
	if headerName == "" {
		headerName = "X-Tenant-ID"
	}
	return &HeaderResolver{HeaderName: headerName}
}

func (r *HeaderResolver) Resolve(req *http.Request) (string, error) {
	return req.Header.Get(r.HeaderName), nil
}

// PathResolver reads the tenant identifier from a URL path segment,
// e.g. position 2 matches {id} in /tenants/{id}/orders.
type PathResolver struct {
	// Position is the 1-based position of the segment in the path.
	Position int
}

// NewPathResolver creates a path resolver for the given segment position.
func NewPathResolver(position int) *PathResolver {
	return &PathResolver{Position: position}
}

func (r *PathResolver) Resolve(req *http.Request) (string, error) {
	if r.Position < 1 {
		return "", errors.New("invalid path position")
	}

	path := strings.Trim(req.URL.Path, "/")
	if path == "" {
		return "", nil
	}
	parts := strings.Split(path, "/")
	if r.Position > len(parts) {
		return "", nil
	}
	return parts[r.Position-1], nil
}

// CompositeResolver tries multiple resolvers in order, returning the first
// non-empty identifier. Lets storefront subdomains and header-driven admin
// calls share one middleware chain.
type CompositeResolver struct {
	Resolvers []Resolver
}

// NewCompositeResolver creates a composite resolver.
func NewCompositeResolver(resolvers ...Resolver) *CompositeResolver {
	return &CompositeResolver{Resolvers: resolvers}
}

func (c *CompositeResolver) Resolve(r *http.Request) (string, error) {
	var errs []error
	for _, resolver := range c.Resolvers {
		id, err := resolver.Resolve(r)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if id != "" {
			return id, nil
		}
	}
	if len(errs) > 0 {
		return "", fmt.Errorf("composite resolver errors: %w", errors.Join(errs...))
	}
	return "", nil
}
