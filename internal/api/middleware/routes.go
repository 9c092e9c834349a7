package middleware

import (
	"net/http"
	"strings"
)

// RouteClassifier decides at request time whether a route is public or
// gated. The table is built once at startup and never mutated afterwards,
// so lookups need no locking.
type RouteClassifier struct {
	exempt   map[string]bool
	prefixes []string
}

// routeKey builds the exemption table key for a method and path.
func routeKey(method, path string) string {
	normalized := strings.TrimSuffix(path, "/")
	if normalized == "" {
		normalized = "/"
	}
	return method + " " + normalized
}

// NewRouteClassifier builds a classifier. Everything is gated by default;
// Exempt and ExemptPrefix punch holes for public routes.
func NewRouteClassifier() *RouteClassifier {
	return &RouteClassifier{
		exempt: make(map[string]bool),
	}
}

// Exempt marks a single method + path as public.
func (c *RouteClassifier) Exempt(method, path string) *RouteClassifier {
	c.exempt[routeKey(method, path)] = true
	return c
}

// ExemptPrefix marks every route under the given path prefix as public,
// regardless of method. Used for the login surface itself: callers cannot
// be asked for a token on the routes that hand tokens out.
func (c *RouteClassifier) ExemptPrefix(prefix string) *RouteClassifier {
	c.prefixes = append(c.prefixes, prefix)
	return c
}

// IsPublic reports whether the request may pass the gate without
// credentials.
func (c *RouteClassifier) IsPublic(r *http.Request) bool {
	if c.exempt[routeKey(r.Method, r.URL.Path)] {
		return true
	}
	for _, prefix := range c.prefixes {
		if strings.HasPrefix(r.URL.Path, prefix) {
			return true
		}
	}
	return false
}
