// Package middleware provides the HTTP middleware for the quoteshelf API,
// including the authentication gate every request passes through.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/quoteshelf/quoteshelf/internal/auth"
	"github.com/quoteshelf/quoteshelf/internal/logger"
	"github.com/quoteshelf/quoteshelf/internal/models"
)

// Context key type for storing the authenticated identity
type contextKey string

const (
	claimsContextKey contextKey = "claims"
	userContextKey   contextKey = "user"
)

// GetClaimsFromContext retrieves verified token claims from the request
// context. Returns nil on routes that did not pass the auth gate.
func GetClaimsFromContext(ctx context.Context) *auth.Claims {
	claims, ok := ctx.Value(claimsContextKey).(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

// GetUserFromContext retrieves the authenticated user from the request
// context. Returns nil on routes that did not pass the auth gate.
func GetUserFromContext(ctx context.Context) *models.User {
	user, ok := ctx.Value(userContextKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}

// extractBearerToken extracts the token from a Bearer Authorization header.
// The scheme match is case-sensitive and the header must be exactly two
// space-separated fields; anything else is rejected.
func extractBearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}

	return parts[1], true
}

// AuthGate authenticates every request that the classifier does not mark
// public: it parses the Authorization header, verifies the token, resolves
// the user, and attaches both to the request context. Every failure mode —
// missing header, malformed header, bad signature, expired token, deleted
// user — produces the same 401 so callers cannot probe which check failed.
// The real reason is logged. Storage failures are a 500, never a 401.
func AuthGate(classifier *RouteClassifier, bearer *auth.BearerStrategy) func(http.Handler) http.Handler {
	requireAuth := RequireAuth(bearer)
	return func(next http.Handler) http.Handler {
		gated := requireAuth(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if classifier.IsPublic(r) {
				next.ServeHTTP(w, r)
				return
			}
			gated.ServeHTTP(w, r)
		})
	}
}

// RequireAuth is the per-route form of the gate, for routes that sit on an
// exempt prefix but still need a caller identity (logout, for instance).
func RequireAuth(bearer *auth.BearerStrategy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := extractBearerToken(r)
			if !ok {
				logger.Debug("request rejected: no usable bearer credentials",
					"method", r.Method,
					"path", r.URL.Path,
				)
				writeUnauthorized(w)
				return
			}

			user, claims, err := bearer.Authenticate(r.Context(), token)
			if err != nil {
				if isTokenError(err) {
					logger.Debug("request rejected: token verification failed",
						"method", r.Method,
						"path", r.URL.Path,
						"reason", err.Error(),
					)
					writeUnauthorized(w)
					return
				}

				logger.Error("identity lookup failed",
					"method", r.Method,
					"path", r.URL.Path,
					"error", err,
				)
				writeStorageError(w)
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			ctx = context.WithValue(ctx, userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// isTokenError reports whether err is one of the credential failure classes
// that must collapse into the uniform 401.
func isTokenError(err error) bool {
	return errors.Is(err, auth.ErrTokenExpired) ||
		errors.Is(err, auth.ErrTokenSignatureInvalid) ||
		errors.Is(err, auth.ErrTokenMalformed) ||
		errors.Is(err, auth.ErrTokenInvalid)
}

// problem mirrors the RFC 7807 shape the handlers package writes. The gate
// writes its own responses so the middleware package does not depend on the
// handlers package.
type problem struct {
	Type   string `json:"type,omitempty"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(&problem{
		Type:   "about:blank",
		Title:  title,
		Status: status,
		Detail: detail,
	})
}

func writeUnauthorized(w http.ResponseWriter) {
	writeProblem(w, http.StatusUnauthorized, "Unauthorized", "Authentication required")
}

func writeStorageError(w http.ResponseWriter) {
	writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
}
