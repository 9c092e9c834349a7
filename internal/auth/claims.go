// Package auth implements credential verification for the API: password
// checks, signed session tokens, and the login strategies built on them.
package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the signed session claims carried by a bearer token. Subject
// holds the user id; email and name are denormalized so handlers can render
// the caller without a store round-trip.
type Claims struct {
	jwt.RegisteredClaims

	// Email is the user's login email.
	Email string `json:"email"`

	// Name is the user's display name.
	Name string `json:"name,omitempty"`
}

// UserID returns the id of the user the token was issued to.
func (c *Claims) UserID() string {
	return c.Subject
}
