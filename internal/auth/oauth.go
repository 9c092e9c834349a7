package auth

import (
	"context"
	"fmt"

	"github.com/quoteshelf/quoteshelf/internal/models"
	"github.com/quoteshelf/quoteshelf/internal/store"
)

// Profile is the subset of an external provider's user info the catalog
// cares about.
type Profile struct {
	// Email is the verified email reported by the provider.
	Email string

	// DisplayName is the provider's display name for the user, if any.
	DisplayName string
}

// OAuthStrategy resolves an external provider profile to a local user,
// creating the account on first login. Accounts created this way get a
// random placeholder password so the local strategy can never match them
// with a guessed empty password.
type OAuthStrategy struct {
	users store.IdentityStore
}

// NewOAuthStrategy creates an OAuth login strategy.
func NewOAuthStrategy(users store.IdentityStore) *OAuthStrategy {
	return &OAuthStrategy{users: users}
}

// Authenticate finds or creates the user for the given provider profile.
// Concurrent first logins for the same email are safe: the store's unique
// email index lets one create win and every caller gets the winning row.
func (s *OAuthStrategy) Authenticate(ctx context.Context, profile Profile) (*models.User, error) {
	if profile.Email == "" {
		return nil, models.ErrInvalidCredentials
	}

	placeholder, err := models.GeneratePlaceholderPassword()
	if err != nil {
		return nil, fmt.Errorf("generating placeholder password: %w", err)
	}
	hash, err := models.HashPassword(placeholder)
	if err != nil {
		return nil, fmt.Errorf("hashing placeholder password: %w", err)
	}

	template := &models.User{
		Email:               profile.Email,
		Name:                profile.DisplayName,
		PasswordHash:        hash,
		NewsletterFrequency: models.NewsletterOnUpload,
	}

	return s.users.FindOrCreateUserByEmail(ctx, template)
}
