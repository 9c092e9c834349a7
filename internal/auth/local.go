package auth

import (
	"context"
	"errors"

	"github.com/quoteshelf/quoteshelf/internal/models"
	"github.com/quoteshelf/quoteshelf/internal/store"
)

// LocalStrategy verifies email and password against the identity store.
type LocalStrategy struct {
	users store.IdentityStore
}

// NewLocalStrategy creates a local (email + password) login strategy.
func NewLocalStrategy(users store.IdentityStore) *LocalStrategy {
	return &LocalStrategy{users: users}
}

// Authenticate resolves the email and checks the password. An unknown email
// and a wrong password both return models.ErrInvalidCredentials so callers
// cannot tell which one failed; storage failures pass through unchanged.
func (s *LocalStrategy) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}

	if !models.CheckPassword(password, user.PasswordHash) {
		return nil, models.ErrInvalidCredentials
	}

	return user, nil
}
