package auth

import (
	"context"
	"errors"

	"github.com/quoteshelf/quoteshelf/internal/models"
	"github.com/quoteshelf/quoteshelf/internal/store"
)

// BearerStrategy verifies a session token and resolves it to a live user
// row. A token that verifies but whose user has since been deleted is
// rejected the same way as an invalid one.
type BearerStrategy struct {
	tokens *TokenService
	users  store.IdentityStore
}

// NewBearerStrategy creates a bearer-token login strategy.
func NewBearerStrategy(tokens *TokenService, users store.IdentityStore) *BearerStrategy {
	return &BearerStrategy{tokens: tokens, users: users}
}

// Authenticate verifies the token and loads the user it was issued to.
// Token failures keep their distinct class for logging; a deleted user maps
// to ErrTokenInvalid; other storage failures pass through unchanged.
func (s *BearerStrategy) Authenticate(ctx context.Context, token string) (*models.User, *Claims, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.users.FindUserByID(ctx, claims.UserID())
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, nil, ErrTokenInvalid
		}
		return nil, nil, err
	}

	return user, claims, nil
}
