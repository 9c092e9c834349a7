package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/quoteshelf/quoteshelf/internal/models"
)

// Token verification failures. They stay distinct so the middleware can log
// the real reason, even though every one of them maps to the same 401 on
// the wire.
var (
	ErrTokenExpired          = errors.New("token has expired")
	ErrTokenSignatureInvalid = errors.New("token signature is invalid")
	ErrTokenMalformed        = errors.New("token is malformed")
	ErrTokenInvalid          = errors.New("invalid token")
	ErrTokenSigningFailed    = errors.New("failed to sign token")
	ErrInvalidSecretLength   = errors.New("token secret must be at least 32 characters")
)

// TokenConfig holds configuration for session token generation.
type TokenConfig struct {
	// Secret is the HMAC signing key. Must be at least 32 characters.
	Secret string

	// Issuer is the token issuer claim. Default: "quoteshelf"
	Issuer string

	// TTL is the token lifetime. Default: 24 hours.
	TTL time.Duration
}

// TokenService issues and verifies signed session tokens.
type TokenService struct {
	config TokenConfig
}

// NewTokenService creates a new token service with the given configuration.
func NewTokenService(config TokenConfig) (*TokenService, error) {
	if len(config.Secret) < 32 {
		return nil, ErrInvalidSecretLength
	}

	if config.Issuer == "" {
		config.Issuer = "quoteshelf"
	}
	if config.TTL == 0 {
		config.TTL = 24 * time.Hour
	}

	return &TokenService{config: config}, nil
}

// Issue signs a new token for the given user. The expiry is always
// issuedAt + TTL; callers cannot extend it.
func (s *TokenService) Issue(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TTL)),
		},
		Email: user.Email,
		Name:  user.Name,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", ErrTokenSigningFailed
	}

	return signed, nil
}

// Verify parses and validates a token string and returns its claims.
// Failures are reported as ErrTokenExpired, ErrTokenSignatureInvalid,
// ErrTokenMalformed, or ErrTokenInvalid.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignatureInvalid
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		default:
			return nil, ErrTokenInvalid
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// TTL returns the configured token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.config.TTL
}
