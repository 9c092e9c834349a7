package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/quoteshelf/quoteshelf/internal/models"
)

const testSecret = "test-secret-that-is-long-enough-to-sign"

func newTestTokenService(t *testing.T, ttl time.Duration) *TokenService {
	t.Helper()

	svc, err := NewTokenService(TokenConfig{Secret: testSecret, TTL: ttl})
	if err != nil {
		t.Fatalf("NewTokenService() error = %v", err)
	}
	return svc
}

func TestNewTokenService_SecretLength(t *testing.T) {
	if _, err := NewTokenService(TokenConfig{Secret: "short"}); !errors.Is(err, ErrInvalidSecretLength) {
		t.Errorf("NewTokenService(short secret) error = %v, want ErrInvalidSecretLength", err)
	}
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := newTestTokenService(t, time.Hour)

	user := &models.User{ID: "user-1", Email: "alice@example.com", Name: "Alice"}
	token, err := svc.Issue(user)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.Subject != "user-1" {
		t.Errorf("subject = %q, want %q", claims.Subject, "user-1")
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("email = %q, want %q", claims.Email, "alice@example.com")
	}
	if claims.Name != "Alice" {
		t.Errorf("name = %q, want %q", claims.Name, "Alice")
	}

	issued := claims.IssuedAt.Time
	expires := claims.ExpiresAt.Time
	if got := expires.Sub(issued); got != time.Hour {
		t.Errorf("lifetime = %v, want %v", got, time.Hour)
	}
}

func TestTokenService_Expired(t *testing.T) {
	svc := newTestTokenService(t, -time.Minute)

	token, err := svc.Issue(&models.User{ID: "user-1", Email: "a@example.com"})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := svc.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("Verify(expired) error = %v, want ErrTokenExpired", err)
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	svc := newTestTokenService(t, time.Hour)
	other, err := NewTokenService(TokenConfig{Secret: "a-completely-different-signing-secret!!"})
	if err != nil {
		t.Fatalf("NewTokenService() error = %v", err)
	}

	token, err := svc.Issue(&models.User{ID: "user-1", Email: "a@example.com"})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := other.Verify(token); !errors.Is(err, ErrTokenSignatureInvalid) {
		t.Errorf("Verify(wrong secret) error = %v, want ErrTokenSignatureInvalid", err)
	}
}

func TestTokenService_Tampered(t *testing.T) {
	svc := newTestTokenService(t, time.Hour)

	token, err := svc.Issue(&models.User{ID: "user-1", Email: "a@example.com"})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	// Flip a character in the payload segment.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("token has %d segments, want 3", len(parts))
	}
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := svc.Verify(tampered); err == nil {
		t.Error("Verify(tampered) succeeded, want error")
	}
}

func TestTokenService_Malformed(t *testing.T) {
	svc := newTestTokenService(t, time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"not a jwt", "not-a-token"},
		{"two segments", "aaaa.bbbb"},
		{"garbage segments", "aa.bb.cc.dd"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Verify(tc.token); !errors.Is(err, ErrTokenMalformed) {
				t.Errorf("Verify(%q) error = %v, want ErrTokenMalformed", tc.token, err)
			}
		})
	}
}
