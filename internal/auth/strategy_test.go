package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/quoteshelf/quoteshelf/internal/models"
)

// memoryIdentityStore is an in-memory IdentityStore for strategy tests.
type memoryIdentityStore struct {
	mu      sync.Mutex
	byEmail map[string]*models.User
	failing error
}

func newMemoryIdentityStore() *memoryIdentityStore {
	return &memoryIdentityStore{byEmail: make(map[string]*models.User)}
}

func (m *memoryIdentityStore) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	if m.failing != nil {
		return nil, m.failing
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.byEmail[models.NormalizeEmail(email)]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	return user, nil
}

func (m *memoryIdentityStore) FindUserByID(_ context.Context, id string) (*models.User, error) {
	if m.failing != nil {
		return nil, m.failing
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (m *memoryIdentityStore) CreateUser(_ context.Context, user *models.User) error {
	if m.failing != nil {
		return m.failing
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	email := models.NormalizeEmail(user.Email)
	if _, exists := m.byEmail[email]; exists {
		return models.ErrDuplicateEmail
	}
	user.Email = email
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	m.byEmail[email] = user
	return nil
}

func (m *memoryIdentityStore) FindOrCreateUserByEmail(ctx context.Context, user *models.User) (*models.User, error) {
	existing, err := m.FindUserByEmail(ctx, user.Email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, models.ErrUserNotFound) {
		return nil, err
	}
	if err := m.CreateUser(ctx, user); err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) {
			return m.FindUserByEmail(ctx, user.Email)
		}
		return nil, err
	}
	return user, nil
}

func seedIdentity(t *testing.T, store *memoryIdentityStore, email, password string) *models.User {
	t.Helper()

	hash, err := models.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	user := &models.User{Email: email, Name: "Seeded", PasswordHash: hash}
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	return user
}

func TestLocalStrategy_Authenticate(t *testing.T) {
	store := newMemoryIdentityStore()
	user := seedIdentity(t, store, "alice@example.com", "correct-horse")
	strategy := NewLocalStrategy(store)
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		got, err := strategy.Authenticate(ctx, "alice@example.com", "correct-horse")
		if err != nil {
			t.Fatalf("Authenticate() error = %v", err)
		}
		if got.ID != user.ID {
			t.Errorf("user id = %q, want %q", got.ID, user.ID)
		}
	})

	t.Run("case-insensitive email", func(t *testing.T) {
		if _, err := strategy.Authenticate(ctx, "ALICE@example.com", "correct-horse"); err != nil {
			t.Errorf("Authenticate() error = %v", err)
		}
	})

	// Unknown email and wrong password must be indistinguishable.
	t.Run("wrong password", func(t *testing.T) {
		if _, err := strategy.Authenticate(ctx, "alice@example.com", "wrong"); !errors.Is(err, models.ErrInvalidCredentials) {
			t.Errorf("Authenticate() error = %v, want ErrInvalidCredentials", err)
		}
	})
	t.Run("unknown email", func(t *testing.T) {
		if _, err := strategy.Authenticate(ctx, "nobody@example.com", "correct-horse"); !errors.Is(err, models.ErrInvalidCredentials) {
			t.Errorf("Authenticate() error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("storage failure passes through", func(t *testing.T) {
		boom := errors.New("connection refused")
		store.failing = boom
		defer func() { store.failing = nil }()

		_, err := strategy.Authenticate(ctx, "alice@example.com", "correct-horse")
		if !errors.Is(err, boom) {
			t.Errorf("Authenticate() error = %v, want the storage error", err)
		}
		if errors.Is(err, models.ErrInvalidCredentials) {
			t.Error("storage failure was coerced to invalid credentials")
		}
	})
}

func TestBearerStrategy_Authenticate(t *testing.T) {
	store := newMemoryIdentityStore()
	user := seedIdentity(t, store, "bob@example.com", "password123")

	tokens, err := NewTokenService(TokenConfig{Secret: testSecret, TTL: time.Hour})
	if err != nil {
		t.Fatalf("NewTokenService() error = %v", err)
	}
	strategy := NewBearerStrategy(tokens, store)
	ctx := context.Background()

	token, err := tokens.Issue(user)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	t.Run("valid token", func(t *testing.T) {
		got, claims, err := strategy.Authenticate(ctx, token)
		if err != nil {
			t.Fatalf("Authenticate() error = %v", err)
		}
		if got.ID != user.ID {
			t.Errorf("user id = %q, want %q", got.ID, user.ID)
		}
		if claims.Email != "bob@example.com" {
			t.Errorf("claims email = %q, want %q", claims.Email, "bob@example.com")
		}
	})

	t.Run("malformed token", func(t *testing.T) {
		if _, _, err := strategy.Authenticate(ctx, "garbage"); !errors.Is(err, ErrTokenMalformed) {
			t.Errorf("Authenticate() error = %v, want ErrTokenMalformed", err)
		}
	})

	t.Run("deleted user", func(t *testing.T) {
		ghost := &models.User{ID: "ghost-id", Email: "ghost@example.com"}
		ghostToken, err := tokens.Issue(ghost)
		if err != nil {
			t.Fatalf("Issue() error = %v", err)
		}
		if _, _, err := strategy.Authenticate(ctx, ghostToken); !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("Authenticate() error = %v, want ErrTokenInvalid", err)
		}
	})
}

func TestOAuthStrategy_Authenticate(t *testing.T) {
	store := newMemoryIdentityStore()
	strategy := NewOAuthStrategy(store)
	ctx := context.Background()

	t.Run("creates on first login", func(t *testing.T) {
		user, err := strategy.Authenticate(ctx, Profile{Email: "carol@example.com", DisplayName: "Carol"})
		if err != nil {
			t.Fatalf("Authenticate() error = %v", err)
		}
		if user.ID == "" {
			t.Error("created user has no id")
		}
		if user.Name != "Carol" {
			t.Errorf("name = %q, want %q", user.Name, "Carol")
		}
		if user.PasswordHash == "" {
			t.Error("created user has no placeholder password hash")
		}
		// The placeholder must never match an empty or guessable password.
		if models.CheckPassword("", user.PasswordHash) {
			t.Error("empty password matches the placeholder hash")
		}
	})

	t.Run("returns existing on later logins", func(t *testing.T) {
		first, err := strategy.Authenticate(ctx, Profile{Email: "dave@example.com"})
		if err != nil {
			t.Fatalf("Authenticate() error = %v", err)
		}
		second, err := strategy.Authenticate(ctx, Profile{Email: "dave@example.com"})
		if err != nil {
			t.Fatalf("Authenticate() second call error = %v", err)
		}
		if second.ID != first.ID {
			t.Errorf("second login resolved to %q, first to %q", second.ID, first.ID)
		}
	})

	t.Run("missing email rejected", func(t *testing.T) {
		if _, err := strategy.Authenticate(ctx, Profile{}); !errors.Is(err, models.ErrInvalidCredentials) {
			t.Errorf("Authenticate() error = %v, want ErrInvalidCredentials", err)
		}
	})
}
