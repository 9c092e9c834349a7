// Package store persists catalog entities and user accounts through GORM,
// backed by SQLite (default) or PostgreSQL.
package store

import (
	"context"

	"github.com/quoteshelf/quoteshelf/internal/models"
)

// IdentityStore is the narrow surface the authentication layer consumes.
// Credential strategies look users up and create them through this interface
// only, so tests can substitute an in-memory implementation.
type IdentityStore interface {
	// FindUserByEmail returns the user with the given (case-insensitive)
	// email, or models.ErrUserNotFound.
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)

	// FindUserByID returns the user with the given id, or models.ErrUserNotFound.
	FindUserByID(ctx context.Context, id string) (*models.User, error)

	// CreateUser inserts a new user. Returns models.ErrDuplicateEmail if a
	// concurrent create already landed the same email; callers recover by
	// re-fetching.
	CreateUser(ctx context.Context, user *models.User) error

	// FindOrCreateUserByEmail resolves an email to an existing user or
	// creates one from the template. Safe under concurrent first logins for
	// the same email: exactly one row wins, every caller gets that row.
	FindOrCreateUserByEmail(ctx context.Context, user *models.User) (*models.User, error)
}

// UserStore extends IdentityStore with account management operations.
type UserStore interface {
	IdentityStore

	ListUsers(ctx context.Context) ([]*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id string) error
}

// CatalogStore covers the quotes catalog entities.
type CatalogStore interface {
	CreateAuthor(ctx context.Context, author *models.Author) (string, error)
	GetAuthor(ctx context.Context, id string) (*models.Author, error)
	ListAuthors(ctx context.Context) ([]*models.Author, error)
	UpdateAuthor(ctx context.Context, author *models.Author) error
	DeleteAuthor(ctx context.Context, id string) error

	CreateBook(ctx context.Context, book *models.Book) (string, error)
	GetBook(ctx context.Context, id string) (*models.Book, error)
	ListBooks(ctx context.Context) ([]*models.Book, error)
	UpdateBook(ctx context.Context, book *models.Book) error
	DeleteBook(ctx context.Context, id string) error

	CreateQuote(ctx context.Context, quote *models.Quote) (string, error)
	GetQuote(ctx context.Context, id string) (*models.Quote, error)
	ListQuotes(ctx context.Context) ([]*models.Quote, error)
	UpdateQuote(ctx context.Context, quote *models.Quote) error
	DeleteQuote(ctx context.Context, id string) error
	UpvoteQuote(ctx context.Context, quoteID, userID string) error

	CreateCategory(ctx context.Context, category *models.Category) error
	GetCategory(ctx context.Context, id uint) (*models.Category, error)
	ListCategories(ctx context.Context) ([]*models.Category, error)
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id uint) error
}

// Store is the full persistence surface of the server.
type Store interface {
	UserStore
	CatalogStore
}
