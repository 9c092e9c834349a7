package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quoteshelf/quoteshelf/internal/models"
)

// FindUserByEmail looks a user up by normalized email.
func (s *GORMStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return getByField[models.User](s.db, ctx, "email", models.NormalizeEmail(email), models.ErrUserNotFound)
}

// FindUserByID looks a user up by id.
func (s *GORMStore) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	return getByField[models.User](s.db, ctx, "id", id, models.ErrUserNotFound)
}

// CreateUser inserts a new user. The email is normalized before the insert;
// a unique-index collision surfaces as models.ErrDuplicateEmail so callers
// can distinguish the duplicate from other storage failures.
func (s *GORMStore) CreateUser(ctx context.Context, user *models.User) error {
	user.Email = models.NormalizeEmail(user.Email)
	user.CreatedAt = time.Now()
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// FindOrCreateUserByEmail resolves the template's email to an existing user,
// creating one when absent. The lookup-then-create is not atomic, so two
// concurrent first logins can both miss the lookup and race the insert; the
// unique index on email lets exactly one insert win, and the loser recovers
// by re-fetching the winner's row. Both callers end up with the same user.
func (s *GORMStore) FindOrCreateUserByEmail(ctx context.Context, user *models.User) (*models.User, error) {
	email := models.NormalizeEmail(user.Email)

	existing, err := s.FindUserByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, models.ErrUserNotFound) {
		return nil, err
	}

	if err := s.CreateUser(ctx, user); err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) {
			// Lost the race: a concurrent create landed this email first.
			return s.FindUserByEmail(ctx, email)
		}
		return nil, err
	}
	return user, nil
}

// ListUsers returns all users.
func (s *GORMStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	return listAll[models.User](s.db, ctx)
}

// UpdateUser updates the mutable profile fields of an existing user.
// Identity fields (id, email, password hash) are not touched here.
func (s *GORMStore) UpdateUser(ctx context.Context, user *models.User) error {
	var existing models.User
	if err := s.db.WithContext(ctx).Where("id = ?", user.ID).First(&existing).Error; err != nil {
		return convertNotFoundError(err, models.ErrUserNotFound)
	}

	return s.db.WithContext(ctx).
		Model(&existing).
		Select("Name", "Newsletter", "NewsletterFrequency").
		Updates(user).Error
}

// DeleteUser removes a user and their quote associations.
func (s *GORMStore) DeleteUser(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("id = ?", id).First(&user).Error; err != nil {
			return convertNotFoundError(err, models.ErrUserNotFound)
		}

		if err := tx.Model(&user).Association("Quotes").Clear(); err != nil {
			return err
		}

		return tx.Delete(&user).Error
	})
}
