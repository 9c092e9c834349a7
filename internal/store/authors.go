package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/quoteshelf/quoteshelf/internal/models"
)

// CreateAuthor inserts a new author and returns its id.
func (s *GORMStore) CreateAuthor(ctx context.Context, author *models.Author) (string, error) {
	return createWithID(s.db, ctx, author, func(a *models.Author, id string) { a.ID = id }, author.ID, nil)
}

// GetAuthor returns an author with their books preloaded.
func (s *GORMStore) GetAuthor(ctx context.Context, id string) (*models.Author, error) {
	return getByField[models.Author](s.db, ctx, "id", id, models.ErrAuthorNotFound, "Books")
}

// ListAuthors returns all authors with their books preloaded.
func (s *GORMStore) ListAuthors(ctx context.Context) ([]*models.Author, error) {
	return listAll[models.Author](s.db, ctx, "Books")
}

// UpdateAuthor updates the profile fields of an existing author.
func (s *GORMStore) UpdateAuthor(ctx context.Context, author *models.Author) error {
	var existing models.Author
	if err := s.db.WithContext(ctx).Where("id = ?", author.ID).First(&existing).Error; err != nil {
		return convertNotFoundError(err, models.ErrAuthorNotFound)
	}

	return s.db.WithContext(ctx).
		Model(&existing).
		Select("Name", "Image", "Bio").
		Updates(author).Error
}

// DeleteAuthor removes an author and their book associations.
func (s *GORMStore) DeleteAuthor(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var author models.Author
		if err := tx.Where("id = ?", id).First(&author).Error; err != nil {
			return convertNotFoundError(err, models.ErrAuthorNotFound)
		}

		if err := tx.Model(&author).Association("Books").Clear(); err != nil {
			return err
		}

		return tx.Delete(&author).Error
	})
}
