package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/quoteshelf/quoteshelf/internal/models"
)

// CreateCategory inserts a new category. Tags are unique; a collision
// surfaces as models.ErrDuplicateTag.
func (s *GORMStore) CreateCategory(ctx context.Context, category *models.Category) error {
	if err := s.db.WithContext(ctx).Create(category).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.ErrDuplicateTag
		}
		return err
	}
	return nil
}

// GetCategory returns a category by its numeric id.
func (s *GORMStore) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	return getByField[models.Category](s.db, ctx, "id", id, models.ErrCategoryNotFound)
}

// ListCategories returns all categories.
func (s *GORMStore) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return listAll[models.Category](s.db, ctx)
}

// UpdateCategory updates the tag and description of an existing category.
// Moving to a tag another category already holds surfaces as
// models.ErrDuplicateTag.
func (s *GORMStore) UpdateCategory(ctx context.Context, category *models.Category) error {
	var existing models.Category
	if err := s.db.WithContext(ctx).Where("id = ?", category.ID).First(&existing).Error; err != nil {
		return convertNotFoundError(err, models.ErrCategoryNotFound)
	}

	err := s.db.WithContext(ctx).
		Model(&existing).
		Select("Tag", "Description").
		Updates(category).Error
	if err != nil && isUniqueConstraintError(err) {
		return models.ErrDuplicateTag
	}
	return err
}

// DeleteCategory removes a category and its quote associations.
func (s *GORMStore) DeleteCategory(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.Where("id = ?", id).First(&category).Error; err != nil {
			return convertNotFoundError(err, models.ErrCategoryNotFound)
		}

		if err := tx.Model(&category).Association("Quotes").Clear(); err != nil {
			return err
		}

		return tx.Delete(&category).Error
	})
}
