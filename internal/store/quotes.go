package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/quoteshelf/quoteshelf/internal/models"
)

// CreateQuote inserts a new quote. The referenced book, uploader, and
// categories must already exist.
func (s *GORMStore) CreateQuote(ctx context.Context, quote *models.Quote) (string, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", quote.BookID).First(&models.Book{}).Error; err != nil {
			return convertNotFoundError(err, models.ErrBookNotFound)
		}
		if err := tx.Where("id = ?", quote.UploaderID).First(&models.User{}).Error; err != nil {
			return convertNotFoundError(err, models.ErrUserNotFound)
		}
		for i := range quote.Categories {
			var category models.Category
			if err := tx.Where("id = ?", quote.Categories[i].ID).First(&category).Error; err != nil {
				return convertNotFoundError(err, models.ErrCategoryNotFound)
			}
			quote.Categories[i] = category
		}

		_, err := createWithID(tx, ctx, quote, func(q *models.Quote, id string) { q.ID = id }, quote.ID, nil)
		return err
	})
	if err != nil {
		return "", err
	}
	return quote.ID, nil
}

// GetQuote returns a quote with its book, uploader, and categories preloaded,
// plus its upvote count.
func (s *GORMStore) GetQuote(ctx context.Context, id string) (*models.Quote, error) {
	quote, err := getByField[models.Quote](s.db, ctx, "id", id, models.ErrQuoteNotFound, "Book", "Uploader", "Categories")
	if err != nil {
		return nil, err
	}
	count := s.db.WithContext(ctx).Model(quote).Association("Upvoters").Count()
	quote.UpvoteCount = count
	return quote, nil
}

// ListQuotes returns all quotes with categories preloaded and upvote counts
// filled in.
func (s *GORMStore) ListQuotes(ctx context.Context) ([]*models.Quote, error) {
	quotes, err := listAll[models.Quote](s.db, ctx, "Categories")
	if err != nil {
		return nil, err
	}
	for _, q := range quotes {
		q.UpvoteCount = s.db.WithContext(ctx).Model(q).Association("Upvoters").Count()
	}
	return quotes, nil
}

// UpdateQuote updates the text of an existing quote and replaces its
// category set when Categories is non-empty. The book reference is fixed
// at creation.
func (s *GORMStore) UpdateQuote(ctx context.Context, quote *models.Quote) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Quote
		if err := tx.Where("id = ?", quote.ID).First(&existing).Error; err != nil {
			return convertNotFoundError(err, models.ErrQuoteNotFound)
		}

		if err := tx.Model(&existing).Select("Text").Updates(quote).Error; err != nil {
			return err
		}

		if len(quote.Categories) > 0 {
			for i := range quote.Categories {
				var category models.Category
				if err := tx.Where("id = ?", quote.Categories[i].ID).First(&category).Error; err != nil {
					return convertNotFoundError(err, models.ErrCategoryNotFound)
				}
				quote.Categories[i] = category
			}
			return tx.Model(&existing).Association("Categories").Replace(quote.Categories)
		}
		return nil
	})
}

// DeleteQuote removes a quote and its category and upvote associations.
func (s *GORMStore) DeleteQuote(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var quote models.Quote
		if err := tx.Where("id = ?", id).First(&quote).Error; err != nil {
			return convertNotFoundError(err, models.ErrQuoteNotFound)
		}

		if err := tx.Model(&quote).Association("Categories").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&quote).Association("Upvoters").Clear(); err != nil {
			return err
		}

		return tx.Delete(&quote).Error
	})
}

// UpvoteQuote records an upvote by userID on quoteID. Upvoting the same
// quote twice is a no-op, not an error.
func (s *GORMStore) UpvoteQuote(ctx context.Context, quoteID, userID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var quote models.Quote
		if err := tx.Where("id = ?", quoteID).First(&quote).Error; err != nil {
			return convertNotFoundError(err, models.ErrQuoteNotFound)
		}

		var user models.User
		if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
			return convertNotFoundError(err, models.ErrUserNotFound)
		}

		if err := tx.Model(&quote).Association("Upvoters").Append(&user); err != nil {
			if isUniqueConstraintError(err) {
				return nil
			}
			return err
		}
		return nil
	})
}
