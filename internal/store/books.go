package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/quoteshelf/quoteshelf/internal/models"
)

// CreateBook inserts a new book. Author associations referenced by ID must
// already exist; unknown authors surface as models.ErrAuthorNotFound.
func (s *GORMStore) CreateBook(ctx context.Context, book *models.Book) (string, error) {
	if err := s.resolveBookAuthors(ctx, book); err != nil {
		return "", err
	}
	return createWithID(s.db, ctx, book, func(b *models.Book, id string) { b.ID = id }, book.ID, nil)
}

// GetBook returns a book with authors and quotes preloaded.
func (s *GORMStore) GetBook(ctx context.Context, id string) (*models.Book, error) {
	return getByField[models.Book](s.db, ctx, "id", id, models.ErrBookNotFound, "Authors", "Quotes")
}

// ListBooks returns all books with their authors preloaded.
func (s *GORMStore) ListBooks(ctx context.Context) ([]*models.Book, error) {
	return listAll[models.Book](s.db, ctx, "Authors")
}

// UpdateBook updates the bibliographic fields of an existing book and
// replaces its author set when Authors is non-empty.
func (s *GORMStore) UpdateBook(ctx context.Context, book *models.Book) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Book
		if err := tx.Where("id = ?", book.ID).First(&existing).Error; err != nil {
			return convertNotFoundError(err, models.ErrBookNotFound)
		}

		if err := tx.Model(&existing).
			Select("Title", "Sum", "PublishYear", "PublishingHouse", "PublishingTown", "Edition").
			Updates(book).Error; err != nil {
			return err
		}

		if len(book.Authors) > 0 {
			if err := s.resolveBookAuthorsTx(tx, book); err != nil {
				return err
			}
			return tx.Model(&existing).Association("Authors").Replace(book.Authors)
		}
		return nil
	})
}

// DeleteBook removes a book, its author associations, and its quotes.
func (s *GORMStore) DeleteBook(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var book models.Book
		if err := tx.Where("id = ?", id).First(&book).Error; err != nil {
			return convertNotFoundError(err, models.ErrBookNotFound)
		}

		if err := tx.Model(&book).Association("Authors").Clear(); err != nil {
			return err
		}

		if err := tx.Where("book_id = ?", id).Delete(&models.Quote{}).Error; err != nil {
			return err
		}

		return tx.Delete(&book).Error
	})
}

// resolveBookAuthors replaces the (possibly partial) author entries on the
// book with full rows fetched by ID, so Create does not upsert stale author
// fields through the association.
func (s *GORMStore) resolveBookAuthors(ctx context.Context, book *models.Book) error {
	return s.resolveBookAuthorsTx(s.db.WithContext(ctx), book)
}

func (s *GORMStore) resolveBookAuthorsTx(tx *gorm.DB, book *models.Book) error {
	for i := range book.Authors {
		var author models.Author
		if err := tx.Where("id = ?", book.Authors[i].ID).First(&author).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrAuthorNotFound
			}
			return err
		}
		book.Authors[i] = author
	}
	return nil
}
