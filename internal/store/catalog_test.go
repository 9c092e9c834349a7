package store

import (
	"context"
	"errors"
	"testing"

	"github.com/quoteshelf/quoteshelf/internal/models"
)

func seedAuthor(t *testing.T, s *GORMStore, name string) *models.Author {
	t.Helper()

	author := &models.Author{Name: name}
	if _, err := s.CreateAuthor(context.Background(), author); err != nil {
		t.Fatalf("CreateAuthor(%q) error = %v", name, err)
	}
	return author
}

func seedBook(t *testing.T, s *GORMStore, title string, authors ...models.Author) *models.Book {
	t.Helper()

	book := &models.Book{Title: title, Authors: authors}
	if _, err := s.CreateBook(context.Background(), book); err != nil {
		t.Fatalf("CreateBook(%q) error = %v", title, err)
	}
	return book
}

func seedQuote(t *testing.T, s *GORMStore, text, bookID, uploaderID string) *models.Quote {
	t.Helper()

	quote := &models.Quote{Text: text, BookID: bookID, UploaderID: uploaderID}
	if _, err := s.CreateQuote(context.Background(), quote); err != nil {
		t.Fatalf("CreateQuote(%q) error = %v", text, err)
	}
	return quote
}

func TestAuthorCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	author := seedAuthor(t, s, "Ursula K. Le Guin")

	found, err := s.GetAuthor(ctx, author.ID)
	if err != nil {
		t.Fatalf("GetAuthor() error = %v", err)
	}
	if found.Name != "Ursula K. Le Guin" {
		t.Errorf("name = %q, want %q", found.Name, "Ursula K. Le Guin")
	}

	author.Bio = "Science fiction and fantasy author."
	if err := s.UpdateAuthor(ctx, author); err != nil {
		t.Fatalf("UpdateAuthor() error = %v", err)
	}
	found, _ = s.GetAuthor(ctx, author.ID)
	if found.Bio != author.Bio {
		t.Errorf("bio = %q, want %q", found.Bio, author.Bio)
	}

	if err := s.DeleteAuthor(ctx, author.ID); err != nil {
		t.Fatalf("DeleteAuthor() error = %v", err)
	}
	if _, err := s.GetAuthor(ctx, author.ID); !errors.Is(err, models.ErrAuthorNotFound) {
		t.Errorf("GetAuthor(deleted) error = %v, want ErrAuthorNotFound", err)
	}
}

func TestBookCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	author := seedAuthor(t, s, "Italo Calvino")
	book := seedBook(t, s, "Invisible Cities", *author)

	found, err := s.GetBook(ctx, book.ID)
	if err != nil {
		t.Fatalf("GetBook() error = %v", err)
	}
	if len(found.Authors) != 1 || found.Authors[0].ID != author.ID {
		t.Errorf("authors = %+v, want exactly %q", found.Authors, author.ID)
	}

	t.Run("unknown author rejected", func(t *testing.T) {
		bad := &models.Book{Title: "Orphan", Authors: []models.Author{{ID: "missing-id"}}}
		if _, err := s.CreateBook(ctx, bad); !errors.Is(err, models.ErrAuthorNotFound) {
			t.Errorf("CreateBook() error = %v, want ErrAuthorNotFound", err)
		}
	})

	year := 1972
	book.PublishYear = &year
	book.PublishingHouse = "Einaudi"
	if err := s.UpdateBook(ctx, book); err != nil {
		t.Fatalf("UpdateBook() error = %v", err)
	}
	found, _ = s.GetBook(ctx, book.ID)
	if found.PublishYear == nil || *found.PublishYear != 1972 {
		t.Errorf("publish year = %v, want 1972", found.PublishYear)
	}

	if err := s.DeleteBook(ctx, book.ID); err != nil {
		t.Fatalf("DeleteBook() error = %v", err)
	}
	if _, err := s.GetBook(ctx, book.ID); !errors.Is(err, models.ErrBookNotFound) {
		t.Errorf("GetBook(deleted) error = %v, want ErrBookNotFound", err)
	}
}

func TestQuoteLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	uploader := newTestUser("uploader@example.com")
	if err := s.CreateUser(ctx, uploader); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	author := seedAuthor(t, s, "James Baldwin")
	book := seedBook(t, s, "The Fire Next Time", *author)
	quote := seedQuote(t, s, "Not everything that is faced can be changed.", book.ID, uploader.ID)

	t.Run("get preloads relations", func(t *testing.T) {
		found, err := s.GetQuote(ctx, quote.ID)
		if err != nil {
			t.Fatalf("GetQuote() error = %v", err)
		}
		if found.Book == nil || found.Book.ID != book.ID {
			t.Error("GetQuote() did not preload the book")
		}
		if found.Uploader == nil || found.Uploader.ID != uploader.ID {
			t.Error("GetQuote() did not preload the uploader")
		}
		if found.UpvoteCount != 0 {
			t.Errorf("upvote count = %d, want 0", found.UpvoteCount)
		}
	})

	t.Run("unknown book rejected", func(t *testing.T) {
		bad := &models.Quote{Text: "orphan", BookID: "missing-id", UploaderID: uploader.ID}
		if _, err := s.CreateQuote(ctx, bad); !errors.Is(err, models.ErrBookNotFound) {
			t.Errorf("CreateQuote() error = %v, want ErrBookNotFound", err)
		}
	})

	t.Run("upvote is idempotent", func(t *testing.T) {
		voter := newTestUser("voter@example.com")
		if err := s.CreateUser(ctx, voter); err != nil {
			t.Fatalf("CreateUser() error = %v", err)
		}

		if err := s.UpvoteQuote(ctx, quote.ID, voter.ID); err != nil {
			t.Fatalf("UpvoteQuote() error = %v", err)
		}
		if err := s.UpvoteQuote(ctx, quote.ID, voter.ID); err != nil {
			t.Fatalf("UpvoteQuote() second call error = %v", err)
		}

		found, err := s.GetQuote(ctx, quote.ID)
		if err != nil {
			t.Fatalf("GetQuote() error = %v", err)
		}
		if found.UpvoteCount != 1 {
			t.Errorf("upvote count = %d, want 1", found.UpvoteCount)
		}
	})

	t.Run("update text and categories", func(t *testing.T) {
		category := &models.Category{Tag: "courage"}
		if err := s.CreateCategory(ctx, category); err != nil {
			t.Fatalf("CreateCategory() error = %v", err)
		}

		updated := &models.Quote{
			ID:         quote.ID,
			Text:       "But nothing can be changed until it is faced.",
			Categories: []models.Category{{ID: category.ID}},
		}
		if err := s.UpdateQuote(ctx, updated); err != nil {
			t.Fatalf("UpdateQuote() error = %v", err)
		}

		found, err := s.GetQuote(ctx, quote.ID)
		if err != nil {
			t.Fatalf("GetQuote() error = %v", err)
		}
		if found.Text != updated.Text {
			t.Errorf("text = %q, want %q", found.Text, updated.Text)
		}
		if len(found.Categories) != 1 || found.Categories[0].ID != category.ID {
			t.Errorf("categories = %+v, want exactly category %d", found.Categories, category.ID)
		}
	})

	t.Run("update with unknown category", func(t *testing.T) {
		updated := &models.Quote{
			ID:         quote.ID,
			Text:       "orphan category",
			Categories: []models.Category{{ID: 9999}},
		}
		if err := s.UpdateQuote(ctx, updated); !errors.Is(err, models.ErrCategoryNotFound) {
			t.Errorf("UpdateQuote() error = %v, want ErrCategoryNotFound", err)
		}
	})

	t.Run("update unknown quote", func(t *testing.T) {
		bad := &models.Quote{ID: "missing-id", Text: "ghost"}
		if err := s.UpdateQuote(ctx, bad); !errors.Is(err, models.ErrQuoteNotFound) {
			t.Errorf("UpdateQuote() error = %v, want ErrQuoteNotFound", err)
		}
	})

	t.Run("upvote unknown quote", func(t *testing.T) {
		if err := s.UpvoteQuote(ctx, "missing-id", uploader.ID); !errors.Is(err, models.ErrQuoteNotFound) {
			t.Errorf("UpvoteQuote() error = %v, want ErrQuoteNotFound", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := s.DeleteQuote(ctx, quote.ID); err != nil {
			t.Fatalf("DeleteQuote() error = %v", err)
		}
		if _, err := s.GetQuote(ctx, quote.ID); !errors.Is(err, models.ErrQuoteNotFound) {
			t.Errorf("GetQuote(deleted) error = %v, want ErrQuoteNotFound", err)
		}
	})
}

func TestCategoryCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	category := &models.Category{Tag: "philosophy", Description: "Quotes about thinking."}
	if err := s.CreateCategory(ctx, category); err != nil {
		t.Fatalf("CreateCategory() error = %v", err)
	}
	if category.ID == 0 {
		t.Error("CreateCategory() did not assign an id")
	}

	t.Run("duplicate tag", func(t *testing.T) {
		dup := &models.Category{Tag: "philosophy"}
		if err := s.CreateCategory(ctx, dup); !errors.Is(err, models.ErrDuplicateTag) {
			t.Errorf("CreateCategory() error = %v, want ErrDuplicateTag", err)
		}
	})

	found, err := s.GetCategory(ctx, category.ID)
	if err != nil {
		t.Fatalf("GetCategory() error = %v", err)
	}
	if found.Tag != "philosophy" {
		t.Errorf("tag = %q, want %q", found.Tag, "philosophy")
	}

	all, err := s.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories() error = %v", err)
	}
	if len(all) != 1 {
		t.Errorf("ListCategories() returned %d categories, want 1", len(all))
	}

	t.Run("update", func(t *testing.T) {
		category.Tag = "stoicism"
		category.Description = "Quotes about endurance."
		if err := s.UpdateCategory(ctx, category); err != nil {
			t.Fatalf("UpdateCategory() error = %v", err)
		}

		found, err := s.GetCategory(ctx, category.ID)
		if err != nil {
			t.Fatalf("GetCategory() error = %v", err)
		}
		if found.Tag != "stoicism" || found.Description != "Quotes about endurance." {
			t.Errorf("category after update = %+v", found)
		}
	})

	t.Run("update to a taken tag", func(t *testing.T) {
		other := &models.Category{Tag: "poetry"}
		if err := s.CreateCategory(ctx, other); err != nil {
			t.Fatalf("CreateCategory() error = %v", err)
		}

		other.Tag = "stoicism"
		if err := s.UpdateCategory(ctx, other); !errors.Is(err, models.ErrDuplicateTag) {
			t.Errorf("UpdateCategory() error = %v, want ErrDuplicateTag", err)
		}
	})

	t.Run("update unknown category", func(t *testing.T) {
		bad := &models.Category{ID: 9999, Tag: "ghost"}
		if err := s.UpdateCategory(ctx, bad); !errors.Is(err, models.ErrCategoryNotFound) {
			t.Errorf("UpdateCategory() error = %v, want ErrCategoryNotFound", err)
		}
	})

	if err := s.DeleteCategory(ctx, category.ID); err != nil {
		t.Fatalf("DeleteCategory() error = %v", err)
	}
	if _, err := s.GetCategory(ctx, category.ID); !errors.Is(err, models.ErrCategoryNotFound) {
		t.Errorf("GetCategory(deleted) error = %v, want ErrCategoryNotFound", err)
	}
}
