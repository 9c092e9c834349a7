package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quoteshelf/quoteshelf/internal/logger"
	"github.com/quoteshelf/quoteshelf/internal/models"
	"github.com/quoteshelf/quoteshelf/internal/store"
)

// BookHandler handles book management endpoints.
type BookHandler struct {
	store store.CatalogStore
}

// NewBookHandler creates a new BookHandler.
func NewBookHandler(s store.CatalogStore) *BookHandler {
	return &BookHandler{store: s}
}

// BookRequest is the request body for creating or updating a book.
type BookRequest struct {
	Title           string   `json:"title" validate:"required,max=512"`
	Sum             string   `json:"sum" validate:"max=2048"`
	PublishYear     *int     `json:"publish_year"`
	PublishingHouse string   `json:"publishing_house" validate:"max=255"`
	PublishingTown  string   `json:"publishing_town" validate:"max=255"`
	Edition         string   `json:"edition" validate:"max=64"`
	AuthorIDs       []string `json:"author_ids"`
}

func (req *BookRequest) toModel(id string) *models.Book {
	book := &models.Book{
		ID:              id,
		Title:           req.Title,
		Sum:             req.Sum,
		PublishYear:     req.PublishYear,
		PublishingHouse: req.PublishingHouse,
		PublishingTown:  req.PublishingTown,
		Edition:         req.Edition,
	}
	for _, authorID := range req.AuthorIDs {
		book.Authors = append(book.Authors, models.Author{ID: authorID})
	}
	return book
}

// List handles GET /api/v1/books.
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.store.ListBooks(r.Context())
	if err != nil {
		logger.Error("listing books failed", "error", err)
		InternalServerError(w, "Failed to list books")
		return
	}
	WriteEnvelopeOK(w, books)
}

// Get handles GET /api/v1/books/{id}.
func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	book, err := h.store.GetBook(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, models.ErrBookNotFound) {
			NotFound(w, "Book not found")
			return
		}
		logger.Error("fetching book failed", "error", err)
		InternalServerError(w, "Failed to fetch book")
		return
	}
	WriteEnvelopeOK(w, book)
}

// Create handles POST /api/v1/books.
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req BookRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	book := req.toModel("")
	if _, err := h.store.CreateBook(r.Context(), book); err != nil {
		if errors.Is(err, models.ErrAuthorNotFound) {
			UnprocessableEntity(w, "Unknown author id")
			return
		}
		logger.Error("creating book failed", "error", err)
		InternalServerError(w, "Failed to create book")
		return
	}
	WriteEnvelopeCreated(w, book)
}

// Update handles PUT /api/v1/books/{id}.
func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req BookRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	book := req.toModel(chi.URLParam(r, "id"))
	if err := h.store.UpdateBook(r.Context(), book); err != nil {
		switch {
		case errors.Is(err, models.ErrBookNotFound):
			NotFound(w, "Book not found")
		case errors.Is(err, models.ErrAuthorNotFound):
			UnprocessableEntity(w, "Unknown author id")
		default:
			logger.Error("updating book failed", "error", err)
			InternalServerError(w, "Failed to update book")
		}
		return
	}
	WriteEnvelopeOK(w, book)
}

// Delete handles DELETE /api/v1/books/{id}.
func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteBook(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, models.ErrBookNotFound) {
			NotFound(w, "Book not found")
			return
		}
		logger.Error("deleting book failed", "error", err)
		InternalServerError(w, "Failed to delete book")
		return
	}
	WriteNoContent(w)
}
