package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quoteshelf/quoteshelf/internal/logger"
	"github.com/quoteshelf/quoteshelf/internal/models"
	"github.com/quoteshelf/quoteshelf/internal/store"
)

// AuthorHandler handles author management endpoints.
type AuthorHandler struct {
	store store.CatalogStore
}

// NewAuthorHandler creates a new AuthorHandler.
func NewAuthorHandler(s store.CatalogStore) *AuthorHandler {
	return &AuthorHandler{store: s}
}

// AuthorRequest is the request body for creating or updating an author.
type AuthorRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	Image string `json:"image" validate:"omitempty,url"`
	Bio   string `json:"bio" validate:"max=2048"`
}

// List handles GET /api/v1/authors.
func (h *AuthorHandler) List(w http.ResponseWriter, r *http.Request) {
	authors, err := h.store.ListAuthors(r.Context())
	if err != nil {
		logger.Error("listing authors failed", "error", err)
		InternalServerError(w, "Failed to list authors")
		return
	}
	WriteEnvelopeOK(w, authors)
}

// Get handles GET /api/v1/authors/{id}.
func (h *AuthorHandler) Get(w http.ResponseWriter, r *http.Request) {
	author, err := h.store.GetAuthor(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, models.ErrAuthorNotFound) {
			NotFound(w, "Author not found")
			return
		}
		logger.Error("fetching author failed", "error", err)
		InternalServerError(w, "Failed to fetch author")
		return
	}
	WriteEnvelopeOK(w, author)
}

// Create handles POST /api/v1/authors.
func (h *AuthorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req AuthorRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	author := &models.Author{Name: req.Name, Image: req.Image, Bio: req.Bio}
	if _, err := h.store.CreateAuthor(r.Context(), author); err != nil {
		logger.Error("creating author failed", "error", err)
		InternalServerError(w, "Failed to create author")
		return
	}
	WriteEnvelopeCreated(w, author)
}

// Update handles PUT /api/v1/authors/{id}.
func (h *AuthorHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req AuthorRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	author := &models.Author{
		ID:    chi.URLParam(r, "id"),
		Name:  req.Name,
		Image: req.Image,
		Bio:   req.Bio,
	}
	if err := h.store.UpdateAuthor(r.Context(), author); err != nil {
		if errors.Is(err, models.ErrAuthorNotFound) {
			NotFound(w, "Author not found")
			return
		}
		logger.Error("updating author failed", "error", err)
		InternalServerError(w, "Failed to update author")
		return
	}
	WriteEnvelopeOK(w, author)
}

// Delete handles DELETE /api/v1/authors/{id}.
func (h *AuthorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteAuthor(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, models.ErrAuthorNotFound) {
			NotFound(w, "Author not found")
			return
		}
		logger.Error("deleting author failed", "error", err)
		InternalServerError(w, "Failed to delete author")
		return
	}
	WriteNoContent(w)
}
