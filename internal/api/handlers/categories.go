package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/quoteshelf/quoteshelf/internal/logger"
	"github.com/quoteshelf/quoteshelf/internal/models"
	"github.com/quoteshelf/quoteshelf/internal/store"
)

// CategoryHandler handles category endpoints.
type CategoryHandler struct {
	store store.CatalogStore
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(s store.CatalogStore) *CategoryHandler {
	return &CategoryHandler{store: s}
}

// CategoryRequest is the request body for creating a category.
type CategoryRequest struct {
	Tag         string `json:"tag" validate:"required,min=3,max=64"`
	Description string `json:"description" validate:"max=1024"`
}

// categoryID parses the numeric {id} route parameter.
func categoryID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// List handles GET /api/v1/categories.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.store.ListCategories(r.Context())
	if err != nil {
		logger.Error("listing categories failed", "error", err)
		InternalServerError(w, "Failed to list categories")
		return
	}
	WriteEnvelopeOK(w, categories)
}

// Get handles GET /api/v1/categories/{id}.
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := categoryID(r)
	if !ok {
		BadRequest(w, "Invalid category id")
		return
	}

	category, err := h.store.GetCategory(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrCategoryNotFound) {
			NotFound(w, "Category not found")
			return
		}
		logger.Error("fetching category failed", "error", err)
		InternalServerError(w, "Failed to fetch category")
		return
	}
	WriteEnvelopeOK(w, category)
}

// Create handles POST /api/v1/categories.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	category := &models.Category{Tag: req.Tag, Description: req.Description}
	if err := h.store.CreateCategory(r.Context(), category); err != nil {
		if errors.Is(err, models.ErrDuplicateTag) {
			Conflict(w, "A category with this tag already exists")
			return
		}
		logger.Error("creating category failed", "error", err)
		InternalServerError(w, "Failed to create category")
		return
	}
	WriteEnvelopeCreated(w, category)
}

// Update handles PUT /api/v1/categories/{id}.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := categoryID(r)
	if !ok {
		BadRequest(w, "Invalid category id")
		return
	}

	var req CategoryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	category := &models.Category{ID: id, Tag: req.Tag, Description: req.Description}
	if err := h.store.UpdateCategory(r.Context(), category); err != nil {
		switch {
		case errors.Is(err, models.ErrCategoryNotFound):
			NotFound(w, "Category not found")
		case errors.Is(err, models.ErrDuplicateTag):
			Conflict(w, "A category with this tag already exists")
		default:
			logger.Error("updating category failed", "error", err)
			InternalServerError(w, "Failed to update category")
		}
		return
	}

	category, err := h.store.GetCategory(r.Context(), id)
	if err != nil {
		logger.Error("fetching category after update failed", "error", err)
		InternalServerError(w, "Failed to update category")
		return
	}
	WriteEnvelopeOK(w, category)
}

// Delete handles DELETE /api/v1/categories/{id}.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := categoryID(r)
	if !ok {
		BadRequest(w, "Invalid category id")
		return
	}

	if err := h.store.DeleteCategory(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrCategoryNotFound) {
			NotFound(w, "Category not found")
			return
		}
		logger.Error("deleting category failed", "error", err)
		InternalServerError(w, "Failed to delete category")
		return
	}
	WriteNoContent(w)
}
