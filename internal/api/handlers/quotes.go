package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quoteshelf/quoteshelf/internal/api/middleware"
	"github.com/quoteshelf/quoteshelf/internal/logger"
	"github.com/quoteshelf/quoteshelf/internal/models"
	"github.com/quoteshelf/quoteshelf/internal/store"
)

// QuoteHandler handles quote endpoints. The uploader is always the
// authenticated caller, never a field of the request body.
type QuoteHandler struct {
	store store.CatalogStore
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(s store.CatalogStore) *QuoteHandler {
	return &QuoteHandler{store: s}
}

// QuoteRequest is the request body for creating a quote.
type QuoteRequest struct {
	Text        string `json:"text" validate:"required,max=3000"`
	BookID      string `json:"book_id" validate:"required"`
	CategoryIDs []uint `json:"category_ids"`
}

// QuoteUpdateRequest is the request body for updating a quote. The book
// reference cannot be changed after creation.
type QuoteUpdateRequest struct {
	Text        string `json:"text" validate:"required,max=3000"`
	CategoryIDs []uint `json:"category_ids"`
}

// List handles GET /api/v1/quotes.
func (h *QuoteHandler) List(w http.ResponseWriter, r *http.Request) {
	quotes, err := h.store.ListQuotes(r.Context())
	if err != nil {
		logger.Error("listing quotes failed", "error", err)
		InternalServerError(w, "Failed to list quotes")
		return
	}
	WriteEnvelopeOK(w, quotes)
}

// Get handles GET /api/v1/quotes/{id}.
func (h *QuoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	quote, err := h.store.GetQuote(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, models.ErrQuoteNotFound) {
			NotFound(w, "Quote not found")
			return
		}
		logger.Error("fetching quote failed", "error", err)
		InternalServerError(w, "Failed to fetch quote")
		return
	}
	WriteEnvelopeOK(w, quote)
}

// Create handles POST /api/v1/quotes.
func (h *QuoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		Unauthorized(w, "Authentication required")
		return
	}

	var req QuoteRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	quote := &models.Quote{
		Text:       req.Text,
		BookID:     req.BookID,
		UploaderID: user.ID,
	}
	for _, categoryID := range req.CategoryIDs {
		quote.Categories = append(quote.Categories, models.Category{ID: categoryID})
	}

	if _, err := h.store.CreateQuote(r.Context(), quote); err != nil {
		switch {
		case errors.Is(err, models.ErrBookNotFound):
			UnprocessableEntity(w, "Unknown book id")
		case errors.Is(err, models.ErrCategoryNotFound):
			UnprocessableEntity(w, "Unknown category id")
		default:
			logger.Error("creating quote failed", "error", err)
			InternalServerError(w, "Failed to create quote")
		}
		return
	}
	WriteEnvelopeCreated(w, quote)
}

// Update handles PUT /api/v1/quotes/{id}.
// Only the uploader may edit their quote.
func (h *QuoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		Unauthorized(w, "Authentication required")
		return
	}

	quoteID := chi.URLParam(r, "id")
	quote, err := h.store.GetQuote(r.Context(), quoteID)
	if err != nil {
		if errors.Is(err, models.ErrQuoteNotFound) {
			NotFound(w, "Quote not found")
			return
		}
		logger.Error("fetching quote failed", "error", err)
		InternalServerError(w, "Failed to update quote")
		return
	}
	if quote.UploaderID != user.ID {
		WriteProblem(w, http.StatusForbidden, "Forbidden", "Only the uploader can edit a quote")
		return
	}

	var req QuoteUpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	updated := &models.Quote{ID: quoteID, Text: req.Text}
	for _, categoryID := range req.CategoryIDs {
		updated.Categories = append(updated.Categories, models.Category{ID: categoryID})
	}

	if err := h.store.UpdateQuote(r.Context(), updated); err != nil {
		switch {
		case errors.Is(err, models.ErrQuoteNotFound):
			NotFound(w, "Quote not found")
		case errors.Is(err, models.ErrCategoryNotFound):
			UnprocessableEntity(w, "Unknown category id")
		default:
			logger.Error("updating quote failed", "error", err)
			InternalServerError(w, "Failed to update quote")
		}
		return
	}

	quote, err = h.store.GetQuote(r.Context(), quoteID)
	if err != nil {
		logger.Error("fetching quote after update failed", "error", err)
		InternalServerError(w, "Failed to update quote")
		return
	}
	WriteEnvelopeOK(w, quote)
}

// Upvote handles POST /api/v1/quotes/{id}/upvote.
// Upvoting twice is accepted and changes nothing.
func (h *QuoteHandler) Upvote(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		Unauthorized(w, "Authentication required")
		return
	}

	quoteID := chi.URLParam(r, "id")
	if err := h.store.UpvoteQuote(r.Context(), quoteID, user.ID); err != nil {
		if errors.Is(err, models.ErrQuoteNotFound) {
			NotFound(w, "Quote not found")
			return
		}
		logger.Error("upvoting quote failed", "error", err)
		InternalServerError(w, "Failed to upvote quote")
		return
	}

	quote, err := h.store.GetQuote(r.Context(), quoteID)
	if err != nil {
		logger.Error("fetching quote after upvote failed", "error", err)
		InternalServerError(w, "Failed to fetch quote")
		return
	}
	WriteEnvelopeOK(w, quote)
}

// Delete handles DELETE /api/v1/quotes/{id}.
// Only the uploader may remove their quote.
func (h *QuoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		Unauthorized(w, "Authentication required")
		return
	}

	quoteID := chi.URLParam(r, "id")
	quote, err := h.store.GetQuote(r.Context(), quoteID)
	if err != nil {
		if errors.Is(err, models.ErrQuoteNotFound) {
			NotFound(w, "Quote not found")
			return
		}
		logger.Error("fetching quote failed", "error", err)
		InternalServerError(w, "Failed to delete quote")
		return
	}
	if quote.UploaderID != user.ID {
		WriteProblem(w, http.StatusForbidden, "Forbidden", "Only the uploader can delete a quote")
		return
	}

	if err := h.store.DeleteQuote(r.Context(), quoteID); err != nil {
		logger.Error("deleting quote failed", "error", err)
		InternalServerError(w, "Failed to delete quote")
		return
	}
	WriteNoContent(w)
}
