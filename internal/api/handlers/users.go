package handlers

import (
	"errors"
	"net/http"

	"github.com/quoteshelf/quoteshelf/internal/api/middleware"
	"github.com/quoteshelf/quoteshelf/internal/logger"
	"github.com/quoteshelf/quoteshelf/internal/models"
	"github.com/quoteshelf/quoteshelf/internal/store"
)

// UserHandler handles the authenticated user's own account endpoints.
type UserHandler struct {
	store store.UserStore
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(s store.UserStore) *UserHandler {
	return &UserHandler{store: s}
}

// UpdateMeRequest is the request body for PUT /api/v1/users/me.
type UpdateMeRequest struct {
	Name                string `json:"name" validate:"max=255"`
	Newsletter          *bool  `json:"newsletter"`
	NewsletterFrequency string `json:"newsletter_frequency"`
}

// List handles GET /api/v1/users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		logger.Error("listing users failed", "error", err)
		InternalServerError(w, "Failed to list users")
		return
	}
	WriteEnvelopeOK(w, users)
}

// Me handles GET /api/v1/users/me.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		Unauthorized(w, "Authentication required")
		return
	}
	WriteEnvelopeOK(w, user)
}

// UpdateMe handles PUT /api/v1/users/me.
// Only profile and newsletter fields are writable; identity fields are not.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		Unauthorized(w, "Authentication required")
		return
	}

	var req UpdateMeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Newsletter != nil {
		user.Newsletter = *req.Newsletter
	}
	if req.NewsletterFrequency != "" {
		frequency := models.NewsletterFrequency(req.NewsletterFrequency)
		if !frequency.IsValid() {
			UnprocessableEntity(w, "Invalid newsletter frequency")
			return
		}
		user.NewsletterFrequency = frequency
	}

	if err := h.store.UpdateUser(r.Context(), user); err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			NotFound(w, "User not found")
			return
		}
		logger.Error("updating user failed", "error", err)
		InternalServerError(w, "Failed to update profile")
		return
	}
	WriteEnvelopeOK(w, user)
}

// DeleteMe handles DELETE /api/v1/users/me.
func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		Unauthorized(w, "Authentication required")
		return
	}

	if err := h.store.DeleteUser(r.Context(), user.ID); err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			NotFound(w, "User not found")
			return
		}
		logger.Error("deleting user failed", "error", err)
		InternalServerError(w, "Failed to delete account")
		return
	}
	WriteNoContent(w)
}
