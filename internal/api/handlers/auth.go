package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/quoteshelf/quoteshelf/internal/auth"
	"github.com/quoteshelf/quoteshelf/internal/logger"
	"github.com/quoteshelf/quoteshelf/internal/models"
	"github.com/quoteshelf/quoteshelf/internal/store"
)

const oauthStateCookie = "quoteshelf_oauth_state"

// AuthHandler handles registration, login, and the Google OAuth flow.
type AuthHandler struct {
	store      store.UserStore
	tokens     *auth.TokenService
	local      *auth.LocalStrategy
	oauth      *auth.OAuthStrategy
	google     *auth.GoogleProvider
	bcryptCost int
}

// NewAuthHandler creates a new AuthHandler. google may be nil when no
// Google client is configured; the Google routes then respond 404.
// bcryptCost 0 falls back to models.DefaultBcryptCost.
func NewAuthHandler(s store.UserStore, tokens *auth.TokenService, google *auth.GoogleProvider, bcryptCost int) *AuthHandler {
	if bcryptCost == 0 {
		bcryptCost = models.DefaultBcryptCost
	}
	return &AuthHandler{
		store:      s,
		tokens:     tokens,
		local:      auth.NewLocalStrategy(s),
		oauth:      auth.NewOAuthStrategy(s),
		google:     google,
		bcryptCost: bcryptCost,
	}
}

// RegisterRequest is the request body for POST /api/v1/auth/register.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name"`
}

// LoginRequest is the request body for POST /api/v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionResponse is the payload returned by register, login, and the
// OAuth callback.
type SessionResponse struct {
	User      *models.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expires_in"`
}

// Register handles POST /api/v1/auth/register.
// Creates an account and returns a fresh session. A duplicate email is a
// 409, deliberately distinct from the authentication 401s.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := models.ValidatePassword(req.Password); err != nil {
		UnprocessableEntity(w, err.Error())
		return
	}

	hash, err := models.HashPasswordWithCost(req.Password, h.bcryptCost)
	if err != nil {
		InternalServerError(w, "Registration failed")
		return
	}

	user := &models.User{
		Email:               req.Email,
		Name:                req.Name,
		PasswordHash:        hash,
		NewsletterFrequency: models.NewsletterOnUpload,
	}
	if err := h.store.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) {
			Conflict(w, "An account with this email already exists")
			return
		}
		logger.Error("user creation failed", "error", err)
		InternalServerError(w, "Registration failed")
		return
	}

	h.writeSession(w, user, WriteEnvelopeCreated)
}

// Login handles POST /api/v1/auth/login.
// Verifies email and password and returns a session. The token is also set
// as an Authorization response header. The failure detail never says
// whether the email or the password was wrong.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.local.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			Unauthorized(w, "Invalid email or password")
			return
		}
		logger.Error("login failed against the store", "error", err)
		InternalServerError(w, "Authentication failed")
		return
	}

	h.writeSession(w, user, WriteEnvelopeOK)
}

// Logout handles GET /api/v1/auth/logout.
// Sessions are stateless, so logout only clears the outbound header; the
// route still demands a valid token so anonymous callers get the same 401
// as everywhere else.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Authorization", "")
	WriteEnvelopeOK(w, map[string]string{"status": "logged out"})
}

// GoogleStart handles GET /api/v1/auth/google.
// Redirects to Google's consent page with a fresh state parameter, echoed
// in a short-lived cookie for the callback to check.
func (h *AuthHandler) GoogleStart(w http.ResponseWriter, r *http.Request) {
	if h.google == nil {
		NotFound(w, "Google sign-in is not configured")
		return
	}

	state, err := auth.NewState()
	if err != nil {
		InternalServerError(w, "Failed to start sign-in")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/api/v1/auth",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.google.AuthURL(state), http.StatusTemporaryRedirect)
}

// GoogleCallback handles GET /api/v1/auth/callback/google.
// Checks the state, exchanges the code, resolves the profile to a local
// account, and returns a session.
func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if h.google == nil {
		NotFound(w, "Google sign-in is not configured")
		return
	}

	cookie, err := r.Cookie(oauthStateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
		Unauthorized(w, "Invalid sign-in state")
		return
	}

	// The state is single-use.
	http.SetCookie(w, &http.Cookie{
		Name:   oauthStateCookie,
		Value:  "",
		Path:   "/api/v1/auth",
		MaxAge: -1,
	})

	code := r.URL.Query().Get("code")
	if code == "" {
		Unauthorized(w, "Missing authorization code")
		return
	}

	profile, err := h.google.Exchange(r.Context(), code)
	if err != nil {
		logger.Warn("google code exchange failed", "error", err)
		Unauthorized(w, "Sign-in failed")
		return
	}

	user, err := h.oauth.Authenticate(r.Context(), profile)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			Unauthorized(w, "Sign-in failed")
			return
		}
		logger.Error("oauth account resolution failed", "error", err)
		InternalServerError(w, "Sign-in failed")
		return
	}

	h.writeSession(w, user, WriteEnvelopeOK)
}

// writeSession issues a token for the user and writes the session envelope,
// mirroring the token in the Authorization response header.
func (h *AuthHandler) writeSession(w http.ResponseWriter, user *models.User, write func(http.ResponseWriter, any)) {
	token, err := h.tokens.Issue(user)
	if err != nil {
		InternalServerError(w, "Failed to issue token")
		return
	}

	w.Header().Set("Authorization", "Bearer "+token)
	write(w, &SessionResponse{
		User:      user,
		Token:     token,
		ExpiresIn: int64(h.tokens.TTL().Seconds()),
	})
}
