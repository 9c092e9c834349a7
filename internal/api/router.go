package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/quoteshelf/quoteshelf/internal/api/handlers"
	"github.com/quoteshelf/quoteshelf/internal/api/middleware"
	"github.com/quoteshelf/quoteshelf/internal/auth"
	"github.com/quoteshelf/quoteshelf/internal/logger"
	"github.com/quoteshelf/quoteshelf/internal/store"
)

// NewRouter creates and configures the chi router with all middleware and routes.
//
// The router is configured with:
//   - Request ID middleware for request tracking
//   - Real IP extraction for proper client identification
//   - Custom request logging using the internal logger
//   - Panic recovery to prevent server crashes
//   - Request timeout to prevent hung requests
//   - The authentication gate: every route is gated unless the startup
//     classifier marks it public
//
// Routes:
//   - GET /health, GET /health/ready - probes (public via classifier table)
//   - GET /metrics - Prometheus scrape endpoint (public, optional)
//   - /api/v1/auth/* - register, login, logout, Google OAuth (public via
//     classifier prefix; logout re-checks credentials itself)
//   - /api/v1/authors, /api/v1/books, /api/v1/quotes, /api/v1/categories,
//     /api/v1/users, /api/v1/users/me - catalog and account management (gated)
//
// bcryptCost tunes password hashing for registration; 0 uses the default.
func NewRouter(s *store.GORMStore, tokens *auth.TokenService, google *auth.GoogleProvider, m *metrics, bcryptCost int) http.Handler {
	r := chi.NewRouter()

	bearer := auth.NewBearerStrategy(tokens, s)
	classifier := middleware.NewRouteClassifier().
		Exempt(http.MethodGet, "/health").
		Exempt(http.MethodGet, "/health/ready").
		Exempt(http.MethodGet, "/metrics").
		ExemptPrefix("/api/v1/auth/")

	// Middleware stack - order matters
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))
	if m != nil {
		r.Use(m.instrument)
	}
	r.Use(middleware.AuthGate(classifier, bearer))

	healthHandler := handlers.NewHealthHandler(s.DB())

	// Health routes - public through the classifier table
	r.Route("/health", func(r chi.Router) {
		r.Get("/", healthHandler.Liveness)
		r.Get("/ready", healthHandler.Readiness)
	})

	if m != nil {
		r.Get("/metrics", m.handler().ServeHTTP)
	}

	// Root redirect to health for convenience
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/health", http.StatusTemporaryRedirect)
	})

	authHandler := handlers.NewAuthHandler(s, tokens, google, bcryptCost)
	authorHandler := handlers.NewAuthorHandler(s)
	bookHandler := handlers.NewBookHandler(s)
	quoteHandler := handlers.NewQuoteHandler(s)
	categoryHandler := handlers.NewCategoryHandler(s)
	userHandler := handlers.NewUserHandler(s)

	r.Route("/api/v1", func(r chi.Router) {
		// Auth routes - public through the classifier prefix
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Get("/google", authHandler.GoogleStart)
			r.Get("/callback/google", authHandler.GoogleCallback)

			// Logout sits on the exempt prefix but still needs a caller
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth(bearer))
				r.Get("/logout", authHandler.Logout)
			})
		})

		r.Route("/authors", func(r chi.Router) {
			r.Get("/", authorHandler.List)
			r.Post("/", authorHandler.Create)
			r.Get("/{id}", authorHandler.Get)
			r.Put("/{id}", authorHandler.Update)
			r.Delete("/{id}", authorHandler.Delete)
		})

		r.Route("/books", func(r chi.Router) {
			r.Get("/", bookHandler.List)
			r.Post("/", bookHandler.Create)
			r.Get("/{id}", bookHandler.Get)
			r.Put("/{id}", bookHandler.Update)
			r.Delete("/{id}", bookHandler.Delete)
		})

		r.Route("/quotes", func(r chi.Router) {
			r.Get("/", quoteHandler.List)
			r.Post("/", quoteHandler.Create)
			r.Get("/{id}", quoteHandler.Get)
			r.Put("/{id}", quoteHandler.Update)
			r.Delete("/{id}", quoteHandler.Delete)
			r.Post("/{id}/upvote", quoteHandler.Upvote)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categoryHandler.List)
			r.Post("/", categoryHandler.Create)
			r.Get("/{id}", categoryHandler.Get)
			r.Put("/{id}", categoryHandler.Update)
			r.Delete("/{id}", categoryHandler.Delete)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", userHandler.List)
			r.Route("/me", func(r chi.Router) {
				r.Get("/", userHandler.Me)
				r.Put("/", userHandler.UpdateMe)
				r.Delete("/", userHandler.DeleteMe)
			})
		})
	})

	return r
}

// requestLogger is a custom middleware that logs requests using the internal logger.
//
// It logs:
//   - Request start (DEBUG level): method, path, remote addr
//   - Request completion (INFO level): method, path, status, duration
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := chimiddleware.GetReqID(r.Context())

		logger.Debug("API request started",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)

		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		logger.Info("API request completed",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).String(),
		)
	})
}
