package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/Atr004/StudentHub/internal/api"
	apiMiddleware "github.com/Atr004/StudentHub/internal/api/middleware"
	"github.com/Atr004/StudentHub/internal/api/shared"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	// Create API handlers using the application's services
	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordVerifier,
		app.logger,
	)
	listingHandler := api.NewListingHandler(app.listingService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	// Register and login are rate limited per client IP; the rest of the
	// API is not.
	registerLimiter := newRateLimiter(app.config.RateLimit.RegisterPerMinute)
	loginLimiter := newRateLimiter(app.config.RateLimit.LoginPerMinute)

	r.Route("/api", func(r chi.Router) {
		// User endpoints (public)
		r.With(registerLimiter).Post("/users/register", authHandler.Register)
		r.With(loginLimiter).Post("/users/login", authHandler.Login)
		r.Get("/users/profile/{id}", authHandler.GetProfile)
		r.Get("/users", authHandler.ListUsers)

		// Listing reads (public)
		r.Get("/listings", listingHandler.List)
		r.Get("/listings/{id}", listingHandler.GetByID)

		// Listing writes (authenticated)
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Post("/listings", listingHandler.Create)
			r.Put("/listings/{id}", listingHandler.Update)
			r.Delete("/listings/{id}", listingHandler.Delete)
		})
	})

	// Unknown routes and methods answer with the same error envelope as
	// the API.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}

// newRateLimiter builds a per-IP limiter allowing the given number of
// requests per minute, answering 429 with the API error envelope.
func newRateLimiter(perMinute int) func(http.Handler) http.Handler {
	return httprate.Limit(
		perMinute,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			shared.RespondWithError(w, r, http.StatusTooManyRequests, "Too many requests, please try again later")
		}),
	)
}
