package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Atr004/StudentHub/internal/config"
	"github.com/Atr004/StudentHub/internal/platform/objectstore"
	"github.com/Atr004/StudentHub/internal/platform/postgres"
	"github.com/Atr004/StudentHub/internal/service"
	"github.com/Atr004/StudentHub/internal/service/auth"
	"github.com/Atr004/StudentHub/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore    store.UserStore
	listingStore store.ListingStore

	// Service interfaces
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	listingService   service.ListingService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger and
// database connection that must be established before application
// initialization.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier()

	app.userStore = postgres.NewPostgresUserStore(db, cfg.Auth.BcryptCost, logger)
	app.listingStore = postgres.NewPostgresListingStore(db, logger)

	// The object store is optional; without it listings work but image
	// uploads are rejected.
	var imageStore service.ImageStore
	if cfg.Storage.Endpoint != "" {
		client, err := objectstore.NewClient(ctx, cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize object store: %w", err)
		}
		imageStore = client
		logger.Info("object store initialized",
			"endpoint", cfg.Storage.Endpoint,
			"bucket", cfg.Storage.Bucket)
	} else {
		logger.Warn("no object store configured; image uploads disabled")
	}

	app.listingService, err = service.NewListingService(app.listingStore, imageStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create listing service: %w", err)
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
