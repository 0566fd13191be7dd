package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/content-hub/backend/internal/realtime"
	"github.com/anonto42/content-hub/backend/internal/repositories"
	"github.com/anonto42/content-hub/backend/internal/router"
	"github.com/anonto42/content-hub/backend/pkg/config"
	"github.com/anonto42/content-hub/backend/pkg/firebase"
	"github.com/anonto42/content-hub/backend/pkg/logging"
	"github.com/anonto42/content-hub/backend/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := logging.New(cfg.LogLevel)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database connections
	db, err := config.InitDB(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize databases: %w", err)
	}
	defer db.CloseDB()

	jobRepo := repositories.NewMongoJobRepository(db.Mongo.Database(cfg.MongoDatabase))
	if err := jobRepo.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("failed to create job indexes: %w", err)
	}

	identifier, err := newIdentifier(ctx, cfg, db)
	if err != nil {
		return err
	}

	registry := realtime.NewRegistry(logger)
	defer registry.Close()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()

	// Setup global middleware
	config.SetupMiddleware(e, cfg, logger)

	// Setup routes and dependencies
	if err := router.SetupRoutes(e, router.Deps{
		Postgres:       db.Postgres,
		Jobs:           jobRepo,
		Registry:       registry,
		Identifier:     identifier,
		FanoutLimit:    cfg.FanoutLimit,
		StoreTimeout:   cfg.StoreTimeout,
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         logger,
	}); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.Port, "ws_auth_mode", cfg.WSAuthMode)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func newIdentifier(ctx context.Context, cfg *config.Config, db *config.DB) (realtime.Identifier, error) {
	switch cfg.WSAuthMode {
	case config.AuthModeJWT:
		return realtime.JWTIdentifier{Secret: []byte(cfg.JWTSecret)}, nil
	case config.AuthModeFirebase:
		app, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Firebase: %w", err)
		}
		return realtime.FirebaseIdentifier{
			Verifier: app.AuthClient,
			Users:    repositories.NewPostgresUserRepository(db.Postgres),
		}, nil
	default:
		return realtime.TrustedIdentifier{}, nil
	}
}
