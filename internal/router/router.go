package router

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/anonto42/content-hub/backend/internal/feed"
	"github.com/anonto42/content-hub/backend/internal/handlers"
	"github.com/anonto42/content-hub/backend/internal/middleware"
	"github.com/anonto42/content-hub/backend/internal/notifier"
	"github.com/anonto42/content-hub/backend/internal/realtime"
	"github.com/anonto42/content-hub/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// Deps are the long-lived collaborators the routes are built from.
type Deps struct {
	Postgres       *gorm.DB
	Jobs           repositories.JobRepository
	Registry       *realtime.Registry
	Identifier     realtime.Identifier
	FanoutLimit    int
	StoreTimeout   time.Duration
	AllowedOrigins []string
	Logger         *slog.Logger
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, d Deps) error {
	if err := repositories.Migrate(d.Postgres); err != nil {
		return fmt.Errorf("failed to auto migrate models: %w", err)
	}
	d.Logger.Info("PostgreSQL auto-migrations completed for all models.")

	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(d.Postgres)
	articleRepo := repositories.NewPostgresArticleRepository(d.Postgres)
	commentRepo := repositories.NewPostgresCommentRepository(d.Postgres)
	likeRepo := repositories.NewPostgresLikeRepository(d.Postgres)
	followRepo := repositories.NewPostgresFollowRepository(d.Postgres)
	notificationRepo := repositories.NewPostgresNotificationRepository(d.Postgres)

	engine := notifier.NewEngine(notifier.Store{
		Users:         userRepo,
		Articles:      articleRepo,
		Comments:      commentRepo,
		Follows:       followRepo,
		Likes:         likeRepo,
		Notifications: notificationRepo,
	}, d.Registry, d.FanoutLimit, d.Logger)
	aggregator := feed.NewAggregator(articleRepo, d.Jobs, likeRepo, userRepo)

	// --- Live notifications ---
	wsHandler := realtime.NewHandler(d.Registry, d.Identifier, d.AllowedOrigins, d.Logger)
	wsHandler.RegisterRoutes(e)
	d.Logger.Info("WebSocket route configured.")

	api := e.Group("/api")
	api.Use(middleware.StoreTimeout(d.StoreTimeout))

	eventHandler := handlers.NewEventHandler(engine, d.Logger)
	eventHandler.RegisterEventRoutes(api)
	d.Logger.Info("Event routes configured.")

	userHandler := handlers.NewUserHandler(userRepo, followRepo, d.Logger)
	userHandler.RegisterUserRoutes(api)
	d.Logger.Info("User routes configured.")

	contentHandler := handlers.NewContentHandler(articleRepo, d.Jobs, commentRepo, likeRepo, userRepo, aggregator, engine, d.Logger)
	contentHandler.RegisterContentRoutes(api)
	d.Logger.Info("Content routes configured.")

	feedHandler := handlers.NewFeedHandler(aggregator, d.Logger)
	feedHandler.RegisterFeedRoutes(api)
	d.Logger.Info("Feed routes configured.")

	notificationHandler := handlers.NewNotificationHandler(notificationRepo, d.Logger)
	notificationHandler.RegisterNotificationRoutes(api)
	d.Logger.Info("Notification routes configured.")

	d.Logger.Info("All routes configured.")
	return nil
}
