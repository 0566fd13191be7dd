package handlers

import (
	"log/slog"
	"net/http"

	"github.com/anonto42/content-hub/backend/internal/feed"
	"github.com/labstack/echo/v4"
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	aggregator *feed.Aggregator
	logger     *slog.Logger
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(aggregator *feed.Aggregator, logger *slog.Logger) *FeedHandler {
	return &FeedHandler{aggregator: aggregator, logger: logger}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
	g.GET("/feed/:userId", h.GetUserFeed)
}

// GetFeed returns every article and job, newest first. currentUserId
// selects whose like state is reported.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	items, err := h.aggregator.Combined(c.Request().Context(), queryID(c, "currentUserId"))
	if err != nil {
		h.logger.Error("Error fetching combined feed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch feed.")
	}
	return c.JSON(http.StatusOK, nonNil(items))
}

// GetUserFeed returns the articles and jobs authored by one user
func (h *FeedHandler) GetUserFeed(c echo.Context) error {
	userID, err := paramID(c, "userId")
	if err != nil {
		return err
	}

	items, err := h.aggregator.ByAuthor(c.Request().Context(), userID, queryID(c, "currentUserId"))
	if err != nil {
		h.logger.Error("Error fetching user feed", "user_id", userID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch feed.")
	}
	return c.JSON(http.StatusOK, nonNil(items))
}

func nonNil(items []feed.Item) []feed.Item {
	if items == nil {
		return []feed.Item{}
	}
	return items
}
