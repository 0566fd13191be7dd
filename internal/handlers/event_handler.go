package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/anonto42/content-hub/backend/internal/notifier"
	"github.com/labstack/echo/v4"
)

const maxEventBytes = 64 << 10

// EventHandler is the HTTP ingress of the event engine
type EventHandler struct {
	engine EventProcessor
	logger *slog.Logger
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(engine EventProcessor, logger *slog.Logger) *EventHandler {
	return &EventHandler{engine: engine, logger: logger}
}

// RegisterEventRoutes registers event-related routes
func (h *EventHandler) RegisterEventRoutes(g *echo.Group) {
	g.POST("/events", h.ProcessEvent)
}

// ProcessEvent decodes a kind-discriminated event and runs it through the
// engine. Undecodable bodies get a 400; every engine failure is logged with
// its cause and answered with the same 500.
func (h *EventHandler) ProcessEvent(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxEventBytes))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	ev, err := notifier.DecodeEvent(body)
	if err != nil {
		h.logger.Info("rejected event", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid event")
	}

	result, err := h.engine.Process(c.Request().Context(), ev)
	if err != nil {
		h.logger.Error("Error processing event", "kind", ev.Kind(), "error", err, "not_found", errors.Is(err, notifier.ErrNotFound))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to process event.")
	}

	return c.JSON(http.StatusOK, result)
}
