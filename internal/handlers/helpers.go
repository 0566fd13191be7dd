package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/anonto42/content-hub/backend/internal/notifier"
	"github.com/labstack/echo/v4"
)

// EventProcessor is the event engine as seen by the HTTP layer
type EventProcessor interface {
	Process(ctx context.Context, ev notifier.Event) (notifier.Result, error)
}

// paramID parses a positive numeric path parameter
func paramID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return uint(id), nil
}

// queryID parses an optional numeric query parameter; missing or malformed
// values read as 0 (no filter / anonymous viewer).
func queryID(c echo.Context, name string) uint {
	id, err := strconv.ParseUint(c.QueryParam(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}
