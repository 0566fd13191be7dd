package middleware

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
)

// StoreTimeout bounds every downstream store call made while serving a
// request. The event engine itself never sets deadlines.
func StoreTimeout(d time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if d <= 0 {
				return next(c)
			}
			ctx, cancel := context.WithTimeout(c.Request().Context(), d)
			defer cancel()
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
