package middleware

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
)

// CharmLog logs every request through the charm logger. Handler errors are
// passed to echo's error handler first so the logged status is final.
func CharmLog() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			if err := next(c); err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			fields := []any{
				"method", req.Method,
				"uri", req.RequestURI,
				"status", res.Status,
				"bytes", res.Size,
				"latency", time.Since(start),
			}
			if res.Status >= 500 {
				log.Error("request", fields...)
			} else {
				log.Debug("request", fields...)
			}
			return nil
		}
	}
}
