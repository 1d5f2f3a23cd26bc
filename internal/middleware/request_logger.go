package middleware

import (
	"strconv"
	"storefront/pkg/logger"
	"storefront/pkg/metrics"
	"time"

	"github.com/labstack/echo/v4"
)

// RequestLogger logs every request once it completes and records its
// latency by route template.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				// Run the error handler now so the logged status is final.
				c.Error(err)
			}

			latency := time.Since(start)
			status := c.Response().Status
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}

			metrics.HTTPRequestDuration.
				WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).
				Observe(latency.Seconds())

			event := logger.Logger().Info()
			if status >= 500 {
				event = logger.Logger().Error()
			} else if status >= 400 {
				event = logger.Logger().Warn()
			}
			event.
				Str("method", c.Request().Method).
				Str("uri", c.Request().RequestURI).
				Int("status", status).
				Dur("latency", latency).
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
