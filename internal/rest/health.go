package rest

import (
	"context"
	"net/http"
	"storefront/pkg/logger"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type HealthHandler struct {
	ping    func(ctx context.Context) error
	timeout time.Duration
}

// NewHealthHandler reports healthy while ping succeeds.
func NewHealthHandler(ping func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{
		ping:    ping,
		timeout: 2 * time.Second,
	}
}

func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.ping(ctx); err != nil {
		logger.Error("health check failed", err)
		return c.JSON(http.StatusServiceUnavailable, ResponseError{Message: "database unavailable"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]string{"status": "ok"}))
}
