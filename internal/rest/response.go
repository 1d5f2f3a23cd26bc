package rest

import (
	"storefront/pkg/apperror"
	"storefront/pkg/logger"
	"strconv"

	"github.com/labstack/echo/v4"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string                    `json:"message"`
	Details []apperror.FieldViolation `json:"details,omitempty"`
}

// parseID reads the :id path parameter as a positive int64.
func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		logger.Error("Invalid id", "id", c.Param("id"))
		return 0, apperror.Validation("invalid id", apperror.FieldViolation{
			Field:   "id",
			Rule:    "gt",
			Param:   "0",
			Message: "id must be a positive integer",
		})
	}
	return id, nil
}

func bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		logger.Error("Invalid request body", err)
		return apperror.Validation("invalid request body")
	}
	return nil
}
