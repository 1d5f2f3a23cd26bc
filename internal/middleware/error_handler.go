package middleware

import (
	"errors"
	"net/http"
	"storefront/internal/rest"
	"storefront/pkg/apperror"
	"storefront/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ErrorHandler is the echo HTTPErrorHandler. Application errors map by
// kind; echo errors keep their status. Internal causes never reach the body.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, body := render(err)

	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			"method", c.Request().Method,
			"uri", c.Request().RequestURI,
			"status", status,
			"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			err,
		)
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, body)
	}
	if writeErr != nil {
		logger.Error("failed to write error response", writeErr)
	}
}

func render(err error) (int, rest.ResponseError) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if s, ok := he.Message.(string); ok && he.Code < http.StatusInternalServerError {
			msg = s
		}
		return he.Code, rest.ResponseError{Message: msg}
	}

	appErr := apperror.As(err)
	status := appErr.Kind.HTTPStatus()

	switch appErr.Kind {
	case apperror.KindInternal:
		return status, rest.ResponseError{Message: "internal server error"}
	case apperror.KindValidation:
		return status, rest.ResponseError{Message: appErr.Message, Details: appErr.Details}
	default:
		return status, rest.ResponseError{Message: appErr.Message}
	}
}
