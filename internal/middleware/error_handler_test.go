package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"storefront/internal/rest"
	"storefront/pkg/apperror"
	"storefront/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
		details int
	}{
		{
			name:    "validation keeps details",
			err:     apperror.Validation("request validation failed", apperror.FieldViolation{Field: "productIds", Rule: "min"}),
			status:  http.StatusBadRequest,
			message: "request validation failed",
			details: 1,
		},
		{name: "not found", err: apperror.NotFound("order not found"), status: http.StatusNotFound, message: "order not found"},
		{name: "wrapped not found", err: fmt.Errorf("lookup: %w", apperror.NotFound("user not found")), status: http.StatusNotFound, message: "user not found"},
		{name: "upstream", err: apperror.Upstream("game catalog unavailable", errors.New("dial tcp")), status: http.StatusBadGateway, message: "game catalog unavailable"},
		{name: "internal hides cause", err: apperror.Internal("db exploded", errors.New("pq: secret detail")), status: http.StatusInternalServerError, message: "internal server error"},
		{name: "plain error is internal", err: errors.New("connection refused"), status: http.StatusInternalServerError, message: "internal server error"},
		{name: "echo error", err: echo.NewHTTPError(http.StatusMethodNotAllowed, "method not allowed"), status: http.StatusMethodNotAllowed, message: "method not allowed"},
		{name: "echo not found", err: echo.ErrNotFound, status: http.StatusNotFound, message: "Not Found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/1", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			ErrorHandler(tt.err, c)

			assert.Equal(t, tt.status, rec.Code)

			var body rest.ResponseError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.message, body.Message)
			assert.Len(t, body.Details, tt.details)
		})
	}
}

func TestErrorHandler_HeadHasNoBody(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodHead, "/api/v1/orders/1", nil)
	rec := httptest.NewRecorder()

	ErrorHandler(apperror.NotFound("order not found"), e.NewContext(req, rec))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestRequestLogger_AppliesErrorHandler(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler
	e.Use(RequestLogger())
	e.GET("/boom", func(c echo.Context) error {
		return apperror.NotFound("nothing here")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "nothing here")
}

func TestUse_LogsRecoveredPanic(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf, zerolog.InfoLevel)
	t.Cleanup(func() { logger.SetOutput(os.Stdout, zerolog.InfoLevel) })

	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler
	Use(e, []string{"*"})
	e.GET("/panic", func(c echo.Context) error {
		panic("handler blew up")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "handler blew up")

	var line struct {
		Level     string `json:"level"`
		URI       string `json:"uri"`
		Status    int    `json:"status"`
		RequestID string `json:"request_id"`
	}
	require.NoError(t, json.Unmarshal(lastLine(buf.Bytes()), &line))
	assert.Equal(t, "error", line.Level)
	assert.Equal(t, "/panic", line.URI)
	assert.Equal(t, http.StatusInternalServerError, line.Status)
	assert.Equal(t, rec.Header().Get(echo.HeaderXRequestID), line.RequestID)
	assert.NotEmpty(t, line.RequestID)
}

func lastLine(b []byte) []byte {
	lines := bytes.Split(bytes.TrimSpace(b), []byte("\n"))
	return lines[len(lines)-1]
}
