package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/sorrel/pkg/context"
)

func testLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

func TestContextMiddleware(t *testing.T) {
	e := echo.New()
	e.Use(Context())

	var tenantID, conversationID, requestID string
	e.GET("/probe", func(c echo.Context) error {
		ctx := c.Request().Context()
		tenantID = context.GetTenantID(ctx)
		conversationID = context.GetConversationID(ctx)
		requestID = context.GetRequestID(ctx)
		return c.NoContent(http.StatusOK)
	})

	t.Run("propagates headers into the request context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set(HeaderTenantID, "tenant-1")
		req.Header.Set(HeaderConversationID, "conv-9")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "tenant-1", tenantID)
		assert.Equal(t, "conv-9", conversationID)
	})

	t.Run("generates a request id when none is sent", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/probe", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, requestID)
	})
}

func TestErrorHandler(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = Error(testLogger())
	e.GET("/boom", func(c echo.Context) error {
		return httperror.NewHTTPError(http.StatusNotFound, "entity not found")
	})
	e.GET("/panic-free", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadRequest, "bad input")
	})

	t.Run("renders http errors with their status", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "entity not found")
	})

	t.Run("renders echo errors with their status", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic-free", nil))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "bad input")
	})
}
