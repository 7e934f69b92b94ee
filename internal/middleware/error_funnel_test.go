package middleware

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/sridip-de/mern-auth/internal/utils"
)

func newFunnelServer() *echo.Echo {
	e := echo.New()
	e.Logger.SetOutput(io.Discard)
	e.HTTPErrorHandler = ErrorReporter
	e.Use(ErrorFunnel())
	return e
}

func get(e *echo.Echo, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestFunnel_TypedErrorReachesReporter(t *testing.T) {
	t.Parallel()

	e := newFunnelServer()
	e.GET("/boom", func(c echo.Context) error {
		return utils.ErrValidation("All fields are required")
	})

	rec := get(e, "/boom")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), `"statusCode":400`)
	require.Contains(t, rec.Body.String(), `"success":false`)
	require.Contains(t, rec.Body.String(), "All fields are required")
}

func TestFunnel_PanicBecomesInternalError(t *testing.T) {
	t.Parallel()

	e := newFunnelServer()
	e.GET("/panic", func(c echo.Context) error {
		panic(errors.New("downstream store exploded"))
	})

	rec := get(e, "/panic")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "Internal server error")
	// The panic detail stays on the logging channel.
	require.NotContains(t, rec.Body.String(), "downstream store exploded")
}

func TestFunnel_NonErrorPanic(t *testing.T) {
	t.Parallel()

	e := newFunnelServer()
	e.GET("/panic", func(c echo.Context) error {
		panic("boom")
	})

	rec := get(e, "/panic")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotContains(t, rec.Body.String(), "boom")
}

func TestReporter_UntypedErrorIsSanitized(t *testing.T) {
	t.Parallel()

	e := newFunnelServer()
	e.GET("/raw", func(c echo.Context) error {
		return errors.New("Error 1062: Duplicate entry 'a@x.com'")
	})

	rec := get(e, "/raw")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "Internal server error")
	require.NotContains(t, rec.Body.String(), "1062")
}

func TestReporter_ExactlyOneEnvelope(t *testing.T) {
	t.Parallel()

	e := newFunnelServer()
	e.GET("/boom", func(c echo.Context) error {
		return utils.ErrUnauthorized("Invalid credentials")
	})

	rec := get(e, "/boom")
	// The body is a single JSON object, not two concatenated ones.
	require.Equal(t, 1, strings.Count(rec.Body.String(), `"statusCode"`))
}

func TestReporter_SkipsCommittedResponse(t *testing.T) {
	t.Parallel()

	e := newFunnelServer()
	e.GET("/late", func(c echo.Context) error {
		_ = c.String(http.StatusOK, "done")
		return utils.ErrInternal("too late")
	})

	rec := get(e, "/late")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "done", rec.Body.String())
}

func TestFunnel_SuccessPassesThrough(t *testing.T) {
	t.Parallel()

	e := newFunnelServer()
	e.GET("/ok", func(c echo.Context) error {
		return utils.Respond(c, http.StatusOK, nil, "OK")
	})

	rec := get(e, "/ok")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"success":true`)
}
