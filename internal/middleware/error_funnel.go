package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sridip-de/mern-auth/internal/utils"
)

// ErrorFunnel wraps every handler so that any failure, whether a
// returned error or a panic thrown before or after asynchronous work,
// leaves the handler as a single error value. Echo then hands that
// value to the registered error reporter exactly once. The funnel
// performs no retries; a failure is terminal for the request.
func ErrorFunnel() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					if re, ok := r.(error); ok {
						err = utils.ErrInternal("Internal server error").WithCause(re)
					} else {
						err = utils.ErrInternal("Internal server error").WithCause(fmt.Errorf("%v", r))
					}
				}
			}()
			return next(c)
		}
	}
}

// ErrorReporter is the single downstream error reporter: it receives
// every funneled failure, logs the client-safe message together with
// the captured stack and cause, and writes the error envelope with
// the matching status code. Sensitive internals stay on the logging
// channel; the client body only ever carries the envelope fields.
func ErrorReporter(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	ae, ok := err.(*utils.ApiError)
	if !ok {
		if he, isHTTP := err.(*echo.HTTPError); isHTTP {
			msg := http.StatusText(he.Code)
			if s, isStr := he.Message.(string); isStr {
				msg = s
			}
			ae = utils.NewApiError(he.Code, msg)
		} else {
			ae = utils.ErrInternal("Internal server error").WithCause(err)
		}
	}

	if cause := ae.Cause(); cause != nil {
		c.Logger().Errorf("%s %s -> %d %s: %v\n%s",
			c.Request().Method, c.Request().URL.Path, ae.StatusCode, ae.Message, cause, ae.Stack())
	} else {
		c.Logger().Errorf("%s %s -> %d %s\n%s",
			c.Request().Method, c.Request().URL.Path, ae.StatusCode, ae.Message, ae.Stack())
	}

	if writeErr := c.JSON(ae.StatusCode, ae); writeErr != nil {
		c.Logger().Errorf("write error envelope failed: %v", writeErr)
	}
}
