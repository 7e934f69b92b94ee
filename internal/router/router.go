// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/sridip-de/mern-auth/internal/config"
	"github.com/sridip-de/mern-auth/internal/handler"
	"github.com/sridip-de/mern-auth/internal/middleware"
)

// RegisterRoutes registers routes that are not part of the identity
// surface. Currently that is only the health check used by load
// balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the identity endpoints under /api/users. The
// whole group runs inside the error funnel so every failure, sync or
// panic, reaches the single error reporter; the Redis token bucket
// guards the group against credential stuffing. The refresh-token
// exchange endpoint is not implemented yet — the refreshToken cookie
// is already scoped to its namespace for when it lands.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, accessSecret string, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	g := e.Group("/api/users")
	g.Use(middleware.ErrorFunnel())
	g.Use(middleware.NewTokenBucket(rlCfg, rdb))

	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/logout", a.Logout)

	// Identity read for the current session; requires the accessToken
	// cookie.
	g.GET("/me", a.Me, middleware.RequireSession(accessSecret))
}
