package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/sridip-de/mern-auth/internal/config"
	"github.com/sridip-de/mern-auth/internal/database"
	"github.com/sridip-de/mern-auth/internal/handler"
	"github.com/sridip-de/mern-auth/internal/middleware"
	"github.com/sridip-de/mern-auth/internal/queue"
	"github.com/sridip-de/mern-auth/internal/repository"
	"github.com/sridip-de/mern-auth/internal/router"
	queue_publisher "github.com/sridip-de/mern-auth/internal/service"
	"github.com/sridip-de/mern-auth/internal/utils"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	cfg := config.Load()

	db, err := database.Open(database.Options{
		User:         cfg.DBUser,
		Pass:         cfg.DBPass,
		Host:         cfg.DBHost,
		Port:         cfg.DBPort,
		Name:         cfg.DBName,
		MaxConns:     cfg.DBMaxConns,
		ConnLifetime: cfg.DBConnLifetime,
	})
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, rate limiting disabled")
	}

	// Identity audit-log consumer; reconnects on broker failures.
	go func() {
		if err := queue.StartIdentityConsumer(); err != nil {
			log.Printf("identity consumer stopped: %v", err)
		}
	}()

	users := repository.NewUserRepo(db)
	issuer := utils.NewTokenIssuer(cfg.AccessTokenSecret, cfg.RefreshTokenSecret,
		cfg.AccessTTLMin, cfg.RefreshTTLDays)
	cookies := utils.NewSessionCookies(cfg.IsProd(), cfg.AccessTTLMin, cfg.RefreshTTLDays)
	auth := handler.NewAuthHandler(users, issuer, cookies, queue_publisher.New(), cfg.BcryptCost)

	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorReporter
	router.RegisterRoutes(e)
	router.RegisterAuth(e, auth, cfg.AccessTokenSecret, config.LoadRateLimitConfig(), rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
