package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/fyyur/internal/config"
	"github.com/iliyamo/fyyur/internal/database"
	"github.com/iliyamo/fyyur/internal/flash"
	"github.com/iliyamo/fyyur/internal/handler"
	"github.com/iliyamo/fyyur/internal/logging"
	"github.com/iliyamo/fyyur/internal/middleware"
	"github.com/iliyamo/fyyur/internal/render"
	"github.com/iliyamo/fyyur/internal/repository"
	"github.com/iliyamo/fyyur/internal/router"
	"github.com/iliyamo/fyyur/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal(err)
	}

	log, closeLog, err := logging.New(logging.Options{
		Level: cfg.LogLevel,
		File:  cfg.LogFile,
		JSON:  cfg.IsProduction(),
	})
	if err != nil {
		logrus.Fatal(err)
	}
	defer closeLog()

	db, err := openDB(cfg)
	if err != nil {
		log.WithError(err).WithField("driver", cfg.DBDriver).Fatal("database connection failed")
	}
	defer db.Close()

	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = database.Migrate(migrateCtx, db, database.Dialect(cfg.DBDriver))
	cancel()
	if err != nil {
		log.WithError(err).Fatal("schema migration failed")
	}

	rdb, err := config.NewRedisClient(config.LoadRedisConfig())
	if err != nil {
		log.WithError(err).Warn("redis unavailable; rate limiting disabled")
	}
	if rdb != nil {
		defer rdb.Close()
	}

	store, err := newFlashStore(cfg, rdb)
	if err != nil {
		log.WithError(err).Fatal("flash store setup failed")
	}

	var events handler.ActivityPublisher = service.NopPublisher{}
	if cfg.ActivityEnabled {
		events = service.NewAMQPPublisher(cfg.RabbitMQURL, log)
		log.Info("activity events enabled")
	}

	renderer, err := render.New()
	if err != nil {
		log.WithError(err).Fatal("template parsing failed")
	}

	h := handler.NewHandler(
		repository.NewVenueRepo(db),
		repository.NewArtistRepo(db),
		repository.NewShowRepo(db),
		store, events, log,
	)

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.HTTPErrorHandler = h.HTTPError
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(log))
	router.RegisterRoutes(e, h, middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, log))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{"addr": srv.Addr, "env": cfg.Env, "driver": cfg.DBDriver}).Info("listening")
		if err := e.StartServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := e.Shutdown(ctx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}

func openDB(cfg config.Config) (*sql.DB, error) {
	if database.Dialect(cfg.DBDriver) == database.SQLite {
		return database.OpenSQLite(cfg.SQLitePath)
	}
	return database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
}

// newFlashStore prefers Redis, then a signed cookie, then process memory.
func newFlashStore(cfg config.Config, rdb *redis.Client) (flash.Store, error) {
	ttl := config.LoadRedisConfig().FlashTTL
	switch {
	case rdb != nil:
		return flash.NewRedisStore(rdb, "fyyur:flash", ttl), nil
	case cfg.FlashSecret != "":
		return flash.NewCookieStore(cfg.FlashSecret, ttl)
	default:
		return flash.NewMemoryStore(), nil
	}
}
