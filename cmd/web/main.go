// @title        Niyam Buddy API
// @version      1.0
// @description  Study tracker: logs, weekly routine, goals and calendar on top of the Niyam backend.
// @BasePath     /app
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	_ "github.com/comitanigiacomo/niyam-buddy/docs"
	"github.com/comitanigiacomo/niyam-buddy/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/niyam-buddy/internal/adapters/handler/http"
	"github.com/comitanigiacomo/niyam-buddy/internal/adapters/storage"
	"github.com/comitanigiacomo/niyam-buddy/internal/adapters/upstream"
	"github.com/comitanigiacomo/niyam-buddy/internal/config"
	"github.com/comitanigiacomo/niyam-buddy/internal/core/services"
	"github.com/comitanigiacomo/niyam-buddy/internal/core/session"
	"github.com/comitanigiacomo/niyam-buddy/internal/core/workers"
	"github.com/comitanigiacomo/niyam-buddy/internal/logger"
)

func main() {
	startTime := time.Now()

	cfg, err := config.LoadServer(".env")
	if err != nil {
		logrus.WithError(err).Fatal("Critical: invalid configuration")
	}

	log := logger.NewServer(cfg.LogLevel, "niyam-web")
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	healthChecks := map[string]adapterHTTP.HealthCheck{}

	var rdb *redis.Client
	if cfg.Storage == config.StorageRedis || cfg.Storage == config.StorageCached || cfg.RateLimit > 0 {
		rdb, err = cache.Connect(ctx, cfg.Redis)
		switch {
		case err == nil:
			defer rdb.Close()
			healthChecks["redis"] = cache.Ping(rdb)
			log.WithField("addr", cfg.Redis.Addr()).Info("Redis connected.")
		case cfg.Storage == config.StorageRedis || cfg.Storage == config.StorageCached:
			log.WithError(err).Fatal("Critical: session storage needs redis")
		default:
			log.WithError(err).Warn("redis unavailable, rate limiting disabled")
		}
	}

	var db *sqlx.DB
	if cfg.Storage == config.StoragePostgres || cfg.Storage == config.StorageCached {
		log.Info("Connecting to database...")

		db, err = sqlx.Connect("pgx", cfg.Database.DSN())
		if err != nil {
			log.WithError(err).Fatal("Critical: Failed to connect to database")
		}
		defer db.Close()

		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)

		if err := storage.MigratePostgres(ctx, db); err != nil {
			log.WithError(err).Fatal("Critical: Failed to migrate session schema")
		}
		healthChecks["database"] = func(ctx context.Context) error {
			return db.PingContext(ctx)
		}
		log.Info("Database connected successfully.")
	}

	var sessions session.Provider
	switch cfg.Storage {
	case config.StoragePostgres, config.StorageCached:
		pg := storage.NewPostgresProvider(db)
		sessions = pg
		if cfg.Storage == config.StorageCached {
			sessions = storage.NewCachedProvider(pg, rdb, cfg.SessionTTL, log)
		}

		janitor := workers.NewSessionJanitor(pg, cfg.SessionTTL, cfg.JanitorInterval, log)
		janitor.Start(ctx)
		janitor.Enqueue()
	case config.StorageRedis:
		sessions = storage.NewRedisProvider(rdb, cfg.SessionTTL)
	default:
		mem := storage.NewMemoryProvider()
		sessions = mem

		janitor := workers.NewSessionJanitor(mem, cfg.SessionTTL, cfg.JanitorInterval, log)
		janitor.Start(ctx)
	}
	log.WithField("storage", cfg.Storage).Info("session storage ready")

	backend := upstream.NewClient(cfg.BackendURL, cfg.BackendTimeout, upstream.WithLogger(log))

	authService := services.NewAuthService(backend, log)
	studyService := services.NewStudyService(backend, nil, log)
	routineEditor := services.NewRoutineEditor(backend, log)
	goalService := services.NewGoalService(backend, nil, log)
	contactService := services.NewContactService(backend, log)
	tokenService := services.NewTokenService(cfg.SessionSecret, cfg.SessionIssuer, cfg.SessionTTL)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:    adapterHTTP.NewAuthHandler(authService),
		StudyHandler:   adapterHTTP.NewStudyHandler(studyService),
		RoutineHandler: adapterHTTP.NewRoutineHandler(routineEditor),
		GoalHandler:    adapterHTTP.NewGoalHandler(goalService),
		ContactHandler: adapterHTTP.NewContactHandler(contactService),
		TokenService:   tokenService,
		Sessions:       sessions,
		SecureCookies:  cfg.CookieSecure,
		AllowedOrigin:  cfg.CORSOrigin,
		Redis:          rdb,
		RateLimit:      cfg.RateLimit,
		RateWindow:     cfg.RateWindow,
		HealthChecks:   healthChecks,
		Logger:         log,
		StartTime:      startTime,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.BackendTimeout + 5*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infof("Niyam Buddy running on http://localhost:%s (backend %s)", cfg.Port, backend.BaseURL())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Critical server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Stop signal received. Shutting down...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Fatal("Forced shutdown error")
	}

	log.Info("Server stopped gracefully.")
}
