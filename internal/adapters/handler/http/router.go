package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/comitanigiacomo/niyam-buddy/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/niyam-buddy/internal/core/services"
	"github.com/comitanigiacomo/niyam-buddy/internal/core/session"
)

// HealthCheck reports whether one dependency is reachable.
type HealthCheck func(ctx context.Context) error

type RouterDependencies struct {
	AuthHandler    *AuthHandler
	StudyHandler   *StudyHandler
	RoutineHandler *RoutineHandler
	GoalHandler    *GoalHandler
	ContactHandler *ContactHandler
	TokenService   *services.TokenService
	Sessions       session.Provider
	SecureCookies  bool
	AllowedOrigin  string
	Redis          *redis.Client
	RateLimit      int
	RateWindow     time.Duration
	HealthChecks   map[string]HealthCheck
	Logger         *logrus.Entry
	StartTime      time.Time
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(deps.Logger))

	origin := deps.AllowedOrigin
	if origin == "" {
		origin = "*"
	}
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		if origin != "*" {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	if deps.Redis != nil && deps.RateLimit > 0 {
		router.Use(middleware.RateLimiter(deps.Redis, deps.RateLimit, deps.RateWindow, deps.Logger))
	}

	router.GET("/health", func(c *gin.Context) {
		statusCode := http.StatusOK
		checks := gin.H{}
		for name, check := range deps.HealthChecks {
			checks[name] = "connected"
			if err := check(c.Request.Context()); err != nil {
				checks[name] = "unreachable"
				statusCode = http.StatusServiceUnavailable
			}
		}

		c.JSON(statusCode, gin.H{
			"status":       "ok",
			"dependencies": checks,
			"uptime":       time.Since(deps.StartTime).String(),
		})
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	app := router.Group("/app")
	app.Use(middleware.Session(middleware.SessionConfig{
		Tokens:   deps.TokenService,
		Provider: deps.Sessions,
		Secure:   deps.SecureCookies,
		Logger:   deps.Logger,
	}))

	registerPageRoutes(app)

	protected := app.Group("")
	protected.Use(middleware.RequireAuth())
	{
		deps.AuthHandler.RegisterRoutes(app, protected)
		deps.StudyHandler.RegisterRoutes(protected)
		deps.RoutineHandler.RegisterRoutes(protected)
		deps.GoalHandler.RegisterRoutes(protected)
		deps.ContactHandler.RegisterRoutes(protected)
	}

	return router
}
