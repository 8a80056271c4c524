// Package server contains the HTTP handlers rendering the application's pages
// and its single JSON endpoint.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"chirp/internal/cache"
	"chirp/internal/config"
	"chirp/internal/database"
	"chirp/internal/media"
	"chirp/internal/middleware"
	"chirp/internal/models"
	"chirp/internal/repository"
	"chirp/internal/service"
	"chirp/internal/session"
	"chirp/internal/view"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	renderer       *view.Renderer
	media          *media.Storage
	sessions       *session.Store
	userRepo       repository.UserRepository
	tweetRepo      repository.TweetRepository
	userService    *service.UserService
	tweetService   *service.TweetService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Tests use this to inject an in-memory database and a miniredis client.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("template parsing failed: %w", err)
	}

	storage, err := media.NewStorage(cfg.MediaRoot)
	if err != nil {
		return nil, fmt.Errorf("media storage setup failed: %w", err)
	}

	// Point the cache package at the injected client so the repositories'
	// cache-aside paths run against it (miniredis under test).
	cache.SetClient(redisClient)

	userRepo := repository.NewUserRepository(db)
	tweetRepo := repository.NewTweetRepository(db)

	// The Prometheus HTTP collectors live in the process-global registry, so
	// they are created once per process, never per test server.
	var prom *fiberprometheus.FiberPrometheus
	if cfg.Env != "test" {
		prom = middleware.InitMetrics("chirp")
	}

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		renderer:       renderer,
		media:          storage,
		sessions: session.NewStore(redisClient, cfg.SessionSecret,
			time.Duration(cfg.SessionTTLMin)*time.Minute),
		userRepo:  userRepo,
		tweetRepo: tweetRepo,
	}
	server.userService = service.NewUserService(userRepo)
	server.tweetService = service.NewTweetService(tweetRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID and user ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))

	// Session resolution for every route; enforcement is per-route.
	app.Use(s.LoadSession())
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Embedded assets and uploaded media
	app.Use("/static", filesystem.New(filesystem.Config{
		Root:       view.StaticFS(),
		PathPrefix: "static",
		MaxAge:     3600,
	}))
	app.Static("/media", s.media.Root())

	// Feed and tweets
	app.Get("/", s.Feed)
	app.Get("/tweets/new", s.ShowCompose)
	app.Post("/tweets", s.AuthRequired(), middleware.RateLimit(
		s.redis, 15, time.Minute, "compose"), s.CreateTweet)
	app.Post("/tweets/likes", s.AuthRequired(), s.LikeTweet)
	app.Get("/tweets/:id", s.ShowTweet)

	// Accounts. Fixed /users/* paths are registered before the :username
	// catch-all so profile lookup never shadows them.
	app.Get("/users/login", s.ShowLogin)
	app.Post("/users/authentication", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Authenticate)
	app.Get("/users/logout", s.Logout)
	app.Post("/users/logout", s.Logout)
	app.Get("/users/new", s.ShowRegister)
	app.Post("/users", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.Register)
	app.Get("/users/edit", s.AuthRequired(), s.ShowEditProfile)
	app.Post("/users/:id<int>", s.AuthRequired(), s.UpdateProfile)
	app.Get("/users/:username", s.ShowProfile)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	// Redis is optional: sessions degrade to stateless JWT validation.
	redisStatus := "unavailable"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" || redisStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// App builds the Fiber application with middleware and routes attached.
func (s *Server) App() *fiber.App {
	if s.app != nil {
		return s.app
	}

	app := fiber.New(fiber.Config{
		AppName:      "chirp",
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: s.errorHandler,
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// errorHandler turns handler errors into the right response shape: JSON for
// the like endpoint, a dedicated error page for everything else.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError

	var fiberErr *fiber.Error
	var appErr *models.AppError
	switch {
	case errors.As(err, &fiberErr):
		status = fiberErr.Code
	case errors.As(err, &appErr):
		switch appErr.Code {
		case "NOT_FOUND":
			status = fiber.StatusNotFound
		case "VALIDATION_ERROR":
			status = fiber.StatusBadRequest
		case "UNAUTHORIZED":
			status = fiber.StatusForbidden
		}
	}

	if status >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "unhandled request error",
			"path", c.Path(), "error", err.Error())
	}

	if c.Path() == "/tweets/likes" {
		return models.RespondWithError(c, status, err)
	}
	if renderErr := s.renderErrorPage(c, status); renderErr != nil {
		return c.Status(status).SendString("Something went wrong.")
	}
	return nil
}

// Start starts the server
func (s *Server) Start() error {
	app := s.App()
	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
