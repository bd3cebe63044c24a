// Package main is the entry point for the blog service.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/GunarsK-portfolio/blog-service/docs"
	"github.com/GunarsK-portfolio/blog-service/internal/config"
	"github.com/GunarsK-portfolio/blog-service/internal/database"
	"github.com/GunarsK-portfolio/blog-service/internal/handlers"
	"github.com/GunarsK-portfolio/blog-service/internal/metrics"
	"github.com/GunarsK-portfolio/blog-service/internal/middleware"
	"github.com/GunarsK-portfolio/blog-service/internal/repository"
	"github.com/GunarsK-portfolio/blog-service/internal/routes"
	"github.com/GunarsK-portfolio/blog-service/internal/service"
	"github.com/GunarsK-portfolio/blog-service/pkg/redis"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const shutdownTimeout = 10 * time.Second

// @title Blog Service API
// @version 1.0
// @description Blog backend: accounts, JWT auth, posts with unique slugs, comments and a comment-ranked top five.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	if err := run(); err != nil {
		slog.Error("blog service stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	defer func() { _ = sqlDB.Close() }()

	// Initialize Redis
	redisClient, err := redis.NewClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = redisClient.Close() }()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// Initialize services
	m := metrics.New(prometheus.DefaultRegisterer)
	jwtService, err := service.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry)
	if err != nil {
		return fmt.Errorf("failed to create JWT service: %w", err)
	}
	authService := service.NewAuthService(userRepo, jwtService, redisClient)
	postService := service.NewPostService(postRepo, m)
	commentService := service.NewCommentService(postRepo, commentRepo)

	// Initialize handlers
	h := routes.Handlers{
		Auth:    handlers.NewAuthHandler(authService),
		Posts:   handlers.NewPostHandler(postService, cfg.PageSize),
		Comment: handlers.NewCommentHandler(commentService, cfg.PageSize),
		Health: handlers.NewHealthHandler(map[string]handlers.Pinger{
			"database": handlers.PingFunc(sqlDB.PingContext),
			"redis": handlers.PingFunc(func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			}),
		}),
	}

	// Setup router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(logger), middleware.Metrics(m))
	routes.Setup(router, h, authService, cfg, prometheus.DefaultGatherer)

	// Start server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting blog service", "port", cfg.Port, "environment", cfg.Environment, "db_driver", cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down blog service")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

// newLogger writes JSON in production and text elsewhere.
func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
