package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vidtube-api/config"
	"vidtube-api/db"
	"vidtube-api/handler"
	"vidtube-api/logger"
	"vidtube-api/repository"
	"vidtube-api/router"
	"vidtube-api/service"
	"vidtube-api/storage"
)

// Deps are the external resources the application is built on.
type Deps struct {
	DB    *sql.DB
	Cache service.ICacheClient
	Media storage.MediaStore
}

// App is a fully wired application. Tests build it with New and drive Router.
type App struct {
	Config  *config.Config
	DB      *sql.DB
	Router  http.Handler
	limiter *handler.RateLimiter
}

// New wires repositories, services and handlers on top of deps.
func New(cfg *config.Config, deps Deps) *App {
	// Layers for users and sessions
	userRepo := repository.NewUserRepository(deps.DB)
	tokenRepo := repository.NewTokenRepository(deps.DB)
	videoRepo := repository.NewVideoRepository(deps.DB)
	tokens := service.NewTokenManager(cfg.JWT)
	authService := service.NewAuthService(userRepo, tokenRepo, deps.Media, tokens)
	userService := service.NewUserService(userRepo, videoRepo, deps.Media)

	stats := service.NewStatsCache(deps.Cache, cfg.Cache.StatsTTL)

	// Layers for content
	commentRepo := repository.NewCommentRepository(deps.DB)
	tweetRepo := repository.NewTweetRepository(deps.DB)
	videoService := service.NewVideoService(videoRepo, deps.Media, stats)
	commentService := service.NewCommentService(commentRepo, videoRepo)
	tweetService := service.NewTweetService(tweetRepo, userRepo)
	likeService := service.NewLikeService(repository.NewLikeRepository(deps.DB), videoRepo, commentRepo, tweetRepo, stats)
	playlistService := service.NewPlaylistService(repository.NewPlaylistRepository(deps.DB), videoRepo, userRepo)
	subscriptionService := service.NewSubscriptionService(repository.NewSubscriptionRepository(deps.DB), userRepo, stats)
	dashboardService := service.NewDashboardService(repository.NewDashboardRepository(deps.DB), videoRepo, stats)

	maxUpload := cfg.Server.MaxUploadMB << 20
	metrics := handler.NewMetrics()
	limiter := handler.NewRateLimiter(cfg.RateLimit.AuthPerMinute, cfg.RateLimit.AuthBurst)
	cookies := handler.NewSessionCookies(cfg.Cookie, cfg.JWT)

	r := router.NewRouter(router.Handlers{
		Auth:          authService,
		Metrics:       metrics,
		AuthLimiter:   limiter,
		Health:        handler.NewHealthHandler(deps.DB),
		Users:         handler.NewUserHandler(authService, userService, cookies, metrics, maxUpload),
		Videos:        handler.NewVideoHandler(videoService, maxUpload),
		Comments:      handler.NewCommentHandler(commentService),
		Likes:         handler.NewLikeHandler(likeService),
		Playlists:     handler.NewPlaylistHandler(playlistService),
		Subscriptions: handler.NewSubscriptionHandler(subscriptionService),
		Tweets:        handler.NewTweetHandler(tweetService),
		Dashboard:     handler.NewDashboardHandler(dashboardService),
	})

	return &App{Config: cfg, DB: deps.DB, Router: r, limiter: limiter}
}

// Close stops background work. The caller owns the resources in Deps.
func (a *App) Close() {
	a.limiter.Stop()
}

// Run loads the configuration, connects to every backing service and serves until
// SIGINT or SIGTERM.
func Run(configPath string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	logger.Log.Info("Configuration loaded successfully")

	ctx := context.Background()

	database, err := db.Connect(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	deps := Deps{DB: database}

	if cfg.Redis.Enabled {
		rdb, err := db.ConnectRedis(ctx, cfg)
		if err != nil {
			return err
		}
		defer rdb.Close()
		deps.Cache = rdb
	} else {
		logger.Log.Warn("Redis is disabled, dashboard stats will not be cached")
	}

	media, err := storage.NewS3MediaStore(ctx, cfg.Media)
	if err != nil {
		return err
	}
	deps.Media = media

	application := New(cfg, deps)
	defer application.Close()

	return serve(application, cfg)
}

func serve(application *App, cfg *config.Config) error {
	port := cfg.Server.Port
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      application.Router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Log.Info("Server exited properly")
	return nil
}

// Migrate applies (up) or rolls back (down, steps at a time) the schema.
func Migrate(configPath, direction string, steps int) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format)

	switch direction {
	case "up":
		return db.MigrateUp(cfg.MigrationURL())
	case "down":
		return db.MigrateDown(cfg.MigrationURL(), steps)
	}
	return fmt.Errorf("unknown migration direction %q", direction)
}
