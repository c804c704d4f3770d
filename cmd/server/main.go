// @title           Marketing Studio Backend API
// @version         1.0.0
// @description     Backend API for the marketing content studio: projects, prompt presets, user profiles, content generation and the per-project image gallery.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"marketing-studio-backend/docs"
	"marketing-studio-backend/internal/auth"
	"marketing-studio-backend/internal/config"
	"marketing-studio-backend/internal/dashboard"
	"marketing-studio-backend/internal/database"
	"marketing-studio-backend/internal/gallery"
	"marketing-studio-backend/internal/handlers"
	"marketing-studio-backend/internal/imagegen"
	"marketing-studio-backend/internal/middleware"
	"marketing-studio-backend/internal/router"
	"marketing-studio-backend/internal/services"
	"marketing-studio-backend/internal/store"
	"marketing-studio-backend/internal/supabase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Update Swagger docs with dynamic base URL
	if cfg.BaseURL != "" {
		if baseURL, err := url.Parse(cfg.BaseURL); err == nil {
			docs.SwaggerInfo.Host = baseURL.Host
			if baseURL.Scheme == "https" {
				docs.SwaggerInfo.Schemes = []string{"https", "http"}
			} else {
				docs.SwaggerInfo.Schemes = []string{"http", "https"}
			}
		}
	}

	checks := map[string]handlers.HealthCheck{}
	var closers []io.Closer
	defer func() {
		for _, c := range closers {
			c.Close()
		}
	}()

	backend, err := openStoreBackend(ctx, cfg, logger, checks, &closers)
	if err != nil {
		return err
	}
	projects := store.NewClient(backend, logger.With("component", "store"))

	blob, err := openGalleryBlob(cfg, checks, &closers)
	if err != nil {
		return err
	}
	galleryStore := gallery.NewStore(blob, logger.With("component", "gallery"))

	storageClient := supabase.NewStorageClient(cfg.SupabaseURL, cfg.DataAPIKey(), cfg.SupabaseStorageBucket)
	realtimeClient := supabase.NewRealtimeClient(cfg.SupabaseURL, cfg.DataAPIKey())
	generator := imagegen.NewClient(cfg.ImageGenURL, cfg.ImageGenTimeout)

	generations := services.NewGenerationService(
		generator,
		galleryStore,
		projects,
		storageClient,
		realtimeClient,
		logger.With("component", "generations"),
	)

	authClient, err := supabase.NewClient(cfg)
	if err != nil {
		return err
	}
	authService := auth.NewService(supabase.NewAuthProvider(authClient), projects, logger.With("component", "auth"))

	sessions := dashboard.NewRegistry()

	engine := router.New(cfg, logger, router.Handlers{
		Health:    handlers.NewHealthHandler(checks),
		Auth:      handlers.NewAuthHandler(authService, sessions),
		Projects:  handlers.NewProjectsHandler(projects, generations),
		Presets:   handlers.NewPresetsHandler(projects),
		Users:     handlers.NewUsersHandler(projects),
		Gallery:   handlers.NewGalleryHandler(projects, galleryStore, generations),
		Generate:  handlers.NewGenerateHandler(projects, generations),
		Dashboard: handlers.NewDashboardHandler(projects, sessions),
	})

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           middleware.CORS(cfg.CORSOrigins, engine),
		ReadHeaderTimeout: 10 * time.Second,
		// Generation requests wait on the remote endpoint.
		WriteTimeout: cfg.ImageGenTimeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server starting", "addr", httpServer.Addr, "store", cfg.StoreBackend, "gallery", cfg.GalleryBackend)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("api server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func openStoreBackend(ctx context.Context, cfg *config.Config, logger *slog.Logger, checks map[string]handlers.HealthCheck, closers *[]io.Closer) (store.Backend, error) {
	switch cfg.StoreBackend {
	case config.StoreBackendMemory:
		logger.Warn("using in-memory store; data is lost on restart")
		return store.NewMemoryBackend(), nil

	case config.StoreBackendPostgres:
		migrator, err := database.NewMigrator(cfg.DatabaseURL, logger.With("component", "migrator"))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize migrator: %w", err)
		}
		err = migrator.Run(ctx)
		migrator.Close()
		if err != nil {
			return nil, fmt.Errorf("migration failed: %w", err)
		}

		db, err := supabase.NewDatabaseClient(cfg.DatabaseURL, cfg.OrderedQueryTimeout)
		if err != nil {
			return nil, err
		}
		*closers = append(*closers, db)
		checks["database"] = db.Ping
		return db, nil

	default:
		client, err := supabase.NewServiceClient(cfg)
		if err != nil {
			return nil, err
		}
		if cfg.SupabaseServiceRoleKey == "" {
			logger.Warn("SUPABASE_SERVICE_ROLE_KEY not set; table access uses the publishable key")
		}
		return supabase.NewRestBackend(client), nil
	}
}

func openGalleryBlob(cfg *config.Config, checks map[string]handlers.HealthCheck, closers *[]io.Closer) (gallery.Blob, error) {
	switch cfg.GalleryBackend {
	case config.GalleryBackendRedis:
		client, err := gallery.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		*closers = append(*closers, client)
		checks["gallery"] = func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}
		return gallery.NewRedisBlob(client), nil

	case config.GalleryBackendSQLite:
		blob, err := gallery.NewSQLiteBlob(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		*closers = append(*closers, blob)
		return blob, nil

	default:
		return gallery.NewFileBlob(cfg.GalleryDir)
	}
}
