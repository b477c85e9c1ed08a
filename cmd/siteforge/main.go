// Package main is the entry point for the SiteForge server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"siteforge/internal/audit"
	"siteforge/internal/blocks"
	"siteforge/internal/cache"
	"siteforge/internal/config"
	"siteforge/internal/database"
	"siteforge/internal/handlers"
	"siteforge/internal/render"
	"siteforge/internal/resolver"
	"siteforge/internal/router"
	"siteforge/internal/storage"
	"siteforge/internal/store"
)

func main() {
	// Structured logger — outputs JSON in production, text in development.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"root_domain", cfg.RootDomain,
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (Redis-compatible cache for rendered pages).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	pageCache := cache.NewPageCache(valkeyClient, cfg.PageCacheTTL)

	// Connect to S3-compatible object storage (optional — sites work
	// without it, the upload endpoint just reports 503).
	var storageClient *storage.Client
	if cfg.S3Endpoint != "" && cfg.S3AccessKey != "" {
		storageClient, err = storage.New(
			cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3Bucket, cfg.S3PublicURL,
		)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		if storageClient != nil {
			slog.Info("s3 storage connected",
				"endpoint", cfg.S3Endpoint,
				"bucket", cfg.S3Bucket,
			)
		}
	} else {
		slog.Warn("s3 storage not configured — asset uploads disabled")
	}

	// Block registry with the built-in palette, shared by validation
	// on the write path and rendering on the read path.
	registry, err := blocks.Builtin()
	if err != nil {
		slog.Error("failed to build block registry", "error", err)
		os.Exit(1)
	}

	// Initialize data stores.
	siteStore := store.NewSiteStore(db)
	pageStore := store.NewPageStore(db)
	auditStore := store.NewAuditStore(db)
	analyticsStore := store.NewAnalyticsStore(db)

	// Audit trail: recorded off the request path, purged daily after 90 days.
	recorder := audit.NewRecorder(auditStore)
	auditCtx, stopAudit := context.WithCancel(context.Background())
	defer stopAudit()
	go recorder.PurgeLoop(auditCtx, 24*time.Hour, 90*24*time.Hour)

	renderer := render.New(registry)
	res := resolver.New(siteStore, pageStore, cfg.RootDomain)

	// Create handler groups with their dependencies.
	sitesHandlers := handlers.NewSites(siteStore, pageStore, analyticsStore, pageCache, recorder)
	pagesHandlers := handlers.NewPages(pageStore, siteStore, registry, pageCache, recorder)
	blocksHandlers := handlers.NewBlocks(registry)
	uploadsHandlers := handlers.NewUploads(storageClient)
	publicHandlers := handlers.NewPublic(res, renderer, siteStore, analyticsStore, pageCache)

	// Set up the Chi router with all middleware and routes.
	r := router.New(sitesHandlers, pagesHandlers, blocksHandlers, uploadsHandlers, publicHandlers)

	// Create the HTTP server with sensible timeouts.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
