// Package main is the entry point for the drivetime bot server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/joho/godotenv"

	"github.com/pkordes/drivetime/internal/config"
	"github.com/pkordes/drivetime/internal/handler"
	"github.com/pkordes/drivetime/internal/line"
	"github.com/pkordes/drivetime/internal/maps"
	"github.com/pkordes/drivetime/internal/middleware"
	"github.com/pkordes/drivetime/internal/repo"
	"github.com/pkordes/drivetime/internal/service"
	"github.com/pkordes/drivetime/migrations"
)

// maxWebhookBytes caps every request body.
const maxWebhookBytes = 1 << 20

func main() {
	// --- Config -----------------------------------------------------------
	// A .env file is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("could not read .env", "error", err)
	}
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}
	linkPolicy, err := service.ParseLinkPolicy(cfg.LinkPolicy)
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Origin store -----------------------------------------------------
	// Postgres when DATABASE_URL is set, otherwise in memory.
	origins := repo.NewMemoryOriginRepo()
	if cfg.DatabaseURL != "" {
		pool, err := openStore(context.Background(), cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to open origin store", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		origins = repo.NewPostgresOriginRepo(pool)
		slog.Info("origin store: postgres")
	} else {
		slog.Info("origin store: memory; origins are lost on restart")
	}

	// --- Pipeline ---------------------------------------------------------
	mapsClient := maps.NewClient(maps.Config{
		APIKey:  cfg.MapsAPIKey,
		Timeout: cfg.ProviderTimeout,
	})
	resolver := service.NewResolver(mapsClient, service.ResolverConfig{
		Language: cfg.MapsLanguage,
		Bias:     cfg.MapsBias,
		Timeout:  cfg.ProviderTimeout,
		CacheTTL: cfg.PlaceCacheTTL,
	}, logger)
	estimator := service.NewEstimator(mapsClient, service.EstimatorConfig{
		Language:   cfg.MapsLanguage,
		Region:     cfg.MapsRegion,
		Banner:     cfg.Banner,
		Timeout:    cfg.ProviderTimeout,
		LinkPolicy: linkPolicy,
	}, logger)
	planner := service.NewPlanner(resolver, estimator)
	router := service.NewRouter(origins, cfg.Presets, planner, logger)

	lineClient := line.NewClient(line.ClientConfig{
		AccessToken: cfg.LineAccessToken,
		Timeout:     cfg.ProviderTimeout,
	})

	// One webhook event makes up to two provider calls and one reply call.
	// PostCallback grants each event this budget, so a batch of events is
	// not bounded by the server's WriteTimeout.
	eventBudget := 3*cfg.ProviderTimeout + 5*time.Second

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer → MaxBody.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewMaxBodySizeHandler(maxWebhookBytes))

	handler.NewServer(handler.Deps{
		Events:        router,
		Replies:       lineClient,
		Trips:         planner,
		Presets:       cfg.Presets,
		ChannelSecret: cfg.LineChannelSecret,
		EventTimeout:  eventBudget,
		Log:           logger,
	}).Mount(r, middleware.NewCORSHandler(cfg.CORSOrigins))

	// --- HTTP Server ------------------------------------------------------
	// WriteTimeout covers a single-event webhook; the callback handler
	// extends it per event for batches.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: eventBudget,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// openStore connects to Postgres, verifies it is reachable, and applies
// pending migrations before any traffic is accepted.
func openStore(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	// goose needs database/sql rather than a pgx pool.
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		pool.Close()
		return nil, err
	}
	defer db.Close()
	if err := migrations.Up(ctx, db); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
