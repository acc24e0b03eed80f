// README: Entry point; loads config, wires providers and optional backends, serves HTTP until signalled.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"voyage/internal/ai"
	"voyage/internal/config"
	httptransport "voyage/internal/http"
	"voyage/internal/infra"
	"voyage/internal/logging"
	"voyage/internal/maps"
	"voyage/internal/modules/aiusage"
	"voyage/internal/modules/itinerary"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatal(err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(cfg.Log.Level, !cfg.IsProduction())
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	providers, closeProviders, err := ai.BuildProviders(ctx, cfg.AI, logger)
	if err != nil {
		return fmt.Errorf("build providers: %w", err)
	}
	defer closeProviders()

	opts := itinerary.Options{MockDelay: cfg.AI.MockDelay}

	if cfg.Maps.APIKey != "" {
		places, err := maps.NewPlacesService(cfg.Maps.APIKey)
		if err != nil {
			return fmt.Errorf("maps init: %w", err)
		}
		opts.Highlights = places
	}

	usage, cleanup, err := buildUsage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()
	if usage.Enabled() {
		opts.Recorder = usage
	}

	svc := itinerary.NewService(providers, logger, opts)
	logger.Info("itinerary service ready",
		zap.Strings("providers", svc.Providers()),
		zap.Bool("highlights", opts.Highlights != nil),
		zap.Bool("usage", usage.Enabled()),
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httptransport.NewRouter(httptransport.RouterDeps{
		Itineraries:    svc,
		Usage:          usage,
		AI:             cfg.AI,
		CORSOrigins:    cfg.HTTP.CORSOrigins,
		RequestTimeout: cfg.HTTP.RequestTimeout,
		Logger:         logger,
	})
	server := httptransport.NewServer(cfg.HTTP.Addr, router, cfg.HTTP.RequestTimeout)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", zap.String("addr", server.Addr()))
		return server.ListenAndServe()
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// buildUsage connects whichever usage backends are configured.
func buildUsage(ctx context.Context, cfg config.Config, logger *zap.Logger) (*aiusage.Service, func(), error) {
	var (
		store   *aiusage.Store
		counter *aiusage.Counter
		closers []func()
	)
	cleanup := func() {
		for _, c := range closers {
			c()
		}
	}

	if cfg.DB.DSN != "" {
		db, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("db init: %w", err)
		}
		closers = append(closers, func() { _ = db.Close() })
		store = aiusage.NewStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("ensure schema: %w", err)
		}
	}
	if cfg.Redis.Addr != "" {
		rdb, err := infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("redis init: %w", err)
		}
		closers = append(closers, func() { _ = rdb.Close() })
		counter = aiusage.NewCounter(rdb)
	}

	return aiusage.NewService(store, counter, logger), cleanup, nil
}
