package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	apprationing "github.com/rationshop/backend/internal/application/rationing"
	appshop "github.com/rationshop/backend/internal/application/shop"
	"github.com/rationshop/backend/internal/domain/shared"
	"github.com/rationshop/backend/internal/infrastructure/auth"
	"github.com/rationshop/backend/internal/infrastructure/cache"
	"github.com/rationshop/backend/internal/infrastructure/config"
	"github.com/rationshop/backend/internal/infrastructure/event"
	"github.com/rationshop/backend/internal/infrastructure/logger"
	"github.com/rationshop/backend/internal/infrastructure/persistence"
	"github.com/rationshop/backend/internal/infrastructure/telemetry"
	"github.com/rationshop/backend/internal/interfaces/http/handler"
	"github.com/rationshop/backend/internal/interfaces/http/middleware"
	"github.com/rationshop/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	if err := run(cfg, log); err != nil {
		log.Fatal("Server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	log.Info("Starting rationshop backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Telemetry
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := loggerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down logger provider", zap.Error(err))
		}
	}()
	log = loggerProvider.Bridge(log, cfg.Telemetry.ServiceName, logger.ParseLevel(cfg.Log.Level))

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		return err
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:           cfg.Profiling.Enabled,
		ServerAddress:     cfg.Profiling.ServerAddress,
		ApplicationName:   cfg.Profiling.ApplicationName,
		ServiceVersion:    version,
		BasicAuthUser:     cfg.Profiling.BasicAuthUser,
		BasicAuthPassword: cfg.Profiling.BasicAuthPassword,
		MutexProfiles:     cfg.Profiling.MutexProfiles,
		BlockProfiles:     cfg.Profiling.BlockProfiles,
	}, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
	}()
	if cfg.Profiling.SpanProfiles && profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), cfg.Database.SlowQueryThresh)
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:          cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		DBName:           cfg.Database.DBName,
		IncludeVariables: cfg.App.Env == "development",
	}, log); err != nil {
		return err
	}
	log.Info("Database connected successfully")

	location, err := cfg.Rationing.Location()
	if err != nil {
		return err
	}

	// Repositories and services
	regionRepo := persistence.NewGormRegionRepository(db.DB)
	globalLimitRepo := persistence.NewGormGlobalLimitRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	usageCounter := persistence.NewGormUsageCounter(db.DB)

	eventSerializer := event.NewShopEventSerializer()
	txScope := persistence.NewGormTransactionScope(db.DB, eventSerializer)

	placementService := appshop.NewOrderPlacementService(cartRepo, orderRepo, regionRepo, txScope, log)
	placementService.SetLocation(location)
	if meterProvider.IsEnabled() {
		rationingMetrics, err := telemetry.NewRationingMetrics(meterProvider.Meter("rationshop.rationing"))
		if err != nil {
			return err
		}
		placementService.SetRationingMetrics(rationingMetrics)
	}

	usageService := apprationing.NewUsageService(regionRepo, globalLimitRepo, usageCounter)
	usageService.SetLocation(location)

	jwtService := auth.NewJWTService(cfg.JWT)

	// Idempotency store
	var idempotencyStore shared.IdempotencyStore
	if cfg.Idempotency.Enabled {
		factory := cache.NewIdempotencyStoreFactory(cfg.Redis, cfg.Idempotency,
			cache.WithLogger(log),
			cache.WithInMemoryFallback(cfg.App.Env != "production"),
		)
		idempotencyStore, err = factory.CreateStore(ctx)
		if err != nil {
			return err
		}
		defer func() {
			if err := idempotencyStore.Close(); err != nil {
				log.Error("Error closing idempotency store", zap.Error(err))
			}
		}()
	}

	// HTTP
	if err := middleware.SetupValidator(); err != nil {
		return err
	}
	engine, err := router.NewEngine(router.EngineConfig{
		Logger: log,
		HTTP:   cfg.HTTP,
		Tracing: middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     cfg.Telemetry.Enabled,
		},
		Metrics: middleware.HTTPMetricsConfig{
			MeterProvider: meterProvider,
			Enabled:       cfg.Telemetry.Enabled,
		},
	})
	if err != nil {
		return err
	}

	guards := router.Guards{
		Auth:     middleware.JWTAuth(middleware.JWTMiddlewareConfig{Validator: jwtService}),
		Admin:    middleware.RequireAdmin(),
		Annotate: middleware.TracingAttributes(),
	}
	var limiter *middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		limiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow, cfg.HTTP.RateLimitBurst)
		guards.RateLimit = middleware.RateLimit(limiter)
	}
	if idempotencyStore != nil {
		guards.Idempotency = middleware.Idempotency(middleware.IdempotencyConfig{
			Store: idempotencyStore,
			TTL:   cfg.Idempotency.TTL,
		})
	}

	handlers := router.Handlers{
		Orders:      handler.NewOrderHandler(placementService),
		Carts:       handler.NewCartHandler(appshop.NewCartService(cartRepo, productRepo, regionRepo)),
		Products:    handler.NewProductHandler(appshop.NewProductService(productRepo)),
		Regions:     handler.NewRegionHandler(apprationing.NewRegionService(regionRepo)),
		GlobalLimit: handler.NewGlobalLimitHandler(apprationing.NewGlobalLimitService(globalLimitRepo, log)),
		Usage:       handler.NewUsageHandler(usageService),
		System:      handler.NewSystemHandler(cfg.App.Name, version, db),
	}
	router.NewRouter(engine).Register(router.ShopGroups(handlers, guards)...).Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if limiter != nil {
		g.Go(func() error {
			ticker := time.NewTicker(cfg.HTTP.RateLimitWindow)
			defer ticker.Stop()
			for {
				select {
				case <-gctx.Done():
					return nil
				case <-ticker.C:
					limiter.Cleanup()
				}
			}
		})
	}

	if cfg.Outbox.Enabled {
		relay, closeRelay, err := newOutboxRelay(ctx, cfg, db, eventSerializer, log)
		if err != nil {
			return err
		}
		defer closeRelay()

		if err := relay.Start(gctx); err != nil {
			return err
		}
		g.Go(func() error {
			<-gctx.Done()
			stopCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
			defer cancel()
			return relay.Stop(stopCtx)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("Server exited")
	return nil
}

// newOutboxRelay connects the relay to Redis pub/sub. The returned func
// closes the Redis client.
func newOutboxRelay(ctx context.Context, cfg *config.Config, db *persistence.Database, serializer *event.EventSerializer, log *zap.Logger) (*event.OutboxRelay, func(), error) {
	client, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, err
	}

	relayCfg := event.DefaultOutboxRelayConfig()
	relayCfg.BatchSize = cfg.Outbox.BatchSize
	relayCfg.PollInterval = cfg.Outbox.PollInterval
	if cfg.Outbox.ChannelPrefix != "" {
		relayCfg.ChannelPrefix = cfg.Outbox.ChannelPrefix
	}
	if cfg.Outbox.CleanupRetention > 0 {
		relayCfg.CleanupRetention = cfg.Outbox.CleanupRetention
	}

	relay := event.NewOutboxRelay(
		event.NewGormOutboxRepository(db.DB),
		event.NewRedisPublisher(client),
		serializer,
		relayCfg,
		log,
	)
	log.Info("Outbox relay configured",
		zap.Int("batch_size", relayCfg.BatchSize),
		zap.Duration("poll_interval", relayCfg.PollInterval),
		zap.String("channel_prefix", relayCfg.ChannelPrefix),
	)

	return relay, func() {
		if err := client.Close(); err != nil {
			log.Error("Error closing redis client", zap.Error(err))
		}
	}, nil
}
