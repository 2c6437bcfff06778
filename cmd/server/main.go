package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appfundraising "github.com/madadgar/backend/internal/application/fundraising"
	appgiving "github.com/madadgar/backend/internal/application/giving"
	"github.com/madadgar/backend/internal/infrastructure/auth"
	"github.com/madadgar/backend/internal/infrastructure/cache"
	"github.com/madadgar/backend/internal/infrastructure/config"
	"github.com/madadgar/backend/internal/infrastructure/event"
	"github.com/madadgar/backend/internal/infrastructure/logger"
	"github.com/madadgar/backend/internal/infrastructure/persistence"
	"github.com/madadgar/backend/internal/infrastructure/storage"
	"github.com/madadgar/backend/internal/infrastructure/telemetry"
	"github.com/madadgar/backend/internal/interfaces/http/handler"
	"github.com/madadgar/backend/internal/interfaces/http/middleware"
	"github.com/madadgar/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
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
		_ = logger.Sync(log)
	}()

	log.Info("Starting Madadgar Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()

	ctx := context.Background()

	// Initialize OpenTelemetry tracing
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}()

	// Initialize OpenTelemetry metrics
	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Failed to shutdown meter provider", zap.Error(err))
		}
	}()

	// Register database query tracing when enabled
	if cfg.Telemetry.DBTraceEnabled {
		dbTracingCfg := telemetry.DefaultDBTracingConfig()
		dbTracingCfg.Enabled = true
		dbTracingCfg.LogFullSQL = cfg.App.Env != "production"
		if err := telemetry.NewDBTracingPlugin(dbTracingCfg, log).Register(db.DB); err != nil {
			log.Error("Failed to register database tracing", zap.Error(err))
		}
	}

	// Business metrics recorded from domain events
	meter := meterProvider.Meter("madadgar-backend")
	businessMetrics, err := telemetry.NewBusinessMetrics(meter, log)
	if err != nil {
		log.Fatal("Failed to initialize business metrics", zap.Error(err))
	}

	// Event serialization and transactional outbox
	serializer := event.NewEventSerializer()
	event.RegisterAllEvents(serializer)

	outboxPublisher := event.NewOutboxPublisher(serializer)
	outboxRepo := event.NewGormOutboxRepository(db.DB)

	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewIdempotentHandler(
		event.NewBusinessMetricsHandler(businessMetrics),
		event.NewInMemoryProcessedEventStore(),
		log,
	))
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	outboxProcessor := event.NewOutboxProcessor(
		outboxRepo,
		eventBus,
		serializer,
		event.DefaultOutboxProcessorConfig(),
		log,
	)
	if err := outboxProcessor.Start(ctx); err != nil {
		log.Fatal("Failed to start outbox processor", zap.Error(err))
	}

	// Initialize repositories; fundraiser and donation writes drain
	// their domain events into the outbox within the same transaction
	fundraiserRepo := persistence.NewGormFundraiserRepository(db.DB)
	fundraiserRepo.SetEventSaver(outboxPublisher)
	donationRepo := persistence.NewGormDonationRepository(db.DB)
	donationRepo.SetEventSaver(outboxPublisher)
	payoutRepo := persistence.NewGormPayoutMethodConfigRepository(db.DB)

	// Idempotency store for donation intake, Redis with in-memory fallback
	idempotencyStore, err := cache.NewIdempotencyStoreFactory(cfg.Redis,
		cache.WithLogger(log),
	).CreateStore()
	if err != nil {
		log.Fatal("Failed to initialize idempotency store", zap.Error(err))
	}

	// Object storage for cover images and supporting documents
	var objectStorage appfundraising.ObjectStorageService
	if cfg.Storage.Bucket != "" {
		objectStorage, err = storage.NewS3ObjectStorage(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
	} else {
		log.Warn("Storage bucket not configured, using stub object storage")
		objectStorage = storage.NewStubObjectStorage()
	}

	// Initialize application services
	fundraiserService := appfundraising.NewFundraiserService(fundraiserRepo, payoutRepo, donationRepo)
	fundraiserService.SetEventPublisher(eventBus)
	fundraiserService.SetBusinessMetrics(businessMetrics)
	payoutService := appfundraising.NewPayoutService(fundraiserRepo, payoutRepo)
	discoveryService := appfundraising.NewDiscoveryService(fundraiserRepo, donationRepo)
	mediaService := appfundraising.NewMediaService(fundraiserRepo, objectStorage, cfg.Storage.URLExpiry)

	donationService := appgiving.NewDonationService(donationRepo, fundraiserRepo)
	donationService.SetIdempotencyStore(idempotencyStore)
	donationService.SetEventPublisher(eventBus)
	donationService.SetBusinessMetrics(businessMetrics)

	// Initialize JWT service and token blacklist
	jwtService := auth.NewJWTService(cfg.JWT)

	var tokenBlacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis token blacklist unavailable, falling back to in-memory", zap.Error(err))
		tokenBlacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		tokenBlacklist = redisBlacklist
	}

	// Initialize HTTP handlers
	systemHandler := handler.NewSystemHandler()
	systemHandler.SetReadinessCheck(db.Ping)

	handlers := router.Handlers{
		System:     systemHandler,
		Fundraiser: handler.NewFundraiserHandler(fundraiserService),
		Payout:     handler.NewPayoutHandler(payoutService),
		Donation:   handler.NewDonationHandler(donationService),
		Discovery:  handler.NewDiscoveryHandler(discoveryService),
		Media:      handler.NewMediaHandler(mediaService),
	}

	// Assemble the HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Failed to set trusted proxies", zap.Error(err))
	}

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	router.Setup(engine, router.Config{
		Handlers:       handlers,
		JWTService:     jwtService,
		TokenBlacklist: tokenBlacklist,
		MeterProvider:  meterProvider,
		Logger:         log,
		TracingEnabled: cfg.Telemetry.Enabled,
		CORS:           &corsCfg,
		MaxBodyBytes:   cfg.HTTP.MaxBodySize,
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := outboxProcessor.Stop(shutdownCtx); err != nil {
		log.Error("Failed to stop outbox processor", zap.Error(err))
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Error("Failed to stop event bus", zap.Error(err))
	}

	log.Info("Server exited")
}
