package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/hospital-api/internal/config"
	appointmentHandler "github.com/jwalitptl/hospital-api/internal/handler/appointment"
	bloodHandler "github.com/jwalitptl/hospital-api/internal/handler/blood"
	directoryHandler "github.com/jwalitptl/hospital-api/internal/handler/directory"
	"github.com/jwalitptl/hospital-api/internal/handler/health"
	organHandler "github.com/jwalitptl/hospital-api/internal/handler/organ"
	"github.com/jwalitptl/hospital-api/internal/handler/pages"
	promHandler "github.com/jwalitptl/hospital-api/internal/handler/prometheus"
	"github.com/jwalitptl/hospital-api/internal/middleware"
	"github.com/jwalitptl/hospital-api/internal/repository/sqldb"
	"github.com/jwalitptl/hospital-api/internal/router"
	appointmentService "github.com/jwalitptl/hospital-api/internal/service/appointment"
	bloodService "github.com/jwalitptl/hospital-api/internal/service/blood"
	directoryService "github.com/jwalitptl/hospital-api/internal/service/directory"
	eventService "github.com/jwalitptl/hospital-api/internal/service/event"
	organService "github.com/jwalitptl/hospital-api/internal/service/organ"
	"github.com/jwalitptl/hospital-api/pkg/logger"
	"github.com/jwalitptl/hospital-api/pkg/messaging"
	"github.com/jwalitptl/hospital-api/pkg/messaging/redis"
	"github.com/jwalitptl/hospital-api/pkg/metrics"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (default: search ., ./config, /app/config)")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if err := logger.Setup(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}); err != nil {
		log.Fatal().Err(err).Msg("failed to configure logger")
	}

	startCtx, cancelStart := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelStart()

	// Initialize database
	db, err := sqldb.NewDB(startCtx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.New("hospital", registry)

	// Domain events
	publisher := newPublisher(startCtx, cfg.Redis)
	defer publisher.Close()
	emitter := eventService.NewEmitter(publisher, appMetrics)

	// Initialize repositories
	appointmentRepo := sqldb.NewAppointmentRepository(db)
	bloodRepo := sqldb.NewBloodRepository(db)
	organRepo := sqldb.NewOrganRepository(db)
	directoryRepo := sqldb.NewDirectoryRepository(db)

	// Initialize services
	appointmentSvc := appointmentService.NewService(appointmentRepo, emitter, appMetrics, appointmentService.Config{
		SlotCapacity:   cfg.Booking.SlotCapacity,
		SerializeSlots: cfg.Booking.SerializeSlots,
	})
	bloodSvc := bloodService.NewService(bloodRepo, emitter)
	organSvc := organService.NewService(organRepo, emitter)
	directorySvc := directoryService.NewService(directoryRepo)

	handlers := router.Handlers{
		Appointment: appointmentHandler.NewHandler(appointmentSvc),
		Blood:       bloodHandler.NewHandler(bloodSvc),
		Organ:       organHandler.NewHandler(organSvc),
		Directory:   directoryHandler.NewHandler(directorySvc),
		Pages:       pages.NewHandler(cfg.Web.Root),
		Health:      health.NewHandler(db),
	}
	if cfg.Monitoring.Enabled {
		handlers.Metrics = promHandler.New(registry)
	}

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.CORS.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	}

	routerConfig := router.Config{
		LegacyEnabled: cfg.Legacy.Enabled,
		LegacyPrefix:  cfg.Legacy.Prefix,
		MetricsPath:   cfg.Monitoring.MetricsPath,
		CORS:          corsConfig,
		SizeLimit:     middleware.DefaultSizeLimitConfig(),
		Cache:         middleware.DefaultCacheConfig(),
		Metrics:       appMetrics,
	}
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			RPS:   cfg.RateLimit.RequestsPerSecond,
			Burst: cfg.RateLimit.Burst,
		})
		defer limiter.Stop()
		routerConfig.RateLimiter = limiter
	}

	// Setup router
	r := router.NewRouter(handlers, routerConfig)
	r.Setup()

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	go func() {
		log.Info().Int("port", cfg.Server.Port).Str("driver", cfg.Database.Driver).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}

// newPublisher returns the Redis publisher when redis.url is set. Events are
// best effort, so an unreachable Redis degrades to the no-op publisher.
func newPublisher(ctx context.Context, cfg config.RedisConfig) messaging.Publisher {
	if cfg.URL == "" {
		return messaging.NopPublisher{}
	}

	publisher, err := redis.NewPublisher(ctx, redis.Config{
		URL:            cfg.URL,
		ChannelPrefix:  cfg.ChannelPrefix,
		PublishTimeout: cfg.PublishTimeout,
		PoolSize:       cfg.PoolSize,
	}, log.Logger)
	if err != nil {
		log.Warn().Err(err).Msg("events disabled: redis unavailable")
		return messaging.NopPublisher{}
	}
	return publisher
}
