package main

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/config"
	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/handler"
	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/health"
	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/infra/alarmqueue"
	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/infra/configsource"
	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/infra/deliveryrecorder"
	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/infra/repository"
	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/observability/logging"
	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/observability/metrics"
	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/observability/middleware"
	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/service/delivery"
	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/service/ledger"
	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/service/planner"
	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/service/selector"
	"github.com/KasumiMercury/sentinote-notification-scheduling/internal/trigger"
)

// Version is set via ldflags at build time
var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	obs, err := initObservability(ctx)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	if err := cfg.AlarmQueue.Validate(); err != nil {
		slog.Error("alarm queue configuration error", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	schedulerMetrics, err := metrics.NewSchedulerMetrics()
	if err != nil {
		slog.Error("failed to initialize scheduler metrics", slog.String("error", err.Error()))
		return 1
	}

	// Delivery recorder (InfluxDB for local, BigQuery for gcloud)
	recorderCfg := deliveryrecorder.LoadConfig()
	recorder, err := deliveryrecorder.NewRecorder(ctx, recorderCfg)
	if err != nil {
		slog.Error("failed to initialize delivery recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := recorder.Close(); err != nil {
			slog.Warn("failed to close delivery recorder", slog.String("error", err.Error()))
		}
	}()

	redisOpts := &redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	if cfg.Redis.TLS {
		redisOpts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	redisClient := redis.NewClient(redisOpts)

	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		slog.Error("failed to instrument redis tracing",
			slog.String("event", "redis.otel.tracing.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		slog.Error("failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Warn("failed to close redis client", slog.String("error", err.Error()))
		}
	}()

	slog.Info("redis connected",
		slog.String("addr", cfg.Redis.Addr),
	)

	historyRepo := repository.NewHistoryRepository(redisClient)
	seenRepo := repository.NewSeenRepository(redisClient)
	configCacheRepo := repository.NewConfigCacheRepository(redisClient)
	scheduleRepo := repository.NewScheduleRepository(redisClient)

	configProvider := configsource.NewProvider(
		configsource.NewClient(cfg.ConfigSourceURL),
		configCacheRepo,
		cfg.ConfigFetchTimeout,
	)

	alarmQueue, localQueue, cleanup, err := initAlarmQueue(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize alarm queue", slog.String("error", err.Error()))
		return 1
	}
	if cleanup != nil {
		defer func() {
			if err := cleanup(); err != nil {
				slog.Error("alarm queue cleanup error", slog.String("error", err.Error()))
			}
		}()
	}

	rng := newRand(cfg.Schedule.RandomSeed)

	contentSelector := selector.New(rng)
	ledgerService := ledger.NewService(
		historyRepo,
		seenRepo,
		schedulerMetrics,
		cfg.Schedule.HistoryRetentionLimit,
		nil,
	)
	plannerService := planner.NewService(
		alarmQueue,
		scheduleRepo,
		recorder,
		schedulerMetrics,
		cfg.Schedule.Location(),
		cfg.Schedule.RequestCodeBase,
		config.RequestCodeRange,
		nil,
		rng,
	)
	deliveryService := delivery.NewService(
		configProvider,
		contentSelector,
		ledgerService,
		plannerService,
		recorder,
		schedulerMetrics,
		nil,
	)

	dispatcher := trigger.NewDispatcher()

	replan := func(ctx context.Context, event trigger.Event) error {
		scheduleConfig := configProvider.Refresh(ctx)
		if !event.Now.IsZero() {
			_, err := plannerService.ScheduleAllAt(ctx, scheduleConfig, event.Now)
			return err
		}
		_, err := plannerService.ScheduleAll(ctx, scheduleConfig)
		return err
	}
	dispatcher.Register(trigger.KindBoot, replan)
	dispatcher.Register(trigger.KindPeriodicSync, replan)
	dispatcher.Register(trigger.KindAlarmFired, func(ctx context.Context, event trigger.Event) error {
		_, err := deliveryService.HandleFire(ctx, event.RequestCode, event.RunID, event.ForcedMessageID)
		return err
	})

	// The in-process queue delivers firings straight to the dispatcher
	// instead of calling back over HTTP.
	if localQueue != nil {
		bindLocalQueue(localQueue, dispatcher)
	}

	// Re-establish the alarm schedule lost by the restart.
	if err := dispatcher.Dispatch(ctx, trigger.Event{Kind: trigger.KindBoot}); err != nil {
		slog.Warn("boot planning pass failed, waiting for next sync",
			slog.String("error", err.Error()),
		)
	}

	go runPeriodicSync(ctx, dispatcher, cfg.SyncInterval)

	scheduleHandler := handler.NewScheduleHandler(dispatcher)
	fireHandler := handler.NewFireHandler(dispatcher)
	historyHandler := handler.NewHistoryHandler(ledgerService)

	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:  []string{"/health", "/health/live", "/health/ready", "/metrics"},
		Module:     logging.Module("notification-scheduling"),
		Worker:     true,
		TracerName: "github.com/KasumiMercury/sentinote-notification-scheduling/internal/observability/middleware",
		JobNameResolver: func(c *gin.Context) string {
			if eventType := c.Request.Header.Get("event_type"); eventType != "" {
				return eventType
			}
			return c.Request.URL.Path
		},
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	healthChecker := health.NewChecker(redisClient, Version)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	v1 := r.Group("/api/v1")
	{
		v1.POST("/schedule/sync", scheduleHandler.HandleSync)
		v1.POST("/schedule/boot", scheduleHandler.HandleBoot)
		v1.POST("/alarm/fire", fireHandler.HandleFire)
		v1.GET("/history", historyHandler.HandleGetHistory)
		v1.POST("/history/:id/annotation", historyHandler.HandleUpdateAnnotation)
		v1.POST("/history/:id/notes", historyHandler.HandleAddNote)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.String("timezone", cfg.Schedule.Timezone),
			slog.Int("history_retention_limit", cfg.Schedule.HistoryRetentionLimit),
			slog.Int("request_code_base", cfg.Schedule.RequestCodeBase),
			slog.Duration("sync_interval", cfg.SyncInterval),
		)
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}

func bindLocalQueue(queue *alarmqueue.LocalQueue, dispatcher *trigger.Dispatcher) {
	queue.SetFireFunc(func(task *alarmqueue.AlarmTask) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := dispatcher.Dispatch(ctx, trigger.Event{
			Kind:            trigger.KindAlarmFired,
			RequestCode:     task.RequestCode,
			RunID:           task.RunID,
			ForcedMessageID: task.ForcedMessageID,
		})
		if err != nil {
			slog.Error("local alarm firing failed",
				slog.Int("request_code", task.RequestCode),
				slog.String("run_id", task.RunID),
				slog.String("error", err.Error()),
			)
		}
	})
}

func newRand(seed uint64) *rand.Rand {
	if seed != 0 {
		slog.Info("using fixed random seed", slog.Uint64("seed", seed))
		return rand.New(rand.NewPCG(seed, 0))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func runPeriodicSync(ctx context.Context, dispatcher *trigger.Dispatcher, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := dispatcher.Dispatch(ctx, trigger.Event{Kind: trigger.KindPeriodicSync}); err != nil {
				slog.Warn("periodic sync failed",
					slog.String("error", err.Error()),
				)
			}
		}
	}
}
