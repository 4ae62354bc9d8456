package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // localhost-only ${PPROF_PORT}
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/IBM/sarama"
	"github.com/gorilla/mux"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	application "orderboard/internal/app"
	"orderboard/internal/entities"
	"orderboard/internal/handlers/rest/board_get"
	"orderboard/internal/handlers/rest/healthcheck_head"
	"orderboard/internal/handlers/rest/notification_read_post"
	"orderboard/internal/handlers/rest/notifications_get"
	"orderboard/internal/handlers/rest/notifications_read_all_post"
	"orderboard/internal/handlers/rest/order_action_post"
	"orderboard/internal/handlers/rest/ping_get"
	"orderboard/internal/handlers/rest/test_order_cancel_post"
	"orderboard/internal/handlers/rest/test_order_post"
	"orderboard/internal/pkg/config"
	"orderboard/internal/pkg/dotenv"
	metrics_system "orderboard/internal/pkg/metrics"
	"orderboard/internal/pkg/middlewares/graceful_shutdown"
	"orderboard/internal/pkg/middlewares/metrics"
	"orderboard/internal/pkg/middlewares/rate_limiter"
	"orderboard/internal/pkg/middlewares/timeout"
	"orderboard/pkg/logger"
	"orderboard/pkg/logger/zap_adapter"
	"orderboard/pkg/token_bucket"
)

const forwarderBuffer = 64

func main() {
	loaded, err := dotenv.Load(os.Args[1:])
	if err != nil {
		stdlog.Fatalf("failed to load .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("load config: %v", err)
	}

	zapLogger, err := zap_adapter.NewZapAdapter(cfg.Log.Level)
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var appLogger logger.Logger = zapLogger
	mainLog := appLogger.With()

	mainLog.Info("starting orderboard application")
	if !loaded {
		mainLog.Warn("No .env file found, using system environment variables")
	}

	err = run(context.Background(), cfg, appLogger)
	if err != nil {
		mainLog.Error("application failed", logger.NewField("error", err))
		return
	}
}

//nolint:contextcheck // ongoingCtx и shutdownCtx наследуются от context.Background() намеренно, это часть graceful shutdown
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	const (
		shutdownPeriod      = 15 * time.Second
		shutdownHardPeriod  = 3 * time.Second
		readinessDrainDelay = 5 * time.Second
	)

	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	var isShuttingDown atomic.Bool

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runLog := log.With()

	// ongoingCtx используется для BaseContext и не должен отменяться при SIGTERM.
	// Он отменяется только после server.Shutdown() для завершения in-flight запросов.
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	businessApp, err := application.InitializeApplication(ongoingCtx, log, cfg)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}
	defer businessApp.Close()

	runLog = runLog.With(logger.NewField("instance", string(businessApp.Source)))

	collectorDone := metrics_system.StartSystemMetricsCollector(ongoingCtx, clockwork.NewRealClock())

	// Kafka связывает несколько экземпляров доски
	var bridgeErr chan error
	if cfg.Kafka.Enabled {
		bridge, err := application.InitializeKafkaBridge(ctx, log, cfg, businessApp.Bus, businessApp.Source)
		if err != nil {
			return fmt.Errorf("kafka bridge: %w", err)
		}
		defer func() {
			if err := bridge.Close(); err != nil {
				runLog.Error("failed to close Kafka bridge", logger.NewField("error", err))
			}
		}()

		events, unsubscribe := businessApp.Bus.Subscribe(forwarderBuffer, entities.RefreshTopics...)
		defer unsubscribe()

		go bridge.Forwarder.Run(ongoingCtx, events)

		bridgeErr = make(chan error, 1)
		go func() {
			defer close(bridgeErr)

			err := bridge.Consumer.Start(ongoingCtx)
			if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, sarama.ErrClosedConsumerGroup) {
				runLog.Info("Kafka consumer stopped gracefully")
				return
			}
			bridgeErr <- err
		}()
	}

	// основной http сервер
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: initRouter(ongoingCtx, log, &isShuttingDown, businessApp, cfg.Server),
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},

		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		runLog.Info("server starting",
			logger.NewField("port", cfg.Server.Port),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// pprof http сервер
	var pprofServer *http.Server
	var pprofServerErr chan error
	if cfg.Server.PprofEnabled {
		pprofServer = &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Server.PprofPort),
			Handler: initPprofRouter(&isShuttingDown, businessApp),
			BaseContext: func(_ net.Listener) context.Context {
				return ongoingCtx
			},

			ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		pprofServerErr = make(chan error, 1)
		go func() {
			defer close(pprofServerErr)
			runLog.Info("pprof server starting",
				logger.NewField("port", cfg.Server.PprofPort),
			)
			if err := pprofServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				pprofServerErr <- err
			}
		}()
	}

	// nil-каналы (pprof и Kafka выключены) в select никогда не срабатывают
	select {
	case <-ctx.Done():
		runLog.Info("Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case err := <-pprofServerErr:
		return fmt.Errorf("pprof server: %w", err)
	case err, ok := <-bridgeErr:
		if ok {
			return fmt.Errorf("kafka consumer: %w", err)
		}
	}

	stop()
	isShuttingDown.Store(true)

	time.Sleep(readinessDrainDelay)
	runLog.Info("draining requests")

	// shutdownCtx должен быть независим от ctx, который уже отменен на этом этапе.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
	defer cancel()

	var shutdownErr error
	err = server.Shutdown(shutdownCtx)
	if pprofServer != nil {
		shutdownErr = pprofServer.Shutdown(shutdownCtx)
		if shutdownErr != nil {
			runLog.Error("pprof server shutdown error", logger.NewField("error", shutdownErr))
		} else {
			runLog.Info("pprof server stopped")
		}
	}

	stopOngoingGracefully()
	<-collectorDone
	if err != nil || shutdownErr != nil {
		runLog.Info("Graceful shutdown timeout, forcing close")
		time.Sleep(shutdownHardPeriod)
	}

	runLog.Info("Server stopped")
	return nil
}

func initRouter(
	ongoingCtx context.Context,
	log logger.Logger,
	isShuttingDown *atomic.Bool,
	app *application.Application,
	cfg config.HTTPServer,
) http.Handler {
	router := mux.NewRouter()

	router.Use(graceful_shutdown.Middleware(isShuttingDown, ongoingCtx))

	router.Use(timeout.Middleware(cfg.RequestTimeout))
	router.Use(metrics.Middleware(log))
	router.Use(rate_limiter.Middleware(log, cfg.RateLimiterQPS, token_bucket.NewTokenBucket(cfg.RateLimiterQPS, float64(cfg.RateLimiterBurst))))
	router.Handle("/metrics", promhttp.Handler())

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, app.Board)).Methods(http.MethodHead)
	router.Handle("/ping", ping_get.New(log, app.Board)).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()

	api.Handle("/board", board_get.New(log, app.Board)).Methods(http.MethodGet)
	api.Handle("/orders/{id}/{action}", order_action_post.New(log, app.Board)).Methods(http.MethodPost)

	api.Handle("/notifications", notifications_get.New(log, app.Feed)).Methods(http.MethodGet)
	api.Handle("/notifications/read-all", notifications_read_all_post.New(log, app.Feed)).Methods(http.MethodPost)
	api.Handle("/notifications/{id}/read", notification_read_post.New(log, app.Feed)).Methods(http.MethodPost)

	api.Handle("/test-orders", test_order_post.New(log, app.TestOrders)).Methods(http.MethodPost)
	api.Handle("/test-orders/{id}/cancel", test_order_cancel_post.New(log, app.TestOrders)).Methods(http.MethodPost)

	return router
}

func initPprofRouter(isShuttingDown *atomic.Bool, app *application.Application) http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, app.Board)).Methods(http.MethodHead)
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}
