package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"hrledger/internal/domain/attendance"
	"hrledger/internal/domain/auth"
	"hrledger/internal/domain/core"
	"hrledger/internal/domain/leave"
	"hrledger/internal/domain/payroll"
	"hrledger/internal/domain/performance"
	"hrledger/internal/domain/records"
	"hrledger/internal/platform/config"
	"hrledger/internal/platform/db"
	"hrledger/internal/platform/kv"
	"hrledger/internal/platform/logging"
	"hrledger/internal/platform/metrics"
	"hrledger/internal/transport/http/api"
	attendancehandler "hrledger/internal/transport/http/handlers/attendance"
	authhandler "hrledger/internal/transport/http/handlers/auth"
	corehandler "hrledger/internal/transport/http/handlers/core"
	leavehandler "hrledger/internal/transport/http/handlers/leave"
	payrollhandler "hrledger/internal/transport/http/handlers/payroll"
	performancehandler "hrledger/internal/transport/http/handlers/performance"
	"hrledger/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	Logger  *slog.Logger
	Backend kv.Backend
	Records *records.Store
	Metrics *metrics.Collector
	Router  http.Handler
}

// New opens storage, seeds it when configured and builds the router.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	backend, err := openBackend(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	recordStore := records.NewStore(backend,
		records.WithLogger(logger),
		records.WithMaxValueBytes(cfg.StoreMaxValueBytes),
	)
	coreStore := core.NewStore(recordStore)
	coreService := core.NewService(coreStore)
	authService := auth.NewService(recordStore, cfg.JWTSecret, auth.WithSessionTTL(cfg.SessionTTL))

	if cfg.RunSeed {
		if err := db.Seed(ctx, coreStore, authService, cfg, logger); err != nil {
			_ = backend.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	app := &App{
		Config:  cfg,
		Logger:  logger,
		Backend: backend,
		Records: recordStore,
		Metrics: metrics.New(),
	}

	router := chi.NewRouter()
	router.Use(chimw.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.Logger(logger, app.Metrics))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(authService))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	router.Use(middleware.SensitiveMutationRateLimit(cfg.RateLimitPerMinute, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := recordStore.Ping(ctx); err != nil {
			http.Error(w, "storage not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, app.Metrics.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	idempotency := middleware.Idempotency(middleware.NewIdempotencyStore(backend))

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(authService, cfg.AllowSelfSignup).RegisterRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser)
			r.Use(idempotency)

			corehandler.NewHandler(coreService).RegisterRoutes(r)
			payrollhandler.NewHandler(payroll.NewService(coreService, coreService, coreService)).RegisterRoutes(r)
			leavehandler.NewHandler(leave.NewService(leave.NewStore(recordStore), coreService, leave.WithLogger(logger))).RegisterRoutes(r)
			attendancehandler.NewHandler(attendance.NewService(recordStore, coreService)).RegisterRoutes(r)
			performancehandler.NewHandler(performance.NewService(recordStore, coreService)).RegisterRoutes(r)
		})
	})

	app.Router = router
	return app, nil
}

func (a *App) Close() error {
	if a == nil || a.Backend == nil {
		return nil
	}
	return a.Backend.Close()
}

// Run loads configuration from the environment and serves until SIGINT or
// SIGTERM, then drains in-flight requests.
func Run() error {
	cfg := config.Load()
	logger := logging.New(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("storage close failed", "err", err)
		}
	}()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", cfg.Addr, "driver", cfg.StorageDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
