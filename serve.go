package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"

	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/api"
	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/api/middleware"
	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/cache"
	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/config"
	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/services"
	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/tasks"
)

const (
	runModeAPI = "api"
	runModeBg  = "bg"
	runModeAll = "all"
)

func serveCmd() *cobra.Command {
	var runMode string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API, the background worker, or both",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch runMode {
			case runModeAPI, runModeBg, runModeAll:
			default:
				return fmt.Errorf("invalid run mode %q: expected api, bg or all", runMode)
			}
			return serve(runMode)
		},
	}
	cmd.Flags().StringVarP(&runMode, "mode", "m", runModeAll, "Run mode: 'api', 'bg' (background tasks), 'all'")
	return cmd
}

// checkServeConfig rejects configurations the chosen run mode cannot work with.
// The admin routes live on the main API, so it cannot start without a signing secret.
func checkServeConfig(cfg *config.Config, runMode string) error {
	if runMode == runModeAPI || runMode == runModeAll {
		if err := cfg.RequireJwtSecret(); err != nil {
			return fmt.Errorf("run mode %s: %w", runMode, err)
		}
	}
	return nil
}

func serve(runMode string) error {
	cfg, err := loadConfig(runMode)
	if err != nil {
		return err
	}
	if err := checkServeConfig(cfg, runMode); err != nil {
		return err
	}
	gin.SetMode(gin.ReleaseMode)
	ctx := context.Background()

	cat, err := openCatalogue(ctx, cfg, nil)
	if err != nil {
		return err
	}

	redisClient, err := connectRedis(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := cache.DisconnectRedis(redisClient); err != nil {
			slog.Warn("Error disconnecting from Redis", "error", err)
		}
	}()
	if runMode == runModeBg && redisClient == nil {
		return errors.New("run mode bg requires REDIS_ADDR")
	}

	// Reservation follow-ups go through the queue when Redis is available
	var notifier services.ReservationNotifier = services.LogNotifier{}
	var taskClient *asynq.Client
	if redisClient != nil {
		taskClient = tasks.NewClient(redisClient)
		defer taskClient.Close()
		notifier = tasks.NewNotifier(taskClient)
	}
	reservationService := services.NewReservationService(cat.inventory, notifier, cfg.CapacityPolicy, nil)

	var wg sync.WaitGroup
	errChan := make(chan error, 3)
	shutdownChan := make(chan struct{}, 1)

	// Start Service API (always runs)
	serviceSrv := &http.Server{
		Addr:    ":" + cfg.ServiceApiPort,
		Handler: api.SetupServiceRouter(cfg, redisClient, cat.listingService, shutdownChan),
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		slog.Info("Service API listening", "port", cfg.ServiceApiPort)
		if err := serviceSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("service API: %w", err)
		}
	}()

	var mainApiSrv *http.Server
	var backgroundTaskSrv *asynq.Server
	stopCleanup := make(chan struct{})
	defer close(stopCleanup)

	slog.Info("Starting application", "mode", runMode, "capacity_policy", cfg.CapacityPolicy, "listings", cat.inventory.Len())

	if runMode == runModeAPI || runMode == runModeAll {
		rateLimiter := middleware.NewRateLimiterMiddleware(cfg.ReservePerMinute, cfg.ReserveBurst)
		go rateLimiter.RunCleanup(10*time.Minute, stopCleanup)

		mainApiSrv = &http.Server{
			Addr:    ":" + cfg.ApiPort,
			Handler: api.SetupRouter(cfg, cat.listingService, reservationService, rateLimiter),
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			slog.Info("Main API listening", "port", cfg.ApiPort)
			if err := mainApiSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- fmt.Errorf("main API: %w", err)
			}
		}()
	}

	if (runMode == runModeBg || runMode == runModeAll) && redisClient != nil {
		processor := tasks.NewTaskProcessor(cfg, buildEmailSender(cfg, redisClient))
		srv, mux := tasks.SetupServer(redisClient, processor)
		if err := srv.Start(mux); err != nil {
			return fmt.Errorf("could not start background worker: %w", err)
		}
		backgroundTaskSrv = srv
		slog.Info("Background task server started")
	}

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-quit:
		slog.Info("Received signal, shutting down gracefully", "signal", sig.String())
	case <-shutdownChan:
		slog.Info("Shutdown requested via Service API, shutting down gracefully")
	case runErr = <-errChan:
		slog.Error("Server failed, shutting down", "error", runErr)
	}

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()

	if err := serviceSrv.Shutdown(ctxShutdown); err != nil {
		slog.Warn("Service API server shutdown error", "error", err)
	}
	if mainApiSrv != nil {
		if err := mainApiSrv.Shutdown(ctxShutdown); err != nil {
			slog.Warn("Main API server shutdown error", "error", err)
		}
	}
	if backgroundTaskSrv != nil {
		backgroundTaskSrv.Shutdown()
	}

	wg.Wait()
	slog.Info("Server gracefully stopped")
	return runErr
}
