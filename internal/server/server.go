// Package server owns the process lifecycle: config, stores, workers, the
// HTTP and gRPC listeners, and graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/campuskart/app/jobs"
	"github.com/shashiranjanraj/campuskart/app/models"
	"github.com/shashiranjanraj/campuskart/app/services"
	"github.com/shashiranjanraj/campuskart/config"
	"github.com/shashiranjanraj/campuskart/internal/kernel"
	"github.com/shashiranjanraj/campuskart/pkg/cache"
	"github.com/shashiranjanraj/campuskart/pkg/database"
	"github.com/shashiranjanraj/campuskart/pkg/event"
	grpcserver "github.com/shashiranjanraj/campuskart/pkg/grpc"
	"github.com/shashiranjanraj/campuskart/pkg/logger"
	"github.com/shashiranjanraj/campuskart/pkg/middleware"
	"github.com/shashiranjanraj/campuskart/pkg/queue"
	"github.com/shashiranjanraj/campuskart/pkg/schedule"
	"github.com/shashiranjanraj/campuskart/pkg/storage"
)

// Start boots everything and blocks until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("server: load config: %w", err)
	}

	if err := database.Connect(); err != nil {
		return err
	}
	defer database.Close() //nolint:errcheck

	if config.LogToMongo() {
		logger.SetHandler(logger.NewMultiHandler(
			logger.Handler(),
			logger.NewMongoHandler(database.Collection("logs")),
		))
	}

	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, catalog cache and queue fall back", "error", err)
	}
	storage.Connect()

	// Queue: redis driver when available, in-memory otherwise.
	if cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}
	queue.UseCollection(database.Collection("failed_jobs"))

	registerHooks()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	queue.StartWorkers(ctx, 5)

	RegisterSchedule()
	go schedule.Start(ctx)

	grpcSrv, _, err := grpcserver.Start(config.GRPCPort(), database.Ping)
	if err != nil {
		return err
	}
	defer grpcserver.Stop(grpcSrv)

	addr := ":" + config.AppPort()
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           kernel.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting", "addr", addr, "env", config.AppEnv())
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

// registerHooks wires the auth middleware's user check and the event
// listeners that fan out from domain actions.
func registerHooks() {
	auth := services.NewAuthService()
	middleware.SetIdentityResolver(auth.ResolveIdentity)

	event.Listen("user.registered", func(payload interface{}) {
		user, ok := payload.(models.User)
		if !ok {
			return
		}
		if err := queue.Dispatch(jobs.WelcomeEmail{Email: user.Email, Name: user.Name}); err != nil {
			logger.Error("welcome email dispatch failed", "error", err)
		}
	})
}

// RegisterSchedule declares the recurring maintenance tasks. Exported so the
// standalone schedule:run command registers the same set.
func RegisterSchedule() {
	notifications := services.NewNotificationService()
	schedule.Daily().Name("notifications:purge").WithoutOverlapping().Run(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		notifications.PurgeOld(ctx)
	})
}
