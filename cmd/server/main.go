package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/dairy/internal/config"
	"github.com/mamadbah2/dairy/internal/repository/backends"
	"github.com/mamadbah2/dairy/internal/scheduler"
	"github.com/mamadbah2/dairy/internal/server/handlers"
	"github.com/mamadbah2/dairy/internal/server/router"
	"github.com/mamadbah2/dairy/internal/service/dashboard"
	"github.com/mamadbah2/dairy/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	catalog, closeBackends, err := backends.Open(context.Background(), cfg, baseLogger)
	if err != nil {
		baseLogger.Fatal("failed to init row sources", zap.Error(err))
	}
	defer func() {
		if err := closeBackends(context.Background()); err != nil {
			baseLogger.Error("failed to close row sources", zap.Error(err))
		}
	}()

	for kind, src := range cfg.Datasets {
		baseLogger.Info("dataset source configured",
			zap.String("dataset", string(kind)),
			zap.String("backend", src.Backend))
	}

	sessions := dashboard.NewManager(catalog, baseLogger.Named("svc.dashboard"))
	dashboardHandler := handlers.NewDashboardHandler(sessions, baseLogger.Named("handlers.dashboard"))
	engine := router.New(dashboardHandler, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Sessions, sessions, baseLogger.Named("scheduler"))
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Fetch.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
