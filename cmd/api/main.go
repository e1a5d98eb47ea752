package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/observability"
	"go-chi-calculator/internal/server"

	"go.uber.org/zap"
)

func main() {

	ctx := context.Background()

	if err := loadDotEnv(); err != nil {
		panic(err)
	}

	cfg, err := loadConfig()
	if err != nil {
		panic(err)
	}

	// Logger
	if err := observability.InitLogger(cfg.LogLevel); err != nil {
		panic(err)
	}
	defer observability.SyncLogger()

	// Tracing, metrics, logs
	shutdown, err := initTelemetry(ctx, cfg)
	if err != nil {
		observability.Logger.Fatal("telemetry init failed", zap.Error(err))
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			observability.Logger.Warn("telemetry shutdown", zap.Error(err))
		}
	}()

	// Router
	router := server.NewRouter(calculator.NewSessionStore())

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	serverErrors := make(chan error, 1)

	go func() {
		observability.Logger.Info("server started", zap.String("addr", cfg.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	waitForShutdown(srv, serverErrors, cfg)
}

func waitForShutdown(srv *http.Server, serverErrors <-chan error, cfg config) {

	stop := make(chan os.Signal, 1)

	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			observability.Logger.Error("server error", zap.Error(err))
		}
		return
	case sig := <-stop:
		observability.Logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		observability.Logger.Warn("graceful shutdown did not complete", zap.Error(err))
		_ = srv.Close()
	}
}
