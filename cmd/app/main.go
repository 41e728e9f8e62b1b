package main

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

	"tvalert_go/internal/app"
	"tvalert_go/internal/server"
)

func main() {
	// 1. System bootstrapping
	bootstrap := app.NewBootstrap()
	if err := bootstrap.Initialize(); err != nil {
		slog.Error("❌ Bootstrapping failed", slog.Any("error", err))
		os.Exit(1)
	}

	// 2. Graceful shutdown context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Discord gateway login (non-fatal; blocks until ready or disabled)
	bootstrap.StartNotifier(ctx)
	defer bootstrap.Close()

	// 4. HTTP listener
	cfg := bootstrap.Config
	srv := server.New(cfg, bootstrap.AlertNotifier(), slog.Default())

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("✅ Server running", slog.Int("port", cfg.Server.Port))
		slog.Info("Webhook endpoint ready",
			slog.String("url", fmt.Sprintf("http://localhost:%d/webhook/tradingview", cfg.Server.Port)))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server failed", slog.Any("error", err))
			stop()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	slog.Info("👋 Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeoutSec)*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Warn("HTTP shutdown incomplete", slog.Any("error", err))
	}
}
