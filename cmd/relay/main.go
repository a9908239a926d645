package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"signal-relay/internal/engine"
	"signal-relay/internal/engine/engineobs"
	"signal-relay/internal/ledger"
	"signal-relay/internal/logger"
	"signal-relay/internal/server"
	"signal-relay/internal/trace"
	"signal-relay/internal/trendstore"
)

func main() {
	if err := initializeSystem(); err != nil {
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := loadConfig(ctx)
	if err != nil {
		os.Exit(1)
	}

	compressOldLogs(ctx, cfg)

	classifier, err := initializeClassifier(ctx, cfg)
	if err != nil {
		os.Exit(1)
	}

	gw := initializeGateway(ctx, cfg)

	trends := trendstore.New()
	trades := ledger.New()
	eng := engineobs.Wrap(engine.New(cfg, trends, trades, gw))

	srv := server.New(cfg, classifier, eng, trends, trades)
	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: srv.R,
	}

	go func() {
		logger.Info(ctx, "Relay listening", "port", cfg.Port)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorWithErr(ctx, "HTTP server failed", err)
			cancel()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigc:
		logger.Info(ctx, "Shutting down...")
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorWithErr(shutdownCtx, "HTTP shutdown failed", err)
	}
	if err := trace.Shutdown(shutdownCtx); err != nil {
		logger.Warn(shutdownCtx, "Tracer shutdown failed", "error", err)
	}
}
