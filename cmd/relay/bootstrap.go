package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"signal-relay/internal/classify"
	"signal-relay/internal/config"
	"signal-relay/internal/gateway"
	"signal-relay/internal/gateway/gatewayobs"
	"signal-relay/internal/interfaces"
	"signal-relay/internal/logger"
	"signal-relay/internal/trace"
	"signal-relay/internal/tradelog"
)

// initializeSystem initializes environment, logger, and tracer
func initializeSystem() error {
	// Load environment variables
	_ = godotenv.Load()

	// Initialize logger
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Initialize tracer
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	return nil
}

// loadConfig loads and returns the configuration
func loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err)
		return nil, err
	}
	return cfg, nil
}

// compressOldLogs compresses old tradelog files if retention is configured
func compressOldLogs(ctx context.Context, cfg *config.Config) {
	if cfg.LogRetentionDays > 0 {
		if err := tradelog.CompressOlder(cfg.LogRetentionDays); err != nil {
			logger.Warn(ctx, "Failed to compress old logs", "error", err)
		}
	}
}

// initializeClassifier builds the signal classifier, either from a patterns
// file or the built-in vendor patterns
func initializeClassifier(ctx context.Context, cfg *config.Config) (interfaces.Classifier, error) {
	if cfg.PatternsFile == "" {
		return classify.Default(), nil
	}

	specs, err := config.LoadPatterns(cfg.PatternsFile)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load patterns file", err, "path", cfg.PatternsFile)
		return nil, err
	}

	classifier, err := classify.New(specs)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to compile vendor patterns", err, "path", cfg.PatternsFile)
		return nil, err
	}

	logger.Info(ctx, "Loaded vendor patterns", "path", cfg.PatternsFile, "count", len(specs))
	return classifier, nil
}

// initializeGateway initializes the order submission gateway with
// observability
func initializeGateway(ctx context.Context, cfg *config.Config) interfaces.Gateway {
	if cfg.OrderWebhookURL == "" {
		logger.Warn(ctx, "ORDER_WEBHOOK_URL not set - orders will be rejected at the gateway")
	}

	gw := gateway.NewWebhook(gateway.Params{
		WebhookURL: cfg.OrderWebhookURL,
		Timeout:    cfg.OrderTimeout,
	})

	return gatewayobs.Wrap(gw)
}
