package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

type Config struct {
	Port             string        `env:"PORT" envDefault:"8000"`
	WebhookSecret    string        `env:"WEBHOOK_SECRET"`
	OrderWebhookURL  string        `env:"ORDER_WEBHOOK_URL"`
	OrderDefaultQty  int           `env:"ORDER_DEFAULT_QTY" envDefault:"1"`
	OrderExitAction  string        `env:"ORDER_EXIT_ACTION" envDefault:"exit"`
	OrderTimeout     time.Duration `env:"ORDER_TIMEOUT" envDefault:"5s"`
	PatternsFile     string        `env:"PATTERNS_FILE"`
	LogDir           string        `env:"RELAY_LOG_DIR" envDefault:"logs"`
	LogRetentionDays int           `env:"RELAY_LOG_RETENTION_DAYS"`
}

func (c *Config) Validate() error {
	if c.OrderDefaultQty < 0 {
		return fmt.Errorf("ORDER_DEFAULT_QTY must be non-negative, got %d", c.OrderDefaultQty)
	}
	if c.OrderExitAction == "" {
		return fmt.Errorf("ORDER_EXIT_ACTION cannot be empty")
	}
	if c.OrderTimeout <= 0 {
		return fmt.Errorf("ORDER_TIMEOUT must be positive, got %v", c.OrderTimeout)
	}
	return nil
}

func Load() (*Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &c, nil
}
