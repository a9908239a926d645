package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "WEBHOOK_SECRET", "ORDER_WEBHOOK_URL", "ORDER_DEFAULT_QTY", "ORDER_EXIT_ACTION", "ORDER_TIMEOUT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected defaults to load, got %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("Expected default port 8000, got %q", cfg.Port)
	}
	if cfg.OrderDefaultQty != 1 {
		t.Errorf("Expected default quantity 1, got %d", cfg.OrderDefaultQty)
	}
	if cfg.OrderExitAction != "exit" {
		t.Errorf("Expected default exit action, got %q", cfg.OrderExitAction)
	}
	if cfg.OrderTimeout != 5*time.Second {
		t.Errorf("Expected default timeout 5s, got %v", cfg.OrderTimeout)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("WEBHOOK_SECRET", "s3cret")
	t.Setenv("ORDER_WEBHOOK_URL", "https://broker.example/webhook")
	t.Setenv("ORDER_DEFAULT_QTY", "3")
	t.Setenv("ORDER_EXIT_ACTION", "close")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected config to load, got %v", err)
	}
	if cfg.Port != "9000" || cfg.WebhookSecret != "s3cret" {
		t.Errorf("Unexpected config: %+v", cfg)
	}
	if cfg.OrderDefaultQty != 3 || cfg.OrderExitAction != "close" {
		t.Errorf("Unexpected order config: %+v", cfg)
	}
}

func TestNegativeQtyRejected(t *testing.T) {
	t.Setenv("ORDER_DEFAULT_QTY", "-1")

	if _, err := Load(); err == nil {
		t.Fatal("Expected validation error for negative quantity")
	}
}

func TestLoadPatterns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patterns.yaml")
	content := `patterns:
  - name: acme_buy
    kind: entry
    regex: 'ACME (?P<ticker>[A-Z0-9_]+) @ (?P<price>[0-9.]+)'
  - name: acme_close
    kind: exit
    regex: 'ACME CLOSE (?P<ticker>[A-Z0-9_]+)'
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	specs, err := LoadPatterns(path)
	if err != nil {
		t.Fatalf("Expected patterns to load, got %v", err)
	}
	if len(specs) != 2 {
		t.Fatalf("Expected 2 patterns, got %d", len(specs))
	}
	if specs[0].Name != "acme_buy" || specs[0].Kind != "entry" {
		t.Errorf("Unexpected first pattern: %+v", specs[0])
	}
}

func TestLoadPatternsRejectsBadKind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patterns.yaml")
	content := `patterns:
  - name: bad
    kind: sideways
    regex: 'X'
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadPatterns(path); err == nil {
		t.Fatal("Expected error for invalid pattern kind")
	}
}
