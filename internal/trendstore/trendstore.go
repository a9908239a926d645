package trendstore

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"signal-relay/internal/logger"
	"signal-relay/internal/types"
)

// Store holds the latest trend snapshot per ticker. Reads and writes for the
// same ticker are serialized by the store lock; callers get value copies, so
// no lock is held while a snapshot is used.
type Store struct {
	mu     sync.RWMutex
	trends map[string]types.TickerTrend
}

func New() *Store {
	return &Store{trends: make(map[string]types.TickerTrend)}
}

// Update normalizes a raw ema_update and replaces the ticker's snapshot
// wholesale. An update without a ticker is dropped, not an error.
func (s *Store) Update(ctx context.Context, u types.TrendUpdate) {
	if u.Ticker == "" {
		logger.Warn(ctx, "Trend update without ticker, dropping", "update", u)
		return
	}

	trend := types.TickerTrend{
		AboveFast:  parseFlag(u.Above13),
		AboveSlow:  parseFlag(u.Above200),
		FastEMA:    parseNumber(u.Ema13),
		SlowEMA:    parseNumber(u.Ema200),
		LastClose:  parseNumber(u.Close),
		ObservedAt: u.Time,
	}

	s.mu.Lock()
	s.trends[u.Ticker] = trend
	s.mu.Unlock()

	logger.Info(ctx, "Trend state updated",
		"ticker", u.Ticker,
		"above13", trend.AboveFast,
		"above200", trend.AboveSlow,
		"ema13", trend.FastEMA,
		"ema200", trend.SlowEMA,
		"close", trend.LastClose,
	)
}

// Get returns a copy of the ticker's trend snapshot.
func (s *Store) Get(ticker string) (types.TickerTrend, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.trends[ticker]
	return t, ok
}

// Snapshot returns a copy of the full store contents.
func (s *Store) Snapshot() map[string]types.TickerTrend {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]types.TickerTrend, len(s.trends))
	for k, v := range s.trends {
		out[k] = v
	}
	return out
}

// parseFlag treats the literal word "true" (any case) as true and anything
// else, including absent, as false.
func parseFlag(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}

// parseNumber defaults to 0.0 when the field is absent or unparsable.
func parseNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0.0
	}
	return v
}
