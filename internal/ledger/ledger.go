package ledger

import (
	"sync"

	"signal-relay/internal/types"
)

// Ledger records the most recent finalized trade per ticker, overwritten
// unconditionally including on submission failure.
type Ledger struct {
	mu     sync.RWMutex
	trades map[string]types.TradeRecord
}

func New() *Ledger {
	return &Ledger{trades: make(map[string]types.TradeRecord)}
}

func (l *Ledger) Record(ticker string, rec types.TradeRecord) {
	l.mu.Lock()
	l.trades[ticker] = rec
	l.mu.Unlock()
}

func (l *Ledger) Get(ticker string) (types.TradeRecord, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	r, ok := l.trades[ticker]
	return r, ok
}

// Snapshot returns a copy of the full ledger contents.
func (l *Ledger) Snapshot() map[string]types.TradeRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(map[string]types.TradeRecord, len(l.trades))
	for k, v := range l.trades {
		out[k] = v
	}
	return out
}
