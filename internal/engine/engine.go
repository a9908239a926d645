package engine

import (
	"context"

	"github.com/google/uuid"

	"signal-relay/internal/config"
	"signal-relay/internal/interfaces"
	"signal-relay/internal/ledger"
	"signal-relay/internal/logger"
	"signal-relay/internal/metrics"
	"signal-relay/internal/tradelog"
	"signal-relay/internal/trendstore"
	"signal-relay/internal/types"
)

// Suppression reasons returned in Outcome.Skipped.
const (
	SkipNoTrendState    = "no_trend_state"
	SkipAlignmentFilter = "ema_alignment_filter"
)

// Engine converts classified entry and exit signals into orders. Entries
// pass through the 13/200 EMA alignment filter against the stored trend;
// exits are always actionable. The trend snapshot is copied out of the
// store before the blocking gateway call, so no store lock is held during
// submission.
type Engine struct {
	cfg    *config.Config
	trends *trendstore.Store
	trades *ledger.Ledger
	gw     interfaces.Gateway
}

var _ interfaces.Engine = (*Engine)(nil)

func New(cfg *config.Config, trends *trendstore.Store, trades *ledger.Ledger, gw interfaces.Gateway) *Engine {
	return &Engine{cfg: cfg, trends: trends, trades: trades, gw: gw}
}

// DecideEntry applies the alignment rule:
//
//   - long only if price is above both the fast and the slow EMA
//   - short only if price is below both
//   - mixed alignment suppresses the trade
//
// Suppression is a normal outcome, acknowledged with a reason code; the
// ledger is only written once a direction is determined.
func (e *Engine) DecideEntry(ctx context.Context, ticker string, price *float64, observedAt string) types.Outcome {
	trend, ok := e.trends.Get(ticker)
	if !ok {
		logger.Warn(ctx, "No trend state for ticker, skipping trade", "ticker", ticker)
		return e.suppress(ticker, price, SkipNoTrendState)
	}

	var dir types.Direction
	switch {
	case trend.AboveFast && trend.AboveSlow:
		dir = types.Buy
	case !trend.AboveFast && !trend.AboveSlow:
		dir = types.Sell
	default:
		logger.Info(ctx, "Skipping new trade: EMA alignment failed",
			"ticker", ticker,
			"above13", trend.AboveFast,
			"above200", trend.AboveSlow,
		)
		return e.suppress(ticker, price, SkipAlignmentFilter)
	}

	logger.Decision(ctx, ticker, string(dir), "ema_alignment", "above13", trend.AboveFast, "above200", trend.AboveSlow)

	req := types.OrderRequest{Ticker: ticker, Action: string(dir), Price: price}
	if e.cfg.OrderDefaultQty > 0 {
		req.Quantity = e.cfg.OrderDefaultQty
	}

	res := e.submit(ctx, req)

	e.trades.Record(ticker, types.TradeRecord{
		ID:         uuid.NewString(),
		EventKind:  types.EventNewTrade,
		Direction:  dir,
		Price:      price,
		Trend:      &trend,
		ObservedAt: observedAt,
		Result:     &res,
	})

	return types.Outcome{OK: res.Accepted, Direction: dir, Detail: &res}
}

// DecideExit sends an exit order regardless of trend state. The action
// string is configurable because some brokerages expect "close".
func (e *Engine) DecideExit(ctx context.Context, ticker string, price *float64, observedAt string) types.Outcome {
	req := types.OrderRequest{Ticker: ticker, Action: e.cfg.OrderExitAction, Price: price}

	res := e.submit(ctx, req)

	e.trades.Record(ticker, types.TradeRecord{
		ID:         uuid.NewString(),
		EventKind:  types.EventExit,
		Price:      price,
		ObservedAt: observedAt,
		Result:     &res,
	})

	return types.Outcome{OK: res.Accepted, Detail: &res}
}

func (e *Engine) submit(ctx context.Context, req types.OrderRequest) types.SubmissionResult {
	res := e.gw.Submit(ctx, req)

	metrics.OrdersTotal.WithLabelValues(req.Ticker, req.Action).Inc()
	if !res.Accepted {
		metrics.SubmissionFailures.Inc()
	}

	logger.Trade(ctx, req.Ticker, req.Action, req.Quantity, res.Accepted, "status", res.StatusCode)
	if err := tradelog.Append(tradelog.Entry{
		Ticker:     req.Ticker,
		Event:      req.Action,
		Action:     req.Action,
		Qty:        req.Quantity,
		Price:      deref(req.Price),
		Accepted:   res.Accepted,
		StatusCode: res.StatusCode,
		Error:      res.Error,
	}); err != nil {
		logger.Warn(ctx, "Failed to append tradelog entry", "ticker", req.Ticker, "error", err)
	}

	return res
}

func (e *Engine) suppress(ticker string, price *float64, reason string) types.Outcome {
	metrics.SuppressionsTotal.WithLabelValues(reason).Inc()
	_ = tradelog.AppendSuppression(tradelog.SuppressionEntry{
		Ticker: ticker,
		Reason: reason,
		Price:  deref(price),
	})
	return types.Outcome{OK: true, Skipped: reason}
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
