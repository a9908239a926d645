package engineobs

import (
	"context"
	"time"

	"signal-relay/internal/interfaces"
	"signal-relay/internal/logger"
	"signal-relay/internal/trace"
	"signal-relay/internal/types"
)

type observableEngine struct {
	engine interfaces.Engine
}

var _ interfaces.Engine = (*observableEngine)(nil)

func Wrap(eng interfaces.Engine) interfaces.Engine {
	return &observableEngine{
		engine: eng,
	}
}

func (oe *observableEngine) DecideEntry(ctx context.Context, ticker string, price *float64, observedAt string) types.Outcome {
	ctx, span := trace.StartSpan(ctx, "engine.DecideEntry")
	defer span.End()

	start := time.Now()

	out := oe.engine.DecideEntry(ctx, ticker, price, observedAt)

	if out.Skipped != "" {
		logger.InfoSkip(ctx, 1, "Entry signal suppressed",
			"ticker", ticker,
			"reason", out.Skipped,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return out
	}

	logger.InfoSkip(ctx, 1, "Entry signal executed",
		"ticker", ticker,
		"direction", out.Direction,
		"accepted", out.OK,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return out
}

func (oe *observableEngine) DecideExit(ctx context.Context, ticker string, price *float64, observedAt string) types.Outcome {
	ctx, span := trace.StartSpan(ctx, "engine.DecideExit")
	defer span.End()

	start := time.Now()

	out := oe.engine.DecideExit(ctx, ticker, price, observedAt)

	logger.InfoSkip(ctx, 1, "Exit signal executed",
		"ticker", ticker,
		"accepted", out.OK,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return out
}
