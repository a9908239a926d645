package interfaces

import (
	"context"

	"signal-relay/internal/types"
)

type Engine interface {
	DecideEntry(ctx context.Context, ticker string, price *float64, observedAt string) types.Outcome
	DecideExit(ctx context.Context, ticker string, price *float64, observedAt string) types.Outcome
}
