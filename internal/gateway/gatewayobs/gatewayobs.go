package gatewayobs

import (
	"context"

	"signal-relay/internal/interfaces"
	"signal-relay/internal/logger"
	"signal-relay/internal/trace"
	"signal-relay/internal/types"
)

// observableGateway wraps a Gateway with observability (logging & tracing)
type observableGateway struct {
	gateway interfaces.Gateway
}

// Compile-time interface check
var _ interfaces.Gateway = (*observableGateway)(nil)

// Wrap wraps a gateway with observability middleware
func Wrap(gateway interfaces.Gateway) interfaces.Gateway {
	return &observableGateway{
		gateway: gateway,
	}
}

// Submit forwards an order with observability
func (og *observableGateway) Submit(ctx context.Context, req types.OrderRequest) types.SubmissionResult {
	ctx, span := trace.StartSpan(ctx, "gateway.Submit")
	defer span.End()

	logger.InfoSkip(ctx, 1, "Submitting order",
		"ticker", req.Ticker,
		"action", req.Action,
		"quantity", req.Quantity,
	)

	res := og.gateway.Submit(ctx, req)
	if !res.Accepted {
		logger.WarnSkip(ctx, 1, "Order submission not accepted",
			"ticker", req.Ticker,
			"action", req.Action,
			"status", res.StatusCode,
			"error", res.Error,
		)
		return res
	}

	logger.InfoSkip(ctx, 1, "Order submitted successfully",
		"ticker", req.Ticker,
		"action", req.Action,
		"status", res.StatusCode,
	)
	return res
}
