package interfaces

import (
	"context"

	"signal-relay/internal/types"
)

// Gateway submits an order payload to the brokerage webhook. Every outcome,
// including transport failure, is returned as data.
type Gateway interface {
	Submit(ctx context.Context, req types.OrderRequest) types.SubmissionResult
}
