package interfaces

import (
	"context"

	"signal-relay/internal/types"
)

type Classifier interface {
	Classify(ctx context.Context, body []byte) types.Signal
}
