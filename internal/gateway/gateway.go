package gateway

import (
	"context"
	"time"

	"signal-relay/internal/api"
	"signal-relay/internal/interfaces"
	"signal-relay/internal/logger"
	"signal-relay/internal/types"
)

type Params struct {
	WebhookURL string
	Timeout    time.Duration
}

// Webhook posts order payloads to the configured brokerage webhook. One
// request per order, bounded timeout, no retries; every outcome comes back
// as a SubmissionResult.
type Webhook struct {
	p      Params
	client *api.Client
}

var _ interfaces.Gateway = (*Webhook)(nil)

func NewWebhook(p Params) *Webhook {
	if p.Timeout <= 0 {
		p.Timeout = 5 * time.Second
	}
	return &Webhook{
		p:      p,
		client: api.NewClient(api.WithTimeout(p.Timeout)),
	}
}

func (w *Webhook) Submit(ctx context.Context, req types.OrderRequest) types.SubmissionResult {
	if w.p.WebhookURL == "" {
		logger.Error(ctx, "Order webhook URL not configured, dropping order",
			"ticker", req.Ticker, "action", req.Action)
		return types.SubmissionResult{Accepted: false, Error: "order webhook URL not configured"}
	}

	resp, err := w.client.POST(ctx, w.p.WebhookURL, req)
	if err != nil {
		return types.SubmissionResult{Accepted: false, Error: err.Error()}
	}

	return types.SubmissionResult{
		Accepted:   resp.OK(),
		StatusCode: resp.StatusCode,
		Body:       resp.String(),
	}
}
