package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SignalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "relay_signals_total", Help: "Inbound webhook messages by classified kind"},
		[]string{"kind"},
	)
	OrdersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "relay_orders_total", Help: "Orders forwarded to the brokerage webhook"},
		[]string{"ticker", "action"},
	)
	SuppressionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "relay_suppressions_total", Help: "Entry signals suppressed by reason"},
		[]string{"reason"},
	)
	SubmissionFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "relay_submission_failures_total", Help: "Order submissions that were not accepted"},
	)
)

func init() {
	prometheus.MustRegister(SignalsTotal, OrdersTotal, SuppressionsTotal, SubmissionFailures)
}

// Handler exposes the default prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
