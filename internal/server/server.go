package server

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"signal-relay/internal/config"
	"signal-relay/internal/interfaces"
	"signal-relay/internal/ledger"
	"signal-relay/internal/logger"
	"signal-relay/internal/metrics"
	"signal-relay/internal/trace"
	"signal-relay/internal/trendstore"
	"signal-relay/internal/types"
)

// Server wires the router, classifier, engine, and the two stores.
type Server struct {
	R          *gin.Engine
	cfg        *config.Config
	classifier interfaces.Classifier
	engine     interfaces.Engine
	trends     *trendstore.Store
	trades     *ledger.Ledger
}

func New(cfg *config.Config, classifier interfaces.Classifier, engine interfaces.Engine, trends *trendstore.Store, trades *ledger.Ledger) *Server {
	g := gin.New()

	// Request logging
	g.Use(func(cn *gin.Context) {
		start := time.Now()
		cn.Next()
		logger.Info(cn.Request.Context(), "http_request",
			"method", cn.Request.Method,
			"path", cn.Request.URL.Path,
			"status", cn.Writer.Status(),
			"ip", cn.ClientIP(),
			"latency_ms", time.Since(start).Milliseconds(),
		)
	})

	g.Use(gin.Recovery())

	s := &Server{
		R:          g,
		cfg:        cfg,
		classifier: classifier,
		engine:     engine,
		trends:     trends,
		trades:     trades,
	}

	g.POST("/webhook", s.handleWebhook)
	g.GET("/", s.handleHealth)
	g.GET("/dashboard", s.handleDashboard)
	g.GET("/metrics", gin.WrapH(metrics.Handler()))

	return s
}

// handleWebhook is the single inbound endpoint for trend updates and alert
// texts. The secret travels as a query parameter so the same URL works for
// JSON and plain-text senders.
func (s *Server) handleWebhook(c *gin.Context) {
	ctx, span := trace.StartSpan(c.Request.Context(), "server.webhook")
	defer span.End()

	if s.cfg.WebhookSecret != "" && c.Query("secret") != s.cfg.WebhookSecret {
		logger.Warn(ctx, "Invalid webhook secret")
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "invalid secret"})
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to read webhook body", err)
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "unreadable body"})
		return
	}
	logger.Debug(ctx, "Incoming webhook body", "body", string(body))

	sig := s.classifier.Classify(ctx, body)
	metrics.SignalsTotal.WithLabelValues(sig.Kind.String()).Inc()

	switch sig.Kind {
	case types.KindTrendUpdate:
		s.trends.Update(ctx, sig.Update)
		c.JSON(http.StatusOK, gin.H{"ok": true})

	case types.KindUnknownType:
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": fmt.Sprintf("unknown json type %s", sig.UnknownType)})

	case types.KindEntry:
		out := s.engine.DecideEntry(ctx, sig.Ticker, sig.Price, time.Now().UTC().Format(time.RFC3339))
		c.JSON(statusFor(out), out)

	case types.KindExit:
		out := s.engine.DecideExit(ctx, sig.Ticker, sig.Price, time.Now().UTC().Format(time.RFC3339))
		c.JSON(statusFor(out), out)

	default:
		logger.Warn(ctx, "Unrecognized webhook payload")
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "unrecognized payload"})
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "signal relay running"})
}

// handleDashboard returns the full trend state and last trades for
// inspection in a browser.
func (s *Server) handleDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ema_state":   s.trends.Snapshot(),
		"last_trades": s.trades.Snapshot(),
	})
}

// statusFor maps a decision outcome to a response status. Suppressions are
// acknowledged as success; only a failed submission surfaces as a server
// error.
func statusFor(out types.Outcome) int {
	if out.OK {
		return http.StatusOK
	}
	return http.StatusInternalServerError
}
