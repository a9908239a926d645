package engine

import (
	"context"
	"testing"

	"signal-relay/internal/config"
	"signal-relay/internal/ledger"
	"signal-relay/internal/trendstore"
	"signal-relay/internal/types"
)

type fakeGateway struct {
	calls []types.OrderRequest
	res   types.SubmissionResult
}

func (f *fakeGateway) Submit(ctx context.Context, req types.OrderRequest) types.SubmissionResult {
	f.calls = append(f.calls, req)
	return f.res
}

func testConfig() *config.Config {
	return &config.Config{
		OrderDefaultQty: 2,
		OrderExitAction: "exit",
	}
}

func newTestEngine(t *testing.T, gw *fakeGateway) (*Engine, *trendstore.Store, *ledger.Ledger) {
	t.Helper()
	t.Setenv("RELAY_LOG_DIR", t.TempDir())
	trends := trendstore.New()
	trades := ledger.New()
	return New(testConfig(), trends, trades, gw), trends, trades
}

func setTrend(t *testing.T, trends *trendstore.Store, ticker string, above13, above200 string) {
	t.Helper()
	trends.Update(context.Background(), types.TrendUpdate{
		Ticker:   ticker,
		Above13:  above13,
		Above200: above200,
		Ema13:    "21050.25",
		Ema200:   "20980.0",
		Close:    "21060.0",
	})
}

func price(v float64) *float64 { return &v }

func TestEntryBuyWhenAboveBoth(t *testing.T) {
	gw := &fakeGateway{res: types.SubmissionResult{Accepted: true, StatusCode: 200, Body: "ok"}}
	eng, trends, trades := newTestEngine(t, gw)
	setTrend(t, trends, "MNQZ2025", "true", "true")

	out := eng.DecideEntry(context.Background(), "MNQZ2025", price(21065.00), "")

	if !out.OK {
		t.Fatalf("Expected OK outcome, got %+v", out)
	}
	if out.Direction != types.Buy {
		t.Errorf("Expected buy, got %s", out.Direction)
	}
	if len(gw.calls) != 1 {
		t.Fatalf("Expected one gateway call, got %d", len(gw.calls))
	}
	req := gw.calls[0]
	if req.Ticker != "MNQZ2025" || req.Action != "buy" {
		t.Errorf("Unexpected order payload: %+v", req)
	}
	if req.Quantity != 2 {
		t.Errorf("Expected configured default quantity 2, got %d", req.Quantity)
	}
	if req.Price == nil || *req.Price != 21065.00 {
		t.Errorf("Expected price 21065.00, got %v", req.Price)
	}

	rec, ok := trades.Get("MNQZ2025")
	if !ok {
		t.Fatal("Expected a trade record")
	}
	if rec.EventKind != types.EventNewTrade || rec.Direction != types.Buy {
		t.Errorf("Unexpected record: %+v", rec)
	}
	if rec.Trend == nil || !rec.Trend.AboveFast || !rec.Trend.AboveSlow {
		t.Errorf("Expected trend snapshot captured, got %+v", rec.Trend)
	}
	if rec.Result == nil || !rec.Result.Accepted {
		t.Errorf("Expected accepted submission recorded, got %+v", rec.Result)
	}
}

func TestEntrySellWhenBelowBoth(t *testing.T) {
	gw := &fakeGateway{res: types.SubmissionResult{Accepted: true, StatusCode: 200}}
	eng, trends, _ := newTestEngine(t, gw)
	setTrend(t, trends, "MNQZ2025", "false", "false")

	out := eng.DecideEntry(context.Background(), "MNQZ2025", price(21000), "")

	if out.Direction != types.Sell {
		t.Errorf("Expected sell, got %s", out.Direction)
	}
	if len(gw.calls) != 1 || gw.calls[0].Action != "sell" {
		t.Errorf("Expected one sell order, got %+v", gw.calls)
	}
}

func TestEntrySuppressedOnMixedAlignment(t *testing.T) {
	for _, flags := range [][2]string{{"true", "false"}, {"false", "true"}} {
		gw := &fakeGateway{res: types.SubmissionResult{Accepted: true}}
		eng, trends, trades := newTestEngine(t, gw)
		setTrend(t, trends, "MNQZ2025", flags[0], flags[1])

		out := eng.DecideEntry(context.Background(), "MNQZ2025", price(21065.00), "")

		if !out.OK {
			t.Errorf("Suppression must be acknowledged as success, got %+v", out)
		}
		if out.Skipped != SkipAlignmentFilter {
			t.Errorf("Expected %s, got %q", SkipAlignmentFilter, out.Skipped)
		}
		if len(gw.calls) != 0 {
			t.Errorf("Gateway must not be invoked on suppression, got %d calls", len(gw.calls))
		}
		if _, ok := trades.Get("MNQZ2025"); ok {
			t.Error("Ledger must be unchanged on suppression")
		}
	}
}

func TestEntrySuppressedWithoutTrendState(t *testing.T) {
	gw := &fakeGateway{}
	eng, _, trades := newTestEngine(t, gw)

	out := eng.DecideEntry(context.Background(), "UNKNOWN", price(1.0), "")

	if !out.OK || out.Skipped != SkipNoTrendState {
		t.Errorf("Expected %s suppression, got %+v", SkipNoTrendState, out)
	}
	if len(gw.calls) != 0 {
		t.Errorf("Gateway must not be invoked, got %d calls", len(gw.calls))
	}
	if len(trades.Snapshot()) != 0 {
		t.Error("Ledger must be unchanged")
	}
}

func TestExitAlwaysSubmits(t *testing.T) {
	gw := &fakeGateway{res: types.SubmissionResult{Accepted: true, StatusCode: 200}}
	eng, _, trades := newTestEngine(t, gw)

	// No prior trend state, exit must still go out.
	out := eng.DecideExit(context.Background(), "MNQZ2025", price(21040.00), "")

	if !out.OK {
		t.Fatalf("Expected OK outcome, got %+v", out)
	}
	if len(gw.calls) != 1 {
		t.Fatalf("Expected one gateway call, got %d", len(gw.calls))
	}
	req := gw.calls[0]
	if req.Action != "exit" {
		t.Errorf("Expected configured exit action, got %q", req.Action)
	}
	if req.Quantity != 0 {
		t.Errorf("Exit orders carry no quantity, got %d", req.Quantity)
	}
	if req.Price == nil || *req.Price != 21040.00 {
		t.Errorf("Expected price 21040.00, got %v", req.Price)
	}

	rec, ok := trades.Get("MNQZ2025")
	if !ok {
		t.Fatal("Expected a trade record")
	}
	if rec.EventKind != types.EventExit {
		t.Errorf("Expected exit event, got %s", rec.EventKind)
	}
	if rec.Direction != "" {
		t.Errorf("Exit records carry no direction, got %q", rec.Direction)
	}
	if rec.Trend != nil {
		t.Error("Exit records carry no trend snapshot")
	}
}

func TestExitActionConfigurable(t *testing.T) {
	gw := &fakeGateway{res: types.SubmissionResult{Accepted: true}}
	t.Setenv("RELAY_LOG_DIR", t.TempDir())
	cfg := testConfig()
	cfg.OrderExitAction = "close"
	eng := New(cfg, trendstore.New(), ledger.New(), gw)

	eng.DecideExit(context.Background(), "MNQZ2025", nil, "")

	if len(gw.calls) != 1 || gw.calls[0].Action != "close" {
		t.Errorf("Expected close action, got %+v", gw.calls)
	}
	if gw.calls[0].Price != nil {
		t.Error("Expected price omitted when unknown")
	}
}

func TestSubmissionFailureIsRecordedNotRaised(t *testing.T) {
	gw := &fakeGateway{res: types.SubmissionResult{Accepted: false, Error: "connection refused"}}
	eng, trends, trades := newTestEngine(t, gw)
	setTrend(t, trends, "MNQZ2025", "true", "true")

	out := eng.DecideEntry(context.Background(), "MNQZ2025", price(21065.00), "")

	if out.OK {
		t.Error("Expected non-ok outcome on submission failure")
	}
	if out.Detail == nil || out.Detail.Error != "connection refused" {
		t.Errorf("Expected failure detail, got %+v", out.Detail)
	}

	rec, ok := trades.Get("MNQZ2025")
	if !ok {
		t.Fatal("Ledger must be written even on submission failure")
	}
	if rec.Result.Accepted {
		t.Error("Expected failed result in the record")
	}
}

func TestZeroDefaultQtyOmitsQuantity(t *testing.T) {
	gw := &fakeGateway{res: types.SubmissionResult{Accepted: true}}
	t.Setenv("RELAY_LOG_DIR", t.TempDir())
	cfg := testConfig()
	cfg.OrderDefaultQty = 0
	trends := trendstore.New()
	eng := New(cfg, trends, ledger.New(), gw)
	setTrend(t, trends, "MNQZ2025", "true", "true")

	eng.DecideEntry(context.Background(), "MNQZ2025", nil, "")

	if len(gw.calls) != 1 {
		t.Fatalf("Expected one gateway call, got %d", len(gw.calls))
	}
	if gw.calls[0].Quantity != 0 {
		t.Errorf("Expected zero quantity, got %d", gw.calls[0].Quantity)
	}
}
