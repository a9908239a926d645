package types

// TickerTrend is the latest EMA snapshot for one ticker. Each accepted
// ema_update fully replaces the previous snapshot.
type TickerTrend struct {
	AboveFast  bool    `json:"above13"`
	AboveSlow  bool    `json:"above200"`
	FastEMA    float64 `json:"ema13"`
	SlowEMA    float64 `json:"ema200"`
	LastClose  float64 `json:"close"`
	ObservedAt string  `json:"time"`
}

// TrendUpdate carries the raw string fields of an ema_update message.
// Normalization (flag and numeric parsing) happens in the trend store.
type TrendUpdate struct {
	Ticker   string
	Above13  string
	Above200 string
	Ema13    string
	Ema200   string
	Close    string
	Time     string
}

type Direction string

const (
	Buy  Direction = "buy"
	Sell Direction = "sell"
)

type EventKind string

const (
	EventNewTrade EventKind = "new_trade"
	EventExit     EventKind = "exit"
)

// OrderRequest is the payload posted to the brokerage webhook. Quantity is
// omitted when zero and Price when unknown.
type OrderRequest struct {
	Ticker   string   `json:"ticker"`
	Action   string   `json:"action"`
	Quantity int      `json:"quantity,omitempty"`
	Price    *float64 `json:"price,omitempty"`
}

// SubmissionResult is the outcome of one webhook submission. Transport
// failures are carried in Error; a response is carried in StatusCode/Body
// with Accepted reporting whether the status was a success.
type SubmissionResult struct {
	Accepted   bool   `json:"ok"`
	StatusCode int    `json:"status_code,omitempty"`
	Body       string `json:"body,omitempty"`
	Error      string `json:"error,omitempty"`
}

// TradeRecord is the most recent finalized trade event for a ticker,
// overwritten unconditionally including on submission failure.
type TradeRecord struct {
	ID         string            `json:"id"`
	EventKind  EventKind         `json:"last_event"`
	Direction  Direction         `json:"direction,omitempty"`
	Price      *float64          `json:"price,omitempty"`
	Trend      *TickerTrend      `json:"ema_snapshot,omitempty"`
	ObservedAt string            `json:"time,omitempty"`
	Result     *SubmissionResult `json:"result"`
}

// Outcome is the result of an entry or exit decision. A suppression is a
// successful outcome with Skipped set; an executed decision carries the
// direction and the submission detail.
type Outcome struct {
	OK        bool              `json:"ok"`
	Skipped   string            `json:"skipped,omitempty"`
	Direction Direction         `json:"direction,omitempty"`
	Detail    *SubmissionResult `json:"detail,omitempty"`
}

type SignalKind int

const (
	KindUnrecognized SignalKind = iota
	KindTrendUpdate
	KindEntry
	KindExit
	KindUnknownType
)

func (k SignalKind) String() string {
	switch k {
	case KindTrendUpdate:
		return "trend_update"
	case KindEntry:
		return "entry"
	case KindExit:
		return "exit"
	case KindUnknownType:
		return "unknown_type"
	default:
		return "unrecognized"
	}
}

// Signal is a classified inbound message. Fields are populated per Kind:
// Update for trend updates, Ticker/Price for entry and exit signals, and
// UnknownType for structured messages of an unexpected type.
type Signal struct {
	Kind        SignalKind
	Update      TrendUpdate
	Ticker      string
	Price       *float64
	UnknownType string
}
