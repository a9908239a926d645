package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"

	"signal-relay/internal/config"
	"signal-relay/internal/logger"
	"signal-relay/internal/types"
)

// Titan GT Ultra "New Trade Design" line:
//   MNQZ2025 New Trade Design , Price = 25787.50
const titanNewTradeRegex = `(?P<ticker>[A-Z0-9_]+)\s+New Trade Design\s*,\s*Price\s*=\s*(?P<price>[0-9.]+)`

// GT Ultra Exits line (comma optional):
//   MNQZ2025 Exit Signal,  Price = 25787.00
const titanExitRegex = `(?P<ticker>[A-Z0-9_]+)\s+Exit Signal\s*,?\s*Price\s*=\s*(?P<price>[0-9.]+)`

type pattern struct {
	name string
	kind types.SignalKind
	re   *regexp.Regexp
}

// Classifier decides how to interpret an inbound webhook body: structured
// ema_update first, then vendor alert patterns in registration order.
type Classifier struct {
	patterns []pattern
}

// New builds a classifier from pattern specs, typically loaded from a
// patterns file.
func New(specs []config.PatternSpec) (*Classifier, error) {
	c := &Classifier{}
	for _, s := range specs {
		re, err := regexp.Compile(s.Regex)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", s.Name, err)
		}
		kind := types.KindEntry
		if s.Kind == "exit" {
			kind = types.KindExit
		}
		c.patterns = append(c.patterns, pattern{name: s.Name, kind: kind, re: re})
	}
	return c, nil
}

// Default returns a classifier with the built-in Titan entry and exit
// patterns.
func Default() *Classifier {
	return &Classifier{patterns: []pattern{
		{name: "titan_new_trade", kind: types.KindEntry, re: regexp.MustCompile(titanNewTradeRegex)},
		{name: "titan_exit", kind: types.KindExit, re: regexp.MustCompile(titanExitRegex)},
	}}
}

// Classify interprets raw inbound bytes. Structured interpretation wins when
// the body parses to a non-empty JSON object; otherwise the vendor patterns
// are tried in order against the text.
func (c *Classifier) Classify(ctx context.Context, body []byte) types.Signal {
	var data map[string]any
	if err := json.Unmarshal(body, &data); err == nil && len(data) > 0 {
		msgType := stringField(data, "type")
		if msgType == "ema_update" {
			return types.Signal{
				Kind: types.KindTrendUpdate,
				Update: types.TrendUpdate{
					Ticker:   stringField(data, "ticker"),
					Above13:  stringField(data, "above13"),
					Above200: stringField(data, "above200"),
					Ema13:    stringField(data, "ema13"),
					Ema200:   stringField(data, "ema200"),
					Close:    stringField(data, "close"),
					Time:     stringField(data, "time"),
				},
			}
		}
		logger.Warn(ctx, "Unknown structured message type", "msg_type", msgType)
		return types.Signal{Kind: types.KindUnknownType, UnknownType: msgType}
	}

	for _, p := range c.patterns {
		m := p.re.FindStringSubmatch(string(body))
		if m == nil {
			continue
		}
		sig := types.Signal{Kind: p.kind}
		for i, name := range p.re.SubexpNames() {
			switch name {
			case "ticker":
				sig.Ticker = m[i]
			case "price":
				if v, err := strconv.ParseFloat(m[i], 64); err == nil {
					sig.Price = &v
				}
			}
		}
		logger.Debug(ctx, "Matched vendor pattern", "pattern", p.name, "ticker", sig.Ticker)
		return sig
	}

	return types.Signal{Kind: types.KindUnrecognized}
}

// stringField renders a JSON value as text the way the upstream sources
// send it: strings as-is, numbers and booleans stringified, missing as "".
func stringField(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
