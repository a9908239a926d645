package tradelog

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var mu sync.Mutex

// Entry is one forwarded order, appended as a JSON line to the daily file.
type Entry struct {
	Time, Ticker, Event, Action string
	Qty                         int
	Price                       float64
	Accepted                    bool
	StatusCode                  int            `json:",omitempty"`
	Error                       string         `json:",omitempty"`
	Extra                       map[string]any `json:"extra,omitempty"`
}

// SuppressionEntry is one entry signal that was filtered out before
// reaching the brokerage.
type SuppressionEntry struct {
	Time, Ticker, Reason string
	Price                float64
}

func logDir() string {
	if v := os.Getenv("RELAY_LOG_DIR"); v != "" {
		return v
	}
	return "logs"
}

func dailyFilepath(t time.Time) string {
	d := t.UTC().Format("2006-01-02")
	return filepath.Join(logDir(), d+".txt")
}

func suppressionsFilepath(t time.Time) string {
	d := t.UTC().Format("2006-01-02")
	return filepath.Join(logDir(), "suppressions", d+".txt")
}

func Append(e Entry) error {
	mu.Lock()
	defer mu.Unlock()
	now := time.Now().UTC()
	e.Time = now.Format("2006-01-02 15:04:05")
	return appendLine(dailyFilepath(now), e)
}

func AppendSuppression(e SuppressionEntry) error {
	mu.Lock()
	defer mu.Unlock()
	now := time.Now().UTC()
	e.Time = now.Format("2006-01-02 15:04:05")
	return appendLine(suppressionsFilepath(now), e)
}

func appendLine(p string, v any) error {
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	b, _ := json.Marshal(v)
	_, err = fmt.Fprintln(f, string(b))
	return err
}

// CompressOlder gzips log files whose modification time is older than the
// retention window.
func CompressOlder(retentionDays int) error {
	if retentionDays <= 0 {
		return nil
	}
	root := logDir()
	return filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(p) != ".txt" {
			return nil
		}
		info, er := os.Stat(p)
		if er != nil {
			return nil
		}
		cutoff := time.Now().AddDate(0, 0, -retentionDays)
		if info.ModTime().Before(cutoff) {
			gz := p + ".gz"
			// if already gz exists, remove original .txt
			if _, e2 := os.Stat(gz); e2 == nil {
				_ = os.Remove(p)
				return nil
			}

			in, e3 := os.Open(p)
			if e3 != nil {
				return nil
			}
			defer in.Close()

			out, e4 := os.OpenFile(gz, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
			if e4 != nil {
				return nil
			}
			gw := gzip.NewWriter(out)
			if _, e5 := io.Copy(gw, in); e5 == nil {
				_ = gw.Close()
				_ = out.Close()
				_ = os.Remove(p)
			} else {
				_ = gw.Close()
				_ = out.Close()
			}
		}
		return nil
	})
}
