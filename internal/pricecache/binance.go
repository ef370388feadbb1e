package pricecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Binance REST:
//   GET /api/v3/klines?symbol=SOLUSDT&interval=1m&limit=1
// returns the most recent 1-minute candle; index 4 is the close price.
//
// Env override: BINANCE_BASE (default https://api.binance.com).
const (
	binanceDefaultBase = "https://api.binance.com"
	binanceSymbol      = "SOLUSDT"
	binanceInterval    = "1m"
)

var binanceHTTP = &http.Client{Timeout: 10 * time.Second}

// FetchBinance retrieves the latest SOL/USDT 1-minute close.
func FetchBinance(ctx context.Context) (float64, error) {
	base := os.Getenv("BINANCE_BASE")
	if base == "" {
		base = binanceDefaultBase
	}

	u, err := url.Parse(base)
	if err != nil {
		return 0, fmt.Errorf("parse base url: %w", err)
	}
	u.Path = "/api/v3/klines"
	q := u.Query()
	q.Set("symbol", binanceSymbol)
	q.Set("interval", binanceInterval)
	q.Set("limit", "1")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := binanceHTTP.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("binance klines: http %d", resp.StatusCode)
	}

	var data [][]any // array-of-arrays kline format
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return 0, err
	}
	if len(data) == 0 || len(data[0]) < 5 {
		return 0, errors.New("binance klines: empty response")
	}

	switch v := data[0][4].(type) {
	case string:
		return strconv.ParseFloat(v, 64)
	case float64:
		return v, nil
	default:
		return 0, errors.New("binance klines: unexpected close type")
	}
}
