package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"regexp"
	"time"

	"github.com/prasertk/stockd/internal/core"
	"github.com/prasertk/stockd/internal/provider"
)

const (
	defaultBaseURL   = "https://query1.finance.yahoo.com"
	defaultUserAgent = "stockd/1.0"

	summaryModules = "price,summaryDetail,defaultKeyStatistics,financialData,calendarEvents"
)

// validSymbol matches stock symbols like AAPL, MSFT, PTT.BK, 0700.HK
var validSymbol = regexp.MustCompile(`^[A-Za-z0-9-]{1,10}(\.[A-Za-z]{1,4})?$`)

// validateSymbol checks if a symbol has valid format
func validateSymbol(symbol string) error {
	if symbol == "" {
		return fmt.Errorf("symbol cannot be empty")
	}
	if len(symbol) > 20 {
		return fmt.Errorf("symbol too long: %s", symbol)
	}
	if !validSymbol.MatchString(symbol) {
		return fmt.Errorf("invalid symbol format: %s", symbol)
	}
	return nil
}

// Config holds Yahoo client settings.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// Yahoo implements the Yahoo Finance provider using the quoteSummary and
// chart APIs.
type Yahoo struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

// New creates a new Yahoo provider.
func New(cfg Config) *Yahoo {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: 3 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		ForceAttemptHTTP2:   true,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 3 * time.Second,
	}

	return &Yahoo{
		client:    &http.Client{Timeout: cfg.Timeout, Transport: transport},
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
	}
}

func (y *Yahoo) Name() string {
	return "yahoo"
}

func (y *Yahoo) get(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return core.WrapError(core.ErrUpstream, err)
	}
	req.Header.Set("User-Agent", y.userAgent)

	resp, err := y.client.Do(req)
	if err != nil {
		return core.WrapError(core.ErrUpstream, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return core.WrapError(core.ErrNoProviderData, fmt.Errorf("status %d", resp.StatusCode))
	case resp.StatusCode != http.StatusOK:
		return core.WrapError(core.ErrUpstream, fmt.Errorf("unexpected status: %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return core.WrapError(core.ErrUpstream, fmt.Errorf("decoding response: %w", err))
	}
	return nil
}

// FetchInfo fetches the fundamentals bundle via the quoteSummary API.
func (y *Yahoo) FetchInfo(ctx context.Context, symbol string) (*provider.Info, error) {
	if err := validateSymbol(symbol); err != nil {
		return nil, core.WrapError(core.ErrNoProviderData, err)
	}

	url := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=%s", y.baseURL, symbol, summaryModules)

	var result summaryResponse
	if err := y.get(ctx, url, &result); err != nil {
		return nil, err
	}

	if result.QuoteSummary.Error != nil {
		return nil, core.WrapError(core.ErrNoProviderData,
			fmt.Errorf("yahoo error: %s", result.QuoteSummary.Error.Description))
	}
	if len(result.QuoteSummary.Result) == 0 {
		return nil, core.WrapError(core.ErrNoProviderData, fmt.Errorf("no data for symbol: %s", symbol))
	}

	return result.QuoteSummary.Result[0].toInfo(), nil
}

// FetchSnapshot fetches the most recent daily bars, newest first.
func (y *Yahoo) FetchSnapshot(ctx context.Context, symbol string) ([]provider.Bar, error) {
	bars, err := y.fetchChart(ctx, symbol, "5d", "1d")
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, core.WrapError(core.ErrNoProviderData, fmt.Errorf("empty series for symbol: %s", symbol))
	}

	// Chart payload is chronological; the quote path wants newest first.
	reversed := make([]provider.Bar, len(bars))
	for i, b := range bars {
		reversed[len(bars)-1-i] = b
	}
	return reversed, nil
}

// FetchHistory fetches bars for a period/interval pair in chronological order.
func (y *Yahoo) FetchHistory(ctx context.Context, symbol, period, interval string) ([]provider.Bar, error) {
	bars, err := y.fetchChart(ctx, symbol, toYahooRange(period), toYahooInterval(interval))
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, core.WrapError(core.ErrNoHistoryData, fmt.Errorf("empty series for symbol: %s", symbol))
	}
	return bars, nil
}

func (y *Yahoo) fetchChart(ctx context.Context, symbol, yrange, interval string) ([]provider.Bar, error) {
	if err := validateSymbol(symbol); err != nil {
		return nil, core.WrapError(core.ErrNoProviderData, err)
	}

	url := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=%s", y.baseURL, symbol, yrange, interval)

	var result chartResponse
	if err := y.get(ctx, url, &result); err != nil {
		return nil, err
	}

	if result.Chart.Error != nil {
		return nil, core.WrapError(core.ErrNoProviderData,
			fmt.Errorf("yahoo error: %s", result.Chart.Error.Description))
	}
	if len(result.Chart.Result) == 0 || len(result.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, core.WrapError(core.ErrNoProviderData, fmt.Errorf("no data for symbol: %s", symbol))
	}

	r := result.Chart.Result[0]
	quotes := r.Indicators.Quote[0]

	bars := make([]provider.Bar, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		if i >= len(quotes.Close) || quotes.Close[i] == nil {
			continue // Skip missing data
		}
		bar := provider.Bar{
			Date:  time.Unix(int64(ts), 0).UTC(),
			Close: *quotes.Close[i],
		}
		if i < len(quotes.Open) && quotes.Open[i] != nil {
			bar.Open = *quotes.Open[i]
		}
		if i < len(quotes.High) && quotes.High[i] != nil {
			bar.High = *quotes.High[i]
		}
		if i < len(quotes.Low) && quotes.Low[i] != nil {
			bar.Low = *quotes.Low[i]
		}
		if i < len(quotes.Volume) && quotes.Volume[i] != nil {
			bar.Volume = int64(*quotes.Volume[i])
		}
		bars = append(bars, bar)
	}

	return bars, nil
}

// validRanges mirrors the period strings the upstream chart API accepts.
var validRanges = map[string]bool{
	"1d": true, "5d": true, "1mo": true, "3mo": true, "6mo": true,
	"1y": true, "2y": true, "5y": true, "10y": true, "ytd": true, "max": true,
}

var validIntervals = map[string]bool{
	"1m": true, "2m": true, "5m": true, "15m": true, "30m": true,
	"60m": true, "90m": true, "1h": true, "1d": true, "5d": true,
	"1wk": true, "1mo": true, "3mo": true,
}

func toYahooRange(period string) string {
	if validRanges[period] {
		return period
	}
	return "1mo"
}

func toYahooInterval(interval string) string {
	if validIntervals[interval] {
		return interval
	}
	return "1d"
}
