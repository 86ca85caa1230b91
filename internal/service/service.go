// Package service orchestrates provider fetches: per-symbol quote
// normalization, batch fan-out, historical series and the upstream
// connectivity probe.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/prasertk/stockd/internal/core"
	"github.com/prasertk/stockd/internal/metrics"
	"github.com/prasertk/stockd/internal/normalize"
	"github.com/prasertk/stockd/internal/provider"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// probeSymbol is the known-good symbol used by the status check.
const probeSymbol = "AAPL"

// Service fetches and normalizes market data through one provider. It holds
// no mutable state; every request builds fresh records.
type Service struct {
	provider    provider.Provider
	metrics     *metrics.Registry
	logger      *zap.Logger
	concurrency int
}

// New creates a service. concurrency bounds the batch worker pool; values
// below 1 are treated as 1.
func New(p provider.Provider, reg *metrics.Registry, logger *zap.Logger, concurrency int) *Service {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Service{
		provider:    p,
		metrics:     reg,
		logger:      logger,
		concurrency: concurrency,
	}
}

// FetchQuote fetches and normalizes one symbol. Provider failures never
// surface: the caller always receives a well-formed record, fallback when no
// usable data came back.
func (s *Service) FetchQuote(ctx context.Context, symbol string) core.Quote {
	trimmed := strings.TrimSpace(symbol)

	info := s.fetchInfo(ctx, trimmed)
	bars := s.fetchSnapshot(ctx, trimmed)

	q := normalize.Normalize(trimmed, info, bars)
	if q.Success {
		s.metrics.RecordQuote("ok")
	} else {
		s.metrics.RecordQuote("fallback")
		s.logger.Warn("serving fallback record",
			zap.String("symbol", trimmed),
			zap.String("reason", q.Error),
		)
	}
	return q
}

func (s *Service) fetchInfo(ctx context.Context, symbol string) *provider.Info {
	start := time.Now()
	info, err := s.provider.FetchInfo(ctx, symbol)
	if err != nil {
		s.metrics.RecordProviderRequest("info", "error", time.Since(start).Seconds())
		s.logger.Warn("provider info fetch failed", zap.String("symbol", symbol), zap.Error(err))
		return nil
	}
	s.metrics.RecordProviderRequest("info", "ok", time.Since(start).Seconds())
	return info
}

func (s *Service) fetchSnapshot(ctx context.Context, symbol string) []provider.Bar {
	start := time.Now()
	bars, err := s.provider.FetchSnapshot(ctx, symbol)
	if err != nil {
		s.metrics.RecordProviderRequest("snapshot", "error", time.Since(start).Seconds())
		s.logger.Warn("provider snapshot fetch failed", zap.String("symbol", symbol), zap.Error(err))
		return nil
	}
	s.metrics.RecordProviderRequest("snapshot", "ok", time.Since(start).Seconds())
	return bars
}

// FetchAll fetches every symbol through a bounded worker pool. Output order
// matches input order regardless of completion order, and one symbol's
// failure never affects its siblings. An empty symbol list is a usage error.
func (s *Service) FetchAll(ctx context.Context, symbols []string) (core.BatchResult, error) {
	if len(symbols) == 0 {
		return core.BatchResult{}, core.WrapError(core.ErrBadRequest, errors.New("symbols required"))
	}

	s.metrics.RecordBatch(len(symbols))

	results := make([]core.Quote, len(symbols))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, symbol := range symbols {
		g.Go(func() error {
			results[i] = s.FetchQuote(ctx, symbol)
			return nil
		})
	}
	g.Wait()

	res := core.BatchResult{
		Data:           results,
		TotalRequested: len(symbols),
		FailedSymbols:  []string{},
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
	}
	for _, q := range results {
		if q.Success {
			res.TotalSuccessful++
		} else {
			res.FailedSymbols = append(res.FailedSymbols, q.Symbol)
		}
	}
	res.TotalFailed = len(symbols) - res.TotalSuccessful
	res.Success = res.TotalSuccessful > 0

	return res, nil
}

// FetchHistory returns the normalized series for one symbol. Unlike the quote
// path there is no fallback: an empty or unavailable series fails.
func (s *Service) FetchHistory(ctx context.Context, symbol, period, interval string) ([]core.HistoryPoint, error) {
	trimmed := strings.TrimSpace(symbol)

	start := time.Now()
	bars, err := s.provider.FetchHistory(ctx, trimmed, period, interval)
	if err != nil {
		s.metrics.RecordProviderRequest("history", "error", time.Since(start).Seconds())
		s.logger.Warn("provider history fetch failed",
			zap.String("symbol", trimmed),
			zap.String("period", period),
			zap.String("interval", interval),
			zap.Error(err),
		)
		return nil, err
	}
	s.metrics.RecordProviderRequest("history", "ok", time.Since(start).Seconds())

	return normalize.History(bars)
}

// StatusReport is the result of the upstream connectivity probe.
type StatusReport struct {
	Status     string   `json:"status"`
	Message    string   `json:"message"`
	TestSymbol string   `json:"test_symbol,omitempty"`
	TestPrice  *float64 `json:"test_price,omitempty"`
	Error      string   `json:"error,omitempty"`
}

// CheckStatus probes the provider with a known-good symbol. The returned
// error is non-nil when the probe could not get real data, so callers can
// surface upstream unavailability.
func (s *Service) CheckStatus(ctx context.Context) (StatusReport, error) {
	q := s.FetchQuote(ctx, probeSymbol)
	if q.Success {
		price := q.CurrentPrice
		return StatusReport{
			Status:     "connected",
			Message:    "provider API is working correctly",
			TestSymbol: probeSymbol,
			TestPrice:  &price,
		}, nil
	}

	return StatusReport{
		Status:  "disconnected",
		Message: "provider API test failed",
		Error:   q.Error,
	}, core.WrapError(core.ErrUpstream, errors.New(q.Error))
}
