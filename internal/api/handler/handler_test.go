package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prasertk/stockd/internal/core"
	"github.com/prasertk/stockd/internal/metrics"
	"github.com/prasertk/stockd/internal/provider"
	"github.com/prasertk/stockd/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeProvider struct {
	infos   map[string]*provider.Info
	bars    map[string][]provider.Bar
	history map[string][]provider.Bar
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) FetchInfo(ctx context.Context, symbol string) (*provider.Info, error) {
	info, ok := f.infos[symbol]
	if !ok {
		return nil, core.WrapError(core.ErrNoProviderData, errors.New("unknown symbol"))
	}
	return info, nil
}

func (f *fakeProvider) FetchSnapshot(ctx context.Context, symbol string) ([]provider.Bar, error) {
	bars, ok := f.bars[symbol]
	if !ok {
		return nil, core.WrapError(core.ErrNoProviderData, errors.New("unknown symbol"))
	}
	return bars, nil
}

func (f *fakeProvider) FetchHistory(ctx context.Context, symbol, period, interval string) ([]provider.Bar, error) {
	bars, ok := f.history[symbol]
	if !ok || len(bars) == 0 {
		return nil, core.WrapError(core.ErrNoHistoryData, errors.New("empty series"))
	}
	return bars, nil
}

func newTestHandler(p provider.Provider) *Handler {
	svc := service.New(p, metrics.NewRegistry(), zap.NewNop(), 2)
	return New(svc, zap.NewNop())
}

func stockedProvider() *fakeProvider {
	return &fakeProvider{
		infos: map[string]*provider.Info{
			"AAPL": {CurrentPrice: provider.Float(189.5), PreviousClose: provider.Float(188.0)},
			"MSFT": {CurrentPrice: provider.Float(410.0)},
		},
		bars: map[string][]provider.Bar{
			"AAPL": {{Close: 189.5, Volume: 1000}},
			"MSFT": {{Close: 410.0, Volume: 2000}},
		},
		history: map[string][]provider.Bar{
			"AAPL": {{Close: 180.0}, {Close: 182.0}},
		},
	}
}

func TestHealth(t *testing.T) {
	h := newTestHandler(stockedProvider())

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	h.Health(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "stock-data", body["service"])
}

func TestRoot(t *testing.T) {
	h := newTestHandler(stockedProvider())

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	h.Root(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/stock-data")
}

func TestStockData_EmptySymbols(t *testing.T) {
	h := newTestHandler(stockedProvider())

	req := httptest.NewRequest("POST", "/stock-data", bytes.NewBufferString(`{"symbols": []}`))
	w := httptest.NewRecorder()
	h.StockData(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "symbols array is required")
}

func TestStockData_InvalidJSON(t *testing.T) {
	h := newTestHandler(stockedProvider())

	req := httptest.NewRequest("POST", "/stock-data", bytes.NewBufferString(`{not json`))
	w := httptest.NewRecorder()
	h.StockData(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStockData_Batch(t *testing.T) {
	h := newTestHandler(stockedProvider())

	body := `{"symbols": ["AAPL", "MSFT", "BADSYM"]}`
	req := httptest.NewRequest("POST", "/stock-data", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	h.StockData(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var res core.BatchResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.True(t, res.Success)
	require.Len(t, res.Data, 3)
	assert.Equal(t, "AAPL", res.Data[0].Symbol)
	assert.Equal(t, "MSFT", res.Data[1].Symbol)
	assert.Equal(t, "BADSYM", res.Data[2].Symbol)
	assert.False(t, res.Data[2].Success)
	assert.Equal(t, 3, res.TotalRequested)
	assert.Equal(t, 2, res.TotalSuccessful)
	assert.Equal(t, 1, res.TotalFailed)
	assert.Equal(t, []string{"BADSYM"}, res.FailedSymbols)
	assert.NotEmpty(t, res.Timestamp)
}

func TestStockData_HistoricalMultiSymbol(t *testing.T) {
	h := newTestHandler(stockedProvider())

	body := `{"symbols": ["AAPL", "MSFT"], "historical": true}`
	req := httptest.NewRequest("POST", "/stock-data", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	h.StockData(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "single symbol")
}

func TestStockData_HistoricalSingle(t *testing.T) {
	h := newTestHandler(stockedProvider())

	body := `{"symbols": ["AAPL"], "historical": true, "period": "3mo", "interval": "1wk"}`
	req := httptest.NewRequest("POST", "/stock-data", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	h.StockData(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var res HistoricalResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.True(t, res.Success)
	assert.Len(t, res.Historical, 2)
	assert.Equal(t, "AAPL", res.Symbol)
	assert.Equal(t, "3mo", res.Period)
	assert.Equal(t, "1wk", res.Interval)
	assert.NotEmpty(t, res.Timestamp)
}

func TestStockData_HistoricalDefaults(t *testing.T) {
	h := newTestHandler(stockedProvider())

	body := `{"symbols": ["AAPL"], "historical": true}`
	req := httptest.NewRequest("POST", "/stock-data", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	h.StockData(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var res HistoricalResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "1mo", res.Period)
	assert.Equal(t, "1d", res.Interval)
}

func newMux(h *Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /stock/{symbol}", h.Stock)
	mux.HandleFunc("GET /historical/{symbol}", h.Historical)
	mux.HandleFunc("GET /analysis/{symbol}", h.Analysis)
	return mux
}

func TestStock_Success(t *testing.T) {
	mux := newMux(newTestHandler(stockedProvider()))

	req := httptest.NewRequest("GET", "/stock/AAPL", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var q core.Quote
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &q))
	assert.True(t, q.Success)
	assert.Equal(t, 189.5, q.CurrentPrice)
}

func TestStock_FallbackStill200(t *testing.T) {
	mux := newMux(newTestHandler(stockedProvider()))

	req := httptest.NewRequest("GET", "/stock/UNKNOWN", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var q core.Quote
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &q))
	assert.False(t, q.Success)
	assert.Equal(t, 100.0, q.CurrentPrice)
	assert.NotEmpty(t, q.Error)
}

func TestHistorical_Success(t *testing.T) {
	mux := newMux(newTestHandler(stockedProvider()))

	req := httptest.NewRequest("GET", "/historical/AAPL?period=6mo&interval=1d", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var res HistoricalResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.True(t, res.Success)
	assert.Equal(t, 2, res.TotalPoints)
	assert.Equal(t, "6mo", res.Period)
}

func TestHistorical_NoDataIsError(t *testing.T) {
	mux := newMux(newTestHandler(stockedProvider()))

	req := httptest.NewRequest("GET", "/historical/MSFT", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	// No fallback series exists for history.
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "detail")
}

func TestStatus_Connected(t *testing.T) {
	h := newTestHandler(stockedProvider())

	req := httptest.NewRequest("GET", "/status", nil)
	w := httptest.NewRecorder()
	h.Status(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var report service.StatusReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, "connected", report.Status)
	assert.Equal(t, "AAPL", report.TestSymbol)
}

func TestStatus_Disconnected(t *testing.T) {
	h := newTestHandler(&fakeProvider{})

	req := httptest.NewRequest("GET", "/status", nil)
	w := httptest.NewRecorder()
	h.Status(w, req)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var report service.StatusReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, "disconnected", report.Status)
}

func TestAnalysis(t *testing.T) {
	mux := newMux(newTestHandler(stockedProvider()))

	req := httptest.NewRequest("GET", "/analysis/AAPL", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var report struct {
		Symbol         string `json:"symbol"`
		TotalScore     int    `json:"total_score"`
		MaxScore       int    `json:"max_score"`
		Recommendation string `json:"recommendation"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, "AAPL", report.Symbol)
	assert.Equal(t, 15, report.MaxScore)
	assert.NotEmpty(t, report.Recommendation)
}
