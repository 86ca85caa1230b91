// Package handler holds the JSON API handlers.
package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/prasertk/stockd/internal/analysis"
	"github.com/prasertk/stockd/internal/api/response"
	"github.com/prasertk/stockd/internal/core"
	"github.com/prasertk/stockd/internal/service"
	"go.uber.org/zap"
)

// Handler serves the stock-data API.
type Handler struct {
	svc    *service.Service
	logger *zap.Logger
}

// New creates a handler backed by the given service.
func New(svc *service.Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Root handles GET / with an endpoint index.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]any{
		"message": "Stock data normalization API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"/stock-data":          "POST - Get stock data for multiple symbols",
			"/stock/{symbol}":      "GET - Get stock data for single symbol",
			"/historical/{symbol}": "GET - Get historical data for symbol",
			"/analysis/{symbol}":   "GET - Get value-investing score for symbol",
			"/health":              "GET - API health check",
			"/status":              "GET - Upstream provider status",
		},
	})
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "stock-data",
	})
}

// Status handles GET /status: a connectivity probe against the upstream
// provider. Upstream unavailability surfaces as 503 here, unlike the quote
// endpoints where it routes to fallback records.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.CheckStatus(r.Context())
	if err != nil {
		response.JSON(w, http.StatusServiceUnavailable, report)
		return
	}
	response.JSON(w, http.StatusOK, report)
}

// StockDataRequest is the POST /stock-data body.
type StockDataRequest struct {
	Symbols    []string `json:"symbols"`
	Historical bool     `json:"historical"`
	Period     string   `json:"period"`
	Interval   string   `json:"interval"`
}

// HistoricalResult is the response for historical requests.
type HistoricalResult struct {
	Success     bool                `json:"success"`
	Historical  []core.HistoryPoint `json:"historical"`
	Symbol      string              `json:"symbol"`
	Period      string              `json:"period"`
	Interval    string              `json:"interval"`
	TotalPoints int                 `json:"total_points,omitempty"`
	Timestamp   string              `json:"timestamp,omitempty"`
}

// StockData handles POST /stock-data: a quote batch, or a single-symbol
// historical series when historical=true.
func (h *Handler) StockData(w http.ResponseWriter, r *http.Request) {
	var req StockDataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, core.WrapError(core.ErrBadRequest, err))
		return
	}
	if len(req.Symbols) == 0 {
		response.Error(w, http.StatusBadRequest, &core.Error{
			Code: core.ErrBadRequest.Code, Message: "symbols array is required",
		})
		return
	}
	if req.Period == "" {
		req.Period = "1mo"
	}
	if req.Interval == "" {
		req.Interval = "1d"
	}

	if req.Historical {
		if len(req.Symbols) != 1 {
			response.Error(w, http.StatusBadRequest, &core.Error{
				Code: core.ErrBadRequest.Code, Message: "historical data only supports single symbol",
			})
			return
		}

		symbol := req.Symbols[0]
		points, err := h.svc.FetchHistory(r.Context(), symbol, req.Period, req.Interval)
		if err != nil {
			response.Error(w, response.StatusFor(err), err)
			return
		}

		response.JSON(w, http.StatusOK, HistoricalResult{
			Success:    true,
			Historical: points,
			Symbol:     symbol,
			Period:     req.Period,
			Interval:   req.Interval,
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	result, err := h.svc.FetchAll(r.Context(), req.Symbols)
	if err != nil {
		response.Error(w, response.StatusFor(err), err)
		return
	}
	response.JSON(w, http.StatusOK, result)
}

// Stock handles GET /stock/{symbol}. Fallback records are served with 200;
// the success flag tells the caller which variant it got.
func (h *Handler) Stock(w http.ResponseWriter, r *http.Request) {
	symbol := r.PathValue("symbol")
	q := h.svc.FetchQuote(r.Context(), symbol)
	response.JSON(w, http.StatusOK, q)
}

// Historical handles GET /historical/{symbol}?period=&interval=.
func (h *Handler) Historical(w http.ResponseWriter, r *http.Request) {
	symbol := r.PathValue("symbol")
	period := r.URL.Query().Get("period")
	interval := r.URL.Query().Get("interval")
	if period == "" {
		period = "1mo"
	}
	if interval == "" {
		interval = "1d"
	}

	points, err := h.svc.FetchHistory(r.Context(), symbol, period, interval)
	if err != nil {
		response.Error(w, response.StatusFor(err), err)
		return
	}

	response.JSON(w, http.StatusOK, HistoricalResult{
		Success:     true,
		Historical:  points,
		Symbol:      symbol,
		Period:      period,
		Interval:    interval,
		TotalPoints: len(points),
	})
}

// Analysis handles GET /analysis/{symbol}: fetches the quote and scores it.
// Fallback records are scored too; their defaults yield a stable mid-band
// report.
func (h *Handler) Analysis(w http.ResponseWriter, r *http.Request) {
	symbol := r.PathValue("symbol")
	q := h.svc.FetchQuote(r.Context(), symbol)
	report := analysis.Score(q)
	response.JSON(w, http.StatusOK, report)
}
