package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prasertk/stockd/internal/config"
	"github.com/prasertk/stockd/internal/core"
	"github.com/prasertk/stockd/internal/metrics"
	"github.com/prasertk/stockd/internal/provider"
	"github.com/prasertk/stockd/internal/service"
	"go.uber.org/zap"
)

type staticProvider struct{}

func (staticProvider) Name() string { return "static" }

func (staticProvider) FetchInfo(ctx context.Context, symbol string) (*provider.Info, error) {
	if symbol != "AAPL" {
		return nil, core.WrapError(core.ErrNoProviderData, errors.New("unknown symbol"))
	}
	return &provider.Info{CurrentPrice: provider.Float(189.5)}, nil
}

func (staticProvider) FetchSnapshot(ctx context.Context, symbol string) ([]provider.Bar, error) {
	if symbol != "AAPL" {
		return nil, core.WrapError(core.ErrNoProviderData, errors.New("unknown symbol"))
	}
	return []provider.Bar{{Close: 189.5}}, nil
}

func (staticProvider) FetchHistory(ctx context.Context, symbol, period, interval string) ([]provider.Bar, error) {
	return []provider.Bar{{Close: 180.0}}, nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.Defaults()
	reg := metrics.NewRegistry()
	svc := service.New(staticProvider{}, reg, zap.NewNop(), 2)
	return NewServer(cfg, svc, reg, zap.NewNop())
}

func TestServerRoutes(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{"GET", "/", "", http.StatusOK},
		{"GET", "/health", "", http.StatusOK},
		{"GET", "/status", "", http.StatusOK},
		{"GET", "/stock/AAPL", "", http.StatusOK},
		{"GET", "/historical/AAPL", "", http.StatusOK},
		{"GET", "/analysis/AAPL", "", http.StatusOK},
		{"POST", "/stock-data", `{"symbols": ["AAPL"]}`, http.StatusOK},
		{"GET", "/metrics", "", http.StatusOK},
		{"GET", "/nope", "", http.StatusNotFound},
		{"DELETE", "/stock/AAPL", "", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			var req *http.Request
			if tt.body != "" {
				req = httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			} else {
				req = httptest.NewRequest(tt.method, tt.path, nil)
			}
			w := httptest.NewRecorder()
			srv.Handler().ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("status = %d, want %d (body: %s)", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestServerMiddlewareChain(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("Origin", "https://example.com")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header from middleware")
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("allow-origin = %q, want *", got)
	}
}

func TestServerMetricsDisabled(t *testing.T) {
	cfg := config.Defaults()
	cfg.Metrics.Enabled = false
	reg := metrics.NewRegistry()
	svc := service.New(staticProvider{}, reg, zap.NewNop(), 2)
	srv := NewServer(cfg, svc, reg, zap.NewNop())

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 when metrics disabled", w.Code)
	}
}
