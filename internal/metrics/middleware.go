package metrics

import (
	"net/http"
	"strings"
	"time"
)

// responseWriter wraps http.ResponseWriter to capture status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// HTTPMiddleware returns middleware that records HTTP metrics.
func HTTPMiddleware(reg *Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reg.InFlightInc()
			defer reg.InFlightDec()

			start := time.Now()

			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rw, r)

			duration := time.Since(start).Seconds()
			reg.RecordRequest(r.Method, metricsPath(r.URL.Path), rw.statusCode, duration)
		})
	}
}

// metricsPath collapses per-symbol path segments so the path label stays
// bounded instead of growing with every ticker requested.
func metricsPath(p string) string {
	for _, prefix := range []string{"/stock/", "/historical/", "/analysis/"} {
		if strings.HasPrefix(p, prefix) && len(p) > len(prefix) {
			return prefix + "{symbol}"
		}
	}
	return p
}
