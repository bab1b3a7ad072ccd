package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booklt_http_requests_total",
			Help: "Count of HTTP requests by method, path prefix and status.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "booklt_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path prefix.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// Metrics records request counts and latencies. Paths are reduced to their
// first segment ("/exp", "/book") so IDs do not explode label cardinality.
func Metrics() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			prefix := pathPrefix(r.URL.Path)
			httpRequestsTotal.WithLabelValues(r.Method, prefix, strconv.Itoa(wrapped.statusCode)).Inc()
			httpRequestDuration.WithLabelValues(r.Method, prefix).Observe(time.Since(start).Seconds())
		})
	}
}

func pathPrefix(path string) string {
	if path == "" || path == "/" {
		return "/"
	}
	rest := path[1:]
	for i := 0; i < len(rest); i++ {
		if rest[i] == '/' {
			return path[:i+1]
		}
	}
	return path
}
