package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// DatasetLoads counts dataset loads by locale and result.
	DatasetLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "techtree_dataset_loads_total",
			Help: "Total number of dataset loads",
		},
		[]string{"locale", "result"},
	)

	// DatasetLoadSeconds tracks how long a locale takes to load.
	DatasetLoadSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "techtree_dataset_load_seconds",
			Help:    "Time spent loading a dataset",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"locale"},
	)

	// Sessions is the number of open websocket sessions.
	Sessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "techtree_ws_sessions",
			Help: "Open websocket viewer sessions",
		},
	)

	// Requests counts HTTP requests by route and status.
	Requests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "techtree_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
)

func init() {
	prometheus.MustRegister(DatasetLoads)
	prometheus.MustRegister(DatasetLoadSeconds)
	prometheus.MustRegister(Sessions)
	prometheus.MustRegister(Requests)
}

// ObserveLoad records one dataset load attempt.
func ObserveLoad(locale string, elapsed time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	DatasetLoads.WithLabelValues(locale, result).Inc()
	DatasetLoadSeconds.WithLabelValues(locale).Observe(elapsed.Seconds())
}

// countRequests labels requests with the matched route pattern so ids in
// paths do not explode the label space.
func countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		Requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
	})
}
