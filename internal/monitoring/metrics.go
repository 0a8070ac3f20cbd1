package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	SessionsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "quiz_sessions_created_total",
			Help: "Quiz sessions created",
		},
	)

	SessionsRedeemed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_sessions_redeemed_total",
			Help: "Quiz session redemptions by outcome",
		},
		[]string{"outcome"},
	)

	AssemblyDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "quiz_assembly_duration_seconds",
			Help:    "Duration of composite quiz assembly",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)

	Registry = prometheus.NewRegistry()
)

func init() {
	Registry.MustRegister(
		RequestCounter,
		RequestDuration,
		SessionsCreated,
		SessionsRedeemed,
		AssemblyDuration,
	)
}

func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		endpoint := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				endpoint = pattern
			}
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		RequestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(status)).Inc()
		RequestDuration.WithLabelValues(r.Method, endpoint).Observe(time.Since(start).Seconds())
	})
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
