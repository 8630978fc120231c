package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habits_http_requests_total",
			Help: "Total number of HTTP requests by endpoint, method, and status",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "habits_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	completionsToggledTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habits_completions_toggled_total",
			Help: "Total completion toggles by resulting state",
		},
		[]string{"state"},
	)

	persistFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "habits_persist_failures_total",
			Help: "Total mutations whose durable write failed",
		},
	)

	totalHabits = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "habits_total",
			Help: "Number of tracked habits",
		},
	)

	activeHabits = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "habits_active_today",
			Help: "Number of habits completed today",
		},
	)

	overallCompletionRate = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "habits_completion_rate_today_percent",
			Help: "Share of habits completed today, as a percentage",
		},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware labels by route pattern so habit ids do not explode cardinality.
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(wrapped.statusCode)
		endpoint := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			endpoint = rctx.RoutePattern()
		}

		httpRequestsTotal.WithLabelValues(endpoint, r.Method, statusCode).Inc()
		httpRequestDuration.WithLabelValues(endpoint, r.Method, statusCode).Observe(duration)
	})
}

func (s *Server) refreshGauges() {
	o := s.stats.OverallStats()
	totalHabits.Set(float64(o.TotalHabits))
	activeHabits.Set(float64(o.ActiveHabits))
	overallCompletionRate.Set(o.CompletionRate)
}
