package monitoring

import (
	"strconv"
	"time"

	"github.com/SAP-F-2025/readiness-assessment/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the HTTP and assessment collectors. A nil *Metrics records nothing.
type Metrics struct {
	gatherer prometheus.Gatherer

	RequestCounter    *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
	SessionsStarted   *prometheus.CounterVec
	SessionsCompleted prometheus.Counter
	PrefillSkipped    prometheus.Histogram
	QuickQuizScores   *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	m := &Metrics{
		gatherer: gatherer,
		RequestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
			},
			[]string{"method", "endpoint"},
		),
		SessionsStarted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assessment_sessions_started_total",
				Help: "Detailed assessment sessions started",
			},
			[]string{"prefilled"},
		),
		SessionsCompleted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "assessment_sessions_completed_total",
				Help: "Detailed assessment sessions completed and handed to the report generator",
			},
		),
		PrefillSkipped: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "assessment_prefill_skipped_questions",
				Help:    "Questions skipped per session thanks to the quick quiz",
				Buckets: []float64{0, 1, 2, 3, 4, 5},
			},
		),
		QuickQuizScores: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "quick_quiz_scores",
				Help:    "Quick quiz scores by maturity level",
				Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
			},
			[]string{"level"},
		),
	}

	reg.MustRegister(
		m.RequestCounter,
		m.RequestDuration,
		m.SessionsStarted,
		m.SessionsCompleted,
		m.PrefillSkipped,
		m.QuickQuizScores,
	)
	return m
}

// NewDefaultMetrics registers with the global prometheus registry.
func NewDefaultMetrics() *Metrics {
	return NewMetrics(prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
}

func (m *Metrics) SessionStarted(skippedCount int) {
	if m == nil {
		return
	}
	m.SessionsStarted.WithLabelValues(strconv.FormatBool(skippedCount > 0)).Inc()
	m.PrefillSkipped.Observe(float64(skippedCount))
}

func (m *Metrics) SessionCompleted() {
	if m == nil {
		return
	}
	m.SessionsCompleted.Inc()
}

func (m *Metrics) QuickQuizScored(score int, level models.MaturityLevel) {
	if m == nil {
		return
	}
	m.QuickQuizScores.WithLabelValues(string(level)).Observe(float64(score))
}

func (m *Metrics) MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		m.RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		m.RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func (m *Metrics) PrometheusHandler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
