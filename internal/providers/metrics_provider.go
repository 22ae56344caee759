package providers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"memento/internal/models"
	"memento/internal/structures"
	"time"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncExportCacheHits()
	IncExportCacheMisses()
	IncGenerations(mode string)
	IncRejectedGenerations()
	IncExports(outcome string)
	ObserveRenderDuration(duration time.Duration)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	exportCacheHits     prometheus.Counter
	exportCacheMisses   prometheus.Counter
	generationsTotal    *prometheus.CounterVec
	rejectedGenerations prometheus.Counter
	exportsTotal        *prometheus.CounterVec
	renderDuration      prometheus.Histogram
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncExportCacheHits() {
	m.exportCacheHits.Inc()
}

func (m *MetricsProvider) IncExportCacheMisses() {
	m.exportCacheMisses.Inc()
}

func (m *MetricsProvider) IncGenerations(mode string) {
	m.generationsTotal.WithLabelValues(mode).Inc()
}

func (m *MetricsProvider) IncRejectedGenerations() {
	m.rejectedGenerations.Inc()
}

func (m *MetricsProvider) IncExports(outcome string) {
	m.exportsTotal.WithLabelValues(outcome).Inc()
}

func (m *MetricsProvider) ObserveRenderDuration(duration time.Duration) {
	m.renderDuration.Observe(duration.Seconds())
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config, history *models.History) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "memento_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "memento_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		exportCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "memento_export_cache_hits_total",
			Help: "Total number of export cache hits",
		}),

		exportCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "memento_export_cache_misses_total",
			Help: "Total number of export cache misses",
		}),

		generationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "memento_generations_total",
			Help: "Total number of revealed predictions",
		}, []string{"mode"}),

		rejectedGenerations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "memento_generations_rejected_total",
			Help: "Generate requests dropped because a sequence was running",
		}),

		exportsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "memento_exports_total",
			Help: "Image export requests by outcome",
		}, []string{"outcome"}),

		renderDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "memento_render_duration_seconds",
			Help:    "Duration of PNG export rendering in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "memento_history_size",
		Help: "Number of predictions in the session history",
	}, func() float64 {
		return float64(history.Len())
	})

	return m
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncExportCacheHits()                              {}
func (n *noopMetrics) IncExportCacheMisses()                            {}
func (n *noopMetrics) IncGenerations(_ string)                          {}
func (n *noopMetrics) IncRejectedGenerations()                          {}
func (n *noopMetrics) IncExports(_ string)                              {}
func (n *noopMetrics) ObserveRenderDuration(_ time.Duration)            {}
