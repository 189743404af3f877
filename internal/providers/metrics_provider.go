package providers

import (
	"smsgate/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncPollCycles(outcome string)
	AddMessagesReceived(count int)
	IncArchiveFailures()
	ObserveStateSaveDuration(duration time.Duration)
	SetTrackedHashes(count int)
	IncCacheHits()
	IncCacheMisses()
}

type MetricsProvider struct {
	requestsTotal     *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	pollCycles        *prometheus.CounterVec
	messagesReceived  prometheus.Counter
	archiveFailures   prometheus.Counter
	stateSaveDuration prometheus.Histogram
	trackedHashes     prometheus.Gauge
	cacheHits         prometheus.Counter
	cacheMisses       prometheus.Counter
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncPollCycles(outcome string) {
	m.pollCycles.WithLabelValues(outcome).Inc()
}

func (m *MetricsProvider) AddMessagesReceived(count int) {
	m.messagesReceived.Add(float64(count))
}

func (m *MetricsProvider) IncArchiveFailures() {
	m.archiveFailures.Inc()
}

func (m *MetricsProvider) ObserveStateSaveDuration(duration time.Duration) {
	m.stateSaveDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) SetTrackedHashes(count int) {
	m.trackedHashes.Set(float64(count))
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
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

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "smsgate_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "smsgate_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		pollCycles: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "smsgate_poll_cycles_total",
			Help: "Total number of poll cycles by outcome",
		}, []string{"outcome"}),

		messagesReceived: promauto.NewCounter(prometheus.CounterOpts{
			Name: "smsgate_messages_received_total",
			Help: "Total number of newly accepted SMS messages",
		}),

		archiveFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "smsgate_archive_failures_total",
			Help: "Total number of failed archive writes",
		}),

		stateSaveDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "smsgate_state_save_duration_seconds",
			Help:    "Duration of state file persistence",
			Buckets: prometheus.DefBuckets,
		}),

		trackedHashes: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "smsgate_tracked_hashes",
			Help: "Number of fingerprints currently tracked for deduplication",
		}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "smsgate_cache_hits_total",
			Help: "Archive cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "smsgate_cache_misses_total",
			Help: "Archive cache misses",
		}),
	}
}

type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncPollCycles(_ string)                           {}
func (n *noopMetrics) AddMessagesReceived(_ int)                        {}
func (n *noopMetrics) IncArchiveFailures()                              {}
func (n *noopMetrics) ObserveStateSaveDuration(_ time.Duration)         {}
func (n *noopMetrics) SetTrackedHashes(_ int)                           {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
