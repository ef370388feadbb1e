// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Classification metrics
	TransactionsClassified *prometheus.CounterVec
	EraseReasons           *prometheus.CounterVec
	StageDuration          *prometheus.HistogramVec
	ClassificationDuration prometheus.Histogram

	// Feed metrics
	FeedMessagesReceived prometheus.Counter
	FeedReconnects       prometheus.Counter
	FeedErrors           *prometheus.CounterVec

	// Price cache metrics
	PriceCacheAgeSeconds prometheus.Gauge
	PriceRefreshErrors   prometheus.Counter

	// Database metrics
	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec
	RecordsStored   *prometheus.CounterVec

	// Health metrics
	LastClassification prometheus.Gauge
	UptimeSeconds      prometheus.Counter
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "swap_classifier"
	}

	return &Metrics{
		TransactionsClassified: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "transactions_classified_total",
			Help:      "Total number of transactions classified by outcome",
		}, []string{"outcome"}),
		EraseReasons: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "erase_reasons_total",
			Help:      "Total number of erased transactions by reason",
		}, []string{"reason"}),
		StageDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "stage_duration_seconds",
			Help:      "Per-stage classification latency in seconds",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"stage"}),
		ClassificationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "classification_duration_seconds",
			Help:      "End-to-end classification latency in seconds",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),

		FeedMessagesReceived: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "messages_received_total",
			Help:      "Total number of transaction messages received from the feed",
		}),
		FeedReconnects: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "reconnects_total",
			Help:      "Total number of feed reconnections",
		}),
		FeedErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "errors_total",
			Help:      "Total number of feed errors by type",
		}, []string{"error_type"}),

		PriceCacheAgeSeconds: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "price",
			Name:      "cache_age_seconds",
			Help:      "Seconds since the last successful spot price fetch",
		}),
		PriceRefreshErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "price",
			Name:      "refresh_errors_total",
			Help:      "Total number of failed spot price refreshes",
		}),

		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"database", "operation"}),
		DBQueryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_errors_total",
			Help:      "Total number of database query errors",
		}, []string{"database", "operation"}),
		RecordsStored: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "records_stored_total",
			Help:      "Total number of records stored by kind",
		}, []string{"kind"}),

		LastClassification: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_classification_timestamp",
			Help:      "Unix timestamp of the last completed classification",
		}),
		UptimeSeconds: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "uptime_seconds_total",
			Help:      "Total uptime in seconds",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveStage implements the pipeline's stage observer interface.
func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	m.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordClassification records one completed classification.
func RecordClassification(outcome string, d time.Duration) {
	DefaultMetrics.TransactionsClassified.WithLabelValues(outcome).Inc()
	DefaultMetrics.ClassificationDuration.Observe(d.Seconds())
	DefaultMetrics.LastClassification.Set(float64(time.Now().Unix()))
}

// RecordErase records one erased transaction by reason.
func RecordErase(reason string) {
	DefaultMetrics.EraseReasons.WithLabelValues(reason).Inc()
}

// RecordFeedMessage increments the feed message counter.
func RecordFeedMessage() {
	DefaultMetrics.FeedMessagesReceived.Inc()
}

// RecordFeedReconnect increments the feed reconnect counter.
func RecordFeedReconnect() {
	DefaultMetrics.FeedReconnects.Inc()
}

// RecordFeedError records a feed error by type.
func RecordFeedError(errorType string) {
	DefaultMetrics.FeedErrors.WithLabelValues(errorType).Inc()
}

// UpdatePriceCacheAge updates the price cache staleness gauge. Negative ages
// mean no fetch has succeeded yet and are skipped.
func UpdatePriceCacheAge(age time.Duration) {
	if age < 0 {
		return
	}
	DefaultMetrics.PriceCacheAgeSeconds.Set(age.Seconds())
}

// RecordPriceRefreshError increments the price refresh error counter.
func RecordPriceRefreshError() {
	DefaultMetrics.PriceRefreshErrors.Inc()
}

// RecordDBQuery records database query metrics.
func RecordDBQuery(database, operation string, seconds float64, err error) {
	DefaultMetrics.DBQueryDuration.WithLabelValues(database, operation).Observe(seconds)
	if err != nil {
		DefaultMetrics.DBQueryErrors.WithLabelValues(database, operation).Inc()
	}
}

// AddUptime accumulates process uptime.
func AddUptime(d time.Duration) {
	DefaultMetrics.UptimeSeconds.Add(d.Seconds())
}

// RecordStored records stored rows by kind.
func RecordStored(kind string, n int) {
	DefaultMetrics.RecordsStored.WithLabelValues(kind).Add(float64(n))
}
