// Package metrics provides Prometheus metrics for semtok's compression
// operations: batch and record counters, reduction-percentage distribution,
// and envelope sizing. Metrics are registered once via promauto; recording
// is safe for concurrent use.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BatchesCompressed counts compressed batches by ontology class and outcome.
	BatchesCompressed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "semtok",
			Name:      "batches_compressed_total",
			Help:      "Total number of batches compressed",
		},
		[]string{"class", "status"},
	)

	// BatchesDecompressed counts decompressed envelopes.
	BatchesDecompressed = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "semtok",
			Name:      "batches_decompressed_total",
			Help:      "Total number of envelopes decompressed",
		},
	)

	// RecordsProcessed counts records flowing through the codec by direction.
	RecordsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "semtok",
			Name:      "records_processed_total",
			Help:      "Total number of records compressed or decompressed",
		},
		[]string{"direction"},
	)

	// ReductionPercent observes the token reduction achieved per batch.
	ReductionPercent = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "semtok",
			Name:      "reduction_percent",
			Help:      "Token reduction percentage per compressed batch",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		},
	)

	// EnvelopeBytes observes serialized envelope sizes.
	EnvelopeBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "semtok",
			Name:      "envelope_bytes",
			Help:      "Serialized envelope size in bytes",
			Buckets:   prometheus.ExponentialBuckets(64, 4, 10),
		},
	)

	// CompressionLatency observes time spent compressing, in seconds.
	CompressionLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "semtok",
			Name:      "compression_latency_seconds",
			Help:      "Latency of compress and decompress calls",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

// Timer tracks the duration of a single operation.
type Timer struct {
	operation string
	start     time.Time
}

// NewTimer starts a timer for the named operation.
func NewTimer(operation string) *Timer {
	return &Timer{operation: operation, start: time.Now()}
}

// Stop records the elapsed time and returns it.
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	CompressionLatency.WithLabelValues(t.operation).Observe(elapsed.Seconds())
	return elapsed
}

// RecordCompression records one successful batch compression.
func RecordCompression(class string, records int, reductionPct float64, envelopeSize int) {
	BatchesCompressed.WithLabelValues(class, "success").Inc()
	RecordsProcessed.WithLabelValues("compress").Add(float64(records))
	ReductionPercent.Observe(reductionPct)
	EnvelopeBytes.Observe(float64(envelopeSize))
}

// RecordDecompression records one envelope decompression.
func RecordDecompression(records int) {
	BatchesDecompressed.Inc()
	RecordsProcessed.WithLabelValues("decompress").Add(float64(records))
}
