// Package metrics exposes filtering counters in Prometheus format.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/randalmurphal/seqfilter/pipeline"
	"github.com/randalmurphal/seqfilter/truncate"
)

// Namespace prefixes every metric name.
const Namespace = "seqfilter"

// Collector records per-side sentence and word statistics.
// It satisfies pipeline.Recorder.
type Collector struct {
	registry *prometheus.Registry

	rows            prometheus.Counter
	sentencesIn     *prometheus.CounterVec
	sentencesKept   *prometheus.CounterVec
	oversized       *prometheus.CounterVec
	wordsKept       *prometheus.HistogramVec
	runInfo         *prometheus.GaugeVec
	lastRunDuration prometheus.Gauge
}

// New creates a collector with its own registry.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
	}

	c.rows = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "rows_total",
		Help:      "Total number of data rows written",
	})

	c.sentencesIn = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "sentences_in_total",
			Help:      "Sentences produced by segmentation",
		},
		[]string{"side"},
	)

	c.sentencesKept = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "sentences_kept_total",
			Help:      "Sentences retained after trimming",
		},
		[]string{"side"},
	)

	c.oversized = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "oversized_sentences_total",
			Help:      "Single sentences kept although they exceed the word budget",
		},
		[]string{"side"},
	)

	c.wordsKept = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "words_kept",
			Help:      "Words retained per side of a record",
			Buckets:   prometheus.ExponentialBuckets(4, 2, 8),
		},
		[]string{"side"},
	)

	c.runInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "run_info",
			Help:      "Configuration of the last run",
		},
		[]string{"run_id", "language", "max_words"},
	)

	c.lastRunDuration = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "last_run_duration_seconds",
		Help:      "Wall time of the last completed run",
	})

	c.registry.MustRegister(
		c.rows,
		c.sentencesIn,
		c.sentencesKept,
		c.oversized,
		c.wordsKept,
		c.runInfo,
		c.lastRunDuration,
	)

	return c
}

// Registry returns the collector's registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveRecord implements pipeline.Recorder.
func (c *Collector) ObserveRecord(res pipeline.Result) {
	c.rows.Inc()
	c.observeSide("source", res.Source)
	c.observeSide("target", res.Target)
}

func (c *Collector) observeSide(side string, sel truncate.Selection) {
	kept := len(sel.Sentences)
	c.sentencesIn.WithLabelValues(side).Add(float64(kept + sel.Dropped))
	c.sentencesKept.WithLabelValues(side).Add(float64(kept))
	c.wordsKept.WithLabelValues(side).Observe(float64(sel.Words))
	if sel.Oversized {
		c.oversized.WithLabelValues(side).Inc()
	}
}

// SetRunInfo records the identity and settings of the current run.
func (c *Collector) SetRunInfo(runID, language string, maxWords int) {
	c.runInfo.Reset()
	c.runInfo.WithLabelValues(runID, language, fmt.Sprintf("%d", maxWords)).Set(1)
}

// SetRunDuration records how long the last run took.
func (c *Collector) SetRunDuration(seconds float64) {
	c.lastRunDuration.Set(seconds)
}

// WriteTextfile writes the registry in text exposition format, suitable for
// the node_exporter textfile collector.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("write metrics %s: %w", path, err)
	}
	return nil
}
