// Package metrics instruments the calldata guesser service with the
// same promauto-registered counter/histogram style used across the
// rest of the application, under an app-specific namespace.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "calldataguesser"

// Metrics holds every counter/histogram the service records.
type Metrics struct {
	guessesAttempted prometheus.Counter
	guessesAccepted  prometheus.Counter
	cacheHits        *prometheus.CounterVec
	inferDuration    prometheus.Histogram
}

// New registers every metric against reg and returns the bundle.
func New(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		guessesAttempted: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "guesses_attempted_total",
			Help:      "The number of calldata payloads submitted for shape inference.",
		}),
		guessesAccepted: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "guesses_accepted_total",
			Help:      "The number of calldata payloads for which the oracle accepted a candidate shape.",
		}),
		cacheHits: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Hot-cache and history-store lookups by outcome.",
		}, []string{"layer", "outcome"}),
		inferDuration: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "infer_duration_seconds",
			Help:      "Wall-clock time spent in the tuple inferencer per call.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) IncGuessAttempted() { m.guessesAttempted.Inc() }
func (m *Metrics) IncGuessAccepted()  { m.guessesAccepted.Inc() }

func (m *Metrics) IncCacheLookup(layer string, hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	m.cacheHits.WithLabelValues(layer, outcome).Inc()
}

func (m *Metrics) ObserveInferDuration(seconds float64) {
	m.inferDuration.Observe(seconds)
}
