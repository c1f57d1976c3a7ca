// Package metrics records link station lookups in Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels.
const (
	OutcomeFound   = "found"
	OutcomeNone    = "none"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// Recorder receives one observation per find request.
type Recorder interface {
	// RecordLookup counts a request with its outcome and the number of
	// candidate stations evaluated.
	RecordLookup(outcome string, candidates int)
	// RecordPower observes the winning power of a successful lookup.
	RecordPower(power float64)
}

// NopRecorder discards observations.
type NopRecorder struct{}

func (NopRecorder) RecordLookup(string, int) {}
func (NopRecorder) RecordPower(float64)      {}

// PromRecorder records lookups in Prometheus metrics.
type PromRecorder struct {
	requests   *prometheus.CounterVec
	candidates prometheus.Histogram
	power      prometheus.Histogram
}

// NewPromRecorder registers the lookup metrics on reg. A nil registerer
// defaults to the global Prometheus registerer.
func NewPromRecorder(reg prometheus.Registerer) (*PromRecorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "linkstation_requests_total",
		Help: "Total number of link station lookups by outcome",
	}, []string{"outcome"})
	candidates := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "linkstation_candidates",
		Help:    "Number of candidate stations per lookup",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	})
	power := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "linkstation_best_power",
		Help:    "Power offered by the winning station",
		Buckets: prometheus.ExponentialBuckets(0.25, 4, 10),
	})

	if err := reg.Register(requests); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return nil, err
		}
		requests = are.ExistingCollector.(*prometheus.CounterVec)
	}
	if err := reg.Register(candidates); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return nil, err
		}
		candidates = are.ExistingCollector.(prometheus.Histogram)
	}
	if err := reg.Register(power); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return nil, err
		}
		power = are.ExistingCollector.(prometheus.Histogram)
	}
	return &PromRecorder{requests: requests, candidates: candidates, power: power}, nil
}

func (r *PromRecorder) RecordLookup(outcome string, candidates int) {
	r.requests.WithLabelValues(outcome).Inc()
	if candidates > 0 {
		r.candidates.Observe(float64(candidates))
	}
}

func (r *PromRecorder) RecordPower(power float64) {
	r.power.Observe(power)
}

// Handler serves the metrics gathered by g, or the default gatherer when g
// is nil.
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
