// Package metrics provides a Prometheus-backed implementation of
// engine.Metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hncalc/hncalc/engine"
)

// Prometheus collects engine counters into a Prometheus registry.
type Prometheus struct {
	classifications *prometheus.CounterVec
	cacheHits       prometheus.Counter
	milestones      prometheus.Counter
	lastMilestone   prometheus.Gauge
}

// Compile-time assertion that Prometheus implements engine.Metrics.
var _ engine.Metrics = (*Prometheus)(nil)

// NewPrometheus creates a collector registered with reg (the default
// registerer if nil) under the given namespace ("hncalc" if empty).
func NewPrometheus(reg prometheus.Registerer, namespace string) *Prometheus {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "hncalc"
	}
	factory := promauto.With(reg)
	return &Prometheus{
		classifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classifications_total",
			Help:      "Computed classifications, including intermediate iterates.",
		}, []string{"outcome"}),
		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Classification lookups answered from the shared cache.",
		}),
		milestones: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "milestones_total",
			Help:      "Progress milestones announced by the cursor.",
		}),
		lastMilestone: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_milestone",
			Help:      "Most recent milestone boundary reached.",
		}),
	}
}

func (p *Prometheus) ObserveClassification(happy bool) {
	outcome := "happy"
	if !happy {
		outcome = "unhappy"
	}
	p.classifications.WithLabelValues(outcome).Inc()
}

func (p *Prometheus) ObserveCacheHit() {
	p.cacheHits.Inc()
}

func (p *Prometheus) ObserveMilestone(boundary uint64) {
	p.milestones.Inc()
	p.lastMilestone.Set(float64(boundary))
}
