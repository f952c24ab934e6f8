package engine

// Metrics collects operational counters from a running engine. The default
// implementation discards everything; internal/metrics provides a
// Prometheus-backed collector.
type Metrics interface {
	ObserveClassification(happy bool)
	ObserveCacheHit()
	ObserveMilestone(boundary uint64)
}

type nopMetrics struct{}

func (nopMetrics) ObserveClassification(happy bool) {}

func (nopMetrics) ObserveCacheHit() {}

func (nopMetrics) ObserveMilestone(boundary uint64) {}
