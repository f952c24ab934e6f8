package engine

import "github.com/hncalc/hncalc/cache"

// Option configures optional engine collaborators.
type Option func(*Engine)

// WithSink redirects classification and milestone events. The default sink
// writes one line per event to stdout.
func WithSink(s Sink) Option {
	return func(e *Engine) {
		e.sink = s
	}
}

// WithMetrics sets a metrics collector. The default discards everything.
func WithMetrics(m Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithCache replaces the default single-lock map cache, e.g. with
// cache.NewSharded for high worker counts.
func WithCache(c cache.Cache) Option {
	return func(e *Engine) {
		e.cache = c
	}
}
