// Package engine implements the concurrent happy number classification
// engine: a pool of workers pulling successive numbers from a shared cursor,
// classifying each by iterating the digit-square-sum map, and memoizing
// results in a shared cache.
package engine

import (
	"math"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/hncalc/hncalc/cache"
	"github.com/hncalc/hncalc/digit"
)

// Config holds the parameters fixed for the lifetime of an engine.
type Config struct {
	// CacheResults memoizes classifications in the shared cache.
	CacheResults bool
	// SkipPermutations canonicalizes iterates and makes the cursor hand out
	// only permutation-class representatives. Happiness depends only on the
	// multiset of digits, so one representative answers for the whole class.
	SkipPermutations bool
	// Base in which digits are taken. Must be at least 2.
	Base uint64
}

// DefaultConfig returns the configuration the original calculator defaults
// to: caching and permutation skipping on, base 10.
func DefaultConfig() Config {
	return Config{CacheResults: true, SkipPermutations: true, Base: 10}
}

// Engine classifies numbers as happy or unhappy.
//
// The exported fields tune a run and may be set after New but before Start.
// They are intentionally unsynchronized; mutating them while workers run is
// undefined behavior.
type Engine struct {
	// StopAt is the exclusive upper bound on numbers handed to workers.
	StopAt uint64
	// OutputResults reports every classification to the sink.
	OutputResults bool
	// MilestoneInterval announces progress every interval numbers; zero
	// disables milestones.
	MilestoneInterval uint64

	cfg     Config
	cursor  *Cursor
	cache   cache.Cache
	sink    Sink
	metrics Metrics

	classified *xsync.Counter
	cacheHits  *xsync.Counter

	pool pool
}

// New creates an engine for the given configuration.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if cfg.Base < 2 {
		return nil, ErrInvalidBase
	}
	e := &Engine{
		StopAt:        math.MaxUint64,
		OutputResults: true,

		cfg:        cfg,
		cursor:     NewCursor(),
		cache:      cache.NewMap(),
		metrics:    nopMetrics{},
		classified: xsync.NewCounter(),
		cacheHits:  xsync.NewCounter(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.sink == nil {
		e.sink = defaultSink()
	}
	return e, nil
}

// Config returns the fixed construction parameters.
func (e *Engine) Config() Config {
	return e.cfg
}

// Classify determines whether n is happy.
//
// The digit-square-sum sequence of every positive integer reaches either the
// fixed point 1 or the cycle through 4, so the walk below always terminates.
// Classifying 0 violates that precondition (its iterate is 0) and loops
// forever; the cursor starts at 1 and never produces it.
func (e *Engine) Classify(n uint64) bool {
	// Walk the iteration until a terminal value or cached answer, keeping
	// the chain of still-unclassified numbers. An explicit chain replaces
	// unbounded recursion; each step depends only on the previous iterate.
	var chain []uint64
	var happy bool
	cur := n
	for {
		if v, ok := e.lookup(cur); ok {
			happy = v
			break
		}
		chain = append(chain, cur)
		child := digit.SumOfSquares(cur, e.cfg.Base)
		if e.cfg.SkipPermutations {
			child = digit.Canonicalize(child, e.cfg.Base)
		}
		cur = child
	}
	// Unwind innermost first, the order the recursive form records in.
	for i := len(chain) - 1; i >= 0; i-- {
		e.record(chain[i], happy)
	}
	return happy
}

// lookup resolves n against the terminal facts and, when caching is enabled,
// the shared cache. 1 and 4 short-circuit regardless of the cache toggle:
// they are the two states every sequence ends in.
func (e *Engine) lookup(n uint64) (happy bool, ok bool) {
	switch n {
	case 1:
		return true, true
	case 4:
		return false, true
	}
	if !e.cfg.CacheResults {
		return false, false
	}
	if v, ok := e.cache.Lookup(n); ok {
		e.cacheHits.Inc()
		e.metrics.ObserveCacheHit()
		return v, true
	}
	return false, false
}

// record reports and memoizes a freshly computed classification. Two workers
// racing on the same number both land here with the same value; the cache
// overwrite is idempotent and the duplicate output event is accepted.
func (e *Engine) record(n uint64, happy bool) {
	e.classified.Inc()
	e.metrics.ObserveClassification(happy)
	if e.OutputResults {
		e.sink.Result(n, happy)
	}
	if e.cfg.CacheResults {
		e.cache.Insert(n, happy)
	}
}

// nextNumber pulls the next candidate from the shared cursor.
func (e *Engine) nextNumber() uint64 {
	return e.cursor.Next(e.cfg.SkipPermutations, e.cfg.Base, e.MilestoneInterval, e.announceMilestone)
}

// announceMilestone runs inside the cursor's critical section.
func (e *Engine) announceMilestone(boundary uint64) {
	e.metrics.ObserveMilestone(boundary)
	e.sink.Milestone(boundary)
}

// Stats is a snapshot of run counters.
type Stats struct {
	// Classified counts computed (non-cached, non-terminal) classifications,
	// including intermediate iterates.
	Classified int64
	// CacheHits counts lookups answered from the cache.
	CacheHits int64
	// CacheSize is the number of memoized classifications, including the
	// two seeded terminals.
	CacheSize int
}

// Stats returns a snapshot of the run counters. Safe to call concurrently
// with running workers; the fields are sampled independently.
func (e *Engine) Stats() Stats {
	return Stats{
		Classified: e.classified.Value(),
		CacheHits:  e.cacheHits.Value(),
		CacheSize:  e.cache.Len(),
	}
}
