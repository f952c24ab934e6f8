package engine

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hncalc/hncalc/cache"
	"github.com/hncalc/hncalc/digit"
)

// captureSink records events for assertions. Safe for concurrent workers.
type captureSink struct {
	mu         sync.Mutex
	results    map[uint64]bool
	milestones []uint64
}

func newCaptureSink() *captureSink {
	return &captureSink{results: make(map[uint64]bool)}
}

func (s *captureSink) Result(n uint64, happy bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[n] = happy
}

func (s *captureSink) Milestone(boundary uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.milestones = append(s.milestones, boundary)
}

func configVariants() map[string]Config {
	return map[string]Config{
		"cache+skip": {CacheResults: true, SkipPermutations: true, Base: 10},
		"cache only": {CacheResults: true, SkipPermutations: false, Base: 10},
		"skip only":  {CacheResults: false, SkipPermutations: true, Base: 10},
		"neither":    {CacheResults: false, SkipPermutations: false, Base: 10},
	}
}

func TestNewRejectsBadBase(t *testing.T) {
	for _, base := range []uint64{0, 1} {
		_, err := New(Config{Base: base})
		require.ErrorIs(t, err, ErrInvalidBase)
	}
	_, err := New(Config{Base: 2})
	require.NoError(t, err)
}

func TestKnownValues(t *testing.T) {
	known := map[uint64]bool{
		1:   true,
		2:   false,
		4:   false,
		7:   true,
		19:  true, // 19 -> 82 -> 68 -> 100 -> 1
		23:  true,
		89:  false, // enters the 89 -> 145 -> 42 -> 20 -> 4 cycle
		100: true,
		139: true,
	}

	for name, cfg := range configVariants() {
		t.Run(name, func(t *testing.T) {
			e, err := New(cfg, WithSink(&SilentSink{}))
			require.NoError(t, err)
			for n, want := range known {
				assert.Equal(t, want, e.Classify(n), "n=%d", n)
			}
		})
	}
}

// Classifying twice must agree with itself under every configuration.
func TestIdempotence(t *testing.T) {
	for name, cfg := range configVariants() {
		t.Run(name, func(t *testing.T) {
			e, err := New(cfg, WithSink(&SilentSink{}))
			require.NoError(t, err)
			for n := uint64(1); n < 2000; n++ {
				first := e.Classify(n)
				require.Equal(t, first, e.Classify(n), "n=%d", n)
			}
		})
	}
}

// Happiness is constant across a permutation class: a number and its
// canonical representative always classify identically.
func TestPermutationInvariance(t *testing.T) {
	e, err := New(DefaultConfig(), WithSink(&SilentSink{}))
	require.NoError(t, err)

	perms := []uint64{123, 132, 213, 231, 312, 321}
	first := e.Classify(perms[0])
	for _, p := range perms[1:] {
		require.Equal(t, first, e.Classify(p), "permutation %d", p)
	}

	for n := uint64(2); n < 3000; n++ {
		c := digit.Canonicalize(n, 10)
		require.Equal(t, e.Classify(n), e.Classify(c), "n=%d canonical=%d", n, c)
	}
}

// A cached lookup must return exactly what classification returned.
func TestCacheCorrectness(t *testing.T) {
	store := cache.NewMap()
	e, err := New(DefaultConfig(), WithSink(&SilentSink{}), WithCache(store))
	require.NoError(t, err)

	for n := uint64(2); n < 1000; n++ {
		got := e.Classify(n)
		cached, ok := store.Lookup(n)
		require.True(t, ok, "n=%d should be cached after classification", n)
		require.Equal(t, got, cached, "n=%d", n)
	}
}

func TestCacheDisabledStoresNothing(t *testing.T) {
	store := cache.NewMap()
	cfg := DefaultConfig()
	cfg.CacheResults = false
	e, err := New(cfg, WithSink(&SilentSink{}), WithCache(store))
	require.NoError(t, err)

	e.Classify(19)
	e.Classify(89)
	assert.Equal(t, 2, store.Len()) // only the seeds
	assert.Equal(t, int64(0), e.Stats().CacheHits)
}

func TestClassifyOtherBases(t *testing.T) {
	// Base 2: the digit-square sum is the population count.
	e2, err := New(Config{CacheResults: true, SkipPermutations: false, Base: 2}, WithSink(&SilentSink{}))
	require.NoError(t, err)
	assert.True(t, e2.Classify(1))
	assert.True(t, e2.Classify(3))   // 0b11 -> 2 -> 1
	assert.False(t, e2.Classify(15)) // 0b1111 -> 4
	assert.False(t, e2.Classify(4))

	// Base 16: only numbers whose sequences provably reach 1 or 4; other
	// bases have cycles avoiding both, which the engine does not detect.
	e16, err := New(Config{CacheResults: true, SkipPermutations: false, Base: 16}, WithSink(&SilentSink{}))
	require.NoError(t, err)
	assert.True(t, e16.Classify(1))
	assert.True(t, e16.Classify(16)) // 0x10 -> 1
}

func TestResultOutputFormat(t *testing.T) {
	var buf bytes.Buffer
	s := &WriterSink{W: &buf}
	s.Result(7, true)
	s.Result(89, false)
	s.Milestone(1000)
	assert.Equal(t, "7 is happy\n89 is not happy\n1000 numbers calculated\n", buf.String())
}

// The sink sees every number on the classification chain, innermost first.
func TestClassifyReportsChain(t *testing.T) {
	sink := newCaptureSink()
	cfg := DefaultConfig()
	cfg.SkipPermutations = false
	e, err := New(cfg, WithSink(sink))
	require.NoError(t, err)

	require.True(t, e.Classify(19))
	// Chain: 19 -> 82 -> 68 -> 100 -> 1 (terminal, not reported).
	for _, n := range []uint64{19, 82, 68, 100} {
		happy, ok := sink.results[n]
		require.True(t, ok, "chain member %d not reported", n)
		assert.True(t, happy)
	}
	_, ok := sink.results[1]
	assert.False(t, ok, "terminal 1 must not be reported")
}

func TestOutputDisabled(t *testing.T) {
	sink := newCaptureSink()
	e, err := New(DefaultConfig(), WithSink(sink))
	require.NoError(t, err)
	e.OutputResults = false

	e.Classify(19)
	assert.Empty(t, sink.results)
}

func TestStats(t *testing.T) {
	e, err := New(DefaultConfig(), WithSink(&SilentSink{}))
	require.NoError(t, err)

	e.Classify(19)
	stats := e.Stats()
	// Canonicalized chain 19 -> 28 -> 68 -> 1; the terminal is not counted.
	assert.Equal(t, int64(3), stats.Classified)
	assert.Equal(t, 5, stats.CacheSize) // seeds 1 and 4 plus the chain

	// Second classification is answered from the cache.
	e.Classify(19)
	assert.Equal(t, int64(1), e.Stats().CacheHits)
	assert.Equal(t, int64(3), e.Stats().Classified)
}
