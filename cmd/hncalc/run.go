package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/gookit/color"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hncalc/hncalc/cache"
	"github.com/hncalc/hncalc/engine"
	"github.com/hncalc/hncalc/internal/metrics"
)

var (
	threadsFlag   int
	stopAtFlag    uint64
	baseFlag      uint64
	milestoneFlag uint64
	noCacheFlag   bool
	noSkipFlag    bool
	quietFlag     bool
	shardedFlag   bool
	metricsListen string
)

var runCmd = &cobra.Command{
	Use:   "run [SPECFILE]",
	Short: "Classify numbers until the stop bound is reached",
	Args:  cobra.MaximumNArgs(1),
	Run:   runCommand,
}

func init() {
	runCmd.Flags().IntVar(&threadsFlag, "threads", 1, "Number of worker threads")
	runCmd.Flags().Uint64Var(&stopAtFlag, "stop-at", 0, "Exclusive upper bound on numbers classified (0 = no bound)")
	runCmd.Flags().Uint64Var(&baseFlag, "base", 10, "Numeral base for digit extraction")
	runCmd.Flags().Uint64Var(&milestoneFlag, "milestone", 0, "Announce progress every N numbers (0 = off)")
	runCmd.Flags().BoolVar(&noCacheFlag, "no-cache", false, "Disable result memoization")
	runCmd.Flags().BoolVar(&noSkipFlag, "no-skip", false, "Classify every number instead of one per digit permutation class")
	runCmd.Flags().BoolVar(&quietFlag, "quiet", false, "Suppress per-number result output")
	runCmd.Flags().BoolVar(&shardedFlag, "sharded-cache", false, "Use the sharded cache (reduces lock contention at high thread counts)")
	runCmd.Flags().StringVar(&metricsListen, "metrics-listen", "", "Serve Prometheus metrics on this address (e.g. :9090)")
}

// applyFlags folds explicitly set flags over the loaded spec, so flags win
// over the spec file.
func applyFlags(cmd *cobra.Command, spec *engine.Spec) {
	flagFalse := false
	if cmd.Flags().Changed("threads") {
		spec.Run.Threads = threadsFlag
	}
	if cmd.Flags().Changed("stop-at") {
		spec.Run.StopAt = stopAtFlag
	}
	if cmd.Flags().Changed("base") {
		spec.Run.Base = baseFlag
	}
	if cmd.Flags().Changed("milestone") {
		spec.Run.Milestone = milestoneFlag
	}
	if noCacheFlag {
		spec.Run.Cache = &flagFalse
	}
	if noSkipFlag {
		spec.Run.SkipPermutations = &flagFalse
	}
	if quietFlag {
		spec.Run.Output = &flagFalse
	}
}

func runCommand(cmd *cobra.Command, args []string) {
	spec := &engine.Spec{}
	if len(args) == 1 {
		var err error
		spec, err = engine.LoadSpecFromFile(args[0])
		if err != nil {
			log.Fatal().Err(err).Msg("Couldn't load specfile")
		}
	}
	applyFlags(cmd, spec)

	opts := []engine.Option{}
	if shardedFlag {
		opts = append(opts, engine.WithCache(cache.NewSharded(spec.ThreadCount())))
	}
	if metricsListen != "" {
		reg := prometheus.NewRegistry()
		opts = append(opts, engine.WithMetrics(metrics.NewPrometheus(reg, "hncalc")))
		go serveMetrics(metricsListen, reg)
	}

	eng, err := spec.BuildEngine(opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("Couldn't build engine")
	}

	runID := uuid.NewString()
	log.Info().
		Str("run", runID).
		Int("threads", spec.ThreadCount()).
		Uint64("base", eng.Config().Base).
		Uint64("stop_at", eng.StopAt).
		Bool("cache", eng.Config().CacheResults).
		Bool("skip_permutations", eng.Config().SkipPermutations).
		Msg("starting workers")

	fmt.Fprintln(os.Stderr, color.Cyan.Sprint("Running happy number calculator..."))

	start := time.Now()
	if err := eng.Run(spec.ThreadCount()); err != nil {
		log.Fatal().Err(err).Msg("Couldn't start workers")
	}
	elapsed := time.Since(start)

	stats := eng.Stats()
	fmt.Fprintf(os.Stderr, "%s %d classifications computed, %d cache hits, %d entries cached\n",
		color.Green.Sprint("✓"), stats.Classified, stats.CacheHits, stats.CacheSize)
	fmt.Printf("Elapsed time: %d milliseconds\n", elapsed.Milliseconds())
}

func serveMetrics(addr string, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error().Err(err).Str("addr", addr).Msg("metrics listener failed")
	}
}
