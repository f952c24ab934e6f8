package engine

import (
	"io"
	"os"

	"github.com/BurntSushi/toml"
)

// Spec is a TOML description of a run. Unset fields keep the engine
// defaults, so a spec file only needs to name what it changes:
//
//	[run]
//	threads = 4
//	stop_at = 2000000000
//	milestone = 10000000
//	output = false
type Spec struct {
	Run RunSpec `toml:"run"`
}

type RunSpec struct {
	Threads          int    `toml:"threads"`
	StopAt           uint64 `toml:"stop_at"`
	Base             uint64 `toml:"base"`
	Milestone        uint64 `toml:"milestone"`
	Cache            *bool  `toml:"cache"`
	SkipPermutations *bool  `toml:"skip_permutations"`
	Output           *bool  `toml:"output"`
}

func parseSpec(f io.Reader) (*Spec, error) {
	var out Spec
	_, err := toml.NewDecoder(f).Decode(&out)
	return &out, err
}

// LoadSpecFromFile reads a run spec from a TOML file.
func LoadSpecFromFile(path string) (*Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseSpec(f)
}

// ThreadCount returns the configured worker count, defaulting to 1.
func (s *Spec) ThreadCount() int {
	if s.Run.Threads > 0 {
		return s.Run.Threads
	}
	return 1
}

// BuildEngine constructs an engine from the spec, applying defaults for
// anything the spec leaves unset.
func (s *Spec) BuildEngine(opts ...Option) (*Engine, error) {
	cfg := DefaultConfig()
	if s.Run.Base != 0 {
		cfg.Base = s.Run.Base
	}
	if s.Run.Cache != nil {
		cfg.CacheResults = *s.Run.Cache
	}
	if s.Run.SkipPermutations != nil {
		cfg.SkipPermutations = *s.Run.SkipPermutations
	}
	e, err := New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	if s.Run.StopAt != 0 {
		e.StopAt = s.Run.StopAt
	}
	e.MilestoneInterval = s.Run.Milestone
	if s.Run.Output != nil {
		e.OutputResults = *s.Run.Output
	}
	return e, nil
}
