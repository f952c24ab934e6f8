package engine

import (
	"fmt"
	"io"
	"os"
)

// Sink receives classification and milestone events as they happen. Workers
// call it concurrently; each event is delivered as a single call so an
// implementation can compose one line per event. No ordering is guaranteed
// across workers.
type Sink interface {
	// Result reports that n has been classified.
	Result(n uint64, happy bool)
	// Milestone reports that the cursor has handed out `boundary` numbers.
	Milestone(boundary uint64)
}

// WriterSink writes one line per event to a writer, composing each line
// before a single Write call so concurrent events interleave line-by-line
// at worst.
type WriterSink struct {
	W io.Writer
}

func (s *WriterSink) Result(n uint64, happy bool) {
	not := ""
	if !happy {
		not = " not"
	}
	fmt.Fprintf(s.W, "%d is%s happy\n", n, not)
}

func (s *WriterSink) Milestone(boundary uint64) {
	fmt.Fprintf(s.W, "%d numbers calculated\n", boundary)
}

// defaultSink writes to stdout, matching the original calculator's console
// contract.
func defaultSink() Sink {
	return &WriterSink{W: os.Stdout}
}

// SilentSink discards all events.
type SilentSink struct{}

func (s *SilentSink) Result(n uint64, happy bool) {}

func (s *SilentSink) Milestone(boundary uint64) {}
