package engine

import (
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
)

type pool struct {
	wg      sync.WaitGroup
	started atomic.Bool
}

// Start launches `workers` loops that pull numbers from the cursor and
// classify them until the cursor output reaches StopAt. When runLastInline
// is true the final loop runs on the calling goroutine, so Start returns
// only once that worker has finished - the way the original timed a run
// without joining background threads. The remaining workers run as
// goroutines either way; Wait blocks until all of them have exited.
func (e *Engine) Start(workers int, runLastInline bool) error {
	if workers < 1 {
		return ErrInvalidWorkerCount
	}
	if !e.pool.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	background := workers
	if runLastInline {
		background--
	}
	e.pool.wg.Add(workers)
	for i := 0; i < background; i++ {
		go func(id int) {
			defer e.pool.wg.Done()
			e.workerLoop(id)
		}(i)
	}
	if runLastInline {
		defer e.pool.wg.Done()
		e.workerLoop(workers - 1)
	}
	return nil
}

// Wait blocks until every worker loop has exited.
func (e *Engine) Wait() {
	e.pool.wg.Wait()
}

// Run is the common timed-run shape: start all workers with the last one on
// the calling goroutine, then join the rest.
func (e *Engine) Run(workers int) error {
	if err := e.Start(workers, true); err != nil {
		return err
	}
	e.Wait()
	return nil
}

func (e *Engine) workerLoop(id int) {
	log.Debug().Int("worker", id).Msg("worker started")
	classified := 0
	for {
		n := e.nextNumber()
		if n >= e.StopAt {
			break
		}
		e.Classify(n)
		classified++
	}
	log.Debug().Int("worker", id).Int("pulled", classified).Msg("worker finished")
}
