package engine

import (
	"sync"

	"github.com/hncalc/hncalc/digit"
)

// Cursor is the shared work distributor: a monotonic counter handing each
// worker the next number to classify. All state is mutated under a single
// mutex, so numbers are handed out in strictly increasing order across all
// workers and each number is handed out at most once.
type Cursor struct {
	mu            sync.Mutex
	next          uint64
	lastMilestone uint64
}

// NewCursor creates a cursor positioned at 1.
func NewCursor() *Cursor {
	return &Cursor{next: 1}
}

// Next returns the next candidate number, scanning past numbers whose digits
// are not sorted when skipPermutations is set. When milestoneInterval is
// non-zero, announce is invoked once for every interval boundary the chosen
// number reaches or passes, under the same lock hold.
//
// The whole scan for one call happens inside the critical section; a dense
// run of skipped candidates keeps other workers waiting. The cursor never
// signals exhaustion - bounding iteration is the caller's job.
func (c *Cursor) Next(skipPermutations bool, base, milestoneInterval uint64, announce func(boundary uint64)) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := c.next; ; i++ {
		if skipPermutations && !digit.Sorted(i, base) {
			continue
		}
		if milestoneInterval > 0 {
			for i >= c.lastMilestone+milestoneInterval {
				c.lastMilestone += milestoneInterval
				if announce != nil {
					announce(c.lastMilestone)
				}
			}
		}
		c.next = i + 1
		return i
	}
}
