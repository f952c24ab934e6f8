package cache

import (
	"encoding/binary"
	"sync"

	"github.com/dgryski/go-farm"
)

// ShardedCache splits the mapping across independently locked shards so that
// inserts from many workers contend less than on a single MapCache lock.
// Shard selection hashes the key; consecutive numbers land on unrelated
// shards.
type ShardedCache struct {
	shards []cacheShard
	mask   uint64
}

type cacheShard struct {
	mu   sync.RWMutex
	data map[uint64]bool
}

// NewSharded creates a ShardedCache with the given shard count, rounded up
// to a power of two (minimum 1), seeded like NewMap.
func NewSharded(shards int) *ShardedCache {
	size := 1
	for size < shards {
		size <<= 1
	}
	c := &ShardedCache{
		shards: make([]cacheShard, size),
		mask:   uint64(size - 1),
	}
	for i := range c.shards {
		c.shards[i].data = make(map[uint64]bool)
	}
	c.Insert(1, true)
	c.Insert(4, false)
	return c
}

func (c *ShardedCache) shard(n uint64) *cacheShard {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], n)
	return &c.shards[farm.Hash64(buf[:])&c.mask]
}

func (c *ShardedCache) Lookup(n uint64) (bool, bool) {
	s := c.shard(n)
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[n]
	return v, ok
}

func (c *ShardedCache) Insert(n uint64, happy bool) {
	s := c.shard(n)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[n] = happy
}

func (c *ShardedCache) Len() int {
	total := 0
	for i := range c.shards {
		c.shards[i].mu.RLock()
		total += len(c.shards[i].data)
		c.shards[i].mu.RUnlock()
	}
	return total
}

// Entries returns a snapshot copy of the full mapping across all shards.
func (c *ShardedCache) Entries() map[uint64]bool {
	out := make(map[uint64]bool, c.Len())
	for i := range c.shards {
		c.shards[i].mu.RLock()
		for k, v := range c.shards[i].data {
			out[k] = v
		}
		c.shards[i].mu.RUnlock()
	}
	return out
}
