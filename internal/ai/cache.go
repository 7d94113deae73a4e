package ai

import (
	"sync"

	"github.com/mitchellh/hashstructure/v2"
)

// promptKey identifies one completion request for caching.
type promptKey struct {
	Model  string
	System string
	User   string
}

// responseCache memoizes completions within a single process run. The same
// prompt always maps to the same parsed output, which keeps workflows that
// re-ask (e.g. plan review then regeneration of the same step) from paying
// for duplicate calls.
type responseCache struct {
	mu      sync.Mutex
	entries map[uint64]string
}

func newResponseCache() *responseCache {
	return &responseCache{entries: make(map[uint64]string)}
}

func (c *responseCache) get(key promptKey) (string, bool) {
	hash, err := hashstructure.Hash(key, hashstructure.FormatV2, nil)
	if err != nil {
		return "", false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.entries[hash]
	return value, ok
}

func (c *responseCache) put(key promptKey, value string) {
	hash, err := hashstructure.Hash(key, hashstructure.FormatV2, nil)
	if err != nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[hash] = value
}
