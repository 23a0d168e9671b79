package demo

import (
	"sync"

	"github.com/jermeyyy/quovadis/pkg/flatten"
)

// renderCache memoizes rendered surface bodies between frames. The
// flattener's caching hints decide what survives a transition: an
// Invalidate hint drops the entry, everything else stays until the
// surface leaves the tree.
type renderCache struct {
	mu   sync.RWMutex
	data map[string]string
}

func newRenderCache() *renderCache {
	return &renderCache{data: make(map[string]string)}
}

func (c *renderCache) get(id string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	body, ok := c.data[id]
	return body, ok
}

func (c *renderCache) put(id, body string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[id] = body
}

// apply processes one frame's caching hints.
func (c *renderCache) apply(hints []flatten.CachingHint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, h := range hints {
		if h.Invalidate {
			delete(c.data, h.SurfaceID)
		}
	}
}

// sweep drops entries whose surface no longer exists.
func (c *renderCache) sweep(live map[string]struct{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id := range c.data {
		if _, ok := live[id]; !ok {
			delete(c.data, id)
		}
	}
}

func (c *renderCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
