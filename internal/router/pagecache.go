package router

import "sync"

// PageCache memoizes rendered page HTML per route for the lifetime of the
// session. Entries are never re-fetched and never invalidated; the corpus of
// static routes is small and fixed, so staleness until a hard reload is
// accepted.
type PageCache struct {
	mu    sync.RWMutex
	pages map[string]string
}

func NewPageCache() *PageCache {
	return &PageCache{pages: make(map[string]string)}
}

func (c *PageCache) Get(route string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	html, ok := c.pages[route]
	return html, ok
}

func (c *PageCache) Put(route, html string) {
	c.mu.Lock()
	c.pages[route] = html
	c.mu.Unlock()
}

func (c *PageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.pages)
}
