package overlay

import (
	"path/filepath"
	"sync"
	"time"
)

type fragmentKey struct {
	root   string
	folder string
	name   string
}

type cacheEntry struct {
	data     map[string]any
	loadedAt time.Time
}

// Cache 片段缓存，可在多个 [Resolver] 间共享（条目按根目录区分），并发安全。
//
// ttl 为 0 时条目永不过期，直到被显式失效。
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[fragmentKey]cacheEntry
}

// NewCache 创建片段缓存。
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[fragmentKey]cacheEntry),
	}
}

func (c *Cache) get(root, folder, name string) (map[string]any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := fragmentKey{root: filepath.Clean(root), folder: folder, name: name}
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.ttl > 0 && c.now().Sub(e.loadedAt) >= c.ttl {
		delete(c.entries, key)
		return nil, false
	}

	return e.data, true
}

func (c *Cache) put(root, folder, name string, data map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[fragmentKey{root: filepath.Clean(root), folder: folder, name: name}] = cacheEntry{data: data, loadedAt: c.now()}
}

// Invalidate 使 root 下的单个片段失效，下次访问时重新加载。
func (c *Cache) Invalidate(root, folder, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, fragmentKey{root: filepath.Clean(root), folder: folder, name: name})
}

// Purge 清空缓存。
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
}

// Len 返回缓存条目数量（含已过期但尚未清理的条目）。
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
