package overlay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_TTL(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewCache(time.Minute)
	c.now = func() time.Time { return now }

	c.put("/cfg", "", "prod", map[string]any{"x": 1})

	got, ok := c.get("/cfg", "", "prod")
	assert.True(t, ok)
	assert.Equal(t, map[string]any{"x": 1}, got)

	now = now.Add(59 * time.Second)
	_, ok = c.get("/cfg", "", "prod")
	assert.True(t, ok)

	now = now.Add(time.Second)
	_, ok = c.get("/cfg", "", "prod")
	assert.False(t, ok, "entry expires once ttl elapsed")
	assert.Equal(t, 0, c.Len())
}

func TestCache_NoTTLNeverExpires(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewCache(0)
	c.now = func() time.Time { return now }

	c.put("/cfg", "eu", "prod", map[string]any{})
	now = now.Add(24 * 365 * time.Hour)

	_, ok := c.get("/cfg", "eu", "prod")
	assert.True(t, ok)

	c.Invalidate("/cfg", "eu", "prod")
	_, ok = c.get("/cfg", "eu", "prod")
	assert.False(t, ok)
}

func TestCache_KeyedByRoot(t *testing.T) {
	c := NewCache(0)
	c.put("/a", "", "_default", map[string]any{"root": "a"})

	_, ok := c.get("/b", "", "_default")
	assert.False(t, ok)

	got, ok := c.get("/a/", "", "_default")
	assert.True(t, ok, "roots are compared after cleaning")
	assert.Equal(t, map[string]any{"root": "a"}, got)
}
