package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestLRU(capacity int, ttl time.Duration) (*LRU[string], *clock) {
	c := &clock{t: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)}
	l := NewLRU[string](capacity, ttl)
	l.now = c.now
	return l, c
}

func TestLRU_GetSet(t *testing.T) {
	l, _ := newTestLRU(2, time.Minute)

	_, ok := l.Get("a")
	assert.False(t, ok)

	l.Set("a", "1")
	l.Set("a", "2")
	v, ok := l.Get("a")
	require.True(t, ok)
	assert.Equal(t, "2", v)
	assert.Equal(t, 1, l.Len())

	hits, misses := l.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
}

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	l, _ := newTestLRU(2, time.Minute)

	l.Set("a", "1")
	l.Set("b", "2")
	_, _ = l.Get("a")
	l.Set("c", "3")

	_, ok := l.Get("b")
	assert.False(t, ok, "b was least recently used")
	_, ok = l.Get("a")
	assert.True(t, ok)
	_, ok = l.Get("c")
	assert.True(t, ok)
	assert.Equal(t, 2, l.Len())
}

func TestLRU_Expiry(t *testing.T) {
	l, clk := newTestLRU(10, time.Minute)

	l.Set("a", "1")
	clk.t = clk.t.Add(30 * time.Second)
	l.Set("b", "2")
	clk.t = clk.t.Add(45 * time.Second)

	_, ok := l.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, l.Len())

	clk.t = clk.t.Add(time.Minute)
	assert.Equal(t, 1, l.CleanupExpired())
	assert.Equal(t, 0, l.Len())
}

func TestLRU_Defaults(t *testing.T) {
	l := NewLRU[int](0, 0)
	assert.Equal(t, 1000, l.capacity)
	assert.Equal(t, 5*time.Minute, l.ttl)
}

func TestLRU_Concurrent(t *testing.T) {
	l := NewLRU[int](50, time.Minute)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", (g*200+i)%80)
				l.Set(key, i)
				_, _ = l.Get(key)
			}
		}(g)
	}
	wg.Wait()
	assert.LessOrEqual(t, l.Len(), 50)
}
