package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is advanced manually so expiry tests do not sleep.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func newTestMemoryCache(t *testing.T) (*MemoryCache, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)}
	c := NewMemoryCache(0)
	c.now = clock.Now
	t.Cleanup(func() { _ = c.Close() })
	return c, clock
}

func TestMemoryCache_GetSet(t *testing.T) {
	c, _ := newTestMemoryCache(t)

	c.Set("sitemap.xml", []byte("<urlset/>"), time.Minute)

	val, ok := c.Get("sitemap.xml")
	require.True(t, ok)
	assert.Equal(t, []byte("<urlset/>"), val)

	_, ok = c.Get("video-sitemap.xml")
	assert.False(t, ok)
}

func TestMemoryCache_Expiration(t *testing.T) {
	c, clock := newTestMemoryCache(t)

	c.Set("doc", []byte("a"), time.Minute)
	clock.Advance(59 * time.Second)
	_, ok := c.Get("doc")
	require.True(t, ok)

	clock.Advance(time.Second)
	_, ok = c.Get("doc")
	assert.False(t, ok, "entry must expire exactly at its deadline")
}

func TestMemoryCache_NonPositiveTTLIsIgnored(t *testing.T) {
	c, _ := newTestMemoryCache(t)

	c.Set("doc", []byte("a"), 0)
	c.Set("doc", []byte("a"), -time.Second)

	_, ok := c.Get("doc")
	assert.False(t, ok)
	assert.Zero(t, c.Stats().Sets)
}

func TestMemoryCache_DeleteAndClear(t *testing.T) {
	c, _ := newTestMemoryCache(t)

	c.Set("a", []byte("1"), time.Minute)
	c.Set("b", []byte("2"), time.Minute)

	c.Delete("a")
	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("b")
	assert.True(t, ok)

	c.Clear()
	assert.Equal(t, 0, c.Stats().CurrentSize)
}

func TestMemoryCache_Stats(t *testing.T) {
	c, clock := newTestMemoryCache(t)

	c.Set("a", []byte("1"), time.Minute)
	c.Set("b", []byte("2"), time.Hour)
	c.Get("a")
	c.Get("a")
	c.Get("missing")

	clock.Advance(2 * time.Minute)
	assert.Equal(t, 1, c.deleteExpired())

	assert.Equal(t, Stats{Hits: 2, Misses: 1, Sets: 2, Evictions: 1, CurrentSize: 1}, c.Stats())
}

func TestMemoryCache_JanitorStopsOnClose(t *testing.T) {
	c := NewMemoryCache(5 * time.Millisecond)
	c.Set("a", []byte("1"), time.Millisecond)

	require.Eventually(t, func() bool {
		return c.Stats().CurrentSize == 0
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, c.Close())
	require.NoError(t, c.Close(), "second close must not panic")
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	c, _ := newTestMemoryCache(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				c.Set("doc", []byte("x"), time.Minute)
				c.Get("doc")
				c.Stats()
			}
		}()
	}
	wg.Wait()

	stats := c.Stats()
	assert.Equal(t, int64(1600), stats.Sets)
	assert.Equal(t, int64(1600), stats.Hits)
}

func TestNoOpCache(t *testing.T) {
	var c Cache = NewNoOpCache()

	c.Set("a", []byte("1"), time.Minute)
	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, Stats{}, c.Stats())
	assert.NoError(t, c.Close())
}
