package fontcache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/npillmayer/glyphpath/core"
	"github.com/npillmayer/glyphpath/core/font"
	"github.com/npillmayer/glyphpath/core/font/fonttest"
	"github.com/npillmayer/glyphpath/core/locate/resources"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
)

const MiB = 1 << 20

// fakeLoader serves fonts of pre-defined sizes. Every load produces a new
// font instance.
type fakeLoader struct {
	sizes   map[string]int64
	loads   int32
	gate    chan struct{} // if not nil, loads wait for it
	corrupt map[string]bool
}

type fakeFont struct {
	fonttest.Font
	key string
}

func (l *fakeLoader) Locate(ctx context.Context, key string) (resources.FontSource, error) {
	size, ok := l.sizes[key]
	if !ok {
		return resources.FontSource{}, resources.NotFound(key)
	}
	return resources.FontSource{Path: "/fake/" + key, Size: size}, nil
}

func (l *fakeLoader) Load(ctx context.Context, src resources.FontSource) (font.Asset, error) {
	atomic.AddInt32(&l.loads, 1)
	if l.gate != nil {
		<-l.gate
	}
	key := src.Path[len("/fake/"):]
	if l.corrupt[key] {
		return nil, core.Error(core.EFORMAT, "font cannot be parsed: %s", key)
	}
	return &fakeFont{key: key}, nil
}

// clock advances by one second on every reading.
type clock struct {
	mx sync.Mutex
	t  time.Time
}

func (c *clock) now() time.Time {
	c.mx.Lock()
	defer c.mx.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

type CacheTestEnviron struct {
	suite.Suite
	loader *fakeLoader
	cache  *Cache
}

func TestCache(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphpath.fonts")
	defer teardown()
	suite.Run(t, new(CacheTestEnviron))
}

func (env *CacheTestEnviron) SetupTest() {
	env.loader = &fakeLoader{
		sizes: map[string]int64{
			"big":     200 * MiB,
			"medium":  100 * MiB,
			"small":   10 * MiB,
			"tiny":    1 * MiB,
			"huge":    300 * MiB,
			"corrupt": 5 * MiB,
			"":        2 * MiB,
		},
		corrupt: map[string]bool{"corrupt": true},
	}
	c := &clock{t: time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)}
	env.cache = New(env.loader, WithClock(c.now))
}

func (env *CacheTestEnviron) acquire(key string) font.Asset {
	f, err := env.cache.Acquire(context.Background(), key)
	env.Require().NoError(err, "acquiring %s", key)
	return f
}

func (env *CacheTestEnviron) TestDefaultCeiling() {
	env.Equal(int64(256*MiB), env.cache.Stats().MaxBytes)
}

func (env *CacheTestEnviron) TestEvictOldest() {
	env.acquire("big")
	env.acquire("medium")
	s := env.cache.Stats()
	env.Equal(1, s.Count)
	env.Equal(int64(100*MiB), s.TotalBytes)
	env.Equal("medium", s.Entries[0].Key)
}

func (env *CacheTestEnviron) TestEvictLeastRecentlyAccessed() {
	env.cache = New(env.loader, WithMaxBytes(25*MiB))
	env.acquire("small")
	env.acquire("tiny")
	env.acquire("small") // refresh, "tiny" is oldest now
	env.acquire("tiny")
	env.acquire("small")
	env.acquire("medium")
	s := env.cache.Stats()
	env.Equal(1, s.Count)
	env.Equal("medium", s.Entries[0].Key)
	//
	env.cache.Clear()
	env.acquire("small")
	env.acquire("tiny")
	env.acquire("small")
	env.loader.sizes["other"] = 15 * MiB
	env.acquire("other")
	s = env.cache.Stats()
	env.Equal(2, s.Count)
	env.Equal("other", s.Entries[0].Key)
	env.Equal("small", s.Entries[1].Key)
	env.Equal(int64(25*MiB), s.TotalBytes)
}

func (env *CacheTestEnviron) TestOversizedFontIsKept() {
	env.acquire("small")
	env.acquire("huge")
	s := env.cache.Stats()
	env.Equal(1, s.Count)
	env.Equal(int64(300*MiB), s.TotalBytes)
	env.InDelta(300.0/256.0*100, s.UsagePercent, 1e-9)
	env.Equal("100%", s.Usage().String())
}

func (env *CacheTestEnviron) TestIdempotentAcquire() {
	f1 := env.acquire("small")
	f2 := env.acquire("small")
	env.Same(f1, f2)
	env.Equal(int32(1), env.loader.loads)
	env.Equal(int64(10*MiB), env.cache.Stats().TotalBytes)
}

func (env *CacheTestEnviron) TestDefaultKey() {
	f1 := env.acquire("")
	f2 := env.acquire(DefaultKey)
	env.Same(f1, f2)
	s := env.cache.Stats()
	env.Equal(DefaultKey, s.Entries[0].Key)
	env.Equal(int64(2*MiB), s.TotalBytes)
}

func (env *CacheTestEnviron) TestUsagePercent() {
	for _, key := range []string{"tiny", "small", "", "medium", "big", "small"} {
		env.acquire(key)
		s := env.cache.Stats()
		env.InDelta(float64(s.TotalBytes)/float64(s.MaxBytes)*100, s.UsagePercent, 1e-9)
		env.GreaterOrEqual(s.UsagePercent, 0.0)
		env.LessOrEqual(s.UsagePercent, 100.0)
		var sum int64
		for _, e := range s.Entries {
			sum += e.Size
		}
		env.Equal(sum, s.TotalBytes)
	}
}

func (env *CacheTestEnviron) TestFailuresLeaveCacheUnchanged() {
	env.acquire("big")
	_, err := env.cache.Acquire(context.Background(), "corrupt")
	env.True(errors.Is(err, core.ErrFontParse))
	_, err = env.cache.Acquire(context.Background(), "nowhere")
	env.True(errors.Is(err, core.ErrFontNotFound))
	s := env.cache.Stats()
	env.Equal(1, s.Count)
	env.Equal(int64(200*MiB), s.TotalBytes)
}

func (env *CacheTestEnviron) TestClear() {
	env.acquire("small")
	env.acquire("tiny")
	env.cache.Clear()
	s := env.cache.Stats()
	env.Equal(0, s.Count)
	env.Equal(int64(0), s.TotalBytes)
	env.Empty(s.Entries)
	env.acquire("small")
	env.Equal(int32(3), env.loader.loads)
}

func (env *CacheTestEnviron) TestConcurrentMissesLoadOnce() {
	env.loader.gate = make(chan struct{})
	const n = 16
	var wg sync.WaitGroup
	fonts := make([]font.Asset, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			fonts[i], errs[i] = env.cache.Acquire(context.Background(), "medium")
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(env.loader.gate)
	wg.Wait()
	for i := 0; i < n; i++ {
		env.NoError(errs[i])
		env.Same(fonts[0], fonts[i])
	}
	env.Equal(int32(1), atomic.LoadInt32(&env.loader.loads))
	env.Equal(int64(100*MiB), env.cache.Stats().TotalBytes)
}

func (env *CacheTestEnviron) TestCancelledWait() {
	env.loader.gate = make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() {
		_, err := env.cache.Acquire(ctx, "small")
		done <- err
	}()
	cancel()
	env.True(errors.Is(<-done, context.Canceled))
	close(env.loader.gate)
	// the load completes in the background
	env.Eventually(func() bool {
		return env.cache.Stats().Count == 1
	}, time.Second, 10*time.Millisecond)
}
