package fontcache

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/emirpasic/gods/trees/binaryheap"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/glyphpath/core/font"
	"github.com/npillmayer/glyphpath/core/locate/resources"
	"github.com/npillmayer/glyphpath/core/parameters"
	"github.com/npillmayer/glyphpath/core/percent"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/sync/singleflight"
)

// DefaultKey is the cache key of the default font.
const DefaultKey = "__default__"

// Loader locates and parses fonts for the cache. Locate is handed the empty
// string for the default font.
//
// resources.FontLoader is the standard implementation.
type Loader interface {
	Locate(ctx context.Context, key string) (resources.FontSource, error)
	Load(ctx context.Context, src resources.FontSource) (font.Asset, error)
}

var _ Loader = &resources.FontLoader{}

type entry struct {
	key          string
	asset        font.Asset
	size         int64
	lastAccessed time.Time
	source       string
}

// Cache is a type for holding loaded fonts, bounded by total file size.
// A Cache is safe for concurrent use.
type Cache struct {
	mu       sync.Mutex // guards entries and total
	entries  map[string]*entry
	total    int64
	maxBytes int64
	loader   Loader
	flight   singleflight.Group
	now      func() time.Time
}

// Option configures a cache.
type Option func(*Cache)

// WithMaxBytes sets the ceiling of the cache. Values <= 0 are ignored.
func WithMaxBytes(n int64) Option {
	return func(c *Cache) {
		if n > 0 {
			c.maxBytes = n
		}
	}
}

// WithClock replaces time.Now as the source of access timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// New creates an empty cache, which will load fonts with loader.
func New(loader Loader, opts ...Option) *Cache {
	c := &Cache{
		entries:  make(map[string]*entry),
		maxBytes: parameters.DefaultCacheBytes,
		loader:   loader,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Acquire returns the font for key, loading it if it is not cached yet.
// The empty key denotes the default font.
//
// A cache hit refreshes the font's access time. Waiting for a load is
// interrupted if ctx is done, but the load itself completes and its result
// is cached.
func (c *Cache) Acquire(ctx context.Context, key string) (font.Asset, error) {
	if key == "" {
		key = DefaultKey
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if a, ok := c.lookup(key); ok {
		tracer().Debugf("font cache hit for %s", key)
		return a, nil
	}
	loadCtx := context.WithoutCancel(ctx)
	ch := c.flight.DoChan(key, func() (interface{}, error) {
		return c.load(loadCtx, key)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		return r.Val.(font.Asset), nil
	}
}

func (c *Cache) lookup(key string) (font.Asset, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		e.lastAccessed = c.now()
		return e.asset, true
	}
	return nil, false
}

// load is called at most once at a time per key.
func (c *Cache) load(ctx context.Context, key string) (font.Asset, error) {
	// a load for key may have completed between lookup and DoChan
	if a, ok := c.lookup(key); ok {
		return a, nil
	}
	name := key
	if key == DefaultKey {
		name = ""
	}
	src, err := c.loader.Locate(ctx, name)
	if err != nil {
		return nil, err
	}
	asset, err := c.loader.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evict(src.Size)
	c.entries[key] = &entry{
		key:          key,
		asset:        asset,
		size:         src.Size,
		lastAccessed: c.now(),
		source:       src.Path,
	}
	c.total += src.Size
	tracer().Infof("font cache loaded %s (%d bytes), total is %d bytes", key, src.Size, c.total)
	if c.total > c.maxBytes {
		tracer().Infof("font %s exceeds cache ceiling of %d bytes on its own", key, c.maxBytes)
	}
	return asset, nil
}

// evict removes least recently accessed entries until size more bytes fit
// into the cache or the cache is empty. Caller must hold c.mu.
func (c *Cache) evict(size int64) {
	if c.total+size <= c.maxBytes {
		return
	}
	lru := binaryheap.NewWith(func(a, b interface{}) int {
		return utils.TimeComparator(a.(*entry).lastAccessed, b.(*entry).lastAccessed)
	})
	for _, e := range c.entries {
		lru.Push(e)
	}
	for c.total+size > c.maxBytes {
		v, ok := lru.Pop()
		if !ok {
			break
		}
		e := v.(*entry)
		delete(c.entries, e.key)
		c.total -= e.size
		tracer().Infof("font cache evicted %s (%d bytes)", e.key, e.size)
	}
}

// Clear removes all fonts from the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
	c.total = 0
	tracer().Infof("font cache cleared")
}

// EntryStats describes a single cached font.
type EntryStats struct {
	Key          string
	Size         int64
	LastAccessed time.Time
	Source       string
}

// Stats is a snapshot of the state of a cache.
type Stats struct {
	Count        int
	TotalBytes   int64
	MaxBytes     int64
	UsagePercent float64 // TotalBytes/MaxBytes×100, may exceed 100 for a single oversized font
	Entries      []EntryStats
}

// Usage returns the cache usage, clamped to 100%.
func (s Stats) Usage() percent.Percent {
	return percent.Of(s.TotalBytes, s.MaxBytes)
}

// Stats returns a snapshot of the cache. Entries are sorted by key.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := Stats{
		Count:        len(c.entries),
		TotalBytes:   c.total,
		MaxBytes:     c.maxBytes,
		UsagePercent: float64(c.total) / float64(c.maxBytes) * 100,
		Entries:      make([]EntryStats, 0, len(c.entries)),
	}
	for _, e := range c.entries {
		s.Entries = append(s.Entries, EntryStats{
			Key:          e.key,
			Size:         e.size,
			LastAccessed: e.lastAccessed,
			Source:       e.source,
		})
	}
	sort.Slice(s.Entries, func(i, j int) bool {
		return s.Entries[i].Key < s.Entries[j].Key
	})
	return s
}

// LogFontList is a helper function to dump the list of cached fonts
// to the trace-file (log-level Info).
func (c *Cache) LogFontList() {
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelInfo)
	tracer().Infof("--- cached fonts ---")
	for _, e := range c.Stats().Entries {
		tracer().Infof("font [%s] = %s, %d bytes", e.Key, e.Source, e.Size)
	}
	tracer().Infof("--------------------")
	tracer().SetTraceLevel(level)
}
