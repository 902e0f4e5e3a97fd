package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"cratesort/internal/logging"
	"cratesort/internal/textutil"
)

// CacheEntry records the outcome of one lookup, including clean misses so a
// track that matched nothing is not queried again next run.
type CacheEntry struct {
	Key      string    `json:"key"`
	Found    bool      `json:"found"`
	Result   Result    `json:"result"`
	CachedAt time.Time `json:"cached_at"`
}

// CacheKey normalizes a query into the cache key format.
func CacheKey(artist, title string) string {
	return textutil.FoldKey(artist) + "|" + textutil.FoldKey(title)
}

// Cache provides thread-safe access to the lookup result cache. An empty path
// makes every operation a no-op. The cache file is created lazily on first
// Store call.
type Cache struct {
	path    string
	logger  *slog.Logger
	mu      sync.RWMutex
	entries map[string]CacheEntry
}

// NewCache creates a cache instance and loads any existing file. A corrupt or
// missing file starts the cache empty rather than failing the run.
func NewCache(path string, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "lookupcache")

	c := &Cache{
		path:    path,
		logger:  logger,
		entries: make(map[string]CacheEntry),
	}

	if path == "" {
		return c
	}

	if err := c.load(); err != nil {
		logger.Warn("failed to load lookup cache",
			logging.String("path", path),
			logging.Error(err))
	}

	return c
}

// Lookup returns the cached entry for the given key if present.
func (c *Cache) Lookup(key string) (CacheEntry, bool) {
	if key == "" || c.path == "" {
		return CacheEntry{}, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, found := c.entries[key]
	return entry, found
}

// Store adds or updates an entry and persists to disk.
func (c *Cache) Store(entry CacheEntry) error {
	entry.Key = strings.TrimSpace(entry.Key)
	if entry.Key == "" {
		return errors.New("cache key cannot be empty")
	}
	if c.path == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[entry.Key] = entry

	if err := c.save(); err != nil {
		return fmt.Errorf("persist cache: %w", err)
	}
	return nil
}

// Count returns the number of cached entries.
func (c *Cache) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear removes all entries and persists the empty cache.
func (c *Cache) Clear() error {
	if c.path == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]CacheEntry)

	if err := c.save(); err != nil {
		return fmt.Errorf("persist cache: %w", err)
	}

	c.logger.Debug("cleared lookup cache")
	return nil
}

func (c *Cache) load() error {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read cache file: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var entries []CacheEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse cache file: %w", err)
	}

	c.entries = make(map[string]CacheEntry, len(entries))
	for _, entry := range entries {
		if strings.TrimSpace(entry.Key) != "" {
			c.entries[entry.Key] = entry
		}
	}

	c.logger.Debug("loaded lookup cache",
		logging.Int("entry_count", len(c.entries)),
		logging.String("path", c.path))
	return nil
}

// save writes the cache to disk atomically.
func (c *Cache) save() error {
	entries := make([]CacheEntry, 0, len(c.entries))
	for _, entry := range c.entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key < entries[j].Key
	})

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	tmpPath := c.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, c.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// CachedProvider checks the cache before delegating to the wrapped provider
// and stores both hits and misses. Provider failures pass through uncached so
// a transient outage does not poison future runs.
type CachedProvider struct {
	cache  *Cache
	next   Provider
	logger *slog.Logger

	lookups   atomic.Int64
	cacheHits atomic.Int64
}

// NewCachedProvider wraps next with the given cache.
func NewCachedProvider(cache *Cache, next Provider, logger *slog.Logger) *CachedProvider {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &CachedProvider{
		cache:  cache,
		next:   next,
		logger: logging.NewComponentLogger(logger, "lookup"),
	}
}

func (p *CachedProvider) Name() string { return p.next.Name() }

// Lookup consults the cache, then the wrapped provider.
func (p *CachedProvider) Lookup(ctx context.Context, artist, title string) (Result, bool, error) {
	p.lookups.Add(1)

	key := CacheKey(artist, title)
	if entry, ok := p.cache.Lookup(key); ok {
		p.cacheHits.Add(1)
		return entry.Result, entry.Found, nil
	}

	result, found, err := p.next.Lookup(ctx, artist, title)
	if err != nil {
		return result, found, err
	}

	if err := p.cache.Store(CacheEntry{
		Key:      key,
		Found:    found,
		Result:   result,
		CachedAt: time.Now().UTC(),
	}); err != nil {
		p.logger.Warn("failed to store lookup result",
			logging.String("key", key),
			logging.Error(err))
	}
	return result, found, nil
}

// Stats reports how many lookups were served and how many came from cache.
func (p *CachedProvider) Stats() (lookups, cacheHits int64) {
	return p.lookups.Load(), p.cacheHits.Load()
}
