package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/reel/internal/domain"
)

// Cache key prefixes
const (
	keyGenres     = "genres"
	prefixMovie   = "movie:"   // movie:{id}
	prefixSeries  = "tv:"      // tv:{id}
	prefixSearch  = "search:"  // search:{page}:{query}
	prefixByGenre = "genre:"   // genre:{id}:{page}
	prefixSimilar = "similar:" // similar:{kind}:{id}
)

// Catalog is the full catalog surface: lookups, home rows and artwork URLs
type Catalog interface {
	domain.CatalogRepository
	domain.HomeLoader
	ImageURL(path, size string) string
}

// cachedResult stores cached data with timestamp
type cachedResult struct {
	Value     interface{}
	FetchedAt time.Time
}

// CachedCatalog memoizes details, genre and search lookups for ttl.
// Home rows always go to the network so refresh shows new data.
type CachedCatalog struct {
	Catalog

	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time

	mu    sync.RWMutex
	cache map[string]cachedResult
}

// NewCachedCatalog wraps inner. A ttl <= 0 returns a wrapper that never caches.
func NewCachedCatalog(inner Catalog, ttl time.Duration, logger *slog.Logger) *CachedCatalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedCatalog{
		Catalog: inner,
		ttl:     ttl,
		logger:  logger,
		now:     time.Now,
		cache:   make(map[string]cachedResult),
	}
}

// MovieDetails returns the cached record or fetches it
func (c *CachedCatalog) MovieDetails(ctx context.Context, id int) (*domain.MovieDetails, error) {
	return cached(c, fmt.Sprintf("%s%d", prefixMovie, id), func() (*domain.MovieDetails, error) {
		return c.Catalog.MovieDetails(ctx, id)
	})
}

// SeriesDetails returns the cached record or fetches it
func (c *CachedCatalog) SeriesDetails(ctx context.Context, id int) (*domain.SeriesDetails, error) {
	return cached(c, fmt.Sprintf("%s%d", prefixSeries, id), func() (*domain.SeriesDetails, error) {
		return c.Catalog.SeriesDetails(ctx, id)
	})
}

// Genres returns the cached genre list or fetches it
func (c *CachedCatalog) Genres(ctx context.Context) ([]domain.Genre, error) {
	return cached(c, keyGenres, func() ([]domain.Genre, error) {
		return c.Catalog.Genres(ctx)
	})
}

// Search returns cached results for the normalized query and page
func (c *CachedCatalog) Search(ctx context.Context, query string, page int) (*domain.Page, error) {
	key := fmt.Sprintf("%s%d:%s", prefixSearch, page, strings.ToLower(strings.TrimSpace(query)))
	return cached(c, key, func() (*domain.Page, error) {
		return c.Catalog.Search(ctx, query, page)
	})
}

// ByGenre returns a cached discover page or fetches it
func (c *CachedCatalog) ByGenre(ctx context.Context, genreID, page int) (*domain.Page, error) {
	return cached(c, fmt.Sprintf("%s%d:%d", prefixByGenre, genreID, page), func() (*domain.Page, error) {
		return c.Catalog.ByGenre(ctx, genreID, page)
	})
}

// Recommendations returns cached recommendations or fetches them
func (c *CachedCatalog) Recommendations(ctx context.Context, kind domain.MediaKind, id int) (*domain.Page, error) {
	return cached(c, fmt.Sprintf("%s%s:%d", prefixSimilar, kind, id), func() (*domain.Page, error) {
		return c.Catalog.Recommendations(ctx, kind, id)
	})
}

// Invalidate drops every cached lookup
func (c *CachedCatalog) Invalidate() {
	c.mu.Lock()
	c.cache = make(map[string]cachedResult)
	c.mu.Unlock()
}

// cached returns the live cache entry for key or stores the result of fetch.
// Errors are never cached.
func cached[T any](c *CachedCatalog, key string, fetch func() (T, error)) (T, error) {
	if v, ok := c.get(key); ok {
		if typed, ok := v.(T); ok {
			c.logger.Debug("cache hit", "key", key)
			return typed, nil
		}
	}

	v, err := fetch()
	if err != nil {
		return v, err
	}
	c.set(key, v)
	return v, nil
}

func (c *CachedCatalog) get(key string) (interface{}, bool) {
	if c.ttl <= 0 {
		return nil, false
	}

	c.mu.RLock()
	entry, ok := c.cache[key]
	c.mu.RUnlock()

	if !ok || c.now().Sub(entry.FetchedAt) > c.ttl {
		return nil, false
	}
	return entry.Value, true
}

func (c *CachedCatalog) set(key string, value interface{}) {
	if c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	c.cache[key] = cachedResult{Value: value, FetchedAt: c.now()}
	c.mu.Unlock()
}
