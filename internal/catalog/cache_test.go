package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCatalog struct {
	Catalog // Unused methods panic

	calls map[string]int
	fail  bool
}

func newCountingCatalog() *countingCatalog {
	return &countingCatalog{calls: make(map[string]int)}
}

func (c *countingCatalog) MovieDetails(ctx context.Context, id int) (*domain.MovieDetails, error) {
	c.calls["movie"]++
	if c.fail {
		return nil, domain.ErrCatalogOffline
	}
	return &domain.MovieDetails{Movie: domain.Movie{Snapshot: domain.Snapshot{ID: id}}}, nil
}

func (c *countingCatalog) Genres(ctx context.Context) ([]domain.Genre, error) {
	c.calls["genres"]++
	return []domain.Genre{{ID: 28, Name: "Acción"}}, nil
}

func (c *countingCatalog) Search(ctx context.Context, query string, page int) (*domain.Page, error) {
	c.calls["search"]++
	return &domain.Page{Number: page}, nil
}

func (c *countingCatalog) Recommendations(ctx context.Context, kind domain.MediaKind, id int) (*domain.Page, error) {
	c.calls["similar:"+string(kind)]++
	return &domain.Page{Number: 1}, nil
}

func (c *countingCatalog) LoadHome(ctx context.Context) (*domain.Home, error) {
	c.calls["home"]++
	return &domain.Home{}, nil
}

func TestCachedCatalog_MemoizesLookups(t *testing.T) {
	inner := newCountingCatalog()
	c := NewCachedCatalog(inner, time.Minute, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		md, err := c.MovieDetails(ctx, 27205)
		require.NoError(t, err)
		assert.Equal(t, 27205, md.ID)

		_, err = c.Genres(ctx)
		require.NoError(t, err)

		_, err = c.Search(ctx, " Inception ", 1)
		require.NoError(t, err)
		_, err = c.Search(ctx, "inception", 1)
		require.NoError(t, err)
	}

	assert.Equal(t, 1, inner.calls["movie"])
	assert.Equal(t, 1, inner.calls["genres"])
	assert.Equal(t, 1, inner.calls["search"], "queries are normalized")

	_, err := c.MovieDetails(ctx, 155)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls["movie"], "keyed by id")

	for i := 0; i < 2; i++ {
		_, err = c.Recommendations(ctx, domain.KindMovie, 1396)
		require.NoError(t, err)
		_, err = c.Recommendations(ctx, domain.KindSeries, 1396)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, inner.calls["similar:movie"])
	assert.Equal(t, 1, inner.calls["similar:tv"], "keyed by kind")
}

func TestCachedCatalog_HomeNotCached(t *testing.T) {
	inner := newCountingCatalog()
	c := NewCachedCatalog(inner, time.Minute, nil)

	_, _ = c.LoadHome(context.Background())
	_, _ = c.LoadHome(context.Background())
	assert.Equal(t, 2, inner.calls["home"])
}

func TestCachedCatalog_Expiry(t *testing.T) {
	inner := newCountingCatalog()
	c := NewCachedCatalog(inner, time.Minute, nil)

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_, _ = c.Genres(context.Background())
	now = now.Add(30 * time.Second)
	_, _ = c.Genres(context.Background())
	assert.Equal(t, 1, inner.calls["genres"])

	now = now.Add(time.Minute)
	_, _ = c.Genres(context.Background())
	assert.Equal(t, 2, inner.calls["genres"])
}

func TestCachedCatalog_ErrorsNotCached(t *testing.T) {
	inner := newCountingCatalog()
	inner.fail = true
	c := NewCachedCatalog(inner, time.Minute, nil)

	_, err := c.MovieDetails(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrCatalogOffline)

	inner.fail = false
	_, err = c.MovieDetails(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls["movie"])
}

func TestCachedCatalog_InvalidateAndDisabled(t *testing.T) {
	inner := newCountingCatalog()
	c := NewCachedCatalog(inner, time.Minute, nil)

	_, _ = c.Genres(context.Background())
	c.Invalidate()
	_, _ = c.Genres(context.Background())
	assert.Equal(t, 2, inner.calls["genres"])

	off := NewCachedCatalog(inner, 0, nil)
	_, _ = off.Genres(context.Background())
	_, _ = off.Genres(context.Background())
	assert.Equal(t, 4, inner.calls["genres"])
}
