package favorites

import (
	"context"
	"testing"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider_HydratesOnce(t *testing.T) {
	storage := store.NewMemoryStore()
	require.NoError(t, storage.Set(DefaultStorageKey, `[{"id":27205,"title":"Inception"}]`))

	p := NewProvider(storage)

	assert.False(t, p.Store().IsLoading())
	assert.True(t, p.Store().IsFavorite(27205))
}

func TestProvider_Context(t *testing.T) {
	p := NewProvider(store.NewMemoryStore())
	ctx := p.Context(context.Background())

	s, err := FromContext(ctx)
	require.NoError(t, err)
	assert.Same(t, p.Store(), s)

	// Consumers share one instance
	s.Add(movie(1, "One"))
	assert.True(t, MustFromContext(ctx).IsFavorite(1))
}

func TestFromContext_OutsideProvider(t *testing.T) {
	_, err := FromContext(context.Background())
	assert.ErrorIs(t, err, domain.ErrFavoritesNotInitialized)

	_, err = FromContext(WithStore(context.Background(), nil))
	assert.ErrorIs(t, err, domain.ErrFavoritesNotInitialized)

	assert.PanicsWithError(t, domain.ErrFavoritesNotInitialized.Error(), func() {
		MustFromContext(context.Background())
	})
}
