package favorites

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyStorage wraps a memory store and counts or fails writes
type flakyStorage struct {
	*store.KVStore
	mu       sync.Mutex
	writes   int
	failSet  error
	failRead error
}

func newFlakyStorage() *flakyStorage {
	return &flakyStorage{KVStore: store.NewMemoryStore()}
}

func (f *flakyStorage) Get(key string) (string, bool, error) {
	if f.failRead != nil {
		return "", false, f.failRead
	}
	return f.KVStore.Get(key)
}

func (f *flakyStorage) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSet != nil {
		return f.failSet
	}
	if key == DefaultStorageKey {
		f.writes++
	}
	return f.KVStore.Set(key, value)
}

func (f *flakyStorage) Writes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes
}

type eventRecorder struct {
	mu     sync.Mutex
	events []domain.FavoritesEvent
}

func (r *eventRecorder) OnFavoritesEvent(e domain.FavoritesEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *eventRecorder) types() []domain.FavoritesEventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.FavoritesEventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

func movie(id int, title string) domain.Movie {
	return domain.Movie{Snapshot: domain.Snapshot{
		ID:               id,
		Title:            title,
		PosterPath:       fmt.Sprintf("/poster%d.jpg", id),
		BackdropPath:     fmt.Sprintf("/backdrop%d.jpg", id),
		Overview:         "overview of " + title,
		ReleaseDate:      "2010-07-15",
		VoteAverage:      8.4,
		VoteCount:        35000,
		GenreIDs:         []int{28, 878, 12},
		Popularity:       83.9,
		OriginalLanguage: "en",
	}}
}

func series(id int, name string) domain.Series {
	return domain.Series{Snapshot: domain.Snapshot{
		ID:               id,
		Title:            name,
		ReleaseDate:      "2008-01-20",
		VoteAverage:      8.9,
		GenreIDs:         []int{18, 80},
		OriginalLanguage: "en",
	}}
}

func hydrated(t *testing.T, storage domain.KeyValueStore, opts ...Option) *Store {
	t.Helper()
	s := New(storage, opts...)
	s.Hydrate()
	return s
}

func TestStore_StartsLoadingAndEmpty(t *testing.T) {
	s := New(store.NewMemoryStore())
	assert.True(t, s.IsLoading())
	assert.Empty(t, s.Favorites())

	s.Hydrate()
	assert.False(t, s.IsLoading())
	assert.Empty(t, s.Favorites())
}

func TestStore_AddInception(t *testing.T) {
	s := hydrated(t, store.NewMemoryStore())

	assert.False(t, s.IsFavorite(27205))
	s.Add(movie(27205, "Inception"))

	assert.Len(t, s.Favorites(), 1)
	assert.True(t, s.IsFavorite(27205))
}

func TestStore_AddIsIdempotent(t *testing.T) {
	storage := newFlakyStorage()
	s := hydrated(t, storage)

	m := movie(5, "Original")
	s.Add(m)
	once := s.Favorites()
	s.Add(m)

	assert.Equal(t, once, s.Favorites())
	assert.Equal(t, 1, storage.Writes(), "duplicate add must not write")
}

func TestStore_AddKeepsFirstEntry(t *testing.T) {
	s := hydrated(t, store.NewMemoryStore())

	first := movie(5, "First")
	s.Add(first)
	s.Add(movie(5, "Second"))

	favs := s.Favorites()
	require.Len(t, favs, 1)
	assert.Equal(t, first, favs[0])
}

func TestStore_AddIgnoresMissingID(t *testing.T) {
	storage := newFlakyStorage()
	s := hydrated(t, storage)

	s.Add(movie(0, "No id"))
	s.Add(nil)

	assert.Empty(t, s.Favorites())
	assert.Equal(t, 0, storage.Writes())
}

func TestStore_IgnoresNilPointerEntries(t *testing.T) {
	storage := newFlakyStorage()
	s := hydrated(t, storage)

	assert.NotPanics(t, func() {
		s.Add((*domain.Movie)(nil))
		s.Add((*domain.Series)(nil))
		assert.False(t, s.Toggle((*domain.Movie)(nil)))
		assert.False(t, s.Toggle((*domain.Series)(nil)))
	})
	assert.Empty(t, s.Favorites())
	assert.Equal(t, 0, storage.Writes())

	m := movie(3, "Three")
	s.Add(&m)
	assert.True(t, s.IsFavorite(3))
}

func TestStore_AddCopiesEntry(t *testing.T) {
	s := hydrated(t, store.NewMemoryStore())

	m := movie(1, "Heat")
	s.Add(&m)
	m.Title = "changed"
	m.GenreIDs[0] = 99

	got := s.Favorites()[0].Info()
	assert.Equal(t, "Heat", got.Title)
	assert.Equal(t, 28, got.GenreIDs[0])
}

func TestStore_RemoveKeepsOrder(t *testing.T) {
	s := hydrated(t, store.NewMemoryStore())

	s.Add(movie(1, "One"))
	s.Add(movie(2, "Two"))
	s.Add(movie(3, "Three"))
	s.Remove(1)

	favs := s.Favorites()
	require.Len(t, favs, 2)
	assert.Equal(t, 2, favs[0].GetID())
	assert.Equal(t, 3, favs[1].GetID())
	assert.False(t, s.IsFavorite(1))
}

func TestStore_RemoveAnyID(t *testing.T) {
	tests := []struct {
		name  string
		setup []int
		id    int
	}{
		{"present", []int{1, 2}, 1},
		{"absent", []int{1, 2}, 7},
		{"empty", nil, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := newFlakyStorage()
			s := hydrated(t, storage)
			for _, id := range tt.setup {
				s.Add(movie(id, "x"))
			}
			before := storage.Writes()

			s.Remove(tt.id)

			assert.False(t, s.IsFavorite(tt.id))
			assert.Equal(t, before+1, storage.Writes(), "remove writes exactly once")
		})
	}
}

func TestStore_WriteThroughFullCollection(t *testing.T) {
	storage := store.NewMemoryStore()
	s := hydrated(t, storage)

	s.Add(movie(1, "One"))
	s.Add(series(2, "Breaking Bad"))

	raw, ok, err := storage.Get(DefaultStorageKey)
	require.NoError(t, err)
	require.True(t, ok)

	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &records))
	require.Len(t, records, 2)
	assert.EqualValues(t, 1, records[0]["id"])
	assert.Equal(t, "movie", records[0]["media_type"])
	assert.Equal(t, "Breaking Bad", records[1]["title"])
	assert.Equal(t, "tv", records[1]["media_type"])
	assert.Equal(t, "2008-01-20", records[1]["release_date"])
}

func TestStore_RoundTrip(t *testing.T) {
	storage := store.NewMemoryStore()
	s := hydrated(t, storage)
	s.Add(movie(3, "C"))
	s.Add(series(1, "A"))
	s.Add(movie(2, "B"))

	fresh := hydrated(t, storage)

	assert.Equal(t, s.Favorites(), fresh.Favorites())
	assert.Equal(t, domain.KindSeries, fresh.Favorites()[1].Kind())
}

func TestStore_HydrateCorruptValue(t *testing.T) {
	storage := store.NewMemoryStore()
	require.NoError(t, storage.Set(DefaultStorageKey, "{not json"))
	rec := &eventRecorder{}

	s := hydrated(t, storage, WithObserver(rec))

	assert.False(t, s.IsLoading())
	assert.Empty(t, s.Favorites())
	assert.Equal(t, []domain.FavoritesEventType{domain.EventCorrupt, domain.EventHydrated}, rec.types())

	quarantined, ok, err := storage.Get(DefaultStorageKey + corruptSuffix)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "{not json", quarantined)
}

func TestStore_HydrateNonArrayValues(t *testing.T) {
	for _, raw := range []string{"", "   ", "42", `"text"`, `{"version":99,"items":[]}`} {
		t.Run(raw, func(t *testing.T) {
			storage := store.NewMemoryStore()
			require.NoError(t, storage.Set(DefaultStorageKey, raw))

			s := hydrated(t, storage)
			assert.Empty(t, s.Favorites())
		})
	}
}

func TestStore_HydrateReadError(t *testing.T) {
	storage := newFlakyStorage()
	storage.failRead = errors.New("disk gone")

	s := hydrated(t, storage)
	assert.False(t, s.IsLoading())
	assert.Empty(t, s.Favorites())
}

func TestStore_HydrateLegacyAndEnvelope(t *testing.T) {
	legacy := `[{"id":27205,"title":"Inception","backdrop_path":"/b.jpg","poster_path":"/p.jpg","overview":"dreams","release_date":"2010-07-15","vote_average":8.4,"vote_count":100,"genre_ids":[28],"adult":false,"original_language":"en","popularity":80.5},` +
		`{"id":1396,"title":"Breaking Bad","release_date":"2008-01-20","genre_ids":[18],"media_type":"tv"},` +
		`{"id":27205,"title":"Duplicate"}]`
	envelope := `{"version":1,"items":[{"id":1396,"name":"Breaking Bad","first_air_date":"2008-01-20","media_type":"tv"}]}`

	t.Run("legacy array", func(t *testing.T) {
		storage := store.NewMemoryStore()
		require.NoError(t, storage.Set(DefaultStorageKey, legacy))

		favs := hydrated(t, storage).Favorites()
		require.Len(t, favs, 2)
		assert.Equal(t, domain.KindMovie, favs[0].Kind())
		assert.Equal(t, "Inception", favs[0].GetTitle())
		assert.Equal(t, 2010, favs[0].Info().Year())
		assert.Equal(t, domain.KindSeries, favs[1].Kind())
	})

	t.Run("versioned envelope", func(t *testing.T) {
		storage := store.NewMemoryStore()
		require.NoError(t, storage.Set(DefaultStorageKey, envelope))

		favs := hydrated(t, storage).Favorites()
		require.Len(t, favs, 1)
		assert.Equal(t, "Breaking Bad", favs[0].GetTitle())
		assert.Equal(t, "2008-01-20", favs[0].Info().ReleaseDate)
	})
}

func TestStore_HydrateOnce(t *testing.T) {
	storage := store.NewMemoryStore()
	s := hydrated(t, storage)
	s.Add(movie(1, "One"))

	require.NoError(t, storage.Set(DefaultStorageKey, "[]"))
	s.Hydrate()

	assert.True(t, s.IsFavorite(1))
}

func TestStore_DegradesOnWriteFailure(t *testing.T) {
	storage := newFlakyStorage()
	rec := &eventRecorder{}
	s := hydrated(t, storage, WithObserver(rec))
	storage.failSet = errors.New("quota exceeded")

	s.Add(movie(1, "One"))
	assert.True(t, s.IsFavorite(1))
	assert.True(t, s.Degraded())
	assert.Contains(t, rec.types(), domain.EventDegraded)

	storage.failSet = nil
	s.Add(movie(2, "Two"))
	s.Remove(1)

	assert.Equal(t, []int{2}, ids(s.Favorites()))
	assert.Equal(t, 0, storage.Writes(), "memory-only after the first failure")
}

func TestStore_CustomKey(t *testing.T) {
	storage := store.NewMemoryStore()
	s := hydrated(t, storage, WithStorageKey("profile:alice"))
	s.Add(movie(1, "One"))

	_, ok, _ := storage.Get("profile:alice")
	assert.True(t, ok)
	_, ok, _ = storage.Get(DefaultStorageKey)
	assert.False(t, ok)
}

func TestStore_Toggle(t *testing.T) {
	s := hydrated(t, store.NewMemoryStore())
	m := movie(9, "Nine")

	assert.True(t, s.Toggle(m))
	assert.True(t, s.IsFavorite(9))
	assert.False(t, s.Toggle(m))
	assert.False(t, s.IsFavorite(9))
	assert.False(t, s.Toggle(nil))
}

func TestStore_ObserverEvents(t *testing.T) {
	rec := &eventRecorder{}
	s := hydrated(t, store.NewMemoryStore(), WithObserver(rec))

	s.Add(movie(1, "One"))
	s.Add(movie(1, "One"))
	s.Remove(1)
	s.Remove(1)

	assert.Equal(t, []domain.FavoritesEventType{
		domain.EventHydrated,
		domain.EventAdded,
		domain.EventDuplicate,
		domain.EventRemoved,
		domain.EventMissing,
	}, rec.types())
}

func TestStore_ConcurrentAdds(t *testing.T) {
	storage := store.NewMemoryStore()
	s := hydrated(t, storage)

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			s.Add(movie(id, fmt.Sprintf("m%d", id)))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, s.Len())
	assert.Len(t, hydrated(t, storage).Favorites(), 50)
}

func TestStore_ConcurrentToggles(t *testing.T) {
	storage := newFlakyStorage()
	s := hydrated(t, storage)
	m := movie(7, "Seven")

	const n = 100
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		added int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.Toggle(m) {
				mu.Lock()
				added++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	// Each toggle flips membership exactly once, so results alternate
	assert.Equal(t, n/2, added)
	assert.False(t, s.IsFavorite(7))
	assert.Equal(t, n, storage.Writes())
}

func ids(entries []domain.FavoriteEntry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.GetID()
	}
	return out
}
