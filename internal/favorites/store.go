package favorites

import (
	"log/slog"
	"sync"

	"github.com/mmcdole/reel/internal/domain"
)

// DefaultStorageKey is the storage key the collection lives under
const DefaultStorageKey = "netflix_clone_favorites"

// corruptSuffix is appended to the storage key to quarantine a value that
// failed to decode
const corruptSuffix = ".corrupt"

// Option configures a Store
type Option func(*Store)

// WithStorageKey overrides DefaultStorageKey
func WithStorageKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sets the logger (slog.Default when nil)
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithObserver registers an observer for collection events
func WithObserver(o domain.FavoritesObserver) Option {
	return func(s *Store) {
		if o != nil {
			s.observer = o
		}
	}
}

// Store owns the favorites collection: insert-if-absent by id, insertion
// order kept, write-through to storage after every mutation.
type Store struct {
	storage  domain.KeyValueStore
	key      string
	logger   *slog.Logger
	observer domain.FavoritesObserver

	hydrate sync.Once

	mu       sync.RWMutex // Guards everything below
	entries  []domain.FavoriteEntry
	loading  bool
	degraded bool // Set after a failed write; storage is no longer touched
}

// New creates a store in the loading state with an empty collection.
// Call Hydrate to load the persisted value.
func New(storage domain.KeyValueStore, opts ...Option) *Store {
	s := &Store{
		storage:  storage,
		key:      DefaultStorageKey,
		logger:   slog.Default(),
		observer: domain.NoOpFavoritesObserver{},
		entries:  []domain.FavoriteEntry{},
		loading:  true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Hydrate loads the persisted collection. Only the first call does anything.
// It never fails: a missing, unreadable or corrupt value leaves the
// collection empty.
func (s *Store) Hydrate() {
	s.hydrate.Do(s.load)
}

func (s *Store) load() {
	var corruptErr error

	s.mu.Lock()
	raw, ok, err := s.storage.Get(s.key)
	switch {
	case err != nil:
		s.logger.Warn("failed to read favorites, starting empty", "key", s.key, "error", err)
	case !ok:
		s.logger.Debug("no persisted favorites", "key", s.key)
	default:
		entries, err := decode(raw)
		if err != nil {
			corruptErr = err
			s.logger.Warn("discarding corrupt favorites", "key", s.key, "error", err, "bytes", len(raw))
			s.quarantineLocked(raw)
		} else {
			s.entries = entries
		}
	}
	s.loading = false
	count := len(s.entries)
	s.mu.Unlock()

	if corruptErr != nil {
		s.notify(domain.FavoritesEvent{Type: domain.EventCorrupt, Err: corruptErr})
	}
	s.logger.Info("favorites hydrated", "count", count)
	s.notify(domain.FavoritesEvent{Type: domain.EventHydrated, Count: count})
}

// quarantineLocked keeps the undecodable value next to the real key so it
// can be inspected. The real key is left alone until the next mutation
// overwrites it.
func (s *Store) quarantineLocked(raw string) {
	if err := s.storage.Set(s.key+corruptSuffix, raw); err != nil {
		s.logger.Warn("failed to quarantine corrupt favorites", "key", s.key+corruptSuffix, "error", err)
	}
}

// Add appends entry unless an entry with the same id already exists.
// Entries without an id are ignored.
func (s *Store) Add(entry domain.FavoriteEntry) {
	id := entryID(entry)
	if id == 0 {
		s.logger.Debug("ignoring favorite without id")
		return
	}

	s.mu.Lock()
	event, degradeErr := s.addLocked(id, entry)
	s.mu.Unlock()

	s.publish(event, degradeErr)
}

// Remove drops the entry with id, if any, and persists the result.
func (s *Store) Remove(id int) {
	s.mu.Lock()
	event, degradeErr := s.removeLocked(id)
	s.mu.Unlock()

	s.publish(event, degradeErr)
}

// Toggle adds entry if absent, removes it otherwise. Returns whether the
// entry is a favorite afterwards. Lookup and mutation happen under one lock.
func (s *Store) Toggle(entry domain.FavoriteEntry) bool {
	id := entryID(entry)
	if id == 0 {
		s.logger.Debug("ignoring favorite without id")
		return false
	}

	s.mu.Lock()
	var (
		event      domain.FavoritesEvent
		degradeErr error
	)
	if s.indexLocked(id) >= 0 {
		event, degradeErr = s.removeLocked(id)
	} else {
		event, degradeErr = s.addLocked(id, entry)
	}
	s.mu.Unlock()

	s.publish(event, degradeErr)
	return event.Type == domain.EventAdded
}

func (s *Store) addLocked(id int, entry domain.FavoriteEntry) (domain.FavoritesEvent, error) {
	if s.indexLocked(id) >= 0 {
		s.logger.Debug("favorite already present", "id", id)
		return domain.FavoritesEvent{Type: domain.EventDuplicate, ID: id, Count: len(s.entries)}, nil
	}

	next := make([]domain.FavoriteEntry, len(s.entries), len(s.entries)+1)
	copy(next, s.entries)
	s.entries = append(next, domain.CloneEntry(entry))
	err := s.persistLocked()

	s.logger.Debug("added favorite", "id", id, "title", entry.GetTitle(), "count", len(s.entries))
	return domain.FavoritesEvent{Type: domain.EventAdded, ID: id, Count: len(s.entries)}, err
}

// removeLocked always writes, even when id is absent
func (s *Store) removeLocked(id int) (domain.FavoritesEvent, error) {
	next := make([]domain.FavoriteEntry, 0, len(s.entries))
	for _, e := range s.entries {
		if e.GetID() != id {
			next = append(next, e)
		}
	}
	removed := len(next) != len(s.entries)
	s.entries = next
	err := s.persistLocked()

	if !removed {
		s.logger.Debug("favorite not present", "id", id)
		return domain.FavoritesEvent{Type: domain.EventMissing, ID: id, Count: len(s.entries)}, err
	}
	s.logger.Debug("removed favorite", "id", id, "count", len(s.entries))
	return domain.FavoritesEvent{Type: domain.EventRemoved, ID: id, Count: len(s.entries)}, err
}

// entryID returns the id of e, or 0 when e is nil or a nil pointer
func entryID(e domain.FavoriteEntry) int {
	switch v := e.(type) {
	case nil:
		return 0
	case *domain.Movie:
		if v == nil {
			return 0
		}
	case *domain.Series:
		if v == nil {
			return 0
		}
	}
	return e.GetID()
}

// IsFavorite reports whether an entry with id is in the collection.
func (s *Store) IsFavorite(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexLocked(id) >= 0
}

// Favorites returns a copy of the collection in insertion order.
func (s *Store) Favorites() []domain.FavoriteEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.FavoriteEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the collection size
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// IsLoading is true until hydration has finished. Consumers should not
// treat an empty collection as "no favorites" while it is set.
func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Degraded reports whether a write failed and the store is now memory-only.
func (s *Store) Degraded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.degraded
}

func (s *Store) indexLocked(id int) int {
	for i, e := range s.entries {
		if e.GetID() == id {
			return i
		}
	}
	return -1
}

// persistLocked writes the full collection. On the first failure it
// switches the store to memory-only and returns the error; later calls
// are no-ops.
func (s *Store) persistLocked() error {
	if s.degraded {
		return nil
	}
	data, err := encode(s.entries)
	if err == nil {
		err = s.storage.Set(s.key, data)
	}
	if err != nil {
		s.degraded = true
		s.logger.Warn("failed to persist favorites, continuing in memory", "key", s.key, "error", err)
		return err
	}
	return nil
}

// publish sends a mutation event, then the degraded event if the write failed
func (s *Store) publish(event domain.FavoritesEvent, degradeErr error) {
	s.notify(event)
	if degradeErr != nil {
		s.notify(domain.FavoritesEvent{Type: domain.EventDegraded, Count: event.Count, Err: degradeErr})
	}
}

func (s *Store) notify(e domain.FavoritesEvent) {
	s.observer.OnFavoritesEvent(e)
}
