package domain

// KeyValueStore is the durable storage medium used by the favorites store.
// Values are opaque strings; one key holds the whole serialized collection.
type KeyValueStore interface {
	// Get returns the value under key and whether it exists
	Get(key string) (string, bool, error)

	// Set replaces the value under key
	Set(key, value string) error

	// Delete removes key (no error if absent)
	Delete(key string) error

	Close() error
}

// FavoritesEventType enumerates what happened to the favorites collection.
type FavoritesEventType string

const (
	EventHydrated  FavoritesEventType = "hydrated"  // Initial load finished
	EventCorrupt   FavoritesEventType = "corrupt"   // Persisted value could not be decoded
	EventAdded     FavoritesEventType = "added"     // Entry inserted
	EventDuplicate FavoritesEventType = "duplicate" // Add ignored, id already present
	EventRemoved   FavoritesEventType = "removed"   // Entry removed
	EventMissing   FavoritesEventType = "missing"   // Remove matched nothing
	EventDegraded  FavoritesEventType = "degraded"  // Storage write failed, now memory-only
)

// FavoritesEvent reports a change (or non-change) of the favorites collection.
type FavoritesEvent struct {
	Type  FavoritesEventType
	ID    int   // Entry id, 0 for collection-level events
	Count int   // Collection size after the event
	Err   error // Set for EventCorrupt and EventDegraded
}

// FavoritesObserver receives favorites events.
// Called with the store lock released; must not block.
type FavoritesObserver interface {
	OnFavoritesEvent(event FavoritesEvent)
}

// FavoritesObserverFunc adapts a function to FavoritesObserver.
type FavoritesObserverFunc func(FavoritesEvent)

func (f FavoritesObserverFunc) OnFavoritesEvent(e FavoritesEvent) { f(e) }

// NoOpFavoritesObserver discards events.
type NoOpFavoritesObserver struct{}

func (NoOpFavoritesObserver) OnFavoritesEvent(FavoritesEvent) {}
