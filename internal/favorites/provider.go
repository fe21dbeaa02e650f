package favorites

import (
	"context"

	"github.com/mmcdole/reel/internal/domain"
)

// Provider owns the single Store of an application session.
type Provider struct {
	store *Store
}

// NewProvider creates and hydrates the session store.
func NewProvider(storage domain.KeyValueStore, opts ...Option) *Provider {
	s := New(storage, opts...)
	s.Hydrate()
	return &Provider{store: s}
}

// Store returns the session store
func (p *Provider) Store() *Store {
	return p.store
}

// Context returns a child of parent carrying the session store
func (p *Provider) Context(parent context.Context) context.Context {
	return WithStore(parent, p.store)
}

type storeKey struct{}

// WithStore returns a child context carrying s.
func WithStore(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, storeKey{}, s)
}

// FromContext returns the store carried by ctx, or
// domain.ErrFavoritesNotInitialized when there is none.
func FromContext(ctx context.Context) (*Store, error) {
	if ctx == nil {
		return nil, domain.ErrFavoritesNotInitialized
	}
	s, ok := ctx.Value(storeKey{}).(*Store)
	if !ok || s == nil {
		return nil, domain.ErrFavoritesNotInitialized
	}
	return s, nil
}

// MustFromContext is FromContext that panics on misuse.
func MustFromContext(ctx context.Context) *Store {
	s, err := FromContext(ctx)
	if err != nil {
		panic(err)
	}
	return s
}
