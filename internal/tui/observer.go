package tui

import (
	"sync"

	"github.com/mmcdole/reel/internal/domain"
)

// ChannelObserver feeds favorites events into the Bubble Tea loop. Sends
// never block: when the buffer is full the oldest queued event is discarded,
// so the newest one (with the current count) is always delivered.
type ChannelObserver struct {
	mu      sync.Mutex
	ch      chan domain.FavoritesEvent
	dropped int
}

// NewChannelObserver wraps ch. The same channel goes to WithEvents.
func NewChannelObserver(ch chan domain.FavoritesEvent) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

// OnFavoritesEvent implements domain.FavoritesObserver
func (o *ChannelObserver) OnFavoritesEvent(event domain.FavoritesEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if cap(o.ch) == 0 {
		select {
		case o.ch <- event:
		default:
			o.dropped++
		}
		return
	}

	for {
		select {
		case o.ch <- event:
			return
		default:
		}
		select {
		case <-o.ch:
			o.dropped++
		default:
		}
	}
}

// Dropped returns how many events were discarded
func (o *ChannelObserver) Dropped() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.dropped
}
