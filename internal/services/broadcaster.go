package services

import (
	"sync"

	"github.com/driano-gael/joticket/domain"
)

// Broadcaster implements domain.SessionBroadcaster with an in-process
// subscriber list. It replaces the ambient process-global bus with an
// explicit registration API: consumers subscribe, get an unsubscribe
// closure back, and receive every event published while subscribed.
type Broadcaster struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]domain.SessionListener
}

// NewBroadcaster creates an empty broadcaster
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{listeners: make(map[int]domain.SessionListener)}
}

// Subscribe implements domain.SessionBroadcaster
func (b *Broadcaster) Subscribe(listener domain.SessionListener) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.listeners[id] = listener

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.listeners, id)
	}
}

// Publish implements domain.SessionBroadcaster. Listeners run synchronously
// on the publishing goroutine, outside the broadcaster's lock so a listener
// may subscribe or unsubscribe without deadlocking.
func (b *Broadcaster) Publish(event domain.SessionEventType) {
	b.mu.Lock()
	snapshot := make([]domain.SessionListener, 0, len(b.listeners))
	for _, l := range b.listeners {
		snapshot = append(snapshot, l)
	}
	b.mu.Unlock()

	for _, l := range snapshot {
		l(event)
	}
}
