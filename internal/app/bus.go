package app

import "sync"

// SyncBus broadcasts the "favorites changed" signal. The signal carries no
// payload: listeners re-read the favorites store to learn the current truth,
// and must not assume a signal means an addition or a removal.
type SyncBus struct {
	mu        sync.RWMutex
	nextID    uint64
	listeners []listener
}

type listener struct {
	id uint64
	fn func()
}

// NewSyncBus creates a bus with no listeners.
func NewSyncBus() *SyncBus {
	return &SyncBus{}
}

// Subscribe registers fn and returns a function that removes it. Calling
// the returned function more than once is harmless.
func (b *SyncBus) Subscribe(fn func()) (unsubscribe func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.listeners = append(b.listeners, listener{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *SyncBus) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, l := range b.listeners {
		if l.id == id {
			b.listeners = append(b.listeners[:i:i], b.listeners[i+1:]...)
			return
		}
	}
}

// Publish calls every listener in subscription order on the calling
// goroutine. Listeners may subscribe or unsubscribe from inside a callback;
// the change applies from the next Publish.
func (b *SyncBus) Publish() {
	b.mu.RLock()
	snapshot := make([]listener, len(b.listeners))
	copy(snapshot, b.listeners)
	b.mu.RUnlock()

	for _, l := range snapshot {
		l.fn()
	}
}

// Len returns the number of listeners.
func (b *SyncBus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners)
}
