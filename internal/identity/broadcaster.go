package identity

import "sync"

// Broadcaster fans out auth events to registered listeners
type Broadcaster struct {
	mu        sync.RWMutex
	nextID    int
	listeners map[int]func(Event)
}

// NewBroadcaster builds broadcaster without listeners
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{listeners: make(map[int]func(Event))}
}

// Subscribe registers listener, returned func removes it
func (b *Broadcaster) Subscribe(fn func(Event)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.listeners[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.listeners, id)
		})
	}
}

// Publish delivers event to every listener in the caller goroutine
func (b *Broadcaster) Publish(e Event) {
	b.mu.RLock()
	listeners := make([]func(Event), 0, len(b.listeners))
	for _, fn := range b.listeners {
		listeners = append(listeners, fn)
	}
	b.mu.RUnlock()

	for _, fn := range listeners {
		fn(e)
	}
}
