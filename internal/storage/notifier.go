package storage

import "sync"

// Notifier implements the Subscribe/NotifyExternal half of KV. Both the
// sqlite and memory implementations embed it.
type Notifier struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(key string)
}

// Subscribe registers a handler and returns a cancel function.
func (n *Notifier) Subscribe(fn func(key string)) func() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.subs == nil {
		n.subs = make(map[int]func(key string))
	}
	id := n.nextID
	n.nextID++
	n.subs[id] = fn

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

// NotifyExternal fans an external change event for key out to subscribers.
func (n *Notifier) NotifyExternal(key string) {
	n.mu.Lock()
	handlers := make([]func(string), 0, len(n.subs))
	for _, fn := range n.subs {
		handlers = append(handlers, fn)
	}
	n.mu.Unlock()

	// Handlers run outside the lock so they may re-enter the KV.
	for _, fn := range handlers {
		fn(key)
	}
}
