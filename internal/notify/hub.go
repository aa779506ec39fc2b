// Package notify propagates store mutations to observers: an in-process
// fan-out for writes this instance performed itself, and a backing-store
// watch for writes performed by other instances sharing the storage.
package notify

import (
	"context"
	"sync"

	"github.com/curiohq/curio/internal/kv"
	"github.com/curiohq/curio/internal/logger"
)

// Hub fans out change notices for one storage key.
//
// It is a two-state machine: Idle while no subscriber is registered, and
// Active while at least one is. Entering Active attaches a backing-store
// watch filtered to the hub's key; dropping back to Idle detaches it, so
// an unobserved store costs nothing and leaks nothing.
type Hub struct {
	store kv.Store
	key   string
	log   logger.Logger

	mu     sync.Mutex
	subs   map[int]func()
	nextID int
	stop   func()
}

// NewHub creates a hub for the given storage key. store may be nil, in
// which case only local publishes are delivered.
func NewHub(store kv.Store, key string, log logger.Logger) *Hub {
	return &Hub{
		store: store,
		key:   key,
		log:   log,
		subs:  make(map[int]func()),
	}
}

// Subscribe registers fn to be invoked, with no arguments, whenever the
// store may have changed. The same function may be registered more than
// once; each registration is independent. The returned unsubscribe
// function removes exactly one registration and is safe to call twice.
func (h *Hub) Subscribe(fn func()) func() {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = fn
	if len(h.subs) == 1 {
		h.attachLocked()
	}
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { h.unsubscribe(id) })
	}
}

func (h *Hub) unsubscribe(id int) {
	h.mu.Lock()
	delete(h.subs, id)
	var stop func()
	if len(h.subs) == 0 {
		stop = h.stop
		h.stop = nil
	}
	h.mu.Unlock()

	if stop != nil {
		stop()
	}
}

// attachLocked starts the cross-instance watch. Called with h.mu held.
func (h *Hub) attachLocked() {
	if h.store == nil {
		return
	}
	stop, err := h.store.Watch(context.Background(), func(key string) {
		// A change to an unrelated key must not wake this hub's
		// observers.
		if key == h.key {
			h.Publish()
		}
	})
	if err != nil {
		h.log.Warn("failed to watch backing store, cross-instance updates disabled",
			logger.String("key", h.key),
			logger.Error(err))
		return
	}
	h.stop = stop
}

// Publish synchronously invokes every current subscriber. Repositories
// call this after each successful local write, because the backing
// store's change signal only fires in other instances.
func (h *Hub) Publish() {
	h.mu.Lock()
	fns := make([]func(), 0, len(h.subs))
	for _, fn := range h.subs {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Active reports whether the hub currently has subscribers.
func (h *Hub) Active() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.subs) > 0
}
