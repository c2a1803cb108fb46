// Package stream provides the correlation registry that routes workflow
// progress events to the single live listener of a thread id.
package stream

import (
	"log"
	"sync"
	"time"

	"github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/internal/domain"
)

// Listener receives marshaled events for one thread. Send must not block;
// implementations back it with a buffered channel and report failure when
// the buffer is full or the connection is gone.
type Listener interface {
	Send(data []byte) error
}

// Registry maps a thread id to at most one live listener. Attaching a
// second listener for the same id silently replaces the first
// (last-attach-wins). Publish is best-effort: events for threads with no
// listener are dropped without error.
type Registry struct {
	mu        sync.RWMutex
	listeners map[string]Listener
}

// NewRegistry creates an empty registry. One instance is constructed at
// startup and injected into both the dispatcher and the streaming handler.
func NewRegistry() *Registry {
	return &Registry{
		listeners: make(map[string]Listener),
	}
}

// Attach registers the listener as current for threadID, replacing any
// prior listener, and immediately delivers a connected acknowledgment.
func (r *Registry) Attach(threadID string, l Listener) {
	r.mu.Lock()
	replaced := r.listeners[threadID] != nil
	r.listeners[threadID] = l
	r.mu.Unlock()

	if replaced {
		log.Printf("WARN: listener replaced for thread %s", threadID)
	}
	r.Publish(threadID, domain.ConnectedEvent(threadID))
}

// Detach removes the listener for threadID if it is still the current one.
// The identity check keeps a stale connection's deferred detach from
// removing a listener that has since replaced it. Safe to call when no
// listener is registered.
func (r *Registry) Detach(threadID string, l Listener) {
	r.mu.Lock()
	if r.listeners[threadID] == l {
		delete(r.listeners, threadID)
	}
	r.mu.Unlock()
}

// Publish delivers the event to the listener currently attached for
// threadID, stamping it with a delivery timestamp. Delivery failures and
// missing listeners are normal conditions: the event is dropped and the
// publishing workflow is never blocked or failed.
func (r *Registry) Publish(threadID string, event domain.StreamEvent) {
	r.mu.RLock()
	l := r.listeners[threadID]
	r.mu.RUnlock()
	if l == nil {
		return
	}

	event.Ts = time.Now().UnixMilli()
	data, err := marshalEvent(event)
	if err != nil {
		log.Printf("ERROR: failed to marshal stream event: %v", err)
		return
	}
	if err := l.Send(data); err != nil {
		log.Printf("WARN: dropped %s event for thread %s: %v", event.Type, threadID, err)
	}
}

// HasListener reports whether a listener is currently attached for threadID.
func (r *Registry) HasListener(threadID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listeners[threadID] != nil
}

// ListenerCount returns the number of attached listeners.
func (r *Registry) ListenerCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.listeners)
}
