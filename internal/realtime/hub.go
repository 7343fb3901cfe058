// Package realtime distributes change notifications so connected
// clients can refresh collection snapshots without polling.
package realtime

import (
	"sync"
	"time"
)

// Collection names a snapshot stream.
type Collection string

const (
	CollectionUsers        Collection = "users"
	CollectionProducts     Collection = "products"
	CollectionQuarries     Collection = "quarries"
	CollectionQuarryPrices Collection = "quarry_prices"
	CollectionCustomers    Collection = "customers"
	CollectionTransactions Collection = "transactions"
	CollectionPriceHistory Collection = "price_history"
	CollectionAuditLogs    Collection = "audit_logs"
)

// Event describes one collection change.
type Event struct {
	Collection Collection `json:"collection"`
	At         time.Time  `json:"at"`

	// remote marks events relayed from another process, so the fanout
	// does not echo them back out.
	remote bool
}

// Handler receives change events. Handlers run synchronously on the
// publishing goroutine and must not block.
type Handler func(Event)

// Hub is an in-process fanout of collection change events. Services
// publish after every successful write; handlers typically re-read the
// collection and push the fresh snapshot to their client.
type Hub struct {
	mu     sync.RWMutex
	nextID int
	subs   map[Collection]map[int]Handler
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[Collection]map[int]Handler)}
}

// Subscribe registers a handler for one collection and returns an
// unsubscribe function. Unsubscribing twice is a no-op.
func (h *Hub) Subscribe(collection Collection, fn Handler) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subs[collection] == nil {
		h.subs[collection] = make(map[int]Handler)
	}
	h.nextID++
	subID := h.nextID
	h.subs[collection][subID] = fn

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs[collection], subID)
	}
}

// Publish notifies every subscriber of the collection.
func (h *Hub) Publish(collection Collection) {
	h.dispatch(Event{Collection: collection, At: time.Now().UTC()})
}

func (h *Hub) dispatch(event Event) {
	collection := event.Collection

	h.mu.RLock()
	handlers := make([]Handler, 0, len(h.subs[collection]))
	for _, fn := range h.subs[collection] {
		handlers = append(handlers, fn)
	}
	h.mu.RUnlock()

	for _, fn := range handlers {
		fn(event)
	}
}

// Clear drops every subscription.
func (h *Hub) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs = make(map[Collection]map[int]Handler)
}
