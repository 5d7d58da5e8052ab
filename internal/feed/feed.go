// Package feed broadcasts full order-list snapshots to in-process
// subscribers. The delivery layer publishes the latest snapshot after every
// order mutation; the reminder scheduler is the main consumer. Any transport
// pushing a full current snapshot on every change in apply order satisfies
// the same contract.
package feed

import (
	"sync"

	"github.com/tair/shop-tracker/internal/order/domain"
)

// OrderSnapshot is the full current order list of one owner
type OrderSnapshot struct {
	OwnerID uint
	Orders  []domain.Order
}

// Hub fans order snapshots out to subscribers
type Hub struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]func(OrderSnapshot)
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{subs: make(map[int]func(OrderSnapshot))}
}

// Subscribe registers a callback for every published snapshot and returns
// an unsubscribe handle
func (h *Hub) Subscribe(fn func(OrderSnapshot)) (unsubscribe func()) {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = fn
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
}

// SubscribeOwner registers a callback receiving only one owner's snapshots
func (h *Hub) SubscribeOwner(ownerID uint, fn func([]domain.Order)) (unsubscribe func()) {
	return h.Subscribe(func(snap OrderSnapshot) {
		if snap.OwnerID == ownerID {
			fn(snap.Orders)
		}
	})
}

// Publish pushes a fresh snapshot to every subscriber. Callbacks run
// synchronously in apply order; subscribers must not block.
func (h *Hub) Publish(ownerID uint, orders []domain.Order) {
	h.mu.RLock()
	subs := make([]func(OrderSnapshot), 0, len(h.subs))
	for _, fn := range h.subs {
		subs = append(subs, fn)
	}
	h.mu.RUnlock()

	snap := OrderSnapshot{OwnerID: ownerID, Orders: orders}
	for _, fn := range subs {
		fn(snap)
	}
}
