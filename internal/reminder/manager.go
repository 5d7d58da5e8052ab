package reminder

import (
	"sync"

	"github.com/tair/shop-tracker/internal/order/domain"
)

// Manager dispatches order snapshots to one scheduler per owner and tears
// all of them down together
type Manager struct {
	notify Notifier
	opts   []Option

	mu         sync.Mutex
	schedulers map[uint]*Scheduler
	closed     bool
}

// NewManager creates a manager. Options are forwarded to every scheduler it
// creates.
func NewManager(notify Notifier, opts ...Option) *Manager {
	return &Manager{
		notify:     notify,
		opts:       opts,
		schedulers: make(map[uint]*Scheduler),
	}
}

// Apply routes a snapshot to the owner's scheduler, creating it on first use
func (m *Manager) Apply(ownerID uint, orders []domain.Order) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	s, ok := m.schedulers[ownerID]
	if !ok {
		s = NewScheduler(ownerID, m.notify, m.opts...)
		m.schedulers[ownerID] = s
	}
	m.mu.Unlock()

	s.Apply(orders)
}

// ActiveTimers sums live timers across all owners, exported as a gauge
func (m *Manager) ActiveTimers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, s := range m.schedulers {
		total += s.ActiveTimers()
	}
	return total
}

// Close tears down every scheduler
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	for ownerID, s := range m.schedulers {
		s.Close()
		delete(m.schedulers, ownerID)
	}
}
