// Package reminder tracks per-order timers that surface a warning when an
// order stays unpaid for too long. Timers are reconciled against every order
// snapshot pushed by the feed and torn down with their owning scheduler.
package reminder

import (
	"sync"
	"time"

	"github.com/tair/shop-tracker/internal/order/domain"
)

// Delay is how long an order may stay unpaid before a reminder fires
const Delay = 30 * time.Minute

// Notification is handed to the notifier when a reminder fires. Firing is a
// side effect only and never mutates order state.
type Notification struct {
	OwnerID uint
	Order   domain.Order
}

// Notifier receives fired reminders
type Notifier func(n Notification)

// Timer is the cancellable handle armed per order id
type Timer interface {
	Stop() bool
}

type timerFactory func(d time.Duration, fn func()) Timer

type realTimer struct{ t *time.Timer }

func (r realTimer) Stop() bool { return r.t.Stop() }

func defaultTimerFactory(d time.Duration, fn func()) Timer {
	return realTimer{t: time.AfterFunc(d, fn)}
}

// Scheduler owns the reminder timers of a single owner. At most one live
// timer exists per order id; arming again replaces, never stacks.
type Scheduler struct {
	ownerID  uint
	notify   Notifier
	now      func() time.Time
	newTimer timerFactory

	mu       sync.Mutex
	timers   map[uint]Timer
	statuses map[uint]string
	closed   bool
}

// Option configures a Scheduler
type Option func(*Scheduler)

// WithClock fixes the scheduler's notion of "now", used by tests
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// WithTimerFactory replaces the real timers, used by tests
func WithTimerFactory(f func(d time.Duration, fn func()) Timer) Option {
	return func(s *Scheduler) { s.newTimer = f }
}

// NewScheduler creates a scheduler for one owner
func NewScheduler(ownerID uint, notify Notifier, opts ...Option) *Scheduler {
	s := &Scheduler{
		ownerID:  ownerID,
		notify:   notify,
		now:      time.Now,
		newTimer: defaultTimerFactory,
		timers:   make(map[uint]Timer),
		statuses: make(map[uint]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Apply reconciles the timers against a fresh order snapshot: newly seen
// unpaid orders arm a timer for the remainder of the window (firing
// immediately if already overdue), paid orders cancel theirs, orders
// toggled back to unpaid restart a full window from now, and deleted orders
// release theirs.
func (s *Scheduler) Apply(orders []domain.Order) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}

	current := make(map[uint]*domain.Order, len(orders))
	for i := range orders {
		current[orders[i].ID] = &orders[i]
	}

	// Cancel timers for orders that disappeared or got paid
	for id, timer := range s.timers {
		order, ok := current[id]
		if !ok || order.IsPaid() {
			timer.Stop()
			delete(s.timers, id)
		}
	}

	var fireNow []Notification
	now := s.now()

	for id, order := range current {
		prevStatus, seen := s.statuses[id]

		if order.IsPaid() {
			s.statuses[id] = domain.StatusPaid
			continue
		}

		switch {
		case !seen:
			remaining := Delay - now.Sub(order.Date)
			if remaining <= 0 {
				fireNow = append(fireNow, Notification{OwnerID: s.ownerID, Order: *order})
			} else {
				s.arm(id, remaining, *order)
			}
		case prevStatus == domain.StatusPaid:
			// Toggled back to unpaid: the window restarts from now,
			// not from the original order date
			s.arm(id, Delay, *order)
		}
		s.statuses[id] = domain.StatusUnpaid
	}

	// Forget orders that no longer exist
	for id := range s.statuses {
		if _, ok := current[id]; !ok {
			delete(s.statuses, id)
		}
	}

	s.mu.Unlock()

	for _, n := range fireNow {
		s.notify(n)
	}
}

// arm replaces any existing timer for the order id; caller holds the lock
func (s *Scheduler) arm(id uint, d time.Duration, order domain.Order) {
	if timer, ok := s.timers[id]; ok {
		timer.Stop()
	}
	s.timers[id] = s.newTimer(d, func() { s.fired(id, order) })
}

func (s *Scheduler) fired(id uint, order domain.Order) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	delete(s.timers, id)
	s.mu.Unlock()

	s.notify(Notification{OwnerID: s.ownerID, Order: order})
}

// ActiveTimers returns the number of live timers
func (s *Scheduler) ActiveTimers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Close cancels and releases every timer. No reminder outlives its scheduler.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
}
