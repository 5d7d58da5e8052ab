package reminder_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/shop-tracker/internal/order/domain"
	"github.com/tair/shop-tracker/internal/reminder"
)

var testNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

// fakeTimer records its duration and can be fired manually
type fakeTimer struct {
	d       time.Duration
	fn      func()
	stopped bool
}

func (f *fakeTimer) Stop() bool {
	was := f.stopped
	f.stopped = true
	return !was
}

// timerRecorder hands out fake timers and remembers every armed one
type timerRecorder struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (r *timerRecorder) factory(d time.Duration, fn func()) reminder.Timer {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := &fakeTimer{d: d, fn: fn}
	r.timers = append(r.timers, t)
	return t
}

func (r *timerRecorder) last() *fakeTimer {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.timers) == 0 {
		return nil
	}
	return r.timers[len(r.timers)-1]
}

type notifications struct {
	mu    sync.Mutex
	fired []reminder.Notification
}

func (n *notifications) notify(notification reminder.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.fired = append(n.fired, notification)
}

func (n *notifications) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.fired)
}

func newScheduler(t *testing.T) (*reminder.Scheduler, *timerRecorder, *notifications) {
	t.Helper()
	rec := &timerRecorder{}
	got := &notifications{}
	s := reminder.NewScheduler(7, got.notify,
		reminder.WithClock(func() time.Time { return testNow }),
		reminder.WithTimerFactory(rec.factory),
	)
	t.Cleanup(s.Close)
	return s, rec, got
}

func unpaidOrder(id uint, age time.Duration) domain.Order {
	return domain.Order{ID: id, OwnerID: 7, Status: domain.StatusUnpaid, Date: testNow.Add(-age)}
}

func paidOrder(id uint) domain.Order {
	return domain.Order{ID: id, OwnerID: 7, Status: domain.StatusPaid, Date: testNow}
}

func TestNewUnpaidOrderArmsRemainder(t *testing.T) {
	s, rec, got := newScheduler(t)

	s.Apply([]domain.Order{unpaidOrder(1, 10*time.Minute)})

	assert.Equal(t, 1, s.ActiveTimers())
	assert.Equal(t, 0, got.count())
	require.NotNil(t, rec.last())
	// 10 minutes already elapsed of the 30 minute window
	assert.Equal(t, 20*time.Minute, rec.last().d)
}

func TestOverdueOrderFiresImmediately(t *testing.T) {
	s, _, got := newScheduler(t)

	s.Apply([]domain.Order{unpaidOrder(1, 45*time.Minute)})

	assert.Equal(t, 0, s.ActiveTimers())
	assert.Equal(t, 1, got.count())
}

func TestPaidOrderArmsNothing(t *testing.T) {
	s, rec, got := newScheduler(t)

	s.Apply([]domain.Order{paidOrder(1)})

	assert.Equal(t, 0, s.ActiveTimers())
	assert.Equal(t, 0, got.count())
	assert.Nil(t, rec.last())
}

func TestReapplySameSnapshotDoesNotRearm(t *testing.T) {
	s, rec, _ := newScheduler(t)

	snapshot := []domain.Order{unpaidOrder(1, 5*time.Minute)}
	s.Apply(snapshot)
	s.Apply(snapshot)
	s.Apply(snapshot)

	assert.Equal(t, 1, s.ActiveTimers())
	rec.mu.Lock()
	armed := len(rec.timers)
	rec.mu.Unlock()
	assert.Equal(t, 1, armed)
}

func TestPayingCancelsTimer(t *testing.T) {
	s, rec, got := newScheduler(t)

	s.Apply([]domain.Order{unpaidOrder(1, 5*time.Minute)})
	require.Equal(t, 1, s.ActiveTimers())

	s.Apply([]domain.Order{paidOrder(1)})

	assert.Equal(t, 0, s.ActiveTimers())
	assert.True(t, rec.last().stopped)
	assert.Equal(t, 0, got.count())
}

func TestToggleBackToUnpaidRestartsFullWindow(t *testing.T) {
	s, rec, _ := newScheduler(t)

	old := unpaidOrder(1, 25*time.Minute)
	s.Apply([]domain.Order{old})
	require.Equal(t, 25*time.Minute, time.Duration(testNow.Sub(old.Date)))

	s.Apply([]domain.Order{paidOrder(1)})
	require.Equal(t, 0, s.ActiveTimers())

	// Unpaid again: the window restarts in full, not from the order date
	s.Apply([]domain.Order{unpaidOrder(1, 25*time.Minute)})

	assert.Equal(t, 1, s.ActiveTimers())
	assert.Equal(t, reminder.Delay, rec.last().d)
}

func TestDeletedOrderReleasesTimer(t *testing.T) {
	s, rec, _ := newScheduler(t)

	s.Apply([]domain.Order{unpaidOrder(1, 5*time.Minute)})
	require.Equal(t, 1, s.ActiveTimers())

	s.Apply(nil)

	assert.Equal(t, 0, s.ActiveTimers())
	assert.True(t, rec.last().stopped)
}

func TestFiredTimerNotifiesAndReleases(t *testing.T) {
	s, rec, got := newScheduler(t)

	s.Apply([]domain.Order{unpaidOrder(42, 5*time.Minute)})
	timer := rec.last()
	require.NotNil(t, timer)

	timer.fn()

	assert.Equal(t, 1, got.count())
	got.mu.Lock()
	n := got.fired[0]
	got.mu.Unlock()
	assert.Equal(t, uint(7), n.OwnerID)
	assert.Equal(t, uint(42), n.Order.ID)
	assert.Equal(t, 0, s.ActiveTimers())
}

func TestCloseStopsEverything(t *testing.T) {
	s, rec, got := newScheduler(t)

	s.Apply([]domain.Order{unpaidOrder(1, 5*time.Minute), unpaidOrder(2, 5*time.Minute)})
	require.Equal(t, 2, s.ActiveTimers())

	s.Close()

	assert.Equal(t, 0, s.ActiveTimers())
	// A late fire after close is swallowed
	rec.last().fn()
	assert.Equal(t, 0, got.count())

	// Apply after close is a no-op
	s.Apply([]domain.Order{unpaidOrder(3, 5*time.Minute)})
	assert.Equal(t, 0, s.ActiveTimers())
}

func TestManagerRoutesPerOwner(t *testing.T) {
	got := &notifications{}
	m := reminder.NewManager(got.notify,
		reminder.WithClock(func() time.Time { return testNow }),
	)
	defer m.Close()

	m.Apply(7, []domain.Order{{ID: 1, OwnerID: 7, Status: domain.StatusUnpaid, Date: testNow.Add(-5 * time.Minute)}})
	m.Apply(8, []domain.Order{{ID: 2, OwnerID: 8, Status: domain.StatusUnpaid, Date: testNow.Add(-5 * time.Minute)}})

	assert.Equal(t, 2, m.ActiveTimers())

	m.Apply(7, nil)
	assert.Equal(t, 1, m.ActiveTimers())
}
