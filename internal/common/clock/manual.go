package clock

import (
	"sync"
	"time"
)

// Manual is a Clock that only moves when Advance is called. Callbacks
// registered with Every fire synchronously from Advance, in time order.
type Manual struct {
	mu      sync.Mutex
	now     time.Time
	nextID  int
	tickers map[int]*manualTicker
}

// NewManual creates a manual clock starting at the given time
func NewManual(start time.Time) *Manual {
	return &Manual{
		now:     start,
		tickers: make(map[int]*manualTicker),
	}
}

// Now returns the current manual time
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Every registers fn to run each time the clock crosses a multiple of interval
// measured from now
func (m *Manual) Every(interval time.Duration, fn func()) Ticker {
	m.mu.Lock()
	defer m.mu.Unlock()

	if interval <= 0 {
		interval = time.Millisecond
	}

	m.nextID++
	t := &manualTicker{
		clock:    m,
		id:       m.nextID,
		interval: interval,
		next:     m.now.Add(interval),
		fn:       fn,
	}
	m.tickers[t.id] = t
	return t
}

// Advance moves the clock forward by d, firing every tick that falls inside
// the window
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()
		due := m.earliestDue(target)
		if due == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.now = due.next
		due.next = due.next.Add(due.interval)
		fn := due.fn
		m.mu.Unlock()

		// callbacks may stop tickers or register new ones
		fn()
	}
}

// ActiveTickers reports how many tickers are still registered
func (m *Manual) ActiveTickers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tickers)
}

func (m *Manual) earliestDue(target time.Time) *manualTicker {
	var due *manualTicker
	for _, t := range m.tickers {
		if t.next.After(target) {
			continue
		}
		if due == nil || t.next.Before(due.next) || (t.next.Equal(due.next) && t.id < due.id) {
			due = t
		}
	}
	return due
}

type manualTicker struct {
	clock    *Manual
	id       int
	interval time.Duration
	next     time.Time
	fn       func()
}

func (t *manualTicker) Stop() {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	delete(t.clock.tickers, t.id)
}
