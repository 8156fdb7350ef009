package clock

import (
	"sync"
	"time"
)

// Clock tells the time and schedules repeating callbacks
type Clock interface {
	Now() time.Time

	// Every calls fn repeatedly at the given interval until the returned
	// Ticker is stopped
	Every(interval time.Duration, fn func()) Ticker
}

// Ticker is a running repeating callback
type Ticker interface {
	// Stop cancels the callback. Calling Stop more than once is a no-op.
	Stop()
}

// DefaultClock implements the Clock interface using the system clock
type DefaultClock struct{}

// Now returns the current time
func (c *DefaultClock) Now() time.Time {
	return time.Now()
}

// Every starts a goroutine that calls fn on each tick of a time.Ticker
func (c *DefaultClock) Every(interval time.Duration, fn func()) Ticker {
	t := &systemTicker{
		ticker: time.NewTicker(interval),
		done:   make(chan struct{}),
	}

	go func() {
		for {
			select {
			case <-t.done:
				return
			case <-t.ticker.C:
				fn()
			}
		}
	}()

	return t
}

type systemTicker struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (t *systemTicker) Stop() {
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.done)
	})
}
