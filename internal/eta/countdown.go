package eta

import (
	"sync"
	"time"
)

// Countdown drives a one-second-resolution remaining-time label. At most
// one countdown is live per Countdown value; Start cancels any previous
// run before the new one begins, so no two tickers ever overlap.
type Countdown struct {
	mu       sync.Mutex
	stop     chan struct{}
	done     chan struct{}
	onTick   func(label string)
	now      func() time.Time
	interval time.Duration
}

// NewCountdown returns a countdown that reports remaining-time labels
// through onTick.
func NewCountdown(onTick func(label string)) *Countdown {
	return &Countdown{
		onTick:   onTick,
		now:      time.Now,
		interval: time.Second,
	}
}

// Start begins a countdown of totalSec seconds. The label is emitted once
// immediately and then every tick as max(0, total − elapsed).
func (c *Countdown) Start(totalSec int) {
	c.mu.Lock()
	c.cancelLocked()
	stop := make(chan struct{})
	done := make(chan struct{})
	c.stop = stop
	c.done = done
	startedAt := c.now()
	interval := c.interval
	c.mu.Unlock()

	c.onTick(Label(totalSec))

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				elapsed := int(c.now().Sub(startedAt) / time.Second)
				c.onTick(Label(totalSec - elapsed))
			}
		}
	}()
}

// Stop cancels the live countdown, if any, and resets the label. No label
// is emitted after the reset one. Stopping an idle countdown is harmless.
func (c *Countdown) Stop() {
	c.mu.Lock()
	c.cancelLocked()
	c.mu.Unlock()
	c.onTick("00:00")
}

// cancelLocked closes the live ticker and waits for its goroutine to exit,
// so no tick can land after cancellation.
func (c *Countdown) cancelLocked() {
	if c.stop == nil {
		return
	}
	close(c.stop)
	<-c.done
	c.stop = nil
	c.done = nil
}
