package flow

import (
	"context"
	"math"
	"sync"
	"time"
)

// DefaultCodeCooldown is how long "resend code" stays disabled after a code is sent
const DefaultCodeCooldown = 30 * time.Second

// Remaining returns the whole seconds left before a code sent at sentAt may be
// resent. Zero when no code was sent or the cooldown has passed.
func Remaining(sentAt, now time.Time, cooldown time.Duration) int {
	if sentAt.IsZero() {
		return 0
	}
	left := sentAt.Add(cooldown).Sub(now)
	if left <= 0 {
		return 0
	}
	return int(math.Ceil(left.Seconds()))
}

// Countdown ticks once per Interval from Seconds down to zero. One countdown
// drives one verification card; Stop or cancelling the start context ends it.
type Countdown struct {
	Seconds  int
	Interval time.Duration

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	expired bool
}

func NewCountdown(seconds int) *Countdown {
	return &Countdown{Seconds: seconds, Interval: time.Second}
}

// Start reports the remaining seconds to onTick, first immediately and then each
// interval. onDone runs once zero is reached; it does not run when the countdown
// is stopped early. Starting a running countdown restarts it.
func (c *Countdown) Start(ctx context.Context, onTick func(remaining int), onDone func()) {
	c.Stop()

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	c.mu.Lock()
	c.cancel = cancel
	c.done = done
	c.expired = false
	c.mu.Unlock()

	interval := c.Interval
	if interval <= 0 {
		interval = time.Second
	}

	go func() {
		defer close(done)
		defer cancel()

		remaining := c.Seconds
		if onTick != nil {
			onTick(remaining)
		}
		if remaining <= 0 {
			c.finish(onDone)
			return
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				remaining--
				if onTick != nil {
					onTick(remaining)
				}
				if remaining <= 0 {
					c.finish(onDone)
					return
				}
			}
		}
	}()
}

func (c *Countdown) finish(onDone func()) {
	c.mu.Lock()
	c.expired = true
	c.mu.Unlock()
	if onDone != nil {
		onDone()
	}
}

// Stop cancels a running countdown and waits for it to exit. It must not be
// called from onTick or onDone.
func (c *Countdown) Stop() {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel = nil
	c.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Done is closed when the current run ends, nil before the first Start
func (c *Countdown) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

// Expired reports whether the last run reached zero
func (c *Countdown) Expired() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expired
}
