package wizard

import (
	"sync"
	"time"
)

// Cooldown disables the resend-code trigger for a fixed window after each
// send. It runs independently of the Guard.
type Cooldown struct {
	mu    sync.Mutex
	d     time.Duration
	until time.Time
	now   func() time.Time
}

func NewCooldown(d time.Duration) *Cooldown {
	return &Cooldown{d: d, now: time.Now}
}

// Start arms the cooldown from now.
func (c *Cooldown) Start() {
	c.mu.Lock()
	c.until = c.now().Add(c.d)
	c.mu.Unlock()
}

// Active reports whether the cooldown window is still running.
func (c *Cooldown) Active() bool {
	return c.Remaining() > 0
}

// Remaining returns the time left until the trigger re-enables, or zero.
func (c *Cooldown) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	left := c.until.Sub(c.now())
	if left < 0 {
		return 0
	}
	return left
}
