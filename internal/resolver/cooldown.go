package resolver

import (
	"sync"
	"time"
)

// DefaultCooldown applies when the service rate-limits without a retry hint.
const DefaultCooldown = 30 * time.Second

// Cooldown holds the single "do not call before" timestamp set after a
// rate-limit response. It clears implicitly once the timestamp passes.
type Cooldown struct {
	mu        sync.Mutex
	notBefore time.Time
}

// Remaining returns how long callers must still wait, or zero.
func (c *Cooldown) Remaining(now time.Time) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if remaining := c.notBefore.Sub(now); remaining > 0 {
		return remaining
	}
	return 0
}

// Set records a cooldown of the given duration from now. Last writer wins.
func (c *Cooldown) Set(now time.Time, wait time.Duration) {
	if wait <= 0 {
		wait = DefaultCooldown
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notBefore = now.Add(wait)
}
