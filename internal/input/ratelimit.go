package input

import (
	"fmt"
	"sync"
	"time"

	config "github.com/uioperator/uictl/config"
)

// RateLimiter enforces a sliding-window limit on injected input actions.
type RateLimiter struct {
	cfg         *config.RateLimitConfig
	mu          sync.Mutex
	actionTimes []time.Time
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		cfg:         &cfg,
		actionTimes: make([]time.Time, 0),
	}
}

// CheckAndRecord checks if the action is within rate limits and records it
// Returns an error if the rate limit is exceeded
func (rl *RateLimiter) CheckAndRecord(action string) error {
	if !rl.cfg.Enabled {
		return nil
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	windowStart := now.Add(-time.Duration(rl.cfg.WindowSeconds) * time.Second)

	valid := rl.actionTimes[:0]
	for _, t := range rl.actionTimes {
		if t.After(windowStart) {
			valid = append(valid, t)
		}
	}
	rl.actionTimes = valid

	if len(rl.actionTimes) >= rl.cfg.MaxActionsPerMinute {
		return fmt.Errorf("rate limit exceeded for %s: maximum %d actions per %d seconds (current: %d actions in window)",
			action, rl.cfg.MaxActionsPerMinute, rl.cfg.WindowSeconds, len(rl.actionTimes))
	}

	rl.actionTimes = append(rl.actionTimes, now)
	return nil
}

// CurrentCount returns the number of actions in the current window
func (rl *RateLimiter) CurrentCount() int {
	if !rl.cfg.Enabled {
		return 0
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	windowStart := now.Add(-time.Duration(rl.cfg.WindowSeconds) * time.Second)

	count := 0
	for _, t := range rl.actionTimes {
		if t.After(windowStart) {
			count++
		}
	}
	return count
}

// Reset clears all recorded actions
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.actionTimes = rl.actionTimes[:0]
}
