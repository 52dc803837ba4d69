package auth

import (
	"sync"
	"time"
)

const throttleCapSeconds = 30

// Throttle slows down repeated failed logins per username:
// cooldown = min(30, 2^failCount) seconds, reset on success. State is
// in-memory; a restart clears it, which is acceptable for a
// single-operator admin panel.
type Throttle struct {
	mu      sync.Mutex
	entries map[string]*throttleEntry
	now     func() time.Time
}

type throttleEntry struct {
	failCount     int
	cooldownUntil time.Time
}

// NewThrottle creates an empty throttle.
func NewThrottle() *Throttle {
	return &Throttle{
		entries: make(map[string]*throttleEntry),
		now:     time.Now,
	}
}

// WaitSeconds returns how many seconds the user must wait before the
// next attempt (0 if none).
func (t *Throttle) WaitSeconds(username string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entries[username]
	if !ok {
		return 0
	}
	now := t.now()
	if now.Before(e.cooldownUntil) {
		return int(e.cooldownUntil.Sub(now).Seconds()) + 1 // round up
	}
	return 0
}

// RecordFailure bumps the fail counter and extends the cooldown.
func (t *Throttle) RecordFailure(username string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entries[username]
	if !ok {
		e = &throttleEntry{}
		t.entries[username] = e
	}
	e.failCount++
	e.cooldownUntil = t.now().Add(time.Duration(CooldownSecondsForFailCount(e.failCount)) * time.Second)
}

// RecordSuccess clears any cooldown for the user.
func (t *Throttle) RecordSuccess(username string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, username)
}

// CooldownSecondsForFailCount returns min(30, 2^failCount).
func CooldownSecondsForFailCount(failCount int) int {
	// 2^5 already exceeds the cap; shifting further would overflow.
	if failCount >= 5 {
		return throttleCapSeconds
	}
	if failCount < 0 {
		return 0
	}
	return 1 << failCount
}
