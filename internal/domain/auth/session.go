package auth

import (
	"sync"
	"time"
)

// DefaultInactivityTimeout is how long a session survives without any
// tracked activity.
const DefaultInactivityTimeout = 20 * time.Minute

// Watchdog terminates sessions after a period of inactivity. Every
// tracked request resets the countdown; on expiry the session is
// dropped and subsequent requests carrying its id are rejected.
type Watchdog struct {
	timeout  time.Duration
	onExpire func(sessionID string)

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewWatchdog creates a watchdog with the given inactivity timeout.
// onExpire may be nil.
func NewWatchdog(timeout time.Duration, onExpire func(sessionID string)) *Watchdog {
	if timeout <= 0 {
		timeout = DefaultInactivityTimeout
	}
	return &Watchdog{
		timeout:  timeout,
		onExpire: onExpire,
		timers:   make(map[string]*time.Timer),
	}
}

// Start begins watching a session.
func (w *Watchdog) Start(sessionID string) {
	if sessionID == "" {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.timers[sessionID]; ok {
		timer.Stop()
	}
	w.timers[sessionID] = time.AfterFunc(w.timeout, func() {
		w.expire(sessionID)
	})
}

// Touch resets the countdown for an active session. Touching an
// expired or unknown session does nothing and reports false.
func (w *Watchdog) Touch(sessionID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	timer, ok := w.timers[sessionID]
	if !ok {
		return false
	}
	timer.Reset(w.timeout)
	return true
}

// Active reports whether a session is still alive.
func (w *Watchdog) Active(sessionID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.timers[sessionID]
	return ok
}

// Stop terminates a session without firing the expiry callback.
func (w *Watchdog) Stop(sessionID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if timer, ok := w.timers[sessionID]; ok {
		timer.Stop()
		delete(w.timers, sessionID)
	}
}

func (w *Watchdog) expire(sessionID string) {
	w.mu.Lock()
	_, ok := w.timers[sessionID]
	if ok {
		delete(w.timers, sessionID)
	}
	w.mu.Unlock()

	if ok && w.onExpire != nil {
		w.onExpire(sessionID)
	}
}
