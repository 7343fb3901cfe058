package auth

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchdogExpiresIdleSession(t *testing.T) {
	var mu sync.Mutex
	var expired []string

	w := NewWatchdog(30*time.Millisecond, func(sessionID string) {
		mu.Lock()
		expired = append(expired, sessionID)
		mu.Unlock()
	})

	w.Start("s1")
	require.True(t, w.Active("s1"))

	assert.Eventually(t, func() bool {
		return !w.Active("s1")
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"s1"}, expired)
}

func TestWatchdogTouchResetsCountdown(t *testing.T) {
	w := NewWatchdog(60*time.Millisecond, nil)
	w.Start("s1")

	// Keep the session busy past its original deadline.
	for i := 0; i < 4; i++ {
		time.Sleep(30 * time.Millisecond)
		require.True(t, w.Touch("s1"), "an active session accepts touches")
	}
	assert.True(t, w.Active("s1"))

	assert.Eventually(t, func() bool {
		return !w.Active("s1")
	}, time.Second, 5*time.Millisecond)
}

func TestWatchdogTouchAfterExpiryFails(t *testing.T) {
	w := NewWatchdog(10*time.Millisecond, nil)
	w.Start("s1")

	assert.Eventually(t, func() bool {
		return !w.Active("s1")
	}, time.Second, time.Millisecond)

	assert.False(t, w.Touch("s1"), "expired sessions stay dead")
}

func TestWatchdogStopIsSilent(t *testing.T) {
	fired := make(chan string, 1)
	w := NewWatchdog(20*time.Millisecond, func(sessionID string) {
		fired <- sessionID
	})

	w.Start("s1")
	w.Stop("s1")

	select {
	case id := <-fired:
		t.Fatalf("expiry callback fired for explicitly stopped session %s", id)
	case <-time.After(60 * time.Millisecond):
	}
	assert.False(t, w.Active("s1"))
}

func TestWatchdogRestartReplacesTimer(t *testing.T) {
	w := NewWatchdog(50*time.Millisecond, nil)
	w.Start("s1")
	w.Start("s1")

	assert.True(t, w.Active("s1"))
	w.Stop("s1")
	assert.False(t, w.Active("s1"))
}
