package runtime

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestKeyedDebouncer_Fires_After_TTL(t *testing.T) {
	req := require.New(t)
	debouncer := NewKeyedDebouncer()
	fired := make(chan struct{})

	debouncer.Set("k", 10*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("callback never fired")
	}
	req.Eventually(func() bool { return debouncer.Pending() == 0 },
		time.Second, 5*time.Millisecond)
}

func TestKeyedDebouncer_Set_Replaces_Previous_Handle(t *testing.T) {
	req := require.New(t)
	debouncer := NewKeyedDebouncer()
	var fired atomic.Int32

	// Given a pending handle
	debouncer.Set("k", 20*time.Millisecond, func() { fired.Add(1) })

	// When the same key is re-armed before it fires
	debouncer.Set("k", 20*time.Millisecond, func() { fired.Add(1) })
	req.Equal(1, debouncer.Pending())

	// Then only the replacement fires
	req.Eventually(func() bool { return fired.Load() == 1 },
		time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	req.Equal(int32(1), fired.Load())
}

func TestKeyedDebouncer_Refresh_During_Expiry_Skips_The_Stale_Callback(t *testing.T) {
	req := require.New(t)
	debouncer := NewKeyedDebouncer()
	var stale, fresh atomic.Int32

	// Given a fired handle parked on the lock before it could check
	// whether it is still the current one
	debouncer.Set("k", 5*time.Millisecond, func() { stale.Add(1) })
	debouncer.mu.Lock()
	time.Sleep(20 * time.Millisecond)

	// When the key is re-armed while the stale callback waits
	debouncer.timers["k"] = time.AfterFunc(time.Hour, func() { fresh.Add(1) })
	debouncer.mu.Unlock()

	// Then the stale callback runs nothing and the fresh handle stays
	time.Sleep(20 * time.Millisecond)
	req.Zero(stale.Load())
	req.Zero(fresh.Load())
	req.Equal(1, debouncer.Pending())
	req.True(debouncer.Cancel("k"))
}

func TestKeyedDebouncer_Cancel_Stops_The_Callback(t *testing.T) {
	req := require.New(t)
	debouncer := NewKeyedDebouncer()
	var fired atomic.Int32

	debouncer.Set("k", 20*time.Millisecond, func() { fired.Add(1) })

	req.True(debouncer.Cancel("k"))
	req.Zero(debouncer.Pending())

	time.Sleep(60 * time.Millisecond)
	req.Zero(fired.Load())
}

func TestKeyedDebouncer_Cancel_Unknown_Key(t *testing.T) {
	req := require.New(t)
	debouncer := NewKeyedDebouncer()

	req.False(debouncer.Cancel("nope"))
}

func TestKeyedDebouncer_Keys_Are_Independent(t *testing.T) {
	req := require.New(t)
	debouncer := NewKeyedDebouncer()
	var fired atomic.Int32

	debouncer.Set("a", 10*time.Millisecond, func() { fired.Add(1) })
	debouncer.Set("b", 10*time.Millisecond, func() { fired.Add(1) })
	req.Equal(2, debouncer.Pending())

	req.Eventually(func() bool { return fired.Load() == 2 },
		time.Second, 5*time.Millisecond)
}
