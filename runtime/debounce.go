package runtime

import (
	"sync"
	"time"
)

// KeyedDebouncer schedules at most one pending callback per key.
// Setting a key always cancels the previous handle first, so two
// live timers for the same key cannot exist.
type KeyedDebouncer struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
}

func NewKeyedDebouncer() *KeyedDebouncer {
	return &KeyedDebouncer{timers: make(map[string]*time.Timer)}
}

// Set arms (or re-arms) the timer for key. fn runs in the timer's
// goroutine after the handle has been released, so fn may call back
// into the debouncer.
func (d *KeyedDebouncer) Set(key string, ttl time.Duration, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if prev, ok := d.timers[key]; ok {
		prev.Stop()
	}
	var t *time.Timer
	t = time.AfterFunc(ttl, func() {
		d.mu.Lock()
		// A newer handle may have replaced this one between firing
		// and acquiring the lock; a replaced or cancelled handle must
		// not run, or it would expire the key its successor re-armed.
		cur, ok := d.timers[key]
		if !ok || cur != t {
			d.mu.Unlock()
			return
		}
		delete(d.timers, key)
		d.mu.Unlock()
		fn()
	})
	d.timers[key] = t
}

// Cancel stops and forgets the pending handle for key, reporting
// whether one existed.
func (d *KeyedDebouncer) Cancel(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, ok := d.timers[key]
	if !ok {
		return false
	}
	t.Stop()
	delete(d.timers, key)
	return true
}

// Pending returns the number of live handles.
func (d *KeyedDebouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.timers)
}
