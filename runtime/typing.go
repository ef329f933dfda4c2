package runtime

import (
	"sort"
	"sync"
	"time"
)

// TypingCoordinator runs the per-(channel,user) typing state
// machine. A key is either idle (no entry) or typing (one pending
// expiry handle). Transitions out of typing are: expiry, explicit
// stop, the user sending a message in that channel, or disconnect.
//
// The coordinator is transport-free: callers pass the expiry
// callback that broadcasts "stop-typing".
type TypingCoordinator struct {
	mu       sync.Mutex
	ttl      time.Duration
	timers   *KeyedDebouncer
	channels map[string]Set // user id -> channels with an active timer
}

func NewTypingCoordinator(ttl time.Duration) *TypingCoordinator {
	return &TypingCoordinator{
		ttl:      ttl,
		timers:   NewKeyedDebouncer(),
		channels: make(map[string]Set),
	}
}

func typingKey(channelID, userID string) string {
	return channelID + "\x00" + userID
}

// Touch starts or refreshes the typing timer for (channel,user).
// onExpire fires once if the TTL elapses with no further Touch; a
// Touch replaces the previous handle, so at most one expiry is
// pending per key at any instant.
func (c *TypingCoordinator) Touch(channelID, userID string, onExpire func(channelID, userID string)) {
	c.mu.Lock()
	if _, ok := c.channels[userID]; !ok {
		c.channels[userID] = make(Set)
	}
	c.channels[userID][channelID] = struct{}{}
	c.mu.Unlock()

	c.timers.Set(typingKey(channelID, userID), c.ttl, func() {
		// The index entry is the source of truth: an explicit stop
		// or a sweep racing this expiry clears it first and wins.
		if c.clear(channelID, userID) {
			onExpire(channelID, userID)
		}
	})
}

// Stop cancels the timer for (channel,user) and reports whether the
// user was typing there. Used for explicit stop-typing and for the
// implicit clear when the user sends a message.
func (c *TypingCoordinator) Stop(channelID, userID string) bool {
	if !c.clear(channelID, userID) {
		return false
	}
	c.timers.Cancel(typingKey(channelID, userID))
	return true
}

// Sweep cancels every active timer of a user across channels and
// returns the affected channels. Used on disconnect.
func (c *TypingCoordinator) Sweep(userID string) []string {
	c.mu.Lock()
	channels := c.channels[userID]
	delete(c.channels, userID)
	c.mu.Unlock()

	out := make([]string, 0, len(channels))
	for channelID := range channels {
		c.timers.Cancel(typingKey(channelID, userID))
		out = append(out, channelID)
	}
	sort.Strings(out)
	return out
}

// Active reports whether (channel,user) is in the typing state.
func (c *TypingCoordinator) Active(channelID, userID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	channels, ok := c.channels[userID]
	if !ok {
		return false
	}
	_, active := channels[channelID]
	return active
}

// PendingTimers returns the number of live expiry handles.
func (c *TypingCoordinator) PendingTimers() int {
	return c.timers.Pending()
}

func (c *TypingCoordinator) clear(channelID, userID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	channels, ok := c.channels[userID]
	if !ok {
		return false
	}
	if _, active := channels[channelID]; !active {
		return false
	}
	delete(channels, channelID)
	if len(channels) == 0 {
		delete(c.channels, userID)
	}
	return true
}
