package runtime

import (
	"sort"
	"sync"
	"time"

	"teamline/domain"
)

// CanvasRelay tracks who joined a shared canvas and their live
// cursors. Cursor state is last-writer-wins and purely ephemeral;
// durable canvas content lives in an external store clients update
// on their own debounce.
type CanvasRelay struct {
	mu      sync.Mutex
	members map[string]Set                           // channel id -> user ids
	cursors map[string]map[string]domain.CursorState // channel id -> user id -> cursor
}

func NewCanvasRelay() *CanvasRelay {
	return &CanvasRelay{
		members: make(map[string]Set),
		cursors: make(map[string]map[string]domain.CursorState),
	}
}

// Join records canvas membership for disconnect cleanup.
func (c *CanvasRelay) Join(channelID, userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.members[channelID]; !ok {
		c.members[channelID] = make(Set)
	}
	c.members[channelID][userID] = struct{}{}
}

// Leave removes the user and clears their cursor, reporting whether
// a cursor entry existed (callers broadcast a null-cursor update
// only in that case).
func (c *CanvasRelay) Leave(channelID, userID string) (hadCursor bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.leaveLocked(channelID, userID)
}

func (c *CanvasRelay) leaveLocked(channelID, userID string) (hadCursor bool) {
	if users, ok := c.members[channelID]; ok {
		delete(users, userID)
		if len(users) == 0 {
			delete(c.members, channelID)
		}
	}
	if cursors, ok := c.cursors[channelID]; ok {
		if _, hadCursor = cursors[userID]; hadCursor {
			delete(cursors, userID)
		}
		if len(cursors) == 0 {
			delete(c.cursors, channelID)
		}
	}
	return hadCursor
}

// LeaveAll removes the user from every canvas, returning the
// affected channels. Used on disconnect.
func (c *CanvasRelay) LeaveAll(userID string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var channels []string
	for channelID, users := range c.members {
		if _, ok := users[userID]; ok {
			channels = append(channels, channelID)
		}
	}
	for _, channelID := range channels {
		c.leaveLocked(channelID, userID)
	}
	sort.Strings(channels)
	return channels
}

// SetCursor overwrites the (channel,user) cursor with a timestamped
// value and returns it for broadcast.
func (c *CanvasRelay) SetCursor(channelID, userID string, x, y float64, label string, at time.Time) domain.CursorState {
	c.mu.Lock()
	defer c.mu.Unlock()
	state := domain.CursorState{
		ChannelID: channelID,
		UserID:    userID,
		X:         x,
		Y:         y,
		Label:     label,
		UpdatedAt: at,
	}
	if _, ok := c.cursors[channelID]; !ok {
		c.cursors[channelID] = make(map[string]domain.CursorState)
	}
	c.cursors[channelID][userID] = state
	return state
}

// Cursor returns the current cursor of (channel,user) if any.
func (c *CanvasRelay) Cursor(channelID, userID string) (domain.CursorState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cursors, ok := c.cursors[channelID]
	if !ok {
		return domain.CursorState{}, false
	}
	state, ok := cursors[userID]
	return state, ok
}

// OnCanvas reports whether the user joined the channel's canvas.
func (c *CanvasRelay) OnCanvas(channelID, userID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	users, ok := c.members[channelID]
	if !ok {
		return false
	}
	_, ok = users[userID]
	return ok
}
