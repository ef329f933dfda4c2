package runtime

import (
	"sort"
	"sync"

	"teamline/domain/event"
)

// HuddleRelay tracks ephemeral group-call rosters per channel. A
// roster is created on first join and disappears when its last
// participant leaves; an empty roster is an ended huddle, no
// explicit event required. Nothing here is persisted.
type HuddleRelay struct {
	mu      sync.Mutex
	rosters map[string]map[string]string // channel id -> user id -> peer (session) id
}

func NewHuddleRelay() *HuddleRelay {
	return &HuddleRelay{rosters: make(map[string]map[string]string)}
}

// Join adds a participant and returns the participants that were
// already there, excluding the joiner, so the joiner can initiate
// one peer connection per existing participant.
func (h *HuddleRelay) Join(channelID, userID, peerID string) []event.HuddlePeer {
	h.mu.Lock()
	defer h.mu.Unlock()
	roster, ok := h.rosters[channelID]
	if !ok {
		roster = make(map[string]string)
		h.rosters[channelID] = roster
	}
	existing := make([]event.HuddlePeer, 0, len(roster))
	for uid, pid := range roster {
		if uid == userID {
			continue
		}
		existing = append(existing, event.HuddlePeer{UserID: uid, PeerID: pid})
	}
	sort.Slice(existing, func(i, j int) bool { return existing[i].UserID < existing[j].UserID })
	roster[userID] = peerID
	return existing
}

// Leave removes a participant, returning their peer id so callers
// can announce the departure. ok is false if the user was not in
// the huddle.
func (h *HuddleRelay) Leave(channelID, userID string) (peerID string, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	roster, exists := h.rosters[channelID]
	if !exists {
		return "", false
	}
	peerID, ok = roster[userID]
	if !ok {
		return "", false
	}
	delete(roster, userID)
	if len(roster) == 0 {
		delete(h.rosters, channelID)
	}
	return peerID, true
}

// LeaveAll removes a user from every huddle they are in, returning
// channel -> peer id. Used on disconnect.
func (h *HuddleRelay) LeaveAll(userID string) map[string]string {
	h.mu.Lock()
	defer h.mu.Unlock()
	left := make(map[string]string)
	for channelID, roster := range h.rosters {
		if peerID, ok := roster[userID]; ok {
			left[channelID] = peerID
			delete(roster, userID)
			if len(roster) == 0 {
				delete(h.rosters, channelID)
			}
		}
	}
	return left
}

// Participants returns the current roster of a channel's huddle.
func (h *HuddleRelay) Participants(channelID string) []event.HuddlePeer {
	h.mu.Lock()
	defer h.mu.Unlock()
	roster := h.rosters[channelID]
	out := make([]event.HuddlePeer, 0, len(roster))
	for uid, pid := range roster {
		out = append(out, event.HuddlePeer{UserID: uid, PeerID: pid})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}

// InHuddle reports whether the user currently participates in the
// channel's huddle.
func (h *HuddleRelay) InHuddle(channelID, userID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	roster, ok := h.rosters[channelID]
	if !ok {
		return false
	}
	_, ok = roster[userID]
	return ok
}
