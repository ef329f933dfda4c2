// Package runtime holds the in-memory coordination state of the
// realtime core: rooms, presence, typing timers, huddle rosters and
// canvas cursors. Every map here is scoped to one process; another
// process has an independent view.
package runtime

import (
	"context"
	"sync"

	"github.com/samber/lo"

	"teamline/contract"
	"teamline/domain/event"
)

// RoomID names a broadcast group. The prefix encodes the addressing
// scheme so channel, tenant, user, huddle and canvas rooms can never
// collide.
type RoomID string

func ChannelRoom(channelID string) RoomID { return RoomID("channel:" + channelID) }
func TenantRoom(tenantID string) RoomID   { return RoomID("tenant:" + tenantID) }
func UserRoom(userID string) RoomID       { return RoomID("user:" + userID) }
func HuddleRoom(channelID string) RoomID  { return RoomID("huddle:" + channelID) }
func CanvasRoom(channelID string) RoomID  { return RoomID("canvas:" + channelID) }

type Set map[string]struct{}

// Registry is the room fan-out router. It tracks which sessions are
// in which rooms and resolves sessions to their sinks. It is safe
// for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]contract.EventSink  // session id -> sink
	rooms    map[RoomID]Set                 // room -> session ids
	joined   map[string]map[RoomID]struct{} // session id -> rooms, for full drops
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]contract.EventSink),
		rooms:    make(map[RoomID]Set),
		joined:   make(map[string]map[RoomID]struct{}),
	}
}

// Register binds a session to its delivery sink. Must be called
// before any Join for that session.
func (r *Registry) Register(sessionID string, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sessionID] = sink
	if _, ok := r.joined[sessionID]; !ok {
		r.joined[sessionID] = make(map[RoomID]struct{})
	}
}

// Join admits a session to a room, creating the room lazily.
func (r *Registry) Join(sessionID string, room RoomID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[sessionID]; !ok {
		return
	}
	if _, ok := r.rooms[room]; !ok {
		r.rooms[room] = make(Set)
	}
	r.rooms[room][sessionID] = struct{}{}
	r.joined[sessionID][room] = struct{}{}
}

// Leave removes a session from one room. Empty rooms are deleted so
// long-running processes don't accumulate dead entries.
func (r *Registry) Leave(sessionID string, room RoomID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leaveLocked(sessionID, room)
}

func (r *Registry) leaveLocked(sessionID string, room RoomID) {
	if members, ok := r.rooms[room]; ok {
		delete(members, sessionID)
		if len(members) == 0 {
			delete(r.rooms, room)
		}
	}
	if rooms, ok := r.joined[sessionID]; ok {
		delete(rooms, room)
	}
}

// Drop removes a session from every room and forgets its sink.
// Used on disconnect; broadcasts to rooms the session was in must
// happen before calling it.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for room := range r.joined[sessionID] {
		r.leaveLocked(sessionID, room)
	}
	delete(r.joined, sessionID)
	delete(r.sessions, sessionID)
}

// InRoom reports whether a session currently belongs to a room.
func (r *Registry) InRoom(sessionID string, room RoomID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	members, ok := r.rooms[room]
	if !ok {
		return false
	}
	_, ok = members[sessionID]
	return ok
}

// RoomSize returns the number of sessions in a room.
func (r *Registry) RoomSize(room RoomID) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms[room])
}

// Broadcast delivers an event to every session in the room except
// the excluded ones. Sinks are collected under the read lock and
// consumed outside it so a slow consumer can't stall the router.
func (r *Registry) Broadcast(ctx context.Context, room RoomID, e event.Event, exclude ...string) {
	r.mu.RLock()
	members := r.rooms[room]
	sinks := make([]contract.EventSink, 0, len(members))
	for sessionID := range members {
		if lo.Contains(exclude, sessionID) {
			continue
		}
		if sink, ok := r.sessions[sessionID]; ok {
			sinks = append(sinks, sink)
		}
	}
	r.mu.RUnlock()

	for _, sink := range sinks {
		_ = sink.Consume(ctx, e)
	}
}

// Send delivers an event to one session if it is still connected.
func (r *Registry) Send(ctx context.Context, sessionID string, e event.Event) {
	r.mu.RLock()
	sink, ok := r.sessions[sessionID]
	r.mu.RUnlock()
	if ok {
		_ = sink.Consume(ctx, e)
	}
}

