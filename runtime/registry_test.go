package runtime

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"teamline/domain/event"
)

// recordingSink collects every consumed event for assertions.
type recordingSink struct {
	mu     sync.Mutex
	events []event.Event
}

func (s *recordingSink) Consume(_ context.Context, e event.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return nil
}

func (s *recordingSink) Events() []event.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]event.Event, len(s.events))
	copy(out, s.events)
	return out
}

func TestRegistry_Join_One_Room_One_Session(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	sessionID := uuid.NewString()
	room := ChannelRoom("general")
	sink := &recordingSink{}

	// Given no session is registered
	req.False(registry.InRoom(sessionID, room))
	req.Zero(registry.RoomSize(room))

	// When a session registers and joins a room
	registry.Register(sessionID, sink)
	registry.Join(sessionID, room)

	// Then
	req.True(registry.InRoom(sessionID, room))
	req.Equal(1, registry.RoomSize(room))
}

func TestRegistry_Join_Unregistered_Session_Is_Ignored(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	room := ChannelRoom("general")

	// When a session joins without registering first
	registry.Join(uuid.NewString(), room)

	// Then the room stays empty
	req.Zero(registry.RoomSize(room))
}

func TestRegistry_Leave_Deletes_Empty_Room(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	sessionID := uuid.NewString()
	room := ChannelRoom("general")

	registry.Register(sessionID, &recordingSink{})
	registry.Join(sessionID, room)

	// When the only member leaves
	registry.Leave(sessionID, room)

	// Then the session is out and the room is gone
	req.False(registry.InRoom(sessionID, room))
	req.Zero(registry.RoomSize(room))
}

func TestRegistry_Broadcast_Excludes_Sender(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	room := ChannelRoom("general")
	sender := uuid.NewString()
	other := uuid.NewString()
	senderSink := &recordingSink{}
	otherSink := &recordingSink{}

	registry.Register(sender, senderSink)
	registry.Register(other, otherSink)
	registry.Join(sender, room)
	registry.Join(other, room)

	// When broadcasting with the sender excluded
	registry.Broadcast(context.Background(), room, event.Typing{ChannelID: "general", UserID: "alice"}, sender)

	// Then only the other session received it
	req.Empty(senderSink.Events())
	req.Len(otherSink.Events(), 1)
}

func TestRegistry_Broadcast_Unknown_Room_Is_Noop(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	sessionID := uuid.NewString()
	sink := &recordingSink{}
	registry.Register(sessionID, sink)

	registry.Broadcast(context.Background(), ChannelRoom("ghost"), event.Typing{})

	req.Empty(sink.Events())
}

func TestRegistry_Drop_Removes_Session_From_Every_Room(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	sessionID := uuid.NewString()
	peer := uuid.NewString()
	channel := ChannelRoom("general")
	huddle := HuddleRoom("general")

	registry.Register(sessionID, &recordingSink{})
	registry.Register(peer, &recordingSink{})
	registry.Join(sessionID, channel)
	registry.Join(sessionID, huddle)
	registry.Join(peer, channel)

	// When the session is dropped
	registry.Drop(sessionID)

	// Then it is gone from both rooms but the peer remains
	req.False(registry.InRoom(sessionID, channel))
	req.False(registry.InRoom(sessionID, huddle))
	req.True(registry.InRoom(peer, channel))
	req.Equal(1, registry.RoomSize(channel))
	req.Zero(registry.RoomSize(huddle))
}

func TestRegistry_Send_Targets_One_Session(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	target := uuid.NewString()
	bystander := uuid.NewString()
	targetSink := &recordingSink{}
	bystanderSink := &recordingSink{}

	registry.Register(target, targetSink)
	registry.Register(bystander, bystanderSink)

	registry.Send(context.Background(), target, event.StopTyping{ChannelID: "general"})
	registry.Send(context.Background(), uuid.NewString(), event.StopTyping{ChannelID: "general"})

	req.Len(targetSink.Events(), 1)
	req.Empty(bystanderSink.Events())
}

func TestRoomID_Prefixes_Never_Collide(t *testing.T) {
	req := require.New(t)

	// Same underlying id, five distinct rooms
	rooms := []RoomID{
		ChannelRoom("42"), TenantRoom("42"), UserRoom("42"),
		HuddleRoom("42"), CanvasRoom("42"),
	}
	seen := make(map[RoomID]struct{})
	for _, r := range rooms {
		seen[r] = struct{}{}
	}
	req.Len(seen, len(rooms))
}
