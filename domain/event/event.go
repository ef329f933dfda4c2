// Package event defines the wire events exchanged with clients.
// Outbound events implement Event; their Name is the envelope
// discriminator clients switch on.
package event

import (
	"encoding/json"

	"teamline/domain"
)

type Event interface {
	Name() string
}

// OnlineUser is one entry of the initial presence snapshot.
type OnlineUser struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

// OnlineUsers is sent once to a freshly admitted session.
type OnlineUsers struct {
	Users []OnlineUser `json:"users"`
}

func (OnlineUsers) Name() string { return "online-users" }

// UserOnline is broadcast to the tenant when a user's first
// session connects.
type UserOnline struct {
	UserID string `json:"userId"`
}

func (UserOnline) Name() string { return "user-online" }

type UserOffline struct {
	UserID string `json:"userId"`
}

func (UserOffline) Name() string { return "user-offline" }

// ChannelJoined answers a successful join with the subset of the
// channel's members that are currently online.
type ChannelJoined struct {
	ChannelID     string   `json:"channelId"`
	OnlineMembers []string `json:"onlineMembers"`
}

func (ChannelJoined) Name() string { return "channel-joined" }

// ReceiveMessage carries the full message payload. It is delivered
// to every channel member regardless of their alert settings so
// unread counters and previews stay correct.
type ReceiveMessage struct {
	Message domain.Message `json:"message"`
}

func (ReceiveMessage) Name() string { return "receive-message" }

// NewMessageNotification is the per-recipient alert decision,
// delivered to that user's personal room only.
type NewMessageNotification struct {
	ChannelID   string  `json:"channelId"`
	MessageID   string  `json:"messageId"`
	SenderName  string  `json:"senderName"`
	Preview     string  `json:"preview"`
	ShouldAlert bool    `json:"shouldAlert"`
	AlertReason string  `json:"alertReason,omitempty"`
	Sound       *string `json:"sound"`
}

func (NewMessageNotification) Name() string { return "new-message-notification" }

type Typing struct {
	ChannelID   string `json:"channelId"`
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

func (Typing) Name() string { return "typing" }

type StopTyping struct {
	ChannelID string `json:"channelId"`
	UserID    string `json:"userId"`
}

func (StopTyping) Name() string { return "stop-typing" }

type MessagesRead struct {
	ChannelID string `json:"channelId"`
	UserID    string `json:"userId"`
}

func (MessagesRead) Name() string { return "messages-read" }

type ReactionUpdated struct {
	ChannelID string              `json:"channelId"`
	MessageID string              `json:"messageId"`
	Reactions map[string][]string `json:"reactions"`
}

func (ReactionUpdated) Name() string { return "reaction-updated" }

// Error is emitted to the offending session only, never broadcast.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (Error) Name() string { return "error" }

// HuddlePeer identifies a huddle participant by user and by the
// session acting as their signaling peer.
type HuddlePeer struct {
	UserID string `json:"userId"`
	PeerID string `json:"peerId"`
}

type HuddleUserJoined struct {
	ChannelID string `json:"channelId"`
	UserID    string `json:"userId"`
	PeerID    string `json:"peerId"`
}

func (HuddleUserJoined) Name() string { return "huddle:user-joined" }

// HuddleParticipants is returned to a joiner so it can open one
// peer connection per existing participant.
type HuddleParticipants struct {
	ChannelID    string       `json:"channelId"`
	Participants []HuddlePeer `json:"participants"`
}

func (HuddleParticipants) Name() string { return "huddle:participants" }

// HuddleSignal forwards an opaque offer/answer/ICE payload verbatim.
type HuddleSignal struct {
	ChannelID  string          `json:"channelId"`
	FromPeerID string          `json:"fromPeerId"`
	FromUserID string          `json:"fromUserId"`
	Payload    json.RawMessage `json:"payload"`
}

func (HuddleSignal) Name() string { return "huddle:signal" }

type HuddleMediaToggled struct {
	ChannelID string `json:"channelId"`
	UserID    string `json:"userId"`
	Audio     bool   `json:"audio"`
	Video     bool   `json:"video"`
}

func (HuddleMediaToggled) Name() string { return "huddle:media-toggled" }

type HuddleUserLeft struct {
	ChannelID string `json:"channelId"`
	UserID    string `json:"userId"`
	PeerID    string `json:"peerId"`
}

func (HuddleUserLeft) Name() string { return "huddle:user-left" }

// CanvasCursor broadcasts a cursor move; a nil Cursor means the
// user's cursor was cleared.
type CanvasCursor struct {
	ChannelID string              `json:"channelId"`
	UserID    string              `json:"userId"`
	Cursor    *domain.CursorState `json:"cursor"`
}

func (CanvasCursor) Name() string { return "canvas:cursor" }

// CanvasElements rebroadcasts a full element snapshot, last writer
// wins. The durable canvas store is updated by clients separately.
type CanvasElements struct {
	ChannelID string          `json:"channelId"`
	UserID    string          `json:"userId"`
	Elements  json.RawMessage `json:"elements"`
}

func (CanvasElements) Name() string { return "canvas:elements" }

type CanvasUserLeft struct {
	ChannelID string `json:"channelId"`
	UserID    string `json:"userId"`
}

func (CanvasUserLeft) Name() string { return "canvas:user-left" }
