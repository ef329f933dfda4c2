package event

import "encoding/json"

// Inbound command payloads. Each is decoded from the envelope's
// data field and validated at the boundary before reaching the
// service layer.

// Envelope is the frame shape in both directions: a discriminator
// plus an opaque payload.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

const (
	CmdJoinChannel       = "join-channel"
	CmdLeaveChannel      = "leave-channel"
	CmdSendMessage       = "send-message"
	CmdTyping            = "typing"
	CmdStopTyping        = "stop-typing"
	CmdReadMessages      = "read-messages"
	CmdAddReaction       = "add-reaction"
	CmdHuddleJoin        = "huddle:join"
	CmdHuddleLeave       = "huddle:leave"
	CmdHuddleSignal      = "huddle:signal"
	CmdHuddleToggleMedia = "huddle:toggle-media"
	CmdCanvasJoin        = "canvas:join"
	CmdCanvasLeave       = "canvas:leave"
	CmdCanvasCursor      = "canvas:cursor"
	CmdCanvasElements    = "canvas:elements"
)

type JoinChannel struct {
	ChannelID string `json:"channelId" validate:"required"`
}

type LeaveChannel struct {
	ChannelID string `json:"channelId" validate:"required"`
}

type SendMessage struct {
	ChannelID   string   `json:"channelId" validate:"required"`
	Content     string   `json:"content" validate:"required"`
	Attachments []string `json:"attachments,omitempty" validate:"omitempty,dive,uri"`
}

type TypingCmd struct {
	ChannelID string `json:"channelId" validate:"required"`
}

type StopTypingCmd struct {
	ChannelID string `json:"channelId" validate:"required"`
}

type ReadMessages struct {
	ChannelID string `json:"channelId" validate:"required"`
}

type AddReaction struct {
	ChannelID string `json:"channelId" validate:"required"`
	MessageID string `json:"messageId" validate:"required,uuid"`
	Emoji     string `json:"emoji" validate:"required"`
}

type HuddleJoin struct {
	ChannelID string `json:"channelId" validate:"required"`
}

type HuddleLeave struct {
	ChannelID string `json:"channelId" validate:"required"`
}

// HuddleSignalCmd relays Payload to the To peer untouched; the core
// never inspects SDP or ICE contents.
type HuddleSignalCmd struct {
	ChannelID string          `json:"channelId" validate:"required"`
	To        string          `json:"to" validate:"required"`
	Payload   json.RawMessage `json:"payload" validate:"required"`
}

type HuddleToggleMedia struct {
	ChannelID string `json:"channelId" validate:"required"`
	Audio     bool   `json:"audio"`
	Video     bool   `json:"video"`
}

type CanvasJoin struct {
	ChannelID string `json:"channelId" validate:"required"`
}

type CanvasLeave struct {
	ChannelID string `json:"channelId" validate:"required"`
}

type CanvasCursorCmd struct {
	ChannelID string  `json:"channelId" validate:"required"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Label     string  `json:"label,omitempty"`
}

type CanvasElementsCmd struct {
	ChannelID string          `json:"channelId" validate:"required"`
	Elements  json.RawMessage `json:"elements" validate:"required"`
}
