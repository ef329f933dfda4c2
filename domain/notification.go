package domain

import "time"

// NotifyLevel is the per-channel alert policy a member picked.
type NotifyLevel string

const (
	NotifyAll      NotifyLevel = "ALL"
	NotifyMentions NotifyLevel = "MENTIONS"
	NotifyNone     NotifyLevel = "NONE"
)

// ChannelMember holds the per-channel settings of one member.
// Owned by the membership store; the core only reads it.
type ChannelMember struct {
	UserID    string      `json:"userId"`
	NotifyOn  NotifyLevel `json:"notifyOn"`
	MuteUntil *time.Time  `json:"muteUntil,omitempty"`
	Sound     string      `json:"sound,omitempty"`
}

// NotificationSettings are a user's global alert preferences.
// DND start/end are "HH:MM" clock times in the user's timezone;
// an unparseable window disables DND rather than failing a send.
type NotificationSettings struct {
	Keywords        []string `json:"keywords,omitempty"`
	DNDEnabled      bool     `json:"dndEnabled"`
	DNDStart        string   `json:"dndStart,omitempty"`
	DNDEnd          string   `json:"dndEnd,omitempty"`
	Timezone        string   `json:"timezone,omitempty"`
	MessagesEnabled bool     `json:"messagesEnabled"`
	DesktopEnabled  bool     `json:"desktopEnabled"`
	Sound           string   `json:"sound,omitempty"`
}

// UserProfile is what the user directory exposes to the core.
type UserProfile struct {
	ID          string               `json:"id"`
	TenantID    string               `json:"tenantId"`
	DisplayName string               `json:"displayName"`
	AvatarURL   string               `json:"avatarUrl,omitempty"`
	Settings    NotificationSettings `json:"settings"`
}
