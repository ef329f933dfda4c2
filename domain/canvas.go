package domain

import "time"

// CursorState is one user's live cursor on a shared canvas.
// Last writer wins; cleared when the user leaves the canvas.
type CursorState struct {
	ChannelID string    `json:"channelId"`
	UserID    string    `json:"userId"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Label     string    `json:"label,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}
