// Package domain contains core concepts of the realtime core.
// This file defines Message entities. Messages are immutable once
// persisted; reactions are the only field updated in place.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message represents a chat message as persisted and broadcast.
type Message struct {
	ID          uuid.UUID           `json:"id"`
	TenantID    string              `json:"tenantId"`
	ChannelID   string              `json:"channelId"`
	SenderID    string              `json:"senderId"`
	SenderName  string              `json:"senderName"`
	Content     string              `json:"content"`
	Language    string              `json:"language,omitempty"`
	Attachments []string            `json:"attachments,omitempty"`
	Reactions   map[string][]string `json:"reactions,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
}
