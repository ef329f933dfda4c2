// Package domain contains core concepts of the realtime core.
// This file defines identities and live sessions. No runtime,
// network, or UI logic should be added here.
package domain

// Identity is the authenticated principal behind a session.
// It is derived once at admission and never changes afterwards.
type Identity struct {
	UserID   string
	TenantID string
	Role     string
}

// Session is one live connection. Its ID doubles as the signaling
// peer id inside huddles, so every tab of the same user is an
// independently addressable peer.
type Session struct {
	ID string
	Identity
}
