package runtime

import (
	"sort"
	"sync"
)

// PresenceDirectory tracks which users currently have an open
// session, per tenant. Tenant sets are created lazily and removed
// when empty.
//
// Presence is not reference-counted: one user is assumed to hold one
// session, so closing any session of a user marks them offline even
// if another tab is still connected.
type PresenceDirectory struct {
	mu     sync.RWMutex
	online map[string]Set // tenant id -> user ids
}

func NewPresenceDirectory() *PresenceDirectory {
	return &PresenceDirectory{online: make(map[string]Set)}
}

// Add marks a user online and reports whether this was their first
// concurrent session in the tenant. Callers broadcast "user-online"
// only when it returns true, so repeated adds announce once.
func (p *PresenceDirectory) Add(tenantID, userID string) (first bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	users, ok := p.online[tenantID]
	if !ok {
		users = make(Set)
		p.online[tenantID] = users
	}
	if _, exists := users[userID]; exists {
		return false
	}
	users[userID] = struct{}{}
	return true
}

// Remove marks a user offline and reports whether they were online.
func (p *PresenceDirectory) Remove(tenantID, userID string) (removed bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	users, ok := p.online[tenantID]
	if !ok {
		return false
	}
	if _, exists := users[userID]; !exists {
		return false
	}
	delete(users, userID)
	if len(users) == 0 {
		delete(p.online, tenantID)
	}
	return true
}

// IsOnline reports whether a user has an open session in the tenant.
func (p *PresenceDirectory) IsOnline(tenantID, userID string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	users, ok := p.online[tenantID]
	if !ok {
		return false
	}
	_, exists := users[userID]
	return exists
}

// Snapshot returns the current online set of a tenant, sorted for
// deterministic payloads.
func (p *PresenceDirectory) Snapshot(tenantID string) []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	users := p.online[tenantID]
	out := make([]string, 0, len(users))
	for userID := range users {
		out = append(out, userID)
	}
	sort.Strings(out)
	return out
}
