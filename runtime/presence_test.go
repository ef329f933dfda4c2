package runtime

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPresence_Add_First_Session_Announces(t *testing.T) {
	req := require.New(t)
	presence := NewPresenceDirectory()

	// When a user comes online for the first time
	first := presence.Add("acme", "alice")

	// Then the caller is told to announce
	req.True(first)
	req.True(presence.IsOnline("acme", "alice"))
}

func TestPresence_Add_Twice_Announces_Once(t *testing.T) {
	req := require.New(t)
	presence := NewPresenceDirectory()

	req.True(presence.Add("acme", "alice"))

	// When the same user is added again
	second := presence.Add("acme", "alice")

	// Then no second announcement
	req.False(second)
	req.Equal([]string{"alice"}, presence.Snapshot("acme"))
}

func TestPresence_Remove_Unknown_User(t *testing.T) {
	req := require.New(t)
	presence := NewPresenceDirectory()

	req.False(presence.Remove("acme", "ghost"))
}

func TestPresence_Remove_Marks_Offline(t *testing.T) {
	req := require.New(t)
	presence := NewPresenceDirectory()
	presence.Add("acme", "alice")

	removed := presence.Remove("acme", "alice")

	req.True(removed)
	req.False(presence.IsOnline("acme", "alice"))
	req.Empty(presence.Snapshot("acme"))
}

func TestPresence_Tenants_Are_Isolated(t *testing.T) {
	req := require.New(t)
	presence := NewPresenceDirectory()

	presence.Add("acme", "alice")
	presence.Add("globex", "alice")

	// When alice leaves one tenant
	presence.Remove("acme", "alice")

	// Then her other tenant is untouched
	req.False(presence.IsOnline("acme", "alice"))
	req.True(presence.IsOnline("globex", "alice"))
}

func TestPresence_Snapshot_Is_Sorted(t *testing.T) {
	req := require.New(t)
	presence := NewPresenceDirectory()

	presence.Add("acme", "carol")
	presence.Add("acme", "alice")
	presence.Add("acme", "bob")

	req.Equal([]string{"alice", "bob", "carol"}, presence.Snapshot("acme"))
}
