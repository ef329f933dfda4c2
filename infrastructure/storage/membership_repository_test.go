package storage

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"teamline/domain"
)

func TestMembershipRepository_Upsert_And_IsMember(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := NewMembershipRepository(newTestDB(t), slog.Default())

	ok, err := repository.IsMember(ctx, "general", "alice")
	req.NoError(err)
	req.False(ok)

	member := domain.ChannelMember{UserID: "alice", NotifyOn: domain.NotifyMentions}
	req.NoError(repository.UpsertMember(ctx, "general", member))

	ok, err = repository.IsMember(ctx, "general", "alice")
	req.NoError(err)
	req.True(ok)

	// Membership is scoped per channel
	ok, err = repository.IsMember(ctx, "random", "alice")
	req.NoError(err)
	req.False(ok)
}

func TestMembershipRepository_Upsert_Overwrites_Settings(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := NewMembershipRepository(newTestDB(t), slog.Default())

	muted := time.Now().UTC().Add(time.Hour).Truncate(time.Millisecond)
	req.NoError(repository.UpsertMember(ctx, "general",
		domain.ChannelMember{UserID: "alice", NotifyOn: domain.NotifyAll}))
	req.NoError(repository.UpsertMember(ctx, "general",
		domain.ChannelMember{UserID: "alice", NotifyOn: domain.NotifyNone, MuteUntil: &muted, Sound: "knock"}))

	members, err := repository.ListMembers(ctx, "general")
	req.NoError(err)
	req.Len(members, 1)
	req.Equal(domain.NotifyNone, members[0].NotifyOn)
	req.Equal("knock", members[0].Sound)
	req.NotNil(members[0].MuteUntil)
	req.True(muted.Equal(*members[0].MuteUntil))
}

func TestMembershipRepository_ListMembers(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := NewMembershipRepository(newTestDB(t), slog.Default())

	for _, userID := range []string{"carol", "alice", "bob"} {
		req.NoError(repository.UpsertMember(ctx, "general",
			domain.ChannelMember{UserID: userID, NotifyOn: domain.NotifyAll}))
	}
	req.NoError(repository.UpsertMember(ctx, "random",
		domain.ChannelMember{UserID: "dave", NotifyOn: domain.NotifyAll}))

	members, err := repository.ListMembers(ctx, "general")
	req.NoError(err)

	// Key order makes the listing alphabetical by user id
	req.Len(members, 3)
	req.Equal("alice", members[0].UserID)
	req.Equal("bob", members[1].UserID)
	req.Equal("carol", members[2].UserID)
}

func TestMembershipRepository_RemoveMember(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := NewMembershipRepository(newTestDB(t), slog.Default())

	req.NoError(repository.UpsertMember(ctx, "general",
		domain.ChannelMember{UserID: "alice", NotifyOn: domain.NotifyAll}))
	req.NoError(repository.RemoveMember(ctx, "general", "alice"))

	ok, err := repository.IsMember(ctx, "general", "alice")
	req.NoError(err)
	req.False(ok)

	// Removing an absent member is not an error
	req.NoError(repository.RemoveMember(ctx, "general", "ghost"))
}
