package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/fxamacker/cbor/v2"

	"teamline/domain"
)

// MembershipRepository persists channel membership and each
// member's per-channel notification settings. Channel CRUD is owned
// by the management API; the core mostly reads.
type MembershipRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewMembershipRepository(db *badger.DB, log *slog.Logger) *MembershipRepository {
	return &MembershipRepository{db: db, log: log}
}

func memberKey(channelID, userID string) []byte {
	return []byte(fmt.Sprintf("member:%s:%s", channelID, userID))
}

func (r *MembershipRepository) UpsertMember(_ context.Context, channelID string, member domain.ChannelMember) error {
	value, err := cbor.Marshal(member)
	if err != nil {
		return fmt.Errorf("encode member %s: %w", member.UserID, err)
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(memberKey(channelID, member.UserID), value)
	})
}

func (r *MembershipRepository) RemoveMember(_ context.Context, channelID, userID string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(memberKey(channelID, userID))
	})
}

func (r *MembershipRepository) IsMember(_ context.Context, channelID, userID string) (bool, error) {
	var found bool
	err := r.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(memberKey(channelID, userID))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	return found, err
}

func (r *MembershipRepository) ListMembers(_ context.Context, channelID string) ([]domain.ChannelMember, error) {
	var members []domain.ChannelMember
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte(fmt.Sprintf("member:%s:", channelID))
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var member domain.ChannelMember
			if err := it.Item().Value(func(value []byte) error {
				return cbor.Unmarshal(value, &member)
			}); err != nil {
				return err
			}
			members = append(members, member)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return members, nil
}
