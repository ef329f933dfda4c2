// Package storage provides the BadgerDB-backed implementations of
// the external store contracts. Values are CBOR-encoded; keys are
// flat strings with a type prefix.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/fxamacker/cbor/v2"
	"github.com/samber/lo"

	"teamline/domain"
	errs "teamline/errors"
)

type MessageRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewMessageRepository(db *badger.DB, log *slog.Logger) *MessageRepository {
	return &MessageRepository{db: db, log: log}
}

// messageKey sorts chronologically: the timestamp is zero-padded to
// 19 digits so lexicographic order is time order, and the UUID
// disconnects collisions within the same nanosecond.
func messageKey(channelID string, at time.Time, id string) []byte {
	return []byte(fmt.Sprintf("msg:%s:%019d:%s", channelID, at.UnixNano(), id))
}

// indexKey resolves a message id to its primary key so reactions can
// address messages without knowing their timestamp.
func indexKey(channelID, id string) []byte {
	return []byte(fmt.Sprintf("msgidx:%s:%s", channelID, id))
}

func unreadKey(channelID, userID string) []byte {
	return []byte(fmt.Sprintf("unread:%s:%s", channelID, userID))
}

func activityKey(channelID string) []byte {
	return []byte(fmt.Sprintf("activity:%s", channelID))
}

func (r *MessageRepository) CreateMessage(_ context.Context, msg domain.Message) error {
	value, err := cbor.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode message %s: %w", msg.ID, err)
	}
	primary := messageKey(msg.ChannelID, msg.CreatedAt, msg.ID.String())
	return r.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(primary, value); err != nil {
			return err
		}
		return txn.Set(indexKey(msg.ChannelID, msg.ID.String()), primary)
	})
}

// ToggleReaction flips the (emoji, user) pair on a stored message
// and returns the updated reaction map.
func (r *MessageRepository) ToggleReaction(_ context.Context, channelID, messageID, emoji, userID string) (map[string][]string, error) {
	var reactions map[string][]string
	err := r.db.Update(func(txn *badger.Txn) error {
		idx, err := txn.Get(indexKey(channelID, messageID))
		if err == badger.ErrKeyNotFound {
			return errs.ErrUnknownMessage
		}
		if err != nil {
			return err
		}
		primary, err := idx.ValueCopy(nil)
		if err != nil {
			return err
		}
		item, err := txn.Get(primary)
		if err != nil {
			return err
		}
		var msg domain.Message
		if err := item.Value(func(value []byte) error {
			return cbor.Unmarshal(value, &msg)
		}); err != nil {
			return err
		}

		if msg.Reactions == nil {
			msg.Reactions = make(map[string][]string)
		}
		users := msg.Reactions[emoji]
		if lo.Contains(users, userID) {
			users = lo.Without(users, userID)
		} else {
			users = append(users, userID)
		}
		if len(users) == 0 {
			delete(msg.Reactions, emoji)
		} else {
			msg.Reactions[emoji] = users
		}
		reactions = msg.Reactions

		value, err := cbor.Marshal(msg)
		if err != nil {
			return err
		}
		return txn.Set(primary, value)
	})
	if err != nil {
		return nil, err
	}
	return reactions, nil
}

// IncrementUnread bumps the per-recipient counters in one
// transaction.
func (r *MessageRepository) IncrementUnread(_ context.Context, channelID string, userIDs []string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		for _, userID := range userIDs {
			key := unreadKey(channelID, userID)
			count, err := readUnread(txn, key)
			if err != nil {
				return err
			}
			value, err := cbor.Marshal(count + 1)
			if err != nil {
				return err
			}
			if err := txn.Set(key, value); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *MessageRepository) ResetUnread(_ context.Context, channelID, userID string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete(unreadKey(channelID, userID))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		return err
	})
}

func (r *MessageRepository) TouchChannelActivity(_ context.Context, channelID string, at time.Time) error {
	value, err := cbor.Marshal(at)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(activityKey(channelID), value)
	})
}

// Unread reads a recipient's counter; missing keys read as zero.
func (r *MessageRepository) Unread(_ context.Context, channelID, userID string) (uint64, error) {
	var count uint64
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		count, err = readUnread(txn, unreadKey(channelID, userID))
		return err
	})
	return count, err
}

// LastActivity returns the channel's most recent message time, zero
// when the channel never saw one.
func (r *MessageRepository) LastActivity(_ context.Context, channelID string) (time.Time, error) {
	var at time.Time
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(activityKey(channelID))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(value []byte) error {
			return cbor.Unmarshal(value, &at)
		})
	})
	return at, err
}

// RecentMessages returns up to limit messages, newest first, using
// a reverse prefix scan over the time-ordered keys.
func (r *MessageRepository) RecentMessages(_ context.Context, channelID string, limit int) ([]domain.Message, error) {
	var messages []domain.Message
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte(fmt.Sprintf("msg:%s:", channelID))
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		seekKey := append(append([]byte{}, prefix...), []byte("9999999999999999999")...)
		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(messages) == limit {
				break
			}
			var msg domain.Message
			if err := it.Item().Value(func(value []byte) error {
				return cbor.Unmarshal(value, &msg)
			}); err != nil {
				return err
			}
			messages = append(messages, msg)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func readUnread(txn *badger.Txn, key []byte) (uint64, error) {
	item, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	var count uint64
	if err := item.Value(func(value []byte) error {
		return cbor.Unmarshal(value, &count)
	}); err != nil {
		return 0, err
	}
	return count, nil
}
