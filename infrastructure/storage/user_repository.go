package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/fxamacker/cbor/v2"

	"teamline/domain"
	errs "teamline/errors"
)

// UserRepository is the user directory: profiles, display names and
// global notification settings, keyed per tenant.
type UserRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewUserRepository(db *badger.DB, log *slog.Logger) *UserRepository {
	return &UserRepository{db: db, log: log}
}

func userKey(tenantID, userID string) []byte {
	return []byte(fmt.Sprintf("user:%s:%s", tenantID, userID))
}

func (r *UserRepository) UpsertProfile(_ context.Context, profile domain.UserProfile) error {
	value, err := cbor.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile %s: %w", profile.ID, err)
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(userKey(profile.TenantID, profile.ID), value)
	})
}

func (r *UserRepository) Profile(_ context.Context, tenantID, userID string) (domain.UserProfile, error) {
	var profile domain.UserProfile
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(userKey(tenantID, userID))
		if err == badger.ErrKeyNotFound {
			return errs.ErrUnknownUser
		}
		if err != nil {
			return err
		}
		return item.Value(func(value []byte) error {
			return cbor.Unmarshal(value, &profile)
		})
	})
	return profile, err
}

// Profiles resolves the given users, silently skipping unknown ids
// so one stale presence entry can't fail a whole snapshot.
func (r *UserRepository) Profiles(_ context.Context, tenantID string, userIDs []string) ([]domain.UserProfile, error) {
	profiles := make([]domain.UserProfile, 0, len(userIDs))
	err := r.db.View(func(txn *badger.Txn) error {
		for _, userID := range userIDs {
			item, err := txn.Get(userKey(tenantID, userID))
			if err == badger.ErrKeyNotFound {
				continue
			}
			if err != nil {
				return err
			}
			var profile domain.UserProfile
			if err := item.Value(func(value []byte) error {
				return cbor.Unmarshal(value, &profile)
			}); err != nil {
				return err
			}
			profiles = append(profiles, profile)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profiles, nil
}
