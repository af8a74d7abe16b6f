package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v3"

	"github.com/mytechsolutions09/artistic-pro-admin/internal/apperrors"
)

// BadgerStore implements ports.KVStore on top of an embedded BadgerDB.
// Values are opaque blobs; all JSON encoding happens in the services that
// own each key.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore wraps an already opened BadgerDB handle.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

func (s *BadgerStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("key %q: %w", key, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read key %q: %v", apperrors.ErrStorage, key, err)
	}

	return value, nil
}

func (s *BadgerStore) Set(ctx context.Context, key string, value []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("%w: failed to write key %q: %v", apperrors.ErrStorage, key, err)
	}
	return nil
}

func (s *BadgerStore) Delete(ctx context.Context, key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("%w: failed to delete key %q: %v", apperrors.ErrStorage, key, err)
	}
	return nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}
