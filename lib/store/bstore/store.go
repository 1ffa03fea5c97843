package bstore

import (
	"context"
	"errors"

	"github.com/ValentinKolb/rksok/lib/store"
	"github.com/dgraph-io/badger/v4"
	"github.com/lni/dragonboat/v4/logger"
)

var log = logger.GetLogger("store")

// conflictRetries bounds the retries of read-modify-write transactions that lost a conflict
const conflictRetries = 5

type storeImpl struct {
	db *badger.DB
}

// Open opens (or creates) the badger database in the configured directory.
// Badger's internal log output goes through the "store" logger.
func Open(c store.BadgerConfig) (store.IStore, error) {
	db, err := badger.Open(badger.DefaultOptions(c.Dir).WithLogger(log))
	if err != nil {
		return nil, store.WrapError(store.RetCUnavailable, "open badger", err)
	}
	log.Infof("opened badger database in %s", c.Dir)
	return NewBadgerStore(db), nil
}

// NewBadgerStore creates a store on top of an open badger database, the store takes ownership of db
func NewBadgerStore(db *badger.DB) store.IStore {
	return &storeImpl{db: db}
}

// --------------------------------------------------------------------------
// Interface Methods (docs see store/interface.go)
// --------------------------------------------------------------------------

func (s *storeImpl) Lookup(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, store.WrapError(store.RetCUnavailable, "lookup", err)
	}

	var value string
	var found bool
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			value = string(val)
			found = true
			return nil
		})
	})
	if err != nil {
		return "", false, store.WrapError(store.RetCUnavailable, "lookup", err)
	}
	return value, found, nil
}

func (s *storeImpl) Store(ctx context.Context, key, value string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, store.WrapError(store.RetCUnavailable, "store", err)
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
	if err != nil {
		return false, store.WrapError(store.RetCUnavailable, "store", err)
	}
	return true, nil
}

// Remove checks for the key and deletes it in one transaction.
// Transactions that lose a conflict against a concurrent writer are retried.
func (s *storeImpl) Remove(ctx context.Context, key string) (bool, error) {
	var removed bool
	var err error
	for i := 0; i < conflictRetries; i++ {
		if err = ctx.Err(); err != nil {
			break
		}
		err = s.db.Update(func(txn *badger.Txn) error {
			removed = false
			_, err := txn.Get([]byte(key))
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			removed = true
			return txn.Delete([]byte(key))
		})
		if !errors.Is(err, badger.ErrConflict) {
			break
		}
		log.Debugf("remove of %q conflicted, retrying (%d/%d)", key, i+1, conflictRetries)
	}
	if err != nil {
		return false, store.WrapError(store.RetCUnavailable, "remove", err)
	}
	return removed, nil
}

func (s *storeImpl) Close() error {
	return s.db.Close()
}
