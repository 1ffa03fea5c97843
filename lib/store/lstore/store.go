package lstore

import (
	"context"
	"sync/atomic"

	"github.com/ValentinKolb/rksok/lib/store"
	"github.com/puzpuzpuz/xsync/v3"
)

type storeImpl struct {
	data   *xsync.MapOf[string, string]
	closed atomic.Bool
}

// NewLocalStore creates a new local store instance.
// This store implementation is not distributed and only works on a single node,
// all entries are kept in a concurrent map and are lost when the process exits.
func NewLocalStore() store.IStore {
	return &storeImpl{
		data: xsync.NewMapOf[string, string](),
	}
}

// checkOpen returns an error if the store was closed or the context is done
func (s *storeImpl) checkOpen(ctx context.Context) error {
	if s.closed.Load() {
		return store.NewError(store.RetCUnavailable, "store is closed")
	}
	if err := ctx.Err(); err != nil {
		return store.NewError(store.RetCUnavailable, err.Error())
	}
	return nil
}

// --------------------------------------------------------------------------
// Interface Methods (docu see store/interface.go)
// --------------------------------------------------------------------------

func (s *storeImpl) Lookup(ctx context.Context, key string) (string, bool, error) {
	if err := s.checkOpen(ctx); err != nil {
		return "", false, err
	}
	val, ok := s.data.Load(key)
	return val, ok, nil
}

func (s *storeImpl) Store(ctx context.Context, key, value string) (bool, error) {
	if err := s.checkOpen(ctx); err != nil {
		return false, err
	}
	s.data.Store(key, value)
	return true, nil
}

func (s *storeImpl) Remove(ctx context.Context, key string) (bool, error) {
	if err := s.checkOpen(ctx); err != nil {
		return false, err
	}
	_, loaded := s.data.LoadAndDelete(key)
	return loaded, nil
}

func (s *storeImpl) Close() error {
	s.closed.Store(true)
	s.data.Clear()
	return nil
}
