package bstore

import (
	"context"
	"testing"

	"github.com/ValentinKolb/rksok/lib/store"
	storetesting "github.com/ValentinKolb/rksok/lib/store/testing"
	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

func newTestStore(t testing.TB) store.IStore {
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	return NewBadgerStore(db)
}

func TestBadgerStore(t *testing.T) {
	storetesting.RunStoreTests(t, "BadgerStore", newTestStore)
}

func TestBadgerStorePersists(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()
	dir := t.TempDir()

	s, err := Open(store.BadgerConfig{Dir: dir})
	r.NoError(err)
	ok, err := s.Store(ctx, "Иван Хмурый", "89012345678")
	r.NoError(err)
	r.True(ok)
	r.NoError(s.Close())

	s, err = Open(store.BadgerConfig{Dir: dir})
	r.NoError(err)
	defer s.Close()

	val, found, err := s.Lookup(ctx, "Иван Хмурый")
	r.NoError(err)
	r.True(found)
	r.Equal("89012345678", val)
}

func TestBadgerStoreCanceledContext(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Store(ctx, "Иван", "1")
	var se *store.Error
	require.ErrorAs(t, err, &se)
	require.Equal(t, store.RetCUnavailable, se.Code)
}

func BenchmarkBadgerStore(b *testing.B) {
	storetesting.RunStoreBenchmarks(b, "BadgerStore", newTestStore)
}
