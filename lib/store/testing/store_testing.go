package testing

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ValentinKolb/rksok/lib/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// StoreFactory creates a new, opened instance of an IStore implementation.
// The suite closes the store when the test finishes.
type StoreFactory func(t testing.TB) store.IStore

// RunStoreTests runs the conformance test suite for an IStore implementation.
// Keys are prefixed with a random id so the suite can run against shared
// backends (a database or redis instance) that already contain data.
func RunStoreTests(t *testing.T, name string, factory StoreFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("LookupMissing", func(t *testing.T) {
			testLookupMissing(t, open(t, factory))
		})

		t.Run("StoreLookup", func(t *testing.T) {
			testStoreLookup(t, open(t, factory))
		})

		t.Run("Overwrite", func(t *testing.T) {
			testOverwrite(t, open(t, factory))
		})

		t.Run("Remove", func(t *testing.T) {
			testRemove(t, open(t, factory))
		})

		t.Run("Values", func(t *testing.T) {
			testValues(t, open(t, factory))
		})

		t.Run("Concurrent", func(t *testing.T) {
			testConcurrent(t, open(t, factory))
		})
	})
}

// --------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------

func open(t *testing.T, factory StoreFactory) store.IStore {
	s := factory(t)
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

// newKey returns a key that is unique across test runs
func newKey(name string) string {
	return fmt.Sprintf("%s %s", name, uuid.NewString()[:8])
}

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testLookupMissing(t *testing.T, s store.IStore) {
	r := require.New(t)
	ctx := testContext(t)

	val, found, err := s.Lookup(ctx, newKey("missing"))
	r.NoError(err)
	r.False(found)
	r.Empty(val)
}

func testStoreLookup(t *testing.T, s store.IStore) {
	r := require.New(t)
	ctx := testContext(t)
	key := newKey("Иван Хмурый")

	ok, err := s.Store(ctx, key, "89012345678")
	r.NoError(err)
	r.True(ok)

	val, found, err := s.Lookup(ctx, key)
	r.NoError(err)
	r.True(found)
	r.Equal("89012345678", val)
}

func testOverwrite(t *testing.T, s store.IStore) {
	r := require.New(t)
	ctx := testContext(t)
	key := newKey("overwrite")

	for _, v := range []string{"1", "22", "333"} {
		ok, err := s.Store(ctx, key, v)
		r.NoError(err)
		r.True(ok)
	}

	val, found, err := s.Lookup(ctx, key)
	r.NoError(err)
	r.True(found)
	r.Equal("333", val)
}

func testRemove(t *testing.T, s store.IStore) {
	r := require.New(t)
	ctx := testContext(t)
	key := newKey("remove")

	removed, err := s.Remove(ctx, key)
	r.NoError(err)
	r.False(removed, "removing an unknown key must report false")

	ok, err := s.Store(ctx, key, "123")
	r.NoError(err)
	r.True(ok)

	removed, err = s.Remove(ctx, key)
	r.NoError(err)
	r.True(removed)

	_, found, err := s.Lookup(ctx, key)
	r.NoError(err)
	r.False(found)

	removed, err = s.Remove(ctx, key)
	r.NoError(err)
	r.False(removed)
}

func testValues(t *testing.T, s store.IStore) {
	r := require.New(t)
	ctx := testContext(t)

	values := map[string]string{
		newKey("multi"):     "89012345678\r\n89098765432",
		newKey("Ёжик"):      "+7 (901) 234-56-78",
		newKey("spaces"):    "  leading and trailing  ",
		newKey("long"):      fmt.Sprintf("%0200d", 7),
		newKey("Пётр Петр"): "дом: 123",
	}

	for k, v := range values {
		ok, err := s.Store(ctx, k, v)
		r.NoError(err)
		r.True(ok)
	}
	for k, v := range values {
		val, found, err := s.Lookup(ctx, k)
		r.NoError(err)
		r.True(found, "key %q", k)
		r.Equal(v, val, "key %q", k)
	}
}

func testConcurrent(t *testing.T, s store.IStore) {
	r := require.New(t)
	ctx := testContext(t)

	const workers = 8
	const perWorker = 20
	shared := newKey("shared")
	prefix := newKey("c")

	var wg sync.WaitGroup
	errs := make(chan error, workers*perWorker*2)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				if _, err := s.Store(ctx, fmt.Sprintf("%s-%d-%d", prefix, w, i), fmt.Sprint(i)); err != nil {
					errs <- err
				}
				if _, err := s.Store(ctx, shared, fmt.Sprint(w)); err != nil {
					errs <- err
				}
			}
		}(w)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		r.NoError(err)
	}

	for w := 0; w < workers; w++ {
		for i := 0; i < perWorker; i++ {
			val, found, err := s.Lookup(ctx, fmt.Sprintf("%s-%d-%d", prefix, w, i))
			r.NoError(err)
			r.True(found)
			r.Equal(fmt.Sprint(i), val)
		}
	}

	// one of the writers won
	val, found, err := s.Lookup(ctx, shared)
	r.NoError(err)
	r.True(found)
	r.Contains([]string{"0", "1", "2", "3", "4", "5", "6", "7"}, val)
}
