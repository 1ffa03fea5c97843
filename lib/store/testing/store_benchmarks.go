package testing

import (
	"context"
	"fmt"
	"testing"

	"github.com/ValentinKolb/rksok/lib/store"
)

// RunStoreBenchmarks runs the standard benchmarks for an IStore implementation.
func RunStoreBenchmarks(b *testing.B, name string, factory StoreFactory) {
	b.Run(name, func(b *testing.B) {
		b.Run("Store", func(b *testing.B) {
			benchmarkStore(b, openB(b, factory))
		})

		b.Run("Lookup", func(b *testing.B) {
			benchmarkLookup(b, openB(b, factory))
		})

		b.Run("Mixed", func(b *testing.B) {
			benchmarkMixed(b, openB(b, factory))
		})
	})
}

func openB(b *testing.B, factory StoreFactory) store.IStore {
	s := factory(b)
	b.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func benchmarkStore(b *testing.B, s store.IStore) {
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Store(ctx, fmt.Sprintf("key-%d", i%1000), "89012345678"); err != nil {
			b.Fatal(err)
		}
	}
}

func benchmarkLookup(b *testing.B, s store.IStore) {
	ctx := context.Background()
	for i := 0; i < 1000; i++ {
		if _, err := s.Store(ctx, fmt.Sprintf("key-%d", i), "89012345678"); err != nil {
			b.Fatal(err)
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := s.Lookup(ctx, fmt.Sprintf("key-%d", i%1000)); err != nil {
			b.Fatal(err)
		}
	}
}

// benchmarkMixed runs a parallel workload of 80% lookups, 15% writes and 5% removes
func benchmarkMixed(b *testing.B, s store.IStore) {
	ctx := context.Background()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			key := fmt.Sprintf("key-%d", i%500)
			var err error
			switch op := i % 20; {
			case op == 0:
				_, err = s.Remove(ctx, key)
			case op <= 3:
				_, err = s.Store(ctx, key, "89012345678")
			default:
				_, _, err = s.Lookup(ctx, key)
			}
			if err != nil {
				b.Fatal(err)
			}
			i++
		}
	})
}
