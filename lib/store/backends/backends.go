package backends

import (
	"context"
	"fmt"
	"sort"

	"github.com/ValentinKolb/rksok/lib/store"
	"github.com/ValentinKolb/rksok/lib/store/bstore"
	"github.com/ValentinKolb/rksok/lib/store/ddbstore"
	"github.com/ValentinKolb/rksok/lib/store/dstore"
	"github.com/ValentinKolb/rksok/lib/store/lstore"
	"github.com/ValentinKolb/rksok/lib/store/pgstore"
	"github.com/ValentinKolb/rksok/lib/store/rstore"
	"github.com/samber/lo"
)

// Factory opens a storage backend from the storage configuration
type Factory func(ctx context.Context, c store.Config) (store.IStore, error)

var factories = map[store.StorageType]Factory{
	store.StorageTypeMemory: func(context.Context, store.Config) (store.IStore, error) {
		return lstore.NewLocalStore(), nil
	},
	store.StorageTypeRaft: func(_ context.Context, c store.Config) (store.IStore, error) {
		return dstore.Open(c.Raft)
	},
	store.StorageTypePostgres: func(ctx context.Context, c store.Config) (store.IStore, error) {
		return pgstore.Open(ctx, c.Postgres)
	},
	store.StorageTypeRedis: func(ctx context.Context, c store.Config) (store.IStore, error) {
		return rstore.Open(ctx, c.Redis)
	},
	store.StorageTypeBadger: func(_ context.Context, c store.Config) (store.IStore, error) {
		return bstore.Open(c.Badger)
	},
	store.StorageTypeDynamoDB: func(ctx context.Context, c store.Config) (store.IStore, error) {
		return ddbstore.Open(ctx, c.DynamoDB)
	},
}

// Open creates the backend selected by c.Type
func Open(ctx context.Context, c store.Config) (store.IStore, error) {
	factory, ok := factories[c.Type]
	if !ok {
		return nil, fmt.Errorf("unknown storage backend %q, must be one of %v", c.Type, Names())
	}
	s, err := factory(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", c.Type, err)
	}
	return s, nil
}

// Names returns the sorted names of all available backends
func Names() []string {
	names := lo.Map(lo.Keys(factories), func(t store.StorageType, _ int) string {
		return string(t)
	})
	sort.Strings(names)
	return names
}
