package rstore

import (
	"context"
	"os"
	"testing"

	"github.com/ValentinKolb/rksok/lib/store"
	storetesting "github.com/ValentinKolb/rksok/lib/store/testing"
	"github.com/stretchr/testify/require"
)

// addrEnv names the environment variable holding the address of a disposable redis instance
const addrEnv = "RKSOK_TEST_REDIS_ADDR"

func TestRedisStore(t *testing.T) {
	addr := os.Getenv(addrEnv)
	if addr == "" {
		t.Skipf("%s not set", addrEnv)
	}

	storetesting.RunStoreTests(t, "RedisStore", func(t testing.TB) store.IStore {
		s, err := Open(context.Background(), store.RedisConfig{URL: addr, Prefix: "rksok-test:"})
		require.NoError(t, err)
		return s
	})
}

func TestConnect(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		wantAddr string
		wantDB   int
		wantErr  bool
	}{
		{name: "host and port", url: "localhost:6379", wantAddr: "localhost:6379"},
		{name: "redis url", url: "redis://localhost:6380/2", wantAddr: "localhost:6380", wantDB: 2},
		{name: "invalid url", url: "redis://localhost:6379/notadb", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := require.New(t)
			client, err := Connect(context.Background(), tt.url)
			if tt.wantErr {
				r.Error(err)
				return
			}
			r.NoError(err)
			defer client.Close()
			r.Equal(tt.wantAddr, client.Options().Addr)
			r.Equal(tt.wantDB, client.Options().DB)
		})
	}
}

func TestOpenUnreachable(t *testing.T) {
	_, err := Open(context.Background(), store.RedisConfig{URL: "127.0.0.1:1"})
	require.Error(t, err)
}
