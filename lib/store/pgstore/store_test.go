package pgstore

import (
	"context"
	"os"
	"testing"

	"github.com/ValentinKolb/rksok/lib/store"
	storetesting "github.com/ValentinKolb/rksok/lib/store/testing"
	"github.com/stretchr/testify/require"
)

// dsnEnv names the environment variable holding the DSN of a disposable test database
const dsnEnv = "RKSOK_TEST_POSTGRES_DSN"

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv(dsnEnv)
	if dsn == "" {
		t.Skipf("%s not set", dsnEnv)
	}

	storetesting.RunStoreTests(t, "PostgresStore", func(t testing.TB) store.IStore {
		s, err := Open(context.Background(), store.PostgresConfig{DSN: dsn, MaxConns: 4})
		require.NoError(t, err)
		return s
	})
}

func TestMigrationsEmbedded(t *testing.T) {
	r := require.New(t)

	entries, err := migrationFS.ReadDir("migrations")
	r.NoError(err)
	r.NotEmpty(entries)

	raw, err := migrationFS.ReadFile("migrations/001_userphones.sql")
	r.NoError(err)
	r.Contains(string(raw), "userphones")
	r.Equal("userphones", userPhone{}.TableName())
}

func TestConnectInvalidDSN(t *testing.T) {
	_, err := Open(context.Background(), store.PostgresConfig{
		DSN:      "postgres://nobody@127.0.0.1:1/none?sslmode=disable&connect_timeout=1",
		MaxConns: 1,
	})
	require.Error(t, err)
}
