package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/SscSPs/mandi_ledger_app/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SQLiteMigratesAndPings(t *testing.T) {
	cfg := &config.Config{
		DBDriver:   "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "ledger.db"),
		DBTimeout:  time.Second,
	}
	ctx := context.Background()

	store, err := Open(ctx, cfg, true)
	require.NoError(t, err)
	require.NoError(t, store.Repos.Health.Ping(ctx))

	parties, err := store.Repos.PartyRepo.ListParties(ctx)
	require.NoError(t, err)
	assert.Empty(t, parties)
	store.Close()

	// A second open finds the schema current.
	store, err = Open(ctx, cfg, true)
	require.NoError(t, err)
	store.Close()
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{DBDriver: "mysql"}, false)
	assert.Error(t, err)
}
