package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/atinyakov/accountkeeper/internal/config"
	"github.com/atinyakov/accountkeeper/internal/models"
)

func optionsFor(backend, dsn string) *config.Options {
	o := config.Default()
	o.Backend = backend
	o.DSN = dsn
	return o
}

func TestNew_PersistsAcrossRestarts(t *testing.T) {
	cases := []struct {
		name string
		opts *config.Options
	}{
		{"file", optionsFor(config.BackendFile, filepath.Join(t.TempDir(), "data"))},
		{"sqlite", optionsFor(config.BackendSQLite, filepath.Join(t.TempDir(), "accounts.db"))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()

			a, err := New(ctx, tc.opts, zap.NewNop())
			require.NoError(t, err)
			require.NoError(t, a.Store.Upsert(ctx, models.Account{
				ID: "1", Labels: []models.Label{}, Type: models.Directory, Login: "alice",
			}))
			_, err = a.Store.AddEmpty(ctx)
			require.NoError(t, err)
			require.NoError(t, a.Close(ctx))

			b, err := New(ctx, tc.opts, zap.NewNop())
			require.NoError(t, err)
			defer func() { _ = b.Close(ctx) }()

			got := b.Store.Accounts()
			require.Len(t, got, 1)
			assert.Equal(t, "alice", got[0].Login)
			assert.Equal(t, models.Directory, got[0].Type)
		})
	}
}

func TestNew_Memory(t *testing.T) {
	ctx := context.Background()
	a, err := New(ctx, optionsFor(config.BackendMemory, ""), zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, a.Store.Accounts())
	require.NoError(t, a.Close(ctx))
}

func TestOpenBackend_Unknown(t *testing.T) {
	_, _, err := OpenBackend(context.Background(), optionsFor("etcd", "x"))
	assert.Error(t, err)
}
