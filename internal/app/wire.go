// Package app wires the storage backend and the account store from the
// configuration, for both the CLI and the local API server.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/atinyakov/accountkeeper/internal/client/storage"
	"github.com/atinyakov/accountkeeper/internal/config"
	"github.com/atinyakov/accountkeeper/internal/db"
	"github.com/atinyakov/accountkeeper/internal/repository"
	"github.com/atinyakov/accountkeeper/internal/service"
)

// redisKeyPrefix namespaces the keys this application writes to Redis.
const redisKeyPrefix = "accountkeeper:"

// App bundles the loaded account store with the backend it persists to.
type App struct {
	Store *service.AccountStore
	Log   *zap.Logger

	closeBackend func() error
}

// New opens the configured backend and loads the account store from it.
func New(ctx context.Context, opts *config.Options, log *zap.Logger) (*App, error) {
	kv, closeBackend, err := OpenBackend(ctx, opts)
	if err != nil {
		return nil, err
	}

	store := service.NewAccountStore(kv,
		service.WithStorageKey(opts.StorageKey),
		service.WithLogger(log.With(zap.String("backend", opts.Backend))),
	)
	if err := store.Load(ctx); err != nil {
		_ = closeBackend()
		return nil, fmt.Errorf("load accounts: %w", err)
	}

	return &App{Store: store, Log: log, closeBackend: closeBackend}, nil
}

// Close disposes the store, writing a final snapshot, then closes the backend.
func (a *App) Close(ctx context.Context) error {
	return errors.Join(a.Store.Dispose(ctx), a.closeBackend())
}

// OpenBackend constructs the key-value store selected by opts.Backend. The
// returned function releases its connections.
func OpenBackend(ctx context.Context, opts *config.Options) (service.KeyValueStore, func() error, error) {
	noop := func() error { return nil }

	switch opts.Backend {
	case config.BackendMemory:
		return storage.NewMemoryStore(), noop, nil

	case config.BackendFile:
		fs, err := storage.NewFileStore(opts.DSN)
		if err != nil {
			return nil, nil, err
		}
		return fs, noop, nil

	case config.BackendSQLite:
		sqlite, err := db.OpenSQLite(opts.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		return repository.NewSQLiteKVRepository(sqlite), sqlite.Close, nil

	case config.BackendPostgres:
		pg, err := db.InitPostgres(ctx, opts.DSN)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewPostgresKVRepository(pg), pg.Close, nil

	case config.BackendRedis:
		rdb, err := db.NewRedis(ctx, opts.DSN)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewRedisKVRepository(rdb, redisKeyPrefix), rdb.Close, nil
	}

	return nil, nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
}
