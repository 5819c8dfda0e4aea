// Package service provides the account collection store: an ordered,
// in-memory set of accounts mirrored to a durable key-value medium after
// every mutation.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/atinyakov/accountkeeper/internal/models"
)

// DefaultStorageKey is the key the persisted snapshot lives under. The
// version suffix allows a future format to move to a new key.
const DefaultStorageKey = "accounts_form_state_v1"

var (
	// ErrNotLoaded is returned by mutations issued before Load.
	ErrNotLoaded = errors.New("account store is not loaded")
	// ErrDisposed is returned by any operation issued after Dispose.
	ErrDisposed = errors.New("account store is disposed")
)

// KeyValueStore defines the durable medium the store persists to.
type KeyValueStore interface {
	// Get returns the value stored under key; ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set fully replaces the value stored under key.
	Set(ctx context.Context, key, value string) error
}

type storeState int

const (
	stateNew storeState = iota
	stateLoaded
	stateDisposed
)

// Option configures an AccountStore.
type Option func(*AccountStore)

// WithIDGenerator replaces the default UUID generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *AccountStore) { s.newID = fn }
}

// WithStorageKey overrides DefaultStorageKey.
func WithStorageKey(key string) Option {
	return func(s *AccountStore) { s.key = key }
}

// WithLogger sets the logger used for recoveries and write failures.
func WithLogger(log *zap.Logger) Option {
	return func(s *AccountStore) { s.log = log }
}

// AccountStore holds the account collection. All operations are serialized,
// storage writes included, so no two mutations ever interleave.
type AccountStore struct {
	mu       sync.Mutex
	kv       KeyValueStore
	key      string
	newID    func() string
	log      *zap.Logger
	accounts []models.Account
	state    storeState
}

// NewAccountStore creates a store persisting to kv. Load must be called
// before any mutation.
func NewAccountStore(kv KeyValueStore, opts ...Option) *AccountStore {
	s := &AccountStore{
		kv:    kv,
		key:   DefaultStorageKey,
		newID: uuid.NewString,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads and sanitizes the persisted snapshot, replacing the in-memory
// collection. Malformed data degrades to an empty collection or to per-field
// defaults and is only logged; a failing storage read is returned.
func (s *AccountStore) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == stateDisposed {
		return ErrDisposed
	}

	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return fmt.Errorf("read %q: %w", s.key, err)
	}
	if !ok {
		raw = ""
	}

	accounts, err := decodeAccounts(raw, s.newID)
	if err != nil {
		s.log.Warn("discarding malformed stored accounts",
			zap.String("key", s.key), zap.Error(err))
	}
	s.accounts = accounts
	s.state = stateLoaded

	s.log.Info("accounts loaded", zap.String("key", s.key), zap.Int("count", len(accounts)))
	return nil
}

// Dispose writes a final snapshot and releases the collection. Further
// operations return ErrDisposed. Disposing twice is a no-op.
func (s *AccountStore) Dispose(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == stateDisposed {
		return nil
	}
	var err error
	if s.state == stateLoaded {
		err = s.persist(ctx)
	}
	s.accounts = nil
	s.state = stateDisposed
	return err
}

// Accounts returns a copy of the in-memory collection, including records
// that are not persistable yet.
func (s *AccountStore) Accounts() []models.Account {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a.Clone())
	}
	return out
}

// Get returns a copy of the account with the given id.
func (s *AccountStore) Get(id string) (models.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		return s.accounts[i].Clone(), true
	}
	return models.Account{}, false
}

// Snapshot returns the persistable subset of the collection, exactly as the
// next write would store it.
func (s *AccountStore) Snapshot() []models.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// IsPersistable reports whether acc would be included in the durable snapshot.
func (s *AccountStore) IsPersistable(acc models.Account) bool {
	return IsPersistable(acc)
}

// AddEmpty appends a blank Local account and returns its id. The new record
// stays in memory only until an Upsert makes it persistable.
//
// If the storage write fails the account is still added; the id is returned
// together with the error.
func (s *AccountStore) AddEmpty(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(); err != nil {
		return "", err
	}

	id := s.newID()
	s.accounts = append(s.accounts, models.Account{
		ID:       id,
		Labels:   []models.Label{},
		Type:     models.Local,
		Login:    "",
		Password: models.StringPtr(""),
	})
	return id, s.persist(ctx)
}

// Remove deletes the account with the given id. An unknown id leaves the
// collection unchanged and is not an error.
func (s *AccountStore) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(); err != nil {
		return err
	}

	if i := s.indexOf(id); i >= 0 {
		s.accounts = slices.Delete(s.accounts, i, i+1)
	}
	return s.persist(ctx)
}

// Upsert replaces the account sharing acc.ID in place, or appends acc when no
// such account exists. acc is not validated; a record that is not
// persistable is kept in memory and left out of the durable snapshot.
func (s *AccountStore) Upsert(ctx context.Context, acc models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(); err != nil {
		return err
	}

	acc = acc.Clone()
	if i := s.indexOf(acc.ID); i >= 0 {
		s.accounts[i] = acc
	} else {
		s.accounts = append(s.accounts, acc)
	}
	return s.persist(ctx)
}

func (s *AccountStore) ready() error {
	switch s.state {
	case stateNew:
		return ErrNotLoaded
	case stateDisposed:
		return ErrDisposed
	}
	return nil
}

func (s *AccountStore) indexOf(id string) int {
	return slices.IndexFunc(s.accounts, func(a models.Account) bool { return a.ID == id })
}

func (s *AccountStore) snapshot() []models.Account {
	out := make([]models.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		if !IsPersistable(a) {
			continue
		}
		a = a.Clone()
		if a.Labels == nil {
			a.Labels = []models.Label{}
		}
		out = append(out, a)
	}
	return out
}

// persist overwrites the stored snapshot with the persistable accounts.
// The in-memory collection is left as is when the write fails.
func (s *AccountStore) persist(ctx context.Context) error {
	snapshot := s.snapshot()
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode accounts: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, string(data)); err != nil {
		s.log.Error("failed to persist accounts",
			zap.String("key", s.key), zap.Int("persistable", len(snapshot)), zap.Error(err))
		return fmt.Errorf("write %q: %w", s.key, err)
	}
	s.log.Debug("accounts persisted",
		zap.String("key", s.key), zap.Int("persistable", len(snapshot)), zap.Int("total", len(s.accounts)))
	return nil
}
