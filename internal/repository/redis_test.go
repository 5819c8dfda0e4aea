package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis implements only the commands the repository uses; calling any
// other Cmdable method panics on the nil embedded interface.
type fakeRedis struct {
	goredis.Cmdable
	data   map[string]string
	ttls   map[string]time.Duration
	getErr error
	setErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *goredis.StringCmd {
	if f.getErr != nil {
		return goredis.NewStringResult("", f.getErr)
	}
	v, ok := f.data[key]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, ttl time.Duration) *goredis.StatusCmd {
	if f.setErr != nil {
		return goredis.NewStatusResult("", f.setErr)
	}
	f.data[key] = value.(string)
	f.ttls[key] = ttl
	return goredis.NewStatusResult("OK", nil)
}

func TestRedisKV_SetAndGet(t *testing.T) {
	fake := newFakeRedis()
	repo := NewRedisKVRepository(fake, "accountkeeper:")
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "accounts", "[]"))
	assert.Equal(t, "[]", fake.data["accountkeeper:accounts"])
	assert.Equal(t, time.Duration(0), fake.ttls["accountkeeper:accounts"])

	v, ok, err := repo.Get(ctx, "accounts")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)
}

func TestRedisKV_GetMissing(t *testing.T) {
	repo := NewRedisKVRepository(newFakeRedis(), "")

	v, ok, err := repo.Get(context.Background(), "accounts")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "", v)
}

func TestRedisKV_Errors(t *testing.T) {
	fake := newFakeRedis()
	fake.getErr = errors.New("read timeout")
	fake.setErr = errors.New("OOM command not allowed")
	repo := NewRedisKVRepository(fake, "")
	ctx := context.Background()

	_, _, err := repo.Get(ctx, "accounts")
	assert.ErrorIs(t, err, fake.getErr)
	assert.ErrorIs(t, repo.Set(ctx, "accounts", "[]"), fake.setErr)
}
