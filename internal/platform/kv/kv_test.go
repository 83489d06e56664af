package kv

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrledger/internal/platform/crypto"
)

func exerciseBackend(t *testing.T, backend Backend) {
	t.Helper()
	ctx := context.Background()

	_, found, err := backend.Get(ctx, "employees")
	require.NoError(t, err)
	assert.False(t, found, "fresh backend should not contain employees")

	require.NoError(t, backend.Set(ctx, "employees", []byte(`[{"id":1}]`)))
	value, found, err := backend.Get(ctx, "employees")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"id":1}]`, string(value))

	require.NoError(t, backend.Set(ctx, "employees", []byte(`[]`)))
	value, _, err = backend.Get(ctx, "employees")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(value), "second write should replace the first")

	assert.NoError(t, backend.Ping(ctx))
}

func TestMemoryBackend(t *testing.T) {
	exerciseBackend(t, NewMemory())
}

func TestMemoryBackendCopiesValues(t *testing.T) {
	ctx := context.Background()
	backend := NewMemory()
	value := []byte("abc")
	require.NoError(t, backend.Set(ctx, "k", value))
	value[0] = 'z'

	stored, _, err := backend.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(stored))
}

func TestSQLiteBackend(t *testing.T) {
	backend, err := OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	exerciseBackend(t, backend)
}

func TestSealedBackend(t *testing.T) {
	sealer, err := crypto.NewSealer(strings.Repeat("0f", 32))
	require.NoError(t, err)
	inner := NewMemory()
	backend := NewSealed(inner, sealer)

	exerciseBackend(t, backend)

	raw, _, err := inner.Get(context.Background(), "employees")
	require.NoError(t, err)
	assert.NotEqual(t, "[]", string(raw), "inner backend should only see ciphertext")

	unlock, err := backend.(Locker).Lock(context.Background(), "core")
	require.NoError(t, err)
	unlock()
}

func TestNewSealedWithoutKeyReturnsBackend(t *testing.T) {
	sealer, err := crypto.NewSealer("")
	require.NoError(t, err)
	inner := NewMemory()
	assert.Same(t, inner, NewSealed(inner, sealer))
}

func TestRedisBackend(t *testing.T) {
	ctx := context.Background()
	client, mock := redismock.NewClientMock()
	backend := NewRedis(client, "hr:")

	mock.ExpectGet("hr:leaves").RedisNil()
	mock.ExpectSet("hr:leaves", []byte(`[]`), 0).SetVal("OK")
	mock.ExpectGet("hr:leaves").SetVal(`[]`)

	_, found, err := backend.Get(ctx, "leaves")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, backend.Set(ctx, "leaves", []byte(`[]`)))

	value, found, err := backend.Get(ctx, "leaves")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[]`, string(value))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisLockAcquireAndRelease(t *testing.T) {
	client, mock := redismock.NewClientMock()
	backend := NewRedis(client, "hr:")
	backend.newToken = func() string { return "token-1" }

	mock.ExpectSetNX("hr:lock:leave", "token-1", defaultLockTTL).SetVal(true)
	mock.ExpectEval(unlockScript, []string{"hr:lock:leave"}, "token-1").SetVal(int64(1))

	unlock, err := backend.Lock(context.Background(), "leave")
	require.NoError(t, err)
	unlock()

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisLockGivesUpWhenContextEnds(t *testing.T) {
	client, mock := redismock.NewClientMock()
	backend := NewRedis(client, "hr:")
	backend.newToken = func() string { return "token-2" }

	mock.ExpectSetNX("hr:lock:leave", "token-2", defaultLockTTL).SetVal(false)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	_, err := backend.Lock(ctx, "leave")
	assert.ErrorIs(t, err, ErrLockNotAcquired)
}

func TestPostgresBackend(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, "CREATE TABLE IF NOT EXISTS kv_entries (key TEXT PRIMARY KEY, value BYTEA NOT NULL, updated_at TIMESTAMPTZ NOT NULL DEFAULT now())")
	require.NoError(t, err)
	_, err = pool.Exec(ctx, "DELETE FROM kv_entries WHERE key = 'employees'")
	require.NoError(t, err)

	backend := &Postgres{DB: pool}
	exerciseBackend(t, backend)

	unlock, err := backend.Lock(ctx, "core")
	require.NoError(t, err)
	unlock()
}
