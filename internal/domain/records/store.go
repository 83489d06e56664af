// Package records persists HR entities as one JSON document per entity kind
// on top of a kv.Backend.
package records

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"hrledger/internal/domain/hrerr"
	"hrledger/internal/platform/kv"
)

const DefaultMaxValueBytes = 5 * 1024 * 1024

const lockNamespace = "hrledger:"

type Store struct {
	backend  kv.Backend
	logger   *slog.Logger
	maxBytes int

	mu         sync.Mutex
	keyLocks   map[string]*sync.Mutex
	aggregates map[string]*sync.Mutex
}

type Option func(*Store)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMaxValueBytes sets the size budget of one serialized key. Zero or
// negative values keep the default.
func WithMaxValueBytes(limit int) Option {
	return func(s *Store) {
		if limit > 0 {
			s.maxBytes = limit
		}
	}
}

func NewStore(backend kv.Backend, opts ...Option) *Store {
	s := &Store{
		backend:    backend,
		logger:     slog.Default(),
		maxBytes:   DefaultMaxValueBytes,
		keyLocks:   map[string]*sync.Mutex{},
		aggregates: map[string]*sync.Mutex{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Ping(ctx context.Context) error {
	return s.backend.Ping(ctx)
}

func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	_, found, err := s.backend.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	return found, nil
}

// Critical runs fn while holding the lock of the named aggregate. When the
// backend is a kv.Locker the lock also excludes other processes.
// Critical is not reentrant for the same aggregate.
func (s *Store) Critical(ctx context.Context, aggregate string, fn func(ctx context.Context) error) error {
	mu := s.mutexFor(s.aggregates, aggregate)
	mu.Lock()
	defer mu.Unlock()

	if locker, ok := s.backend.(kv.Locker); ok {
		unlock, err := locker.Lock(ctx, lockNamespace+aggregate)
		if err != nil {
			return fmt.Errorf("lock %s: %w", aggregate, err)
		}
		defer unlock()
	}
	return fn(ctx)
}

// load decodes key into dst. Undecodable data is logged and reported as absent.
func (s *Store) load(ctx context.Context, key string, dst any) (bool, error) {
	raw, found, err := s.backend.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if !found {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.logger.Error("stored records unreadable, treating as empty", "key", key, "bytes", len(raw), "err", err)
		return false, nil
	}
	return true, nil
}

func (s *Store) save(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if len(raw) > s.maxBytes {
		return &hrerr.CapacityError{Key: key, Size: len(raw), Limit: s.maxBytes}
	}
	if err := s.backend.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (s *Store) lockKey(key string) func() {
	mu := s.mutexFor(s.keyLocks, key)
	mu.Lock()
	return mu.Unlock
}

func (s *Store) mutexFor(locks map[string]*sync.Mutex, name string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	mu, ok := locks[name]
	if !ok {
		mu = &sync.Mutex{}
		locks[name] = mu
	}
	return mu
}
