package kv

import (
	"context"
	"fmt"
)

// Cipher seals values before they reach a backend.
type Cipher interface {
	Configured() bool
	Seal(plain []byte) ([]byte, error)
	Open(sealed []byte) ([]byte, error)
}

// Sealed encrypts values at rest on top of another backend.
type Sealed struct {
	Backend
	cipher Cipher
}

// NewSealed wraps backend with cipher. Without a configured cipher the backend
// is returned as is.
func NewSealed(backend Backend, cipher Cipher) Backend {
	if cipher == nil || !cipher.Configured() {
		return backend
	}
	return &Sealed{Backend: backend, cipher: cipher}
}

func (s *Sealed) Get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, found, err := s.Backend.Get(ctx, key)
	if err != nil || !found {
		return nil, found, err
	}
	plain, err := s.cipher.Open(raw)
	if err != nil {
		return nil, false, fmt.Errorf("open %s: %w", key, err)
	}
	return plain, true, nil
}

func (s *Sealed) Set(ctx context.Context, key string, value []byte) error {
	sealed, err := s.cipher.Seal(value)
	if err != nil {
		return fmt.Errorf("seal %s: %w", key, err)
	}
	return s.Backend.Set(ctx, key, sealed)
}

// Lock delegates to the wrapped backend when it can lock, and is a no-op otherwise.
func (s *Sealed) Lock(ctx context.Context, name string) (func(), error) {
	if locker, ok := s.Backend.(Locker); ok {
		return locker.Lock(ctx, name)
	}
	return func() {}, nil
}
