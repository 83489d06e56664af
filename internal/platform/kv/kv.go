// Package kv provides the key-value backends the record store persists into.
// Every entity kind lives under one key holding a single JSON document.
package kv

import (
	"context"
	"errors"
)

// Backend stores opaque values under string keys.
type Backend interface {
	// Get returns the value for key. found is false when the key was never written.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Ping(ctx context.Context) error
	Close() error
}

// Locker is implemented by backends that can hold a lock visible to every
// process sharing the same storage.
type Locker interface {
	Lock(ctx context.Context, name string) (unlock func(), err error)
}

var ErrLockNotAcquired = errors.New("kv: lock not acquired")

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
)
