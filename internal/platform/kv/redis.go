package kv

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultLockTTL   = 30 * time.Second
	lockRetryBackoff = 25 * time.Millisecond
)

// unlockScript deletes the lock only while it still carries our token.
const unlockScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then return redis.call("DEL", KEYS[1]) else return 0 end`

// Redis stores every entry as a plain string value under Prefix+key.
type Redis struct {
	Client  *redis.Client
	Prefix  string
	LockTTL time.Duration

	newToken func() string
}

func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{
		Client:   client,
		Prefix:   prefix,
		LockTTL:  defaultLockTTL,
		newToken: uuid.NewString,
	}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := r.Client.Get(ctx, r.Prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	return r.Client.Set(ctx, r.Prefix+key, value, 0).Err()
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.Client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	return r.Client.Close()
}

// Lock spins on SET NX until the lock is free or ctx is done. The TTL bounds
// how long a crashed holder can block other processes.
func (r *Redis) Lock(ctx context.Context, name string) (func(), error) {
	lockKey := r.Prefix + "lock:" + name
	token := r.newToken()
	for {
		ok, err := r.Client.SetNX(ctx, lockKey, token, r.LockTTL).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			return func() {
				if err := r.Client.Eval(context.Background(), unlockScript, []string{lockKey}, token).Err(); err != nil {
					slog.Warn("redis unlock failed", "lock", lockKey, "err", err)
				}
			}, nil
		}
		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrLockNotAcquired, ctx.Err())
		case <-time.After(lockRetryBackoff):
		}
	}
}
