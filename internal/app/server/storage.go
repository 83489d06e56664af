package server

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"

	"hrledger/internal/platform/config"
	"hrledger/internal/platform/crypto"
	"hrledger/internal/platform/db"
	"hrledger/internal/platform/kv"
	"hrledger/migrations"
)

// openBackend connects the configured storage driver and wraps it with
// at-rest encryption when a key is configured.
func openBackend(ctx context.Context, cfg config.Config, logger *slog.Logger) (kv.Backend, error) {
	sealer, err := crypto.NewSealer(cfg.DataEncryptionKey)
	if err != nil {
		return nil, err
	}

	var backend kv.Backend
	switch cfg.StorageDriver {
	case kv.DriverPostgres:
		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("postgres connect: %w", err)
		}
		if cfg.RunMigrations {
			if err := db.Migrate(ctx, pool, migrationsFS(cfg), logger); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migrations: %w", err)
			}
		}
		backend = kv.NewPostgres(pool)
	case kv.DriverSQLite:
		sqlite, err := kv.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("sqlite open: %w", err)
		}
		backend = sqlite
	case kv.DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		backend = kv.NewRedis(client, cfg.RedisPrefix)
		if err := backend.Ping(ctx); err != nil {
			_ = backend.Close()
			return nil, fmt.Errorf("redis ping: %w", err)
		}
	case kv.DriverMemory, "":
		backend = kv.NewMemory()
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	logger.Info("storage ready", "driver", cfg.StorageDriver, "encrypted", sealer.Configured())
	return kv.NewSealed(backend, sealer), nil
}

func migrationsFS(cfg config.Config) fs.FS {
	if cfg.MigrationsDir != "" {
		return os.DirFS(cfg.MigrationsDir)
	}
	return migrations.FS
}
