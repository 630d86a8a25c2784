// Package storage provides the key-value persistence layer the snapshot
// store writes through. Three backends exist: a single-file sqlite
// database (the on-device default), Postgres for server deployments, and
// an in-memory map for tests.
package storage

import (
	"context"
	"fmt"

	"github.com/Tchybbi/Smatico/internal/config"
)

// KV is a minimal key-value store. Get reports presence explicitly so a
// missing key is not an error.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// Open creates the backend selected by cfg.StorageDriver.
func Open(ctx context.Context, cfg config.Config) (KV, error) {
	switch cfg.StorageDriver {
	case "sqlite":
		return OpenSQLite(ctx, cfg.SQLitePath)
	case "postgres":
		return OpenPostgres(ctx, cfg.PostgresDSN())
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
