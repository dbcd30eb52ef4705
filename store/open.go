// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/danielhkuo/product-vote/cliparse"
	"github.com/danielhkuo/product-vote/db"
)

// Open creates the backend selected by cfg.Backend
func Open(ctx context.Context, cfg cliparse.Config) (Backend, error) {
	backend, err := open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s backend: %w", cfg.Backend, err)
	}
	return backend, nil
}

func open(ctx context.Context, cfg cliparse.Config) (Backend, error) {
	switch cfg.Backend {
	case BackendMemory:
		return NewMemoryBackend(), nil
	case BackendSQLite:
		return OpenSQLBackend(db.TypeSQLite, cfg.DatabaseURL)
	case BackendPostgres:
		return OpenSQLBackend(db.TypePostgres, cfg.DatabaseURL)
	case BackendRedis:
		return NewRedisBackend(ctx, cfg.RedisURL)
	case BackendFirebase:
		return NewFirebaseBackend(ctx, cfg.FirebaseDatabaseURL, cfg.FirebaseCredentials)
	default:
		return nil, ErrUnknownBackend
	}
}
