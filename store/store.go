// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/danielhkuo/product-vote/models"
)

// Backend names
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendFirebase = "firebase"
)

var ErrUnknownBackend = errors.New("unknown store backend")

// Backend is an append-only keyed collection store.
// Append assigns a unique key that increases with creation order.
// ReadAll returns an empty slice, not an error, for a missing or empty collection.
type Backend interface {
	Append(ctx context.Context, collection string, rec models.VoteRecord) (string, error)
	ReadAll(ctx context.Context, collection string) ([]models.StoredVote, error)
	Close() error
}

// NewKey returns a time-ordered unique key (UUIDv7)
func NewKey() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}
	return id.String(), nil
}

// sortByKey orders votes by key, which is creation order for every backend
func sortByKey(votes []models.StoredVote) {
	sort.Slice(votes, func(i, j int) bool {
		return votes[i].Key < votes[j].Key
	})
}
