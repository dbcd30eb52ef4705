// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"sync"

	"github.com/danielhkuo/product-vote/models"
)

// MemoryBackend keeps collections in process memory
type MemoryBackend struct {
	mu          sync.Mutex
	collections map[string][]models.StoredVote
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{collections: make(map[string][]models.StoredVote)}
}

func (m *MemoryBackend) Append(ctx context.Context, collection string, rec models.VoteRecord) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key, err := NewKey()
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.collections[collection] = append(m.collections[collection], models.StoredVote{Key: key, VoteRecord: rec})
	return key, nil
}

func (m *MemoryBackend) ReadAll(ctx context.Context, collection string) ([]models.StoredVote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	votes := make([]models.StoredVote, len(m.collections[collection]))
	copy(votes, m.collections[collection])
	sortByKey(votes)
	return votes, nil
}

func (m *MemoryBackend) Close() error {
	return nil
}
