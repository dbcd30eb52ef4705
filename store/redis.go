// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/danielhkuo/product-vote/models"
)

// RedisBackend keeps each collection in a hash: field = key, value = JSON record
type RedisBackend struct {
	client *redis.Client
}

func NewRedisBackend(ctx context.Context, addr string) (*RedisBackend, error) {
	opts, err := redis.ParseURL(addr)
	if err != nil {
		return nil, fmt.Errorf("error parsing redis URL: %w", err)
	}

	c := redis.NewClient(opts)

	if err := c.Ping(ctx).Err(); err != nil {
		c.Close()
		return nil, fmt.Errorf("error connecting to redis: %w", err)
	}

	return &RedisBackend{client: c}, nil
}

func collectionKey(collection string) string {
	return fmt.Sprintf("collection:%s", collection)
}

func (rb *RedisBackend) Append(ctx context.Context, collection string, rec models.VoteRecord) (string, error) {
	key, err := NewKey()
	if err != nil {
		return "", err
	}

	vb, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("failed to marshal vote: %w", err)
	}

	// HSETNX never overwrites, keeping the collection append-only
	ok, err := rb.client.HSetNX(ctx, collectionKey(collection), key, vb).Result()
	if err != nil {
		return "", fmt.Errorf("error writing vote to redis: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("vote key %s already exists", key)
	}

	return key, nil
}

func (rb *RedisBackend) ReadAll(ctx context.Context, collection string) ([]models.StoredVote, error) {
	fields, err := rb.client.HGetAll(ctx, collectionKey(collection)).Result()
	if err != nil {
		return nil, fmt.Errorf("error reading votes from redis: %w", err)
	}

	votes := make([]models.StoredVote, 0, len(fields))
	for key, raw := range fields {
		var rec models.VoteRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("error decoding vote %s: %w", key, err)
		}
		votes = append(votes, models.StoredVote{Key: key, VoteRecord: rec})
	}
	sortByKey(votes)

	return votes, nil
}

func (rb *RedisBackend) Close() error {
	if err := rb.client.Close(); err != nil {
		return fmt.Errorf("error closing redis client: %w", err)
	}
	return nil
}
