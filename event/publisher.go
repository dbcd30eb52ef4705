// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package event

import (
	"context"
)

// VoteEvent announces an accepted vote
type VoteEvent struct {
	Key       string `json:"key"`
	ProductID string `json:"productID"`
	Timestamp string `json:"timestamp"`
}

type VotePublisher interface {
	Publish(ctx context.Context, ev VoteEvent) error
	Close() error
}

// NopPublisher drops every event. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, ev VoteEvent) error { return nil }

func (NopPublisher) Close() error { return nil }
