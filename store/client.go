// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/product-vote/models"
)

// Store operations, used as StoreError.Op
const (
	OpSubmit = "submit"
	OpFetch  = "fetch"
)

// StoreError is a failure reported by the backing store
type StoreError struct {
	Op  string
	Err error
}

// Error renders the user-facing message, which includes the backend error text
func (e *StoreError) Error() string {
	prefix := models.MsgLoadVotesFailed
	if e.Op == OpSubmit {
		prefix = models.MsgSaveVoteFailed
	}
	return fmt.Sprintf("%s: %v", prefix, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Confirmation is returned for an accepted vote
type Confirmation struct {
	Key     string
	Message string
	Record  models.VoteRecord
}

// Client appends and reads vote records through a Backend.
// Every failure, including a panicking backend, is returned as a *StoreError.
type Client struct {
	backend    Backend
	collection string
	now        func() time.Time
}

// Option configures a Client
type Option func(*Client)

// WithClock replaces the clock used to stamp votes
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// WithCollection changes the collection votes are written to
func WithCollection(name string) Option {
	return func(c *Client) { c.collection = name }
}

func NewClient(backend Backend, opts ...Option) *Client {
	c := &Client{
		backend:    backend,
		collection: models.VotesCollection,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SubmitVote appends one vote for productID, stamped with the current time.
// productID is not validated here; callers reject empty selections.
func (c *Client) SubmitVote(ctx context.Context, productID string) (conf Confirmation, err error) {
	defer recoverStoreError(OpSubmit, &err)

	rec := models.NewVoteRecord(productID, c.now())

	key, err := c.backend.Append(ctx, c.collection, rec)
	if err != nil {
		slog.Error("failed to save vote", "error", err, "product_id", productID)
		return Confirmation{}, &StoreError{Op: OpSubmit, Err: err}
	}

	return Confirmation{
		Key:     key,
		Message: models.MsgVoteSaved,
		Record:  rec,
	}, nil
}

// FetchAllVotes reads the whole collection once.
// An empty or missing collection yields an empty slice and no error.
func (c *Client) FetchAllVotes(ctx context.Context) (votes []models.StoredVote, err error) {
	defer recoverStoreError(OpFetch, &err)

	votes, err = c.backend.ReadAll(ctx, c.collection)
	if err != nil {
		slog.Error("failed to load votes", "error", err)
		return nil, &StoreError{Op: OpFetch, Err: err}
	}
	if votes == nil {
		votes = []models.StoredVote{}
	}

	return votes, nil
}

// Records strips store keys from votes
func Records(votes []models.StoredVote) []models.VoteRecord {
	records := make([]models.VoteRecord, len(votes))
	for i, v := range votes {
		records[i] = v.VoteRecord
	}
	return records
}

func (c *Client) Close() error {
	return c.backend.Close()
}

func recoverStoreError(op string, err *error) {
	if r := recover(); r != nil {
		slog.Error("store backend panicked", "op", op, "panic", r)
		*err = &StoreError{Op: op, Err: fmt.Errorf("%v", r)}
	}
}
