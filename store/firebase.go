// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"google.golang.org/api/option"

	"github.com/danielhkuo/product-vote/models"
)

// rtdbRef is the part of *db.Ref the firebase backend uses
type rtdbRef interface {
	Push(ctx context.Context, v interface{}) (*db.Ref, error)
	Get(ctx context.Context, v interface{}) error
}

// FirebaseBackend stores collections as children of the Realtime Database root.
// Keys are firebase push IDs, which sort in creation order.
type FirebaseBackend struct {
	ref func(path string) rtdbRef
}

// NewFirebaseBackend connects to the Realtime Database at databaseURL.
// An empty credentialsFile falls back to application default credentials.
func NewFirebaseBackend(ctx context.Context, databaseURL, credentialsFile string) (*FirebaseBackend, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{DatabaseURL: databaseURL}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase: %w", err)
	}

	client, err := app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to realtime database: %w", err)
	}

	return &FirebaseBackend{
		ref: func(path string) rtdbRef { return client.NewRef(path) },
	}, nil
}

func (f *FirebaseBackend) Append(ctx context.Context, collection string, rec models.VoteRecord) (string, error) {
	child, err := f.ref(collection).Push(ctx, rec)
	if err != nil {
		return "", fmt.Errorf("failed to push vote: %w", err)
	}
	return child.Key, nil
}

func (f *FirebaseBackend) ReadAll(ctx context.Context, collection string) ([]models.StoredVote, error) {
	// A missing node decodes as null and leaves the map nil
	var children map[string]models.VoteRecord
	if err := f.ref(collection).Get(ctx, &children); err != nil {
		return nil, fmt.Errorf("failed to read votes: %w", err)
	}

	votes := make([]models.StoredVote, 0, len(children))
	for key, rec := range children {
		votes = append(votes, models.StoredVote{Key: key, VoteRecord: rec})
	}
	sortByKey(votes)

	return votes, nil
}

// Close is a no-op; the firebase client holds no resources that need releasing
func (f *FirebaseBackend) Close() error {
	return nil
}
