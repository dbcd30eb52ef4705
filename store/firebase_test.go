// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"firebase.google.com/go/v4/db"
)

// fakeRTDB imitates a Realtime Database tree of push-keyed children
type fakeRTDB struct {
	nodes map[string]map[string]json.RawMessage
	next  int
	err   error
}

type fakeRef struct {
	db   *fakeRTDB
	path string
}

func (f *fakeRTDB) ref(path string) rtdbRef {
	return &fakeRef{db: f, path: path}
}

func (r *fakeRef) Push(ctx context.Context, v interface{}) (*db.Ref, error) {
	if r.db.err != nil {
		return nil, r.db.err
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	r.db.next++
	key := fmt.Sprintf("-N%06d", r.db.next)
	if r.db.nodes[r.path] == nil {
		r.db.nodes[r.path] = make(map[string]json.RawMessage)
	}
	r.db.nodes[r.path][key] = raw
	return &db.Ref{Key: key, Path: r.path + "/" + key}, nil
}

// Get encodes the node the way the database does: null when absent
func (r *fakeRef) Get(ctx context.Context, v interface{}) error {
	if r.db.err != nil {
		return r.db.err
	}
	node, ok := r.db.nodes[r.path]
	if !ok {
		return json.Unmarshal([]byte("null"), v)
	}
	raw, err := json.Marshal(node)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

func TestFirebaseBackend(t *testing.T) {
	fake := &fakeRTDB{nodes: make(map[string]map[string]json.RawMessage)}
	backend := &FirebaseBackend{ref: fake.ref}
	client := NewClient(backend, WithClock(fixedClock))
	ctx := context.Background()

	votes, err := client.FetchAllVotes(ctx)
	if err != nil {
		t.Fatalf("Missing votes node should not be an error: %v", err)
	}
	if len(votes) != 0 {
		t.Fatalf("Expected no votes, got %v", votes)
	}

	for _, id := range []string{"p2", "p1", "p2"} {
		if _, err := client.SubmitVote(ctx, id); err != nil {
			t.Fatalf("SubmitVote failed: %v", err)
		}
	}

	// Stored layout matches the collection written by the widget page
	var stored map[string]interface{}
	if err := json.Unmarshal(fake.nodes["votes"]["-N000001"], &stored); err != nil {
		t.Fatal(err)
	}
	if stored["productID"] != "p2" || stored["timestamp"] != "2025-06-01T12:00:00.000Z" {
		t.Errorf("Unexpected stored vote %v", stored)
	}

	votes, err = client.FetchAllVotes(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"p2", "p1", "p2"}
	if len(votes) != len(want) {
		t.Fatalf("Expected %d votes, got %d", len(want), len(votes))
	}
	for i, v := range votes {
		if v.ProductID != want[i] {
			t.Errorf("Vote %d: expected %s, got %s", i, want[i], v.ProductID)
		}
	}
}

func TestFirebaseBackendFailure(t *testing.T) {
	fake := &fakeRTDB{nodes: make(map[string]map[string]json.RawMessage), err: errors.New("permission denied")}
	client := NewClient(&FirebaseBackend{ref: fake.ref})

	_, err := client.SubmitVote(context.Background(), "p1")
	var storeErr *StoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("Expected *StoreError, got %v", err)
	}
	if storeErr.Error() != "Error al guardar el voto: failed to push vote: permission denied" {
		t.Errorf("Unexpected message %q", storeErr.Error())
	}
}
