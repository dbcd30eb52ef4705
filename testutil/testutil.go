// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/product-vote/content"
	"github.com/danielhkuo/product-vote/db"
	"github.com/danielhkuo/product-vote/models"
	"github.com/danielhkuo/product-vote/store"
)

// ErrBackendDown is returned by FailingBackend
var ErrBackendDown = errors.New("backend unavailable")

// TestCatalog returns the catalog used across handler tests
func TestCatalog() models.Catalog {
	return models.Catalog{
		{ID: "p1", Name: "Widget"},
		{ID: "p2", Name: "Gadget"},
		{ID: "p3", Name: "Gizmo"},
	}
}

// SetupTestDB creates a sqlite database in a temp dir with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	url := "file:" + filepath.Join(t.TempDir(), "votes.db")
	conn, err := db.Open(db.TypeSQLite, url)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// Clock returns increasing timestamps one second apart, starting at 2025-06-01 12:00 UTC
func Clock() func() time.Time {
	var mu sync.Mutex
	next := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now := next
		next = next.Add(time.Second)
		return now
	}
}

// NewStoreClient wraps backend in a client with a deterministic clock
func NewStoreClient(backend store.Backend) *store.Client {
	return store.NewClient(backend, store.WithClock(Clock()))
}

// SeedVotes submits one vote per product ID, in order
func SeedVotes(t *testing.T, client *store.Client, productIDs ...string) {
	t.Helper()

	for _, id := range productIDs {
		if _, err := client.SubmitVote(context.Background(), id); err != nil {
			t.Fatalf("Failed to seed vote for %q: %v", id, err)
		}
	}
}

// FailingBackend fails every operation with ErrBackendDown
type FailingBackend struct{}

func (FailingBackend) Append(context.Context, string, models.VoteRecord) (string, error) {
	return "", ErrBackendDown
}

func (FailingBackend) ReadAll(context.Context, string) ([]models.StoredVote, error) {
	return nil, ErrBackendDown
}

func (FailingBackend) Close() error { return nil }

// ReadFailingBackend accepts writes but fails every read
type ReadFailingBackend struct {
	*store.MemoryBackend
}

func NewReadFailingBackend() ReadFailingBackend {
	return ReadFailingBackend{MemoryBackend: store.NewMemoryBackend()}
}

func (ReadFailingBackend) ReadAll(context.Context, string) ([]models.StoredVote, error) {
	return nil, ErrBackendDown
}

// SampleTexts is the body served by NewContentServer
func SampleTexts(n int) content.TextsResponse {
	resp := content.TextsResponse{Status: "OK", Code: http.StatusOK, Total: n}
	for i := 1; i <= n; i++ {
		resp.Data = append(resp.Data, models.Card{
			Title:   fmt.Sprintf("Title %d", i),
			Author:  fmt.Sprintf("Author %d", i),
			Genre:   "Fiction",
			Content: fmt.Sprintf("Content %d", i),
		})
	}
	return resp
}

// NewContentServer serves SampleTexts(10), or an empty response with status when status is not 200
func NewContentServer(t *testing.T, status int) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(SampleTexts(10))
	}))
	t.Cleanup(srv.Close)

	return srv
}

// NewContentClient returns a content client backed by NewContentServer
func NewContentClient(t *testing.T, status int) *content.Client {
	t.Helper()
	return content.NewClient(NewContentServer(t, status).URL, 2*time.Second)
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
