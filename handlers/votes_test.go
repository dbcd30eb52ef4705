// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/danielhkuo/product-vote/models"
	"github.com/danielhkuo/product-vote/store"
	"github.com/danielhkuo/product-vote/tally"
	"github.com/danielhkuo/product-vote/testutil"
)

func TestSubmitVote(t *testing.T) {
	testCases := []struct {
		name           string
		body           interface{}
		expectedStatus int
		expectedLeader string
		expectedName   string
	}{
		{
			name:           "known product",
			body:           models.SubmitVoteRequest{ProductID: "p2"},
			expectedStatus: http.StatusCreated,
			expectedLeader: "p2",
			expectedName:   "Gadget",
		},
		{
			name:           "surrounding whitespace trimmed",
			body:           models.SubmitVoteRequest{ProductID: "  p3 "},
			expectedStatus: http.StatusCreated,
			expectedLeader: "p3",
			expectedName:   "Gizmo",
		},
		{
			name:           "unknown product gets placeholder",
			body:           models.SubmitVoteRequest{ProductID: "zzz"},
			expectedStatus: http.StatusCreated,
			expectedLeader: "zzz",
			expectedName:   tally.PlaceholderName("zzz"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewVoteHandler(newTestDeps(t, store.NewMemoryBackend()))

			req := testutil.MakeRequest("POST", "/votes", tc.body, nil)
			w := httptest.NewRecorder()
			handler.SubmitVote(w, req)

			testutil.AssertStatus(t, w, tc.expectedStatus)

			var resp models.SubmitVoteResponse
			testutil.AssertJSON(t, w, &resp)

			if !resp.Success {
				t.Error("Expected success true")
			}
			if resp.Message != models.MsgVoteSaved {
				t.Errorf("Expected message %q, got %q", models.MsgVoteSaved, resp.Message)
			}
			if resp.Key == "" {
				t.Error("Expected a store key")
			}
			if len(resp.Results) == 0 {
				t.Fatal("Expected results")
			}
			if resp.Results[0].ProductID != tc.expectedLeader || resp.Results[0].Count != 1 {
				t.Errorf("Expected %s to lead with 1 vote, got %+v", tc.expectedLeader, resp.Results[0])
			}
			if resp.Results[0].Name != tc.expectedName {
				t.Errorf("Expected name %q, got %q", tc.expectedName, resp.Results[0].Name)
			}
		})
	}
}

func TestSubmitVote_Rejected(t *testing.T) {
	testCases := []struct {
		name            string
		body            string
		expectedMessage string
	}{
		{"empty product", `{"product_id":""}`, models.MsgSelectProduct},
		{"blank product", `{"product_id":"   "}`, models.MsgSelectProduct},
		{"missing field", `{}`, models.MsgSelectProduct},
		{"invalid JSON", `{not json`, "Invalid JSON"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			backend := store.NewMemoryBackend()
			handler := NewVoteHandler(newTestDeps(t, backend))

			req := httptest.NewRequest("POST", "/votes", strings.NewReader(tc.body))
			w := httptest.NewRecorder()
			handler.SubmitVote(w, req)

			testutil.AssertStatus(t, w, http.StatusBadRequest)

			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Message != tc.expectedMessage {
				t.Errorf("Expected message %q, got %q", tc.expectedMessage, resp.Message)
			}

			// Nothing may reach the store
			votes, _ := store.NewClient(backend).FetchAllVotes(req.Context())
			if len(votes) != 0 {
				t.Errorf("Expected no stored votes, got %d", len(votes))
			}
		})
	}
}

func TestSubmitVote_StoreFailure(t *testing.T) {
	handler := NewVoteHandler(newTestDeps(t, testutil.FailingBackend{}))

	req := testutil.MakeRequest("POST", "/votes", models.SubmitVoteRequest{ProductID: "p1"}, nil)
	w := httptest.NewRecorder()
	handler.SubmitVote(w, req)

	testutil.AssertStatus(t, w, http.StatusBadGateway)

	var resp models.FailureResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Success {
		t.Error("Expected success false")
	}
	expected := models.MsgSaveVoteFailed + ": " + testutil.ErrBackendDown.Error()
	if resp.Message != expected {
		t.Errorf("Expected message %q, got %q", expected, resp.Message)
	}
}

func TestSubmitVote_ReloadFailureStillAccepted(t *testing.T) {
	handler := NewVoteHandler(newTestDeps(t, testutil.NewReadFailingBackend()))

	req := testutil.MakeRequest("POST", "/votes", models.SubmitVoteRequest{ProductID: "p1"}, nil)
	w := httptest.NewRecorder()
	handler.SubmitVote(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.SubmitVoteResponse
	testutil.AssertJSON(t, w, &resp)
	if !resp.Success || resp.Key == "" {
		t.Errorf("Expected accepted vote, got %+v", resp)
	}
	if resp.Results != nil {
		t.Errorf("Expected no results when the reload failed, got %+v", resp.Results)
	}
}

func TestSubmitVote_Concurrent(t *testing.T) {
	deps := newTestDeps(t, store.NewMemoryBackend())
	handler := NewVoteHandler(deps)

	numVoters := 20
	var wg sync.WaitGroup
	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			id := testutil.TestCatalog()[i%3].ID
			req := testutil.MakeRequest("POST", "/votes", models.SubmitVoteRequest{ProductID: id}, nil)
			w := httptest.NewRecorder()
			handler.SubmitVote(w, req)

			if w.Code != http.StatusCreated {
				t.Errorf("Expected 201, got %d", w.Code)
			}
		}(i)
	}
	wg.Wait()

	votes, err := deps.Votes.FetchAllVotes(context.Background())
	if err != nil {
		t.Fatalf("Failed to fetch votes: %v", err)
	}
	if len(votes) != numVoters {
		t.Errorf("Expected %d votes, got %d", numVoters, len(votes))
	}

	keys := make(map[string]bool)
	for _, v := range votes {
		if keys[v.Key] {
			t.Errorf("Duplicate key %s", v.Key)
		}
		keys[v.Key] = true
	}
}

func TestListVotes(t *testing.T) {
	t.Run("votes in submit order", func(t *testing.T) {
		deps := newTestDeps(t, store.NewMemoryBackend())
		testutil.SeedVotes(t, deps.Votes, "p1", "p2", "p1")
		handler := NewVoteHandler(deps)

		w := httptest.NewRecorder()
		handler.ListVotes(w, httptest.NewRequest("GET", "/votes", nil))

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.VotesResponse
		testutil.AssertJSON(t, w, &resp)
		if !resp.Success {
			t.Error("Expected success true")
		}

		expected := []string{"p1", "p2", "p1"}
		if len(resp.Data) != len(expected) {
			t.Fatalf("Expected %d votes, got %d", len(expected), len(resp.Data))
		}
		for i, v := range resp.Data {
			if v.ProductID != expected[i] {
				t.Errorf("Vote %d: expected %s, got %s", i, expected[i], v.ProductID)
			}
			if v.Key == "" || v.Timestamp == "" {
				t.Errorf("Vote %d missing key or timestamp: %+v", i, v)
			}
		}
		if resp.Data[0].Timestamp != "2025-06-01T12:00:00.000Z" {
			t.Errorf("Unexpected timestamp %s", resp.Data[0].Timestamp)
		}
	})

	t.Run("empty collection is a success", func(t *testing.T) {
		handler := NewVoteHandler(newTestDeps(t, store.NewMemoryBackend()))

		w := httptest.NewRecorder()
		handler.ListVotes(w, httptest.NewRequest("GET", "/votes", nil))

		testutil.AssertStatus(t, w, http.StatusOK)
		if body := strings.TrimSpace(w.Body.String()); body != `{"success":true,"data":[]}` {
			t.Errorf("Unexpected body %s", body)
		}
	})

	t.Run("store failure", func(t *testing.T) {
		handler := NewVoteHandler(newTestDeps(t, testutil.FailingBackend{}))

		w := httptest.NewRecorder()
		handler.ListVotes(w, httptest.NewRequest("GET", "/votes", nil))

		testutil.AssertStatus(t, w, http.StatusBadGateway)

		var resp models.FailureResponse
		testutil.AssertJSON(t, w, &resp)
		if !strings.HasPrefix(resp.Message, models.MsgLoadVotesFailed) {
			t.Errorf("Unexpected message %q", resp.Message)
		}
	})
}
