// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/product-vote/event"
	"github.com/danielhkuo/product-vote/metrics"
	"github.com/danielhkuo/product-vote/models"
	"github.com/danielhkuo/product-vote/store"
	"github.com/danielhkuo/product-vote/testutil"
)

// newTestDeps wires handlers to backend with a working content server and no live hub
func newTestDeps(t *testing.T, backend store.Backend) Deps {
	t.Helper()

	return Deps{
		Votes:     testutil.NewStoreClient(backend),
		Catalog:   testutil.TestCatalog(),
		Content:   testutil.NewContentClient(t, http.StatusOK),
		Publisher: event.NopPublisher{},
		Metrics:   metrics.New("test"),
	}
}

// recordingPublisher sends every published event on published.
// When release is set, Publish blocks until it is closed or ctx ends.
type recordingPublisher struct {
	published chan event.VoteEvent
	release   chan struct{}
	err       error
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{published: make(chan event.VoteEvent, 16)}
}

func (p *recordingPublisher) Publish(ctx context.Context, ev event.VoteEvent) error {
	if p.release != nil {
		select {
		case <-p.release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	p.published <- ev
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) next(t *testing.T) event.VoteEvent {
	t.Helper()
	select {
	case ev := <-p.published:
		return ev
	case <-time.After(3 * time.Second):
		t.Fatal("Timed out waiting for a published event")
		return event.VoteEvent{}
	}
}

// scrape returns the exposition text of m
func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	return w.Body.String()
}

// waitForMetric polls until the exposition text of m contains want
func waitForMetric(t *testing.T, m *metrics.Metrics, want string) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for !strings.Contains(scrape(t, m), want) {
		if time.Now().After(deadline) {
			t.Fatalf("Expected metrics to contain %q", want)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestRecordVote_PublishesEvent(t *testing.T) {
	deps := newTestDeps(t, store.NewMemoryBackend())
	pub := newRecordingPublisher()
	deps.Publisher = pub

	conf, results, err := deps.recordVote(context.Background(), "p2")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	ev := pub.next(t)
	if ev.Key != conf.Key || ev.ProductID != "p2" || ev.Timestamp != conf.Record.Timestamp {
		t.Errorf("Event does not match confirmation: %+v vs %+v", ev, conf)
	}

	if len(results) != 3 || results[0].ProductID != "p2" || results[0].Count != 1 {
		t.Errorf("Expected p2 to lead with 1 vote, got %+v", results)
	}
}

func TestRecordVote_PublishFailureIsNotFatal(t *testing.T) {
	deps := newTestDeps(t, store.NewMemoryBackend())
	pub := newRecordingPublisher()
	pub.err = errors.New("broker down")
	deps.Publisher = pub

	if _, _, err := deps.recordVote(context.Background(), "p1"); err != nil {
		t.Fatalf("Publish failure should not fail the vote, got %v", err)
	}

	pub.next(t)
	waitForMetric(t, deps.Metrics, "test_events_failed_total 1")
}

func TestSubmitVote_SlowPublisherDoesNotDelayResponse(t *testing.T) {
	deps := newTestDeps(t, store.NewMemoryBackend())
	pub := newRecordingPublisher()
	pub.release = make(chan struct{})
	deps.Publisher = pub
	handler := NewVoteHandler(deps)

	done := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		req := testutil.MakeRequest("POST", "/votes", models.SubmitVoteRequest{ProductID: "p1"}, nil)
		w := httptest.NewRecorder()
		handler.SubmitVote(w, req)
		done <- w
	}()

	select {
	case w := <-done:
		testutil.AssertStatus(t, w, http.StatusCreated)
	case <-time.After(2 * time.Second):
		t.Fatal("Submit waited for the event publisher")
	}

	// The event still goes out once the broker responds
	close(pub.release)
	if ev := pub.next(t); ev.ProductID != "p1" {
		t.Errorf("Expected event for p1, got %+v", ev)
	}
}

func TestWithDefaults(t *testing.T) {
	deps := Deps{
		Votes:   testutil.NewStoreClient(store.NewMemoryBackend()),
		Catalog: testutil.TestCatalog(),
	}.WithDefaults()

	if deps.Metrics == nil {
		t.Fatal("Expected default metrics")
	}
	if _, ok := deps.Publisher.(event.NopPublisher); !ok {
		t.Errorf("Expected NopPublisher, got %T", deps.Publisher)
	}
	if deps.Hub != nil {
		t.Error("Expected live results to stay disabled")
	}

	handler := NewVoteHandler(Deps{
		Votes:   testutil.NewStoreClient(store.NewMemoryBackend()),
		Catalog: testutil.TestCatalog(),
	})
	w := httptest.NewRecorder()
	handler.SubmitVote(w, testutil.MakeRequest("POST", "/votes", models.SubmitVoteRequest{ProductID: "p1"}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)
}

func TestRecordVote_Metrics(t *testing.T) {
	deps := newTestDeps(t, store.NewMemoryBackend())

	deps.recordVote(context.Background(), "p1")
	deps.recordVote(context.Background(), "p1")

	failing := newTestDeps(t, testutil.FailingBackend{})
	failing.Metrics = deps.Metrics
	failing.recordVote(context.Background(), "p1")

	out := scrape(t, deps.Metrics)
	for _, want := range []string{
		`test_votes_submitted_total{result="accepted"} 2`,
		`test_votes_submitted_total{result="failed"} 1`,
		`test_store_errors_total{op="submit"} 1`,
		`test_tally_duration_seconds_count 2`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected metrics to contain %q", want)
		}
	}
}
