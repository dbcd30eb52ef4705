// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/danielhkuo/product-vote/content"
	"github.com/danielhkuo/product-vote/event"
	"github.com/danielhkuo/product-vote/metrics"
	"github.com/danielhkuo/product-vote/models"
	"github.com/danielhkuo/product-vote/pubsub"
	"github.com/danielhkuo/product-vote/store"
	"github.com/danielhkuo/product-vote/tally"
)

// publishTimeout bounds one event publication, which is detached from the request context
const publishTimeout = 5 * time.Second

// Deps are the collaborators shared by all handlers.
// Votes and Catalog are required; the rest fall back through WithDefaults.
type Deps struct {
	Votes     *store.Client
	Catalog   models.Catalog
	Content   *content.Client
	Publisher event.VotePublisher
	Hub       *pubsub.Hub
	Metrics   *metrics.Metrics
}

// WithDefaults fills the optional collaborators: a private metrics registry
// and a publisher that drops events. A nil Hub disables live results.
func (d Deps) WithDefaults() Deps {
	if d.Metrics == nil {
		d.Metrics = metrics.New("product_vote")
	}
	if d.Publisher == nil {
		d.Publisher = event.NopPublisher{}
	}
	return d
}

// results reads every vote once and ranks them against the catalog.
// The catalog mapping is rebuilt on each pass.
func (d Deps) results(ctx context.Context) ([]models.StoredVote, []models.Entry, error) {
	start := time.Now()
	defer func() {
		d.Metrics.TallyDuration.Observe(time.Since(start).Seconds())
	}()

	votes, err := d.Votes.FetchAllVotes(ctx)
	if err != nil {
		d.Metrics.StoreErrors.WithLabelValues(store.OpFetch).Inc()
		return nil, nil, err
	}

	return votes, tally.Tally(store.Records(votes), d.Catalog.Names()), nil
}

// recordVote submits a vote and runs the follow-up steps of an accepted vote:
// a fresh tally, a live broadcast and event publication in the background.
// Only the submit itself can fail; results is nil when the re-read failed.
func (d Deps) recordVote(ctx context.Context, productID string) (store.Confirmation, []models.Entry, error) {
	conf, err := d.Votes.SubmitVote(ctx, productID)
	if err != nil {
		d.Metrics.VotesSubmitted.WithLabelValues(metrics.ResultFailed).Inc()
		d.Metrics.StoreErrors.WithLabelValues(store.OpSubmit).Inc()
		return store.Confirmation{}, nil, err
	}
	d.Metrics.VotesSubmitted.WithLabelValues(metrics.ResultAccepted).Inc()

	slog.Info("vote saved", "product_id", productID, "key", conf.Key)

	ev := event.VoteEvent{Key: conf.Key, ProductID: productID, Timestamp: conf.Record.Timestamp}
	// A slow or unreachable broker never holds up the response
	defer func() { go d.publish(ev) }()

	// Read strictly after the submit completed, so the new vote is included
	_, results, err := d.results(ctx)
	if err != nil {
		slog.Warn("vote saved but results could not be reloaded", "error", err)
		return conf, nil, nil
	}

	d.broadcast(results)
	return conf, results, nil
}

func (d Deps) publish(ev event.VoteEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := d.Publisher.Publish(ctx, ev); err != nil {
		d.Metrics.EventsFailed.Inc()
		slog.Warn("failed to publish vote event", "error", err, "key", ev.Key)
	}
}

func (d Deps) broadcast(results []models.Entry) {
	if d.Hub == nil {
		return
	}
	payload, err := liveUpdate(results)
	if err != nil {
		slog.Error("failed to encode live update", "error", err)
		return
	}
	d.Hub.Broadcast(payload)
}

func liveUpdate(results []models.Entry) ([]byte, error) {
	return json.Marshal(models.LiveUpdate{Results: results, Total: tally.Total(results)})
}
