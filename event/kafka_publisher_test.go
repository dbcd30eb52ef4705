// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
)

type recordingWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisherPublish(t *testing.T) {
	w := &recordingWriter{}
	kp := &KafkaPublisher{writer: w}

	ev := VoteEvent{Key: "k1", ProductID: "p1", Timestamp: "2025-06-01T12:00:00.000Z"}
	if err := kp.Publish(context.Background(), ev); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	if len(w.msgs) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(w.msgs))
	}
	if string(w.msgs[0].Key) != "p1" {
		t.Errorf("Expected message keyed by product, got %q", w.msgs[0].Key)
	}

	var got VoteEvent
	if err := json.Unmarshal(w.msgs[0].Value, &got); err != nil {
		t.Fatalf("Message is not JSON: %v", err)
	}
	if got != ev {
		t.Errorf("Expected %+v, got %+v", ev, got)
	}

	if err := kp.Close(); err != nil || !w.closed {
		t.Errorf("Close did not close the writer: %v", err)
	}
}

func TestKafkaPublisherWriteError(t *testing.T) {
	brokerErr := errors.New("leader not available")
	kp := &KafkaPublisher{writer: &recordingWriter{err: brokerErr}}

	err := kp.Publish(context.Background(), VoteEvent{ProductID: "p1"})
	if !errors.Is(err, brokerErr) {
		t.Errorf("Expected wrapped broker error, got %v", err)
	}
}

func TestNewPublisher(t *testing.T) {
	if _, ok := NewPublisher(nil, "votes").(NopPublisher); !ok {
		t.Error("Expected NopPublisher without brokers")
	}

	p := NewPublisher([]string{"localhost:9092"}, "votes")
	defer p.Close()
	if _, ok := p.(*KafkaPublisher); !ok {
		t.Errorf("Expected *KafkaPublisher, got %T", p)
	}
}
