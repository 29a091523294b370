package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/sirpyerre/blog-api/internal/core/domain"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestPublisher_Deliver(t *testing.T) {
	w := &fakeWriter{}
	p := &Publisher{writer: w}
	at := time.Date(2025, time.April, 3, 10, 0, 0, 0, time.UTC)

	err := p.Deliver(context.Background(), domain.BlogEvent{
		Type: domain.EventCommentAdded, PostID: 12, UserID: 2, CommentID: 5, OccurredAt: at,
	})
	if err != nil {
		t.Fatalf("deliver: %v", err)
	}
	if len(w.msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(w.msgs))
	}

	msg := w.msgs[0]
	if string(msg.Key) != "12" {
		t.Fatalf("expected post id key, got %q", msg.Key)
	}
	if len(msg.Headers) != 1 || string(msg.Headers[0].Value) != "comment.added" {
		t.Fatalf("unexpected headers: %+v", msg.Headers)
	}
	var decoded domain.BlogEvent
	if err := json.Unmarshal(msg.Value, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.CommentID != 5 || !decoded.OccurredAt.Equal(at) {
		t.Fatalf("unexpected payload: %+v", decoded)
	}
}

func TestPublisher_KeyFallsBackToUser(t *testing.T) {
	w := &fakeWriter{}
	p := &Publisher{writer: w}

	if err := p.Deliver(context.Background(), domain.BlogEvent{Type: domain.EventUserRegistered, UserID: 3}); err != nil {
		t.Fatalf("deliver: %v", err)
	}
	if string(w.msgs[0].Key) != "3" {
		t.Fatalf("expected user id key, got %q", w.msgs[0].Key)
	}
}

func TestPublisher_WriteError(t *testing.T) {
	p := &Publisher{writer: &fakeWriter{err: errors.New("no brokers")}}

	if err := p.Deliver(context.Background(), domain.BlogEvent{Type: domain.EventPostCreated, PostID: 1}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestPublisher_Close(t *testing.T) {
	w := &fakeWriter{}
	p := &Publisher{writer: w}
	if err := p.Close(); err != nil || !w.closed {
		t.Fatalf("expected writer to be closed")
	}
}
