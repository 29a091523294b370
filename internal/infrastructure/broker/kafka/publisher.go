// Package kafka ships blog events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/sirpyerre/blog-api/internal/core/domain"
)

const (
	defaultBatchTimeout = 10 * time.Millisecond
	defaultWriteTimeout = 5 * time.Second
)

// Config captures the broker settings.
type Config struct {
	Brokers []string
	Topic   string
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes each event as one JSON message keyed by post id, so every
// event of a post lands on the same partition in order.
type Publisher struct {
	writer messageWriter
}

func NewPublisher(cfg Config) *Publisher {
	return &Publisher{writer: &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           defaultBatchTimeout,
		WriteTimeout:           defaultWriteTimeout,
		AllowAutoTopicCreation: true,
	}}
}

// Deliver implements queue.Sink.
func (p *Publisher) Deliver(ctx context.Context, event domain.BlogEvent) error {
	msg, err := encode(event)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write: %w", err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

func encode(event domain.BlogEvent) (kafka.Message, error) {
	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encode event: %w", err)
	}
	key := event.PostID
	if key == 0 {
		key = event.UserID
	}
	return kafka.Message{
		Key:   []byte(strconv.FormatInt(key, 10)),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}, nil
}
