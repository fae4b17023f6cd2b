package mykafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	TopicUserEvents    = "user_events"
	TopicProductEvents = "product_events"
	TopicOrderEvents   = "order_events"
)

type Publisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	writer messageWriter
}

func NewProducer(brokers []string) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka: no brokers configured")
	}

	// one event per request; flush immediately
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchSize:              1,
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           5 * time.Second,
	}

	return &Producer{writer: w}, nil
}

func (p *Producer) PublishEvent(ctx context.Context, topic, key string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: json.Marshal failed: %w", err)
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now().UTC(),
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write to %s failed: %w", topic, err)
	}
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

// Nop drops every event. Used when no brokers are configured.
type Nop struct{}

func (Nop) PublishEvent(context.Context, string, string, any) error { return nil }

func (Nop) Close() error { return nil }
