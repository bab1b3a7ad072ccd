// Package events publishes domain events (booking.created, promo.applied) to
// Kafka. Publishing is strictly best-effort: a broker outage must never fail
// the API request that produced the event.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"booklt/pkg/logger"
)

const (
	TypeBookingCreated = "booking.created"
	TypePromoApplied   = "promo.applied"

	headerEventID   = "event-id"
	headerEventType = "event-type"
	headerSource    = "source"
	headerTimestamp = "timestamp"
)

// Producer wraps a kafka-go writer. A nil *Producer is valid and silently
// drops events, so callers never branch on whether Kafka is configured.
type Producer struct {
	writer *kafka.Writer
	source string
	log    *logger.Logger
}

func NewProducer(brokers []string, topic, source string, log *logger.Logger) *Producer {
	if len(brokers) == 0 {
		log.Info("Kafka brokers not configured, domain events disabled")
		return nil
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{}, // hash by key keeps per-entity ordering
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 50 * time.Millisecond,
		Logger:       kafka.LoggerFunc(func(string, ...any) {}),
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
			log.Error("Kafka writer error", "detail", msg)
		}),
	}

	log.Info("Kafka event producer initialized", "topic", topic, "brokers", len(brokers))
	return &Producer{writer: writer, source: source, log: log}
}

// Emit publishes one event. Failures are logged and swallowed.
func (p *Producer) Emit(ctx context.Context, eventType, key string, payload any) {
	if p == nil {
		return
	}

	value, err := json.Marshal(payload)
	if err != nil {
		p.log.Error("Failed to encode event payload", "event_type", eventType, "error", err)
		return
	}

	now := time.Now().UTC()
	msg := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  now,
		Headers: []kafka.Header{
			{Key: headerEventID, Value: []byte(uuid.NewString())},
			{Key: headerEventType, Value: []byte(eventType)},
			{Key: headerSource, Value: []byte(p.source)},
			{Key: headerTimestamp, Value: []byte(now.Format(time.RFC3339))},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("Failed to publish event", "event_type", eventType, "key", key, "error", err)
		return
	}

	p.log.Debug("Event published", "event_type", eventType, "key", key)
}

func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}
