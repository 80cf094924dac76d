// Package events publishes committed history records to downstream consumers.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/itsatony/stationhub/internal/models"
	"github.com/segmentio/kafka-go"
)

// HistoryEvent is the message published for every committed history record
type HistoryEvent struct {
	ID          string               `json:"id"`
	StationID   string               `json:"station_id"`
	Action      models.HistoryAction `json:"action"`
	Field       *string              `json:"field,omitempty"`
	OldValue    *string              `json:"old_value,omitempty"`
	NewValue    *string              `json:"new_value,omitempty"`
	Description *string              `json:"description,omitempty"`
	ChangedBy   *string              `json:"changed_by,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
}

// FromHistory converts a persisted history record into an event
func FromHistory(h *models.StationHistory) HistoryEvent {
	return HistoryEvent{
		ID:          h.ID,
		StationID:   h.StationID,
		Action:      h.Action,
		Field:       h.FieldChanged,
		OldValue:    h.OldValue,
		NewValue:    h.NewValue,
		Description: h.Description,
		ChangedBy:   h.ChangedBy,
		CreatedAt:   h.CreatedAt,
	}
}

// Publisher delivers history events. Publishing happens after commit; a
// failure never undoes the mutation.
type Publisher interface {
	Publish(ctx context.Context, event HistoryEvent) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events to a Kafka topic keyed by station id, so all
// events of one station land on the same partition in order.
type KafkaPublisher struct {
	writer messageWriter
}

// NewKafkaPublisher creates a synchronous Kafka producer
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			Async:        false,
		},
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event HistoryEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal history event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.StationID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "action", Value: []byte(event.Action)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher discards events; used when no brokers are configured
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, event HistoryEvent) error { return nil }

func (NopPublisher) Close() error { return nil }
