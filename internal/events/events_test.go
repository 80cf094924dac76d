package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/itsatony/stationhub/internal/models"
	"github.com/segmentio/kafka-go"
)

type captureWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *captureWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *captureWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisherPublish(t *testing.T) {
	writer := &captureWriter{}
	publisher := &KafkaPublisher{writer: writer}

	field, oldValue, newValue := "status", "activa", "averiada"
	event := FromHistory(&models.StationHistory{
		ID:           "hist_1",
		StationID:    "st_1",
		Action:       models.ActionStatusChanged,
		FieldChanged: &field,
		OldValue:     &oldValue,
		NewValue:     &newValue,
		CreatedAt:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	})

	if err := publisher.Publish(context.Background(), event); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if len(writer.messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(writer.messages))
	}

	msg := writer.messages[0]
	if string(msg.Key) != "st_1" {
		t.Errorf("message key = %q, want station id", msg.Key)
	}

	var decoded HistoryEvent
	if err := json.Unmarshal(msg.Value, &decoded); err != nil {
		t.Fatalf("invalid payload: %v", err)
	}
	if decoded.Action != models.ActionStatusChanged || decoded.NewValue == nil || *decoded.NewValue != "averiada" {
		t.Errorf("unexpected payload: %+v", decoded)
	}

	if err := publisher.Close(); err != nil || !writer.closed {
		t.Error("expected writer to be closed")
	}
}

func TestKafkaPublisherPropagatesWriteError(t *testing.T) {
	publisher := &KafkaPublisher{writer: &captureWriter{err: errors.New("broker down")}}
	if err := publisher.Publish(context.Background(), HistoryEvent{StationID: "st_1"}); err == nil {
		t.Fatal("expected write error")
	}
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	if err := p.Publish(context.Background(), HistoryEvent{}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
