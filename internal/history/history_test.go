package history

import (
	"context"
	"testing"
	"time"

	"github.com/itsatony/stationhub/internal/models"
)

type memoryHistory struct {
	records []*models.StationHistory
	err     error
}

func (m *memoryHistory) Append(ctx context.Context, record *models.StationHistory) error {
	if m.err != nil {
		return m.err
	}
	m.records = append(m.records, record)
	return nil
}

func (m *memoryHistory) Get(ctx context.Context, id string) (*models.StationHistory, error) {
	return nil, nil
}

func (m *memoryHistory) ListByStation(ctx context.Context, stationID string, limit int) ([]*models.StationHistory, error) {
	return m.records, nil
}

func (m *memoryHistory) Delete(ctx context.Context, id string) error { return nil }

func (m *memoryHistory) DeleteByStation(ctx context.Context, stationID string) (int64, error) {
	return 0, nil
}

func TestValue(t *testing.T) {
	var nilStr *string
	var nilTime *time.Time
	empty := ""
	status := models.StationBroken
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   interface{}
		want *string
	}{
		{"nil", nil, nil},
		{"typed nil string", nilStr, nil},
		{"typed nil time", nilTime, nil},
		{"empty string", "", Text("")},
		{"pointer to empty string", &empty, Text("")},
		{"named string", status, Text("averiada")},
		{"pointer to named string", &status, Text("averiada")},
		{"float", 28.3, Text("28.3")},
		{"bool", false, Text("false")},
		{"time", ts, Text("2024-05-01T12:00:00Z")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Value(tt.in)
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("Value(%v) = %q, want nil", tt.in, *got)
			case tt.want != nil && got == nil:
				t.Errorf("Value(%v) = nil, want %q", tt.in, *tt.want)
			case tt.want != nil && *got != *tt.want:
				t.Errorf("Value(%v) = %q, want %q", tt.in, *got, *tt.want)
			}
		})
	}
}

func TestRecord(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 123456789, time.UTC)
	recorder := NewRecorder(func() time.Time { return fixed })
	repo := &memoryHistory{}

	record, err := recorder.Record(context.Background(), repo, Change{
		StationID: "st_1",
		Action:    models.ActionStatusChanged,
		Field:     Text("status"),
		OldValue:  Value(models.StationActive),
		NewValue:  Value(models.StationBroken),
		ActorID:   "usr_1",
	})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if len(repo.records) != 1 {
		t.Fatalf("expected one appended record, got %d", len(repo.records))
	}
	if record.ID == "" || record.ChangedBy == nil || *record.ChangedBy != "usr_1" {
		t.Errorf("unexpected record: %+v", record)
	}
	if record.Description != nil {
		t.Error("description must stay nil when not supplied")
	}
	if !record.CreatedAt.Equal(fixed.Truncate(time.Microsecond)) {
		t.Errorf("created_at = %v", record.CreatedAt)
	}
}

func TestRecordWithoutActor(t *testing.T) {
	recorder := NewRecorder(nil)
	repo := &memoryHistory{}

	record, err := recorder.Record(context.Background(), repo, Change{StationID: "st_1", Action: models.ActionUpdated})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if record.ChangedBy != nil {
		t.Errorf("expected nil changed_by, got %q", *record.ChangedBy)
	}
}

func TestRecordStampsAreStrictlyIncreasing(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	recorder := NewRecorder(func() time.Time { return fixed })
	repo := &memoryHistory{}

	for _, action := range []models.HistoryAction{models.ActionStatusChanged, models.ActionUpdated, models.ActionSensorAdded} {
		if _, err := recorder.Record(context.Background(), repo, Change{StationID: "st_1", Action: action}); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	for i := 1; i < len(repo.records); i++ {
		prev, cur := repo.records[i-1].CreatedAt, repo.records[i].CreatedAt
		if !cur.After(prev) {
			t.Errorf("record %d stamped %v, not after %v", i, cur, prev)
		}
	}
	if !repo.records[0].CreatedAt.Equal(fixed) {
		t.Errorf("first record should keep the clock time, got %v", repo.records[0].CreatedAt)
	}
}
