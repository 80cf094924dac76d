// Package history appends audit records to the station ledger. Records are
// written through the repositories of the surrounding transaction so that a
// mutation and its history commit or roll back together.
package history

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/itsatony/stationhub/internal/models"
	"github.com/itsatony/stationhub/internal/repository"
	nuts "github.com/vaudience/go-nuts"
)

// Change describes one history record before it is persisted
type Change struct {
	StationID   string
	Action      models.HistoryAction
	Field       *string
	OldValue    *string
	NewValue    *string
	Description *string
	ActorID     string
}

// Recorder stamps and appends history records. Stamps are strictly
// increasing, so records written in one unit of work on a coarse clock still
// list newest first in the order they were made.
type Recorder struct {
	now  func() time.Time
	mu   sync.Mutex
	last time.Time
}

func NewRecorder(now func() time.Time) *Recorder {
	if now == nil {
		now = time.Now
	}
	return &Recorder{now: now}
}

// Record appends one immutable record and returns it
func (r *Recorder) Record(ctx context.Context, repo repository.HistoryRepository, c Change) (*models.StationHistory, error) {
	record := &models.StationHistory{
		ID:           nuts.NID("hist", 12),
		StationID:    c.StationID,
		Action:       c.Action,
		FieldChanged: c.Field,
		OldValue:     c.OldValue,
		NewValue:     c.NewValue,
		Description:  c.Description,
		CreatedAt:    r.stamp(),
	}
	if c.ActorID != "" {
		actor := c.ActorID
		record.ChangedBy = &actor
	}

	if err := repo.Append(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record %s for station %s: %w", c.Action, c.StationID, err)
	}
	return record, nil
}

func (r *Recorder) stamp() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := r.now().UTC().Truncate(time.Microsecond)
	if !ts.After(r.last) {
		ts = r.last.Add(time.Microsecond)
	}
	r.last = ts
	return ts
}

// Text returns a pointer to s
func Text(s string) *string {
	return &s
}

// Textf formats a description
func Textf(format string, args ...interface{}) *string {
	s := fmt.Sprintf(format, args...)
	return &s
}

// Value stringifies an old or new value. nil (including typed nil pointers)
// stays nil so that "no value" is distinguishable from "".
func Value(v interface{}) *string {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		v = rv.Elem().Interface()
	}

	var s string
	switch val := v.(type) {
	case string:
		s = val
	case time.Time:
		s = val.UTC().Format(time.RFC3339)
	case fmt.Stringer:
		s = val.String()
	default:
		s = fmt.Sprint(val)
	}
	return &s
}
