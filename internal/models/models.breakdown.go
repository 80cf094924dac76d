package models

import "time"

type Severity string

const (
	SeverityLow      Severity = "baja"
	SeverityMedium   Severity = "media"
	SeverityHigh     Severity = "alta"
	SeverityCritical Severity = "critica"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// Breakdown is a reported fault. It is open until resolved; resolution is final.
type Breakdown struct {
	ID              string     `json:"id" db:"id"`
	StationID       string     `json:"station_id" db:"station_id"`
	Title           string     `json:"title" db:"title"`
	Description     string     `json:"description" db:"description"`
	Severity        Severity   `json:"severity" db:"severity"`
	ReportedDate    time.Time  `json:"reported_date" db:"reported_date"`
	ReportedBy      *string    `json:"reported_by,omitempty" db:"reported_by"`
	Resolved        bool       `json:"resolved" db:"resolved"`
	ResolvedDate    *time.Time `json:"resolved_date,omitempty" db:"resolved_date"`
	ResolvedBy      *string    `json:"resolved_by,omitempty" db:"resolved_by"`
	ResolutionNotes *string    `json:"resolution_notes,omitempty" db:"resolution_notes"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`

	// DurationSeconds is derived, never stored; see StampDuration
	DurationSeconds int64 `json:"duration_seconds" db:"-"`
}

// Duration is how long the breakdown has been (or was) open. For an open
// breakdown it depends on now and therefore grows between calls.
func (b *Breakdown) Duration(now time.Time) time.Duration {
	if b.Resolved && b.ResolvedDate != nil {
		return b.ResolvedDate.Sub(b.ReportedDate)
	}
	return now.Sub(b.ReportedDate)
}

// StampDuration sets DurationSeconds from Duration(now)
func (b *Breakdown) StampDuration(now time.Time) {
	b.DurationSeconds = int64(b.Duration(now) / time.Second)
}

type BreakdownInput struct {
	Title       string   `json:"title" schema:"title"`
	Description string   `json:"description" schema:"description"`
	Severity    Severity `json:"severity" schema:"severity"`
}

func (in *BreakdownInput) Validate() error {
	if in.Severity == "" {
		in.Severity = SeverityMedium
	}
	f := FieldErrors{}
	f.require("title", in.Title)
	f.require("description", in.Description)
	f.check("severity", in.Severity.Valid(), "is not a valid severity")
	return f.Err("breakdown")
}

// BreakdownUpdate edits the report itself; resolution fields are not reachable here
type BreakdownUpdate struct {
	Title       *string   `json:"title" schema:"title"`
	Description *string   `json:"description" schema:"description"`
	Severity    *Severity `json:"severity" schema:"severity"`
}

func (in *BreakdownUpdate) Validate() error {
	f := FieldErrors{}
	f.requirePtr("title", in.Title)
	f.requirePtr("description", in.Description)
	if in.Severity != nil {
		f.check("severity", in.Severity.Valid(), "is not a valid severity")
	}
	return f.Err("breakdown")
}

func (in *BreakdownUpdate) Apply(b *Breakdown) {
	if in.Title != nil {
		b.Title = *in.Title
	}
	if in.Description != nil {
		b.Description = *in.Description
	}
	if in.Severity != nil {
		b.Severity = *in.Severity
	}
}

type ResolveBreakdownInput struct {
	ResolutionNotes string `json:"resolution_notes" schema:"resolution_notes"`
}
