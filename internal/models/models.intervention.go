package models

import "time"

// Intervention is a maintenance action. It is scheduled while InterventionDate
// is nil and completed once InterventionDate and TechnicianName are set.
type Intervention struct {
	ID               string     `json:"id" db:"id"`
	StationID        string     `json:"station_id" db:"station_id"`
	InterventionType string     `json:"intervention_type" db:"intervention_type"`
	Title            string     `json:"title" db:"title"`
	Description      string     `json:"description" db:"description"`
	ScheduledDate    *time.Time `json:"scheduled_date,omitempty" db:"scheduled_date"`
	InterventionDate *time.Time `json:"intervention_date,omitempty" db:"intervention_date"`
	TechnicianName   *string    `json:"technician_name,omitempty" db:"technician_name"`
	DurationHours    *float64   `json:"duration_hours,omitempty" db:"duration_hours"`
	Cost             *float64   `json:"cost,omitempty" db:"cost"`
	PerformedBy      *string    `json:"performed_by,omitempty" db:"performed_by"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

func (i *Intervention) IsCompleted() bool {
	return i.InterventionDate != nil
}

// InterventionInput is shared by schedule and add. ScheduledDate only applies to
// scheduling; InterventionDate and TechnicianName only to add.
type InterventionInput struct {
	InterventionType string     `json:"intervention_type" schema:"intervention_type"`
	Title            string     `json:"title" schema:"title"`
	Description      string     `json:"description" schema:"description"`
	ScheduledDate    *time.Time `json:"scheduled_date" schema:"scheduled_date"`
	InterventionDate *time.Time `json:"intervention_date" schema:"intervention_date"`
	TechnicianName   string     `json:"technician_name" schema:"technician_name"`
	DurationHours    *float64   `json:"duration_hours" schema:"duration_hours"`
	Cost             *float64   `json:"cost" schema:"cost"`
}

func (in *InterventionInput) Validate() error {
	f := FieldErrors{}
	f.require("intervention_type", in.InterventionType)
	f.require("title", in.Title)
	f.require("description", in.Description)
	f.check("duration_hours", in.DurationHours == nil || *in.DurationHours >= 0, "must not be negative")
	f.check("cost", in.Cost == nil || *in.Cost >= 0, "must not be negative")
	return f.Err("intervention")
}

type CompleteInterventionInput struct {
	TechnicianName   string     `json:"technician_name" schema:"technician_name"`
	InterventionDate *time.Time `json:"intervention_date" schema:"intervention_date"`
	DurationHours    *float64   `json:"duration_hours" schema:"duration_hours"`
	Cost             *float64   `json:"cost" schema:"cost"`
}

// InterventionUpdate edits descriptive fields; the lifecycle dates are owned by
// schedule, add and complete.
type InterventionUpdate struct {
	InterventionType *string    `json:"intervention_type" schema:"intervention_type"`
	Title            *string    `json:"title" schema:"title"`
	Description      *string    `json:"description" schema:"description"`
	ScheduledDate    *time.Time `json:"scheduled_date" schema:"scheduled_date"`
	DurationHours    *float64   `json:"duration_hours" schema:"duration_hours"`
	Cost             *float64   `json:"cost" schema:"cost"`
}

func (in *InterventionUpdate) Validate() error {
	f := FieldErrors{}
	f.requirePtr("intervention_type", in.InterventionType)
	f.requirePtr("title", in.Title)
	f.requirePtr("description", in.Description)
	f.check("duration_hours", in.DurationHours == nil || *in.DurationHours >= 0, "must not be negative")
	f.check("cost", in.Cost == nil || *in.Cost >= 0, "must not be negative")
	return f.Err("intervention")
}

func (in *InterventionUpdate) Apply(i *Intervention) {
	if in.InterventionType != nil {
		i.InterventionType = *in.InterventionType
	}
	if in.Title != nil {
		i.Title = *in.Title
	}
	if in.Description != nil {
		i.Description = *in.Description
	}
	if in.ScheduledDate != nil {
		i.ScheduledDate = in.ScheduledDate
	}
	if in.DurationHours != nil {
		i.DurationHours = in.DurationHours
	}
	if in.Cost != nil {
		i.Cost = in.Cost
	}
}
