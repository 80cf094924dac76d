package models

import "time"

type StationStatus string

const (
	StationActive      StationStatus = "activa"
	StationInactive    StationStatus = "inactiva"
	StationMaintenance StationStatus = "mantenimiento"
	StationBroken      StationStatus = "averiada"
)

// StationStatuses lists the valid statuses in display order
var StationStatuses = []StationStatus{StationActive, StationInactive, StationMaintenance, StationBroken}

func (s StationStatus) Valid() bool {
	switch s {
	case StationActive, StationInactive, StationMaintenance, StationBroken:
		return true
	}
	return false
}

type Station struct {
	ID               string        `json:"id" db:"id"`
	Name             string        `json:"name" db:"name"`
	Location         string        `json:"location" db:"location"`
	Latitude         *float64      `json:"latitude,omitempty" db:"latitude"`
	Longitude        *float64      `json:"longitude,omitempty" db:"longitude"`
	Status           StationStatus `json:"status" db:"status"`
	InstallationDate *time.Time    `json:"installation_date,omitempty" db:"installation_date"`
	CreatedAt        time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at" db:"updated_at"`
	CreatedBy        *string       `json:"created_by,omitempty" db:"created_by"`
}

// StationInput holds the fields accepted when creating a station
type StationInput struct {
	Name             string        `json:"name" schema:"name"`
	Location         string        `json:"location" schema:"location"`
	Latitude         *float64      `json:"latitude" schema:"latitude"`
	Longitude        *float64      `json:"longitude" schema:"longitude"`
	Status           StationStatus `json:"status" schema:"status"`
	InstallationDate *time.Time    `json:"installation_date" schema:"installation_date"`
}

// Validate checks required fields and applies the default status
func (in *StationInput) Validate() error {
	if in.Status == "" {
		in.Status = StationActive
	}
	f := FieldErrors{}
	f.require("name", in.Name)
	f.require("location", in.Location)
	f.check("status", in.Status.Valid(), "is not a valid station status")
	f.check("latitude", validLatitude(in.Latitude), "must be between -90 and 90")
	f.check("longitude", validLongitude(in.Longitude), "must be between -180 and 180")
	return f.Err("station")
}

// StationUpdate is a partial update; nil fields are left unchanged
type StationUpdate struct {
	Name             *string        `json:"name" schema:"name"`
	Location         *string        `json:"location" schema:"location"`
	Latitude         *float64       `json:"latitude" schema:"latitude"`
	Longitude        *float64       `json:"longitude" schema:"longitude"`
	Status           *StationStatus `json:"status" schema:"status"`
	InstallationDate *time.Time     `json:"installation_date" schema:"installation_date"`
}

func (in *StationUpdate) Validate() error {
	f := FieldErrors{}
	f.requirePtr("name", in.Name)
	f.requirePtr("location", in.Location)
	if in.Status != nil {
		f.check("status", in.Status.Valid(), "is not a valid station status")
	}
	f.check("latitude", validLatitude(in.Latitude), "must be between -90 and 90")
	f.check("longitude", validLongitude(in.Longitude), "must be between -180 and 180")
	return f.Err("station")
}

// Apply copies the set fields onto the station
func (in *StationUpdate) Apply(s *Station) {
	if in.Name != nil {
		s.Name = *in.Name
	}
	if in.Location != nil {
		s.Location = *in.Location
	}
	if in.Latitude != nil {
		s.Latitude = in.Latitude
	}
	if in.Longitude != nil {
		s.Longitude = in.Longitude
	}
	if in.Status != nil {
		s.Status = *in.Status
	}
	if in.InstallationDate != nil {
		s.InstallationDate = in.InstallationDate
	}
}

// StationDetail aggregates a station with everything it owns
type StationDetail struct {
	Station          *Station           `json:"station"`
	Sensors          []*Sensor          `json:"sensors"`
	Router           *Router            `json:"router,omitempty"`
	TechnicalDetails []*TechnicalDetail `json:"technical_details"`
	Breakdowns       []*Breakdown       `json:"breakdowns"`
	Interventions    []*Intervention    `json:"interventions"`
	RecentHistory    []*StationHistory  `json:"recent_history"`
	OpenBreakdowns   int                `json:"open_breakdowns"`
}

// ActiveBreakdowns returns the breakdowns that are not resolved yet
func (d *StationDetail) ActiveBreakdowns() []*Breakdown {
	active := make([]*Breakdown, 0)
	for _, b := range d.Breakdowns {
		if !b.Resolved {
			active = append(active, b)
		}
	}
	return active
}

func (d *StationDetail) HasActiveBreakdowns() bool {
	return len(d.ActiveBreakdowns()) > 0
}

// Dashboard summarises the whole fleet
type Dashboard struct {
	TotalStations          int                   `json:"total_stations"`
	StationsByStatus       map[StationStatus]int `json:"stations_by_status"`
	OpenBreakdowns         int                   `json:"open_breakdowns"`
	ScheduledInterventions int                   `json:"scheduled_interventions"`
	RecentBreakdowns       []*Breakdown          `json:"recent_breakdowns"`
}
