package models

import "time"

type SensorStatus string

const (
	SensorOperative   SensorStatus = "operativo"
	SensorBroken      SensorStatus = "averiado"
	SensorCalibrating SensorStatus = "en_calibracion"
)

func (s SensorStatus) Valid() bool {
	switch s {
	case SensorOperative, SensorBroken, SensorCalibrating:
		return true
	}
	return false
}

type Sensor struct {
	ID               string       `json:"id" db:"id"`
	StationID        string       `json:"station_id" db:"station_id"`
	SensorType       string       `json:"sensor_type" db:"sensor_type"`
	Model            string       `json:"model" db:"model"`
	SerialNumber     string       `json:"serial_number" db:"serial_number"`
	Status           SensorStatus `json:"status" db:"status"`
	InstallationDate *time.Time   `json:"installation_date,omitempty" db:"installation_date"`
	LastCalibration  *time.Time   `json:"last_calibration,omitempty" db:"last_calibration"`
	CreatedAt        time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at" db:"updated_at"`
}

type SensorInput struct {
	SensorType       string       `json:"sensor_type" schema:"sensor_type"`
	Model            string       `json:"model" schema:"model"`
	SerialNumber     string       `json:"serial_number" schema:"serial_number"`
	Status           SensorStatus `json:"status" schema:"status"`
	InstallationDate *time.Time   `json:"installation_date" schema:"installation_date"`
	LastCalibration  *time.Time   `json:"last_calibration" schema:"last_calibration"`
}

func (in *SensorInput) Validate() error {
	if in.Status == "" {
		in.Status = SensorOperative
	}
	f := FieldErrors{}
	f.require("sensor_type", in.SensorType)
	f.check("status", in.Status.Valid(), "is not a valid sensor status")
	return f.Err("sensor")
}

// SensorUpdate is a partial update; nil fields are left unchanged
type SensorUpdate struct {
	SensorType       *string       `json:"sensor_type" schema:"sensor_type"`
	Model            *string       `json:"model" schema:"model"`
	SerialNumber     *string       `json:"serial_number" schema:"serial_number"`
	Status           *SensorStatus `json:"status" schema:"status"`
	InstallationDate *time.Time    `json:"installation_date" schema:"installation_date"`
	LastCalibration  *time.Time    `json:"last_calibration" schema:"last_calibration"`
}

func (in *SensorUpdate) Validate() error {
	f := FieldErrors{}
	f.requirePtr("sensor_type", in.SensorType)
	if in.Status != nil {
		f.check("status", in.Status.Valid(), "is not a valid sensor status")
	}
	return f.Err("sensor")
}

func (in *SensorUpdate) Apply(s *Sensor) {
	if in.SensorType != nil {
		s.SensorType = *in.SensorType
	}
	if in.Model != nil {
		s.Model = *in.Model
	}
	if in.SerialNumber != nil {
		s.SerialNumber = *in.SerialNumber
	}
	if in.Status != nil {
		s.Status = *in.Status
	}
	if in.InstallationDate != nil {
		s.InstallationDate = in.InstallationDate
	}
	if in.LastCalibration != nil {
		s.LastCalibration = in.LastCalibration
	}
}
