package models

import (
	"net"
	"time"
)

type RouterStatus string

const (
	RouterOnline      RouterStatus = "online"
	RouterOffline     RouterStatus = "offline"
	RouterMaintenance RouterStatus = "mantenimiento"
)

func (s RouterStatus) Valid() bool {
	switch s {
	case RouterOnline, RouterOffline, RouterMaintenance:
		return true
	}
	return false
}

// Router is the single network router of a station
type Router struct {
	ID              string       `json:"id" db:"id"`
	StationID       string       `json:"station_id" db:"station_id"`
	Model           string       `json:"model" db:"model"`
	IPAddress       string       `json:"ip_address" db:"ip_address"`
	MACAddress      string       `json:"mac_address" db:"mac_address"`
	SerialNumber    string       `json:"serial_number" db:"serial_number"`
	FirmwareVersion string       `json:"firmware_version" db:"firmware_version"`
	Status          RouterStatus `json:"status" db:"status"`
	CreatedAt       time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at" db:"updated_at"`
}

// RouterInput replaces the whole router configuration
type RouterInput struct {
	Model           string       `json:"model" schema:"model"`
	IPAddress       string       `json:"ip_address" schema:"ip_address"`
	MACAddress      string       `json:"mac_address" schema:"mac_address"`
	SerialNumber    string       `json:"serial_number" schema:"serial_number"`
	FirmwareVersion string       `json:"firmware_version" schema:"firmware_version"`
	Status          RouterStatus `json:"status" schema:"status"`
}

func (in *RouterInput) Validate() error {
	if in.Status == "" {
		in.Status = RouterOnline
	}
	f := FieldErrors{}
	f.require("model", in.Model)
	f.check("status", in.Status.Valid(), "is not a valid router status")
	if in.IPAddress != "" {
		f.check("ip_address", net.ParseIP(in.IPAddress) != nil, "is not a valid IP address")
	}
	if in.MACAddress != "" {
		_, err := net.ParseMAC(in.MACAddress)
		f.check("mac_address", err == nil, "is not a valid MAC address")
	}
	return f.Err("router")
}

// Apply overwrites the configurable router fields
func (in *RouterInput) Apply(r *Router) {
	r.Model = in.Model
	r.IPAddress = in.IPAddress
	r.MACAddress = in.MACAddress
	r.SerialNumber = in.SerialNumber
	r.FirmwareVersion = in.FirmwareVersion
	r.Status = in.Status
}
