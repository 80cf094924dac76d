package models

import "time"

// TechnicalDetail is a free-form key/value specification grouped by category
type TechnicalDetail struct {
	ID         string    `json:"id" db:"id"`
	StationID  string    `json:"station_id" db:"station_id"`
	DetailType string    `json:"detail_type" db:"detail_type"`
	Key        string    `json:"key" db:"detail_key"`
	Value      string    `json:"value" db:"value"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

type TechnicalDetailInput struct {
	DetailType string `json:"detail_type" schema:"detail_type"`
	Key        string `json:"key" schema:"key"`
	Value      string `json:"value" schema:"value"`
}

func (in *TechnicalDetailInput) Validate() error {
	f := FieldErrors{}
	f.require("detail_type", in.DetailType)
	f.require("key", in.Key)
	f.require("value", in.Value)
	return f.Err("technical detail")
}

type TechnicalDetailUpdate struct {
	DetailType *string `json:"detail_type" schema:"detail_type"`
	Key        *string `json:"key" schema:"key"`
	Value      *string `json:"value" schema:"value"`
}

func (in *TechnicalDetailUpdate) Validate() error {
	f := FieldErrors{}
	f.requirePtr("detail_type", in.DetailType)
	f.requirePtr("key", in.Key)
	f.requirePtr("value", in.Value)
	return f.Err("technical detail")
}

func (in *TechnicalDetailUpdate) Apply(d *TechnicalDetail) {
	if in.DetailType != nil {
		d.DetailType = *in.DetailType
	}
	if in.Key != nil {
		d.Key = *in.Key
	}
	if in.Value != nil {
		d.Value = *in.Value
	}
}
