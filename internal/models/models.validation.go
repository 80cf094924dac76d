package models

import (
	"fmt"
	"strings"

	"github.com/itsatony/stationhub/internal/errors"
)

// FieldErrors collects per-field validation messages
type FieldErrors map[string]string

func (f FieldErrors) require(field, value string) {
	if strings.TrimSpace(value) == "" {
		f[field] = "is required"
	}
}

func (f FieldErrors) requirePtr(field string, value *string) {
	if value != nil && strings.TrimSpace(*value) == "" {
		f[field] = "must not be empty"
	}
}

func (f FieldErrors) check(field string, ok bool, msg string) {
	if !ok {
		f[field] = msg
	}
}

// Err converts the collected messages into a validation APIError, or nil.
func (f FieldErrors) Err(entity string) error {
	if len(f) == 0 {
		return nil
	}
	return errors.NewValidationError(fmt.Sprintf("invalid %s input", entity), nil).WithDetails(map[string]string(f))
}

func validLatitude(v *float64) bool {
	return v == nil || (*v >= -90 && *v <= 90)
}

func validLongitude(v *float64) bool {
	return v == nil || (*v >= -180 && *v <= 180)
}
