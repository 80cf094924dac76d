package models

import "time"

// HistoryAction tags what a history record describes
type HistoryAction string

const (
	ActionCreated       HistoryAction = "created"
	ActionUpdated       HistoryAction = "updated"
	ActionStatusChanged HistoryAction = "status_changed"

	ActionSensorAdded   HistoryAction = "sensor_added"
	ActionSensorUpdated HistoryAction = "sensor_updated"
	ActionSensorRemoved HistoryAction = "sensor_removed"

	ActionRouterConfigured HistoryAction = "router_configured"
	ActionRouterRemoved    HistoryAction = "router_removed"

	ActionDetailAdded   HistoryAction = "detail_added"
	ActionDetailUpdated HistoryAction = "detail_updated"
	ActionDetailRemoved HistoryAction = "detail_removed"

	ActionBreakdownReported HistoryAction = "breakdown_reported"
	ActionBreakdownUpdated  HistoryAction = "breakdown_updated"
	ActionBreakdownResolved HistoryAction = "breakdown_resolved"
	ActionBreakdownDeleted  HistoryAction = "breakdown_deleted"

	ActionInterventionScheduled HistoryAction = "intervention_scheduled"
	ActionInterventionAdded     HistoryAction = "intervention_added"
	ActionInterventionCompleted HistoryAction = "intervention_completed"
	ActionInterventionUpdated   HistoryAction = "intervention_updated"
	ActionInterventionDeleted   HistoryAction = "intervention_deleted"
)

// StationHistory is one append-only audit record. Nil pointers are SQL NULL,
// which is distinct from an empty string.
type StationHistory struct {
	ID           string        `json:"id" db:"id"`
	StationID    string        `json:"station_id" db:"station_id"`
	Action       HistoryAction `json:"action" db:"action"`
	FieldChanged *string       `json:"field_changed" db:"field_changed"`
	OldValue     *string       `json:"old_value" db:"old_value"`
	NewValue     *string       `json:"new_value" db:"new_value"`
	Description  *string       `json:"description" db:"description"`
	ChangedBy    *string       `json:"changed_by" db:"changed_by"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
}
