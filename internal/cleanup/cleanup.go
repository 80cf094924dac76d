package cleanup

import (
	"context"
	"fmt"

	"github.com/itsatony/stationhub/internal/repository"
	nuts "github.com/vaudience/go-nuts"
)

// Events emitted after a station cascade has committed. Handlers receive the station id.
const (
	EventHistoryDeleted       = "history.deleted"
	EventInterventionsDeleted = "interventions.deleted"
	EventBreakdownsDeleted    = "breakdowns.deleted"
	EventDetailsDeleted       = "details.deleted"
	EventRouterDeleted        = "router.deleted"
	EventSensorsDeleted       = "sensors.deleted"
	EventStationDeleted       = "station.deleted"
)

// Report counts the rows removed by a cascade
type Report struct {
	StationID     string `json:"station_id"`
	History       int64  `json:"history"`
	Interventions int64  `json:"interventions"`
	Breakdowns    int64  `json:"breakdowns"`
	Details       int64  `json:"details"`
	Routers       int64  `json:"routers"`
	Sensors       int64  `json:"sensors"`
}

// CleanupService coordinates deletion of a station aggregate
type CleanupService struct {
	store  repository.Store
	events *nuts.EventEmitter
}

// New creates a new CleanupService
func New(store repository.Store) *CleanupService {
	return &CleanupService{
		store:  store,
		events: nuts.NewEventEmitter(),
	}
}

// DeleteStation removes a station and everything it owns in one transaction.
// Children go first, in a fixed order, so no foreign key is left dangling.
func (s *CleanupService) DeleteStation(ctx context.Context, stationID string) (*Report, error) {
	report := &Report{StationID: stationID}

	err := s.store.InTx(ctx, func(repos *repository.Repositories) error {
		// fail fast with not-found before touching children
		if _, err := repos.Stations.Get(ctx, stationID); err != nil {
			return err
		}

		steps := []struct {
			name  string
			del   func(context.Context, string) (int64, error)
			count *int64
		}{
			{"history", repos.History.DeleteByStation, &report.History},
			{"interventions", repos.Interventions.DeleteByStation, &report.Interventions},
			{"breakdowns", repos.Breakdowns.DeleteByStation, &report.Breakdowns},
			{"technical details", repos.Details.DeleteByStation, &report.Details},
			{"router", repos.Routers.DeleteByStation, &report.Routers},
			{"sensors", repos.Sensors.DeleteByStation, &report.Sensors},
		}
		for _, step := range steps {
			n, err := step.del(ctx, stationID)
			if err != nil {
				return fmt.Errorf("failed to delete %s: %w", step.name, err)
			}
			*step.count = n
		}

		// Finally, delete the station
		if err := repos.Stations.Delete(ctx, stationID); err != nil {
			return fmt.Errorf("failed to delete station: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Emit events after successful commit
	s.events.Emit(EventHistoryDeleted, stationID)
	s.events.Emit(EventInterventionsDeleted, stationID)
	s.events.Emit(EventBreakdownsDeleted, stationID)
	s.events.Emit(EventDetailsDeleted, stationID)
	s.events.Emit(EventRouterDeleted, stationID)
	s.events.Emit(EventSensorsDeleted, stationID)
	s.events.Emit(EventStationDeleted, stationID)

	nuts.L.Infof("[Cleanup] Station %s deleted (history=%d interventions=%d breakdowns=%d details=%d routers=%d sensors=%d)",
		stationID, report.History, report.Interventions, report.Breakdowns, report.Details, report.Routers, report.Sensors)
	return report, nil
}

// OnCleanup registers a callback for cleanup events
func (s *CleanupService) OnCleanup(event string, handler func(id string)) {
	s.events.On(event, nuts.NID("cleanup", 8), func(args ...interface{}) {
		if len(args) > 0 {
			if id, ok := args[0].(string); ok {
				handler(id)
			}
		}
	})
}
