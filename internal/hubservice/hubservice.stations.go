package hubservice

import (
	"context"
	"fmt"

	"github.com/itsatony/stationhub/internal/access"
	"github.com/itsatony/stationhub/internal/cleanup"
	"github.com/itsatony/stationhub/internal/errors"
	"github.com/itsatony/stationhub/internal/history"
	"github.com/itsatony/stationhub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

const (
	recentHistoryLimit    = 10
	maxHistoryLimit       = 100
	dashboardRecentFaults = 5
)

// CreateStation creates a station owned by the actor. Names are unique.
func (s *HubService) CreateStation(ctx context.Context, actor *access.Actor, in models.StationInput) (*models.Station, error) {
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	ts := s.timestamp()
	owner := actor.ID
	station := &models.Station{
		ID:               nuts.NID("st", 12),
		Name:             in.Name,
		Location:         in.Location,
		Latitude:         in.Latitude,
		Longitude:        in.Longitude,
		Status:           in.Status,
		InstallationDate: in.InstallationDate,
		CreatedAt:        ts,
		UpdatedAt:        ts,
		CreatedBy:        &owner,
	}

	err := s.mutate(ctx, actor, func(u *unit) error {
		if err := u.ensureNameAvailable(station.Name); err != nil {
			return err
		}
		if err := u.Stations.Create(ctx, station); err != nil {
			return err
		}
		return u.record(history.Change{
			StationID:   station.ID,
			Action:      models.ActionCreated,
			Description: history.Textf("Station %s created", station.Name),
		})
	})
	if err != nil {
		return nil, err
	}

	nuts.L.Infof("[StationService] Created station %s (%s)", station.Name, station.ID)
	return station, nil
}

// ensureNameAvailable fails with a validation error when a station already uses name
func (u *unit) ensureNameAvailable(name string) error {
	_, err := u.Stations.GetByName(u.ctx, name)
	if err == nil {
		return errors.NewValidationError(fmt.Sprintf("a station named %q already exists", name), nil).
			WithDetails(map[string]string{"name": "already exists"})
	}
	if errors.IsNotFound(err) {
		return nil
	}
	return err
}

// UpdateStation applies a partial update. A status change is recorded as its
// own status_changed entry in addition to the generic updated entry.
func (s *HubService) UpdateStation(ctx context.Context, actor *access.Actor, id string, in models.StationUpdate) (*models.Station, error) {
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var station *models.Station
	err := s.mutate(ctx, actor, func(u *unit) error {
		var err error
		station, err = u.station(id)
		if err != nil {
			return err
		}

		if in.Name != nil && *in.Name != station.Name {
			if err := u.ensureNameAvailable(*in.Name); err != nil {
				return err
			}
		}

		oldStatus := station.Status
		in.Apply(station)
		station.UpdatedAt = s.timestamp()
		if err := u.Stations.Update(ctx, station); err != nil {
			return err
		}

		if station.Status != oldStatus {
			if err := u.record(history.Change{
				StationID: station.ID,
				Action:    models.ActionStatusChanged,
				Field:     history.Text("status"),
				OldValue:  history.Value(oldStatus),
				NewValue:  history.Value(station.Status),
			}); err != nil {
				return err
			}
		}
		return u.record(history.Change{
			StationID:   station.ID,
			Action:      models.ActionUpdated,
			Description: history.Text("Station information updated"),
		})
	})
	if err != nil {
		return nil, err
	}
	return station, nil
}

// DeleteStation removes the station and everything it owns; admin only
func (s *HubService) DeleteStation(ctx context.Context, actor *access.Actor, id string) (*cleanup.Report, error) {
	if err := access.RequireAdmin(actor); err != nil {
		return nil, err
	}

	report, err := s.Cleanup.DeleteStation(ctx, id)
	if err != nil {
		return nil, err
	}
	s.monitor.RecordMutation("station_deleted")
	nuts.L.Infof("[StationService] Station %s deleted by %s", id, actor.Username)
	return report, nil
}

func (s *HubService) GetStation(ctx context.Context, actor *access.Actor, id string) (*models.Station, error) {
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	return s.store.Repos().Stations.Get(ctx, id)
}

func (s *HubService) ListStations(ctx context.Context, actor *access.Actor) ([]*models.Station, error) {
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	return s.store.Repos().Stations.List(ctx)
}

// GetStationDetail loads a station with its children and the latest history
func (s *HubService) GetStationDetail(ctx context.Context, actor *access.Actor, id string) (*models.StationDetail, error) {
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	repos := s.store.Repos()
	station, err := repos.Stations.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &models.StationDetail{Station: station}
	if detail.Sensors, err = repos.Sensors.ListByStation(ctx, id); err != nil {
		return nil, err
	}
	router, err := repos.Routers.GetByStation(ctx, id)
	switch {
	case err == nil:
		detail.Router = router
	case !errors.IsNotFound(err):
		return nil, err
	}
	if detail.TechnicalDetails, err = repos.Details.ListByStation(ctx, id); err != nil {
		return nil, err
	}
	if detail.Breakdowns, err = repos.Breakdowns.ListByStation(ctx, id); err != nil {
		return nil, err
	}
	if detail.Interventions, err = repos.Interventions.ListByStation(ctx, id); err != nil {
		return nil, err
	}
	if detail.RecentHistory, err = repos.History.ListByStation(ctx, id, recentHistoryLimit); err != nil {
		return nil, err
	}
	s.withDurations(detail.Breakdowns...)
	detail.OpenBreakdowns = len(detail.ActiveBreakdowns())
	return detail, nil
}

// Dashboard summarises stations, open breakdowns and pending interventions
func (s *HubService) Dashboard(ctx context.Context, actor *access.Actor) (*models.Dashboard, error) {
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	repos := s.store.Repos()
	byStatus, err := repos.Stations.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	openBreakdowns, err := repos.Breakdowns.CountOpen(ctx)
	if err != nil {
		return nil, err
	}
	scheduled, err := repos.Interventions.CountScheduled(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := repos.Breakdowns.ListOpen(ctx, dashboardRecentFaults)
	if err != nil {
		return nil, err
	}

	s.withDurations(recent...)

	total := 0
	for _, n := range byStatus {
		total += n
	}
	return &models.Dashboard{
		TotalStations:          total,
		StationsByStatus:       byStatus,
		OpenBreakdowns:         openBreakdowns,
		ScheduledInterventions: scheduled,
		RecentBreakdowns:       recent,
	}, nil
}
