package hubservice

import (
	"context"

	"github.com/itsatony/stationhub/internal/access"
	"github.com/itsatony/stationhub/internal/errors"
	"github.com/itsatony/stationhub/internal/history"
	"github.com/itsatony/stationhub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// AddSensor attaches a new sensor to a station
func (s *HubService) AddSensor(ctx context.Context, actor *access.Actor, stationID string, in models.SensorInput) (*models.Sensor, error) {
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	ts := s.timestamp()
	sensor := &models.Sensor{
		ID:               nuts.NID("sn", 12),
		StationID:        stationID,
		SensorType:       in.SensorType,
		Model:            in.Model,
		SerialNumber:     in.SerialNumber,
		Status:           in.Status,
		InstallationDate: in.InstallationDate,
		LastCalibration:  in.LastCalibration,
		CreatedAt:        ts,
		UpdatedAt:        ts,
	}

	err := s.mutate(ctx, actor, func(u *unit) error {
		if _, err := u.station(stationID); err != nil {
			return err
		}
		if err := u.Sensors.Create(ctx, sensor); err != nil {
			return err
		}
		return u.record(history.Change{
			StationID:   stationID,
			Action:      models.ActionSensorAdded,
			Description: history.Textf("Sensor %s added", sensor.SensorType),
		})
	})
	if err != nil {
		return nil, err
	}
	return sensor, nil
}

// UpdateSensor applies a partial update. A status change is carried on the
// single sensor_updated record as field/old/new.
func (s *HubService) UpdateSensor(ctx context.Context, actor *access.Actor, id string, in models.SensorUpdate) (*models.Sensor, error) {
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var sensor *models.Sensor
	err := s.mutate(ctx, actor, func(u *unit) error {
		var err error
		if sensor, err = u.Sensors.Get(ctx, id); err != nil {
			return err
		}

		oldStatus := sensor.Status
		in.Apply(sensor)
		sensor.UpdatedAt = s.timestamp()
		if err := u.Sensors.Update(ctx, sensor); err != nil {
			return err
		}

		change := history.Change{
			StationID:   sensor.StationID,
			Action:      models.ActionSensorUpdated,
			Description: history.Textf("Sensor %s updated", sensor.SensorType),
		}
		if sensor.Status != oldStatus {
			change.Field = history.Text("status")
			change.OldValue = history.Value(oldStatus)
			change.NewValue = history.Value(sensor.Status)
		}
		return u.record(change)
	})
	if err != nil {
		return nil, err
	}
	return sensor, nil
}

func (s *HubService) DeleteSensor(ctx context.Context, actor *access.Actor, id string) error {
	if err := access.RequireAuthenticated(actor); err != nil {
		return err
	}

	return s.mutate(ctx, actor, func(u *unit) error {
		sensor, err := u.Sensors.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := u.Sensors.Delete(ctx, id); err != nil {
			return err
		}
		return u.record(history.Change{
			StationID:   sensor.StationID,
			Action:      models.ActionSensorRemoved,
			Description: history.Textf("Sensor %s removed", sensor.SensorType),
		})
	})
}

func (s *HubService) ListSensors(ctx context.Context, actor *access.Actor, stationID string) ([]*models.Sensor, error) {
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	repos := s.store.Repos()
	if _, err := repos.Stations.Get(ctx, stationID); err != nil {
		return nil, err
	}
	return repos.Sensors.ListByStation(ctx, stationID)
}

// ConfigureRouter creates the station's router or, if one exists, updates it in place
func (s *HubService) ConfigureRouter(ctx context.Context, actor *access.Actor, stationID string, in models.RouterInput) (*models.Router, error) {
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var router *models.Router
	err := s.mutate(ctx, actor, func(u *unit) error {
		if _, err := u.station(stationID); err != nil {
			return err
		}

		ts := s.timestamp()
		var err error
		router, err = u.Routers.GetByStation(ctx, stationID)
		switch {
		case err == nil:
			in.Apply(router)
			router.UpdatedAt = ts
			err = u.Routers.Update(ctx, router)
		case errors.IsNotFound(err):
			router = &models.Router{ID: nuts.NID("rt", 12), StationID: stationID, CreatedAt: ts, UpdatedAt: ts}
			in.Apply(router)
			err = u.Routers.Create(ctx, router)
		}
		if err != nil {
			return err
		}

		return u.record(history.Change{
			StationID:   stationID,
			Action:      models.ActionRouterConfigured,
			Description: history.Textf("Router %s configured", router.Model),
		})
	})
	if err != nil {
		return nil, err
	}
	return router, nil
}

func (s *HubService) GetRouter(ctx context.Context, actor *access.Actor, stationID string) (*models.Router, error) {
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	repos := s.store.Repos()
	if _, err := repos.Stations.Get(ctx, stationID); err != nil {
		return nil, err
	}
	return repos.Routers.GetByStation(ctx, stationID)
}

// DeleteRouter removes the router of a station
func (s *HubService) DeleteRouter(ctx context.Context, actor *access.Actor, stationID string) error {
	if err := access.RequireAuthenticated(actor); err != nil {
		return err
	}

	return s.mutate(ctx, actor, func(u *unit) error {
		router, err := u.Routers.GetByStation(ctx, stationID)
		if err != nil {
			return err
		}
		if err := u.Routers.Delete(ctx, router.ID); err != nil {
			return err
		}
		return u.record(history.Change{
			StationID:   stationID,
			Action:      models.ActionRouterRemoved,
			Description: history.Textf("Router %s removed", router.Model),
		})
	})
}

func (s *HubService) AddTechnicalDetail(ctx context.Context, actor *access.Actor, stationID string, in models.TechnicalDetailInput) (*models.TechnicalDetail, error) {
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	ts := s.timestamp()
	detail := &models.TechnicalDetail{
		ID:         nuts.NID("td", 12),
		StationID:  stationID,
		DetailType: in.DetailType,
		Key:        in.Key,
		Value:      in.Value,
		CreatedAt:  ts,
		UpdatedAt:  ts,
	}

	err := s.mutate(ctx, actor, func(u *unit) error {
		if _, err := u.station(stationID); err != nil {
			return err
		}
		if err := u.Details.Create(ctx, detail); err != nil {
			return err
		}
		return u.record(history.Change{
			StationID:   stationID,
			Action:      models.ActionDetailAdded,
			Description: history.Textf("Technical detail: %s", detail.Key),
		})
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

// UpdateTechnicalDetail records the value change when the value is edited
func (s *HubService) UpdateTechnicalDetail(ctx context.Context, actor *access.Actor, id string, in models.TechnicalDetailUpdate) (*models.TechnicalDetail, error) {
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var detail *models.TechnicalDetail
	err := s.mutate(ctx, actor, func(u *unit) error {
		var err error
		if detail, err = u.Details.Get(ctx, id); err != nil {
			return err
		}

		oldValue := detail.Value
		in.Apply(detail)
		detail.UpdatedAt = s.timestamp()
		if err := u.Details.Update(ctx, detail); err != nil {
			return err
		}

		change := history.Change{
			StationID:   detail.StationID,
			Action:      models.ActionDetailUpdated,
			Description: history.Textf("Technical detail updated: %s", detail.Key),
		}
		if detail.Value != oldValue {
			change.Field = history.Text(detail.Key)
			change.OldValue = history.Value(oldValue)
			change.NewValue = history.Value(detail.Value)
		}
		return u.record(change)
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *HubService) DeleteTechnicalDetail(ctx context.Context, actor *access.Actor, id string) error {
	if err := access.RequireAuthenticated(actor); err != nil {
		return err
	}

	return s.mutate(ctx, actor, func(u *unit) error {
		detail, err := u.Details.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := u.Details.Delete(ctx, id); err != nil {
			return err
		}
		return u.record(history.Change{
			StationID:   detail.StationID,
			Action:      models.ActionDetailRemoved,
			Description: history.Textf("Technical detail removed: %s", detail.Key),
		})
	})
}

func (s *HubService) ListTechnicalDetails(ctx context.Context, actor *access.Actor, stationID string) ([]*models.TechnicalDetail, error) {
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	repos := s.store.Repos()
	if _, err := repos.Stations.Get(ctx, stationID); err != nil {
		return nil, err
	}
	return repos.Details.ListByStation(ctx, stationID)
}
