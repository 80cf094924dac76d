package hubservice

import (
	"context"
	"strings"
	"time"

	"github.com/itsatony/stationhub/internal/access"
	"github.com/itsatony/stationhub/internal/errors"
	"github.com/itsatony/stationhub/internal/history"
	"github.com/itsatony/stationhub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// ScheduleIntervention creates a planned intervention. It stays scheduled
// (no intervention date, no technician) until completed.
func (s *HubService) ScheduleIntervention(ctx context.Context, actor *access.Actor, stationID string, in models.InterventionInput) (*models.Intervention, error) {
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	ts := s.timestamp()
	intervention := &models.Intervention{
		ID:               nuts.NID("iv", 12),
		StationID:        stationID,
		InterventionType: in.InterventionType,
		Title:            in.Title,
		Description:      in.Description,
		ScheduledDate:    utc(in.ScheduledDate),
		DurationHours:    in.DurationHours,
		Cost:             in.Cost,
		CreatedAt:        ts,
		UpdatedAt:        ts,
	}

	err := s.mutate(ctx, actor, func(u *unit) error {
		if _, err := u.station(stationID); err != nil {
			return err
		}
		if err := u.Interventions.Create(ctx, intervention); err != nil {
			return err
		}
		return u.record(history.Change{
			StationID:   stationID,
			Action:      models.ActionInterventionScheduled,
			Description: history.Textf("Intervention scheduled: %s", intervention.Title),
		})
	})
	if err != nil {
		return nil, err
	}
	return intervention, nil
}

// AddIntervention logs an intervention that already happened. It is created
// completed: performed by the actor, dated now unless a date is given, and
// attributed to the actor unless a technician is named.
func (s *HubService) AddIntervention(ctx context.Context, actor *access.Actor, stationID string, in models.InterventionInput) (*models.Intervention, error) {
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	ts := s.timestamp()
	performer := actor.ID
	technician := technicianName(in.TechnicianName, actor)
	intervention := &models.Intervention{
		ID:               nuts.NID("iv", 12),
		StationID:        stationID,
		InterventionType: in.InterventionType,
		Title:            in.Title,
		Description:      in.Description,
		InterventionDate: dateOrNow(in.InterventionDate, ts),
		TechnicianName:   &technician,
		DurationHours:    in.DurationHours,
		Cost:             in.Cost,
		PerformedBy:      &performer,
		CreatedAt:        ts,
		UpdatedAt:        ts,
	}

	err := s.mutate(ctx, actor, func(u *unit) error {
		if _, err := u.station(stationID); err != nil {
			return err
		}
		if err := u.Interventions.Create(ctx, intervention); err != nil {
			return err
		}
		return u.record(history.Change{
			StationID:   stationID,
			Action:      models.ActionInterventionAdded,
			Description: history.Textf("Intervention: %s", intervention.Title),
		})
	})
	if err != nil {
		return nil, err
	}
	return intervention, nil
}

// CompleteIntervention moves a scheduled intervention to completed. It never
// creates a row; completing twice is rejected.
func (s *HubService) CompleteIntervention(ctx context.Context, actor *access.Actor, id string, in models.CompleteInterventionInput) (*models.Intervention, error) {
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	var intervention *models.Intervention
	err := s.mutate(ctx, actor, func(u *unit) error {
		var err error
		if intervention, err = u.Interventions.Get(ctx, id); err != nil {
			return err
		}
		if intervention.IsCompleted() {
			return errors.NewValidationError("intervention is already completed", nil)
		}

		ts := s.timestamp()
		performer := actor.ID
		technician := technicianName(in.TechnicianName, actor)
		intervention.InterventionDate = dateOrNow(in.InterventionDate, ts)
		intervention.TechnicianName = &technician
		intervention.PerformedBy = &performer
		if in.DurationHours != nil {
			intervention.DurationHours = in.DurationHours
		}
		if in.Cost != nil {
			intervention.Cost = in.Cost
		}
		intervention.UpdatedAt = ts
		if err := u.Interventions.Update(ctx, intervention); err != nil {
			return err
		}

		return u.record(history.Change{
			StationID:   intervention.StationID,
			Action:      models.ActionInterventionCompleted,
			Description: history.Textf("Intervention completed: %s by %s", intervention.Title, technician),
		})
	})
	if err != nil {
		return nil, err
	}
	return intervention, nil
}

// UpdateIntervention edits descriptive fields without touching the lifecycle
func (s *HubService) UpdateIntervention(ctx context.Context, actor *access.Actor, id string, in models.InterventionUpdate) (*models.Intervention, error) {
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var intervention *models.Intervention
	err := s.mutate(ctx, actor, func(u *unit) error {
		var err error
		if intervention, err = u.Interventions.Get(ctx, id); err != nil {
			return err
		}

		in.ScheduledDate = utc(in.ScheduledDate)
		in.Apply(intervention)
		intervention.UpdatedAt = s.timestamp()
		if err := u.Interventions.Update(ctx, intervention); err != nil {
			return err
		}

		return u.record(history.Change{
			StationID:   intervention.StationID,
			Action:      models.ActionInterventionUpdated,
			Description: history.Textf("Intervention updated: %s", intervention.Title),
		})
	})
	if err != nil {
		return nil, err
	}
	return intervention, nil
}

// DeleteIntervention hard-deletes an intervention; admin only
func (s *HubService) DeleteIntervention(ctx context.Context, actor *access.Actor, id string) error {
	if err := access.RequireAdmin(actor); err != nil {
		return err
	}

	return s.mutate(ctx, actor, func(u *unit) error {
		intervention, err := u.Interventions.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := u.Interventions.Delete(ctx, id); err != nil {
			return err
		}
		return u.record(history.Change{
			StationID:   intervention.StationID,
			Action:      models.ActionInterventionDeleted,
			Description: history.Textf("Intervention deleted: %s", intervention.Title),
		})
	})
}

func (s *HubService) ListInterventions(ctx context.Context, actor *access.Actor, stationID string) ([]*models.Intervention, error) {
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	repos := s.store.Repos()
	if _, err := repos.Stations.Get(ctx, stationID); err != nil {
		return nil, err
	}
	return repos.Interventions.ListByStation(ctx, stationID)
}

// GetIntervention returns one intervention
func (s *HubService) GetIntervention(ctx context.Context, actor *access.Actor, id string) (*models.Intervention, error) {
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	return s.store.Repos().Interventions.Get(ctx, id)
}

func technicianName(supplied string, actor *access.Actor) string {
	if name := strings.TrimSpace(supplied); name != "" {
		return name
	}
	return actor.Username
}

func dateOrNow(supplied *time.Time, now time.Time) *time.Time {
	if supplied != nil {
		return utc(supplied)
	}
	return &now
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC().Truncate(time.Microsecond)
	return &v
}
