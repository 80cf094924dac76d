package hubservice

import (
	"context"
	"strings"

	"github.com/itsatony/stationhub/internal/access"
	"github.com/itsatony/stationhub/internal/errors"
	"github.com/itsatony/stationhub/internal/history"
	"github.com/itsatony/stationhub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// ReportBreakdown opens a new breakdown reported by the actor
func (s *HubService) ReportBreakdown(ctx context.Context, actor *access.Actor, stationID string, in models.BreakdownInput) (*models.Breakdown, error) {
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	ts := s.timestamp()
	reporter := actor.ID
	breakdown := &models.Breakdown{
		ID:           nuts.NID("bd", 12),
		StationID:    stationID,
		Title:        in.Title,
		Description:  in.Description,
		Severity:     in.Severity,
		ReportedDate: ts,
		ReportedBy:   &reporter,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}

	err := s.mutate(ctx, actor, func(u *unit) error {
		if _, err := u.station(stationID); err != nil {
			return err
		}
		if err := u.Breakdowns.Create(ctx, breakdown); err != nil {
			return err
		}
		return u.record(history.Change{
			StationID:   stationID,
			Action:      models.ActionBreakdownReported,
			Description: history.Textf("Breakdown reported: %s", breakdown.Title),
		})
	})
	if err != nil {
		return nil, err
	}

	nuts.L.Infof("[StationService] Breakdown %s (%s) reported on station %s", breakdown.ID, breakdown.Severity, stationID)
	s.withDurations(breakdown)
	return breakdown, nil
}

// UpdateBreakdown edits the report. Resolution state is never changed here.
func (s *HubService) UpdateBreakdown(ctx context.Context, actor *access.Actor, id string, in models.BreakdownUpdate) (*models.Breakdown, error) {
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var breakdown *models.Breakdown
	err := s.mutate(ctx, actor, func(u *unit) error {
		var err error
		if breakdown, err = u.Breakdowns.Get(ctx, id); err != nil {
			return err
		}

		oldSeverity := breakdown.Severity
		in.Apply(breakdown)
		breakdown.UpdatedAt = s.timestamp()
		if err := u.Breakdowns.Update(ctx, breakdown); err != nil {
			return err
		}

		change := history.Change{
			StationID:   breakdown.StationID,
			Action:      models.ActionBreakdownUpdated,
			Description: history.Textf("Breakdown updated: %s", breakdown.Title),
		}
		if breakdown.Severity != oldSeverity {
			change.Field = history.Text("severity")
			change.OldValue = history.Value(oldSeverity)
			change.NewValue = history.Value(breakdown.Severity)
		}
		return u.record(change)
	})
	if err != nil {
		return nil, err
	}
	s.withDurations(breakdown)
	return breakdown, nil
}

// ResolveBreakdown closes an open breakdown. Resolution is final: resolving an
// already resolved breakdown is rejected and changes nothing.
func (s *HubService) ResolveBreakdown(ctx context.Context, actor *access.Actor, id string, in models.ResolveBreakdownInput) (*models.Breakdown, error) {
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	var breakdown *models.Breakdown
	err := s.mutate(ctx, actor, func(u *unit) error {
		var err error
		if breakdown, err = u.Breakdowns.Get(ctx, id); err != nil {
			return err
		}
		if breakdown.Resolved {
			return errors.NewValidationError("breakdown is already resolved", nil)
		}

		ts := s.timestamp()
		resolver := actor.ID
		breakdown.Resolved = true
		breakdown.ResolvedDate = &ts
		breakdown.ResolvedBy = &resolver
		if notes := strings.TrimSpace(in.ResolutionNotes); notes != "" {
			breakdown.ResolutionNotes = &notes
		}
		breakdown.UpdatedAt = ts
		if err := u.Breakdowns.Update(ctx, breakdown); err != nil {
			return err
		}

		return u.record(history.Change{
			StationID:   breakdown.StationID,
			Action:      models.ActionBreakdownResolved,
			Description: history.Textf("Breakdown resolved: %s", breakdown.Title),
		})
	})
	if err != nil {
		return nil, err
	}
	s.withDurations(breakdown)
	return breakdown, nil
}

// DeleteBreakdown hard-deletes a breakdown; admin only
func (s *HubService) DeleteBreakdown(ctx context.Context, actor *access.Actor, id string) error {
	if err := access.RequireAdmin(actor); err != nil {
		return err
	}

	return s.mutate(ctx, actor, func(u *unit) error {
		breakdown, err := u.Breakdowns.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := u.Breakdowns.Delete(ctx, id); err != nil {
			return err
		}
		return u.record(history.Change{
			StationID:   breakdown.StationID,
			Action:      models.ActionBreakdownDeleted,
			Description: history.Textf("Breakdown deleted: %s", breakdown.Title),
		})
	})
}

func (s *HubService) ListBreakdowns(ctx context.Context, actor *access.Actor, stationID string) ([]*models.Breakdown, error) {
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	repos := s.store.Repos()
	if _, err := repos.Stations.Get(ctx, stationID); err != nil {
		return nil, err
	}
	breakdowns, err := repos.Breakdowns.ListByStation(ctx, stationID)
	if err != nil {
		return nil, err
	}
	s.withDurations(breakdowns...)
	return breakdowns, nil
}

// GetBreakdown returns one breakdown
func (s *HubService) GetBreakdown(ctx context.Context, actor *access.Actor, id string) (*models.Breakdown, error) {
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	breakdown, err := s.store.Repos().Breakdowns.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.withDurations(breakdown)
	return breakdown, nil
}

// withDurations fills the derived open duration against the service clock
func (s *HubService) withDurations(breakdowns ...*models.Breakdown) {
	now := s.now()
	for _, b := range breakdowns {
		b.StampDuration(now)
	}
}
