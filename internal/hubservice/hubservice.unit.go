package hubservice

import (
	"context"

	"github.com/itsatony/stationhub/internal/access"
	"github.com/itsatony/stationhub/internal/events"
	"github.com/itsatony/stationhub/internal/history"
	"github.com/itsatony/stationhub/internal/models"
	"github.com/itsatony/stationhub/internal/repository"
	nuts "github.com/vaudience/go-nuts"
)

// unit is one transaction: the repositories bound to it plus the history
// records appended so far.
type unit struct {
	*repository.Repositories
	ctx     context.Context
	svc     *HubService
	actor   *access.Actor
	records []*models.StationHistory
}

// record appends a history record inside the transaction
func (u *unit) record(c history.Change) error {
	c.ActorID = u.actor.ID
	rec, err := u.svc.history.Record(u.ctx, u.History, c)
	if err != nil {
		return err
	}
	u.records = append(u.records, rec)
	return nil
}

// station loads the station or fails with not-found
func (u *unit) station(id string) (*models.Station, error) {
	return u.Stations.Get(u.ctx, id)
}

// mutate runs fn in one transaction. History written through the unit commits
// with the mutation; after commit it is counted and published.
func (s *HubService) mutate(ctx context.Context, actor *access.Actor, fn func(u *unit) error) error {
	var committed []*models.StationHistory
	err := s.store.InTx(ctx, func(repos *repository.Repositories) error {
		u := &unit{Repositories: repos, ctx: ctx, svc: s, actor: actor}
		if err := fn(u); err != nil {
			return err
		}
		committed = u.records
		return nil
	})
	if err != nil {
		return err
	}

	s.afterCommit(ctx, committed)
	return nil
}

func (s *HubService) afterCommit(ctx context.Context, records []*models.StationHistory) {
	for _, rec := range records {
		s.monitor.RecordMutation(string(rec.Action))
		if err := s.publisher.Publish(ctx, events.FromHistory(rec)); err != nil {
			nuts.L.Warnf("[StationService] Failed to publish history %s (%s): %v", rec.ID, rec.Action, err)
		}
	}
}
