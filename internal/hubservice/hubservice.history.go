package hubservice

import (
	"context"

	"github.com/itsatony/stationhub/internal/access"
	"github.com/itsatony/stationhub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// ListHistory returns the full ledger of a station, newest first
func (s *HubService) ListHistory(ctx context.Context, actor *access.Actor, stationID string) ([]*models.StationHistory, error) {
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	repos := s.store.Repos()
	if _, err := repos.Stations.Get(ctx, stationID); err != nil {
		return nil, err
	}
	return repos.History.ListByStation(ctx, stationID, 0)
}

// ListRecentHistory returns at most limit records, newest first. Non-positive
// limits fall back to the summary size; large ones are capped.
func (s *HubService) ListRecentHistory(ctx context.Context, actor *access.Actor, stationID string, limit int) ([]*models.StationHistory, error) {
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = recentHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	repos := s.store.Repos()
	if _, err := repos.Stations.Get(ctx, stationID); err != nil {
		return nil, err
	}
	return repos.History.ListByStation(ctx, stationID, limit)
}

// PurgeHistory removes one history record; admin only. The purge itself is
// logged, not recorded in the ledger.
func (s *HubService) PurgeHistory(ctx context.Context, actor *access.Actor, id string) error {
	if err := access.RequireAdmin(actor); err != nil {
		return err
	}

	repos := s.store.Repos()
	record, err := repos.History.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := repos.History.Delete(ctx, id); err != nil {
		return err
	}

	s.monitor.RecordMutation("history_purged")
	nuts.L.Infof("[StationService] History record %s (%s, station %s) purged by %s", record.ID, record.Action, record.StationID, actor.Username)
	return nil
}
