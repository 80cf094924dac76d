package sqlrepo

import (
	"context"

	"github.com/itsatony/stationhub/internal/models"
	"github.com/jmoiron/sqlx"
)

const historyColumns = `id, station_id, action, field_changed, old_value, new_value, description, changed_by, created_at`

// HistoryRepo never updates rows; the ledger is append-only
type HistoryRepo struct {
	baseRepo
}

func NewHistoryRepository(ex sqlx.ExtContext) *HistoryRepo {
	return &HistoryRepo{baseRepo{ex: ex, entity: "history record"}}
}

func (r *HistoryRepo) Append(ctx context.Context, record *models.StationHistory) error {
	query := `
		INSERT INTO station_history (` + historyColumns + `)
		VALUES (
			:id, :station_id, :action, :field_changed, :old_value, :new_value,
			:description, :changed_by, :created_at
		)`
	return r.insert(ctx, query, record)
}

func (r *HistoryRepo) Get(ctx context.Context, id string) (*models.StationHistory, error) {
	record := &models.StationHistory{}
	if err := r.get(ctx, record, `SELECT `+historyColumns+` FROM station_history WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return record, nil
}

func (r *HistoryRepo) ListByStation(ctx context.Context, stationID string, limit int) ([]*models.StationHistory, error) {
	records := []*models.StationHistory{}
	query := `SELECT ` + historyColumns + ` FROM station_history WHERE station_id = ? ORDER BY created_at DESC, id DESC`
	args := []interface{}{stationID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	if err := r.list(ctx, &records, query, args...); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *HistoryRepo) Delete(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "station_history", id)
}

func (r *HistoryRepo) DeleteByStation(ctx context.Context, stationID string) (int64, error) {
	return r.deleteByStation(ctx, "station_history", stationID)
}
