package sqlrepo

import (
	"context"

	"github.com/itsatony/stationhub/internal/errors"
	"github.com/itsatony/stationhub/internal/models"
	"github.com/jmoiron/sqlx"
)

const stationColumns = `id, name, location, latitude, longitude, status, installation_date, created_at, updated_at, created_by`

type StationRepo struct {
	baseRepo
}

func NewStationRepository(ex sqlx.ExtContext) *StationRepo {
	return &StationRepo{baseRepo{ex: ex, entity: "station"}}
}

func (r *StationRepo) Create(ctx context.Context, station *models.Station) error {
	query := `
		INSERT INTO stations (` + stationColumns + `)
		VALUES (
			:id, :name, :location, :latitude, :longitude, :status,
			:installation_date, :created_at, :updated_at, :created_by
		)`
	return r.insert(ctx, query, station)
}

func (r *StationRepo) Get(ctx context.Context, id string) (*models.Station, error) {
	station := &models.Station{}
	if err := r.get(ctx, station, `SELECT `+stationColumns+` FROM stations WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return station, nil
}

// GetByName matches the name exactly (case-sensitive)
func (r *StationRepo) GetByName(ctx context.Context, name string) (*models.Station, error) {
	station := &models.Station{}
	if err := r.get(ctx, station, `SELECT `+stationColumns+` FROM stations WHERE name = ?`, name); err != nil {
		return nil, err
	}
	return station, nil
}

func (r *StationRepo) Update(ctx context.Context, station *models.Station) error {
	query := `
		UPDATE stations SET
			name = :name,
			location = :location,
			latitude = :latitude,
			longitude = :longitude,
			status = :status,
			installation_date = :installation_date,
			updated_at = :updated_at
		WHERE id = :id`
	return r.update(ctx, query, station)
}

func (r *StationRepo) Delete(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "stations", id)
}

func (r *StationRepo) List(ctx context.Context) ([]*models.Station, error) {
	stations := []*models.Station{}
	if err := r.list(ctx, &stations, `SELECT `+stationColumns+` FROM stations ORDER BY name`); err != nil {
		return nil, err
	}
	return stations, nil
}

func (r *StationRepo) CountByStatus(ctx context.Context) (map[models.StationStatus]int, error) {
	var rows []struct {
		Status models.StationStatus `db:"status"`
		Count  int                  `db:"count"`
	}
	query := `SELECT status, COUNT(*) AS count FROM stations GROUP BY status`
	if err := sqlx.SelectContext(ctx, r.ex, &rows, query); err != nil {
		return nil, errors.NewDatabaseError("failed to count stations by status", err)
	}

	counts := make(map[models.StationStatus]int, len(models.StationStatuses))
	for _, status := range models.StationStatuses {
		counts[status] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
