package sqlrepo

import (
	"context"

	"github.com/itsatony/stationhub/internal/models"
	"github.com/jmoiron/sqlx"
)

const sensorColumns = `id, station_id, sensor_type, model, serial_number, status, installation_date, last_calibration, created_at, updated_at`

type SensorRepo struct {
	baseRepo
}

func NewSensorRepository(ex sqlx.ExtContext) *SensorRepo {
	return &SensorRepo{baseRepo{ex: ex, entity: "sensor"}}
}

func (r *SensorRepo) Create(ctx context.Context, sensor *models.Sensor) error {
	query := `
		INSERT INTO sensors (` + sensorColumns + `)
		VALUES (
			:id, :station_id, :sensor_type, :model, :serial_number, :status,
			:installation_date, :last_calibration, :created_at, :updated_at
		)`
	return r.insert(ctx, query, sensor)
}

func (r *SensorRepo) Get(ctx context.Context, id string) (*models.Sensor, error) {
	sensor := &models.Sensor{}
	if err := r.get(ctx, sensor, `SELECT `+sensorColumns+` FROM sensors WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return sensor, nil
}

func (r *SensorRepo) Update(ctx context.Context, sensor *models.Sensor) error {
	query := `
		UPDATE sensors SET
			sensor_type = :sensor_type,
			model = :model,
			serial_number = :serial_number,
			status = :status,
			installation_date = :installation_date,
			last_calibration = :last_calibration,
			updated_at = :updated_at
		WHERE id = :id`
	return r.update(ctx, query, sensor)
}

func (r *SensorRepo) Delete(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "sensors", id)
}

func (r *SensorRepo) ListByStation(ctx context.Context, stationID string) ([]*models.Sensor, error) {
	sensors := []*models.Sensor{}
	query := `SELECT ` + sensorColumns + ` FROM sensors WHERE station_id = ? ORDER BY created_at, id`
	if err := r.list(ctx, &sensors, query, stationID); err != nil {
		return nil, err
	}
	return sensors, nil
}

func (r *SensorRepo) DeleteByStation(ctx context.Context, stationID string) (int64, error) {
	return r.deleteByStation(ctx, "sensors", stationID)
}
