package sqlrepo

import (
	"context"

	"github.com/itsatony/stationhub/internal/models"
	"github.com/jmoiron/sqlx"
)

const interventionColumns = `id, station_id, intervention_type, title, description, scheduled_date,
	intervention_date, technician_name, duration_hours, cost, performed_by, created_at, updated_at`

type InterventionRepo struct {
	baseRepo
}

func NewInterventionRepository(ex sqlx.ExtContext) *InterventionRepo {
	return &InterventionRepo{baseRepo{ex: ex, entity: "intervention"}}
}

func (r *InterventionRepo) Create(ctx context.Context, intervention *models.Intervention) error {
	query := `
		INSERT INTO interventions (` + interventionColumns + `)
		VALUES (
			:id, :station_id, :intervention_type, :title, :description, :scheduled_date,
			:intervention_date, :technician_name, :duration_hours, :cost, :performed_by,
			:created_at, :updated_at
		)`
	return r.insert(ctx, query, intervention)
}

func (r *InterventionRepo) Get(ctx context.Context, id string) (*models.Intervention, error) {
	intervention := &models.Intervention{}
	if err := r.get(ctx, intervention, `SELECT `+interventionColumns+` FROM interventions WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return intervention, nil
}

func (r *InterventionRepo) Update(ctx context.Context, intervention *models.Intervention) error {
	query := `
		UPDATE interventions SET
			intervention_type = :intervention_type,
			title = :title,
			description = :description,
			scheduled_date = :scheduled_date,
			intervention_date = :intervention_date,
			technician_name = :technician_name,
			duration_hours = :duration_hours,
			cost = :cost,
			performed_by = :performed_by,
			updated_at = :updated_at
		WHERE id = :id`
	return r.update(ctx, query, intervention)
}

func (r *InterventionRepo) Delete(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "interventions", id)
}

// ListByStation returns scheduled interventions first, then completed ones newest first
func (r *InterventionRepo) ListByStation(ctx context.Context, stationID string) ([]*models.Intervention, error) {
	interventions := []*models.Intervention{}
	query := `
		SELECT ` + interventionColumns + ` FROM interventions
		WHERE station_id = ?
		ORDER BY CASE WHEN intervention_date IS NULL THEN 0 ELSE 1 END, intervention_date DESC, created_at DESC, id DESC`
	if err := r.list(ctx, &interventions, query, stationID); err != nil {
		return nil, err
	}
	return interventions, nil
}

func (r *InterventionRepo) CountScheduled(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM interventions WHERE intervention_date IS NULL`)
}

func (r *InterventionRepo) DeleteByStation(ctx context.Context, stationID string) (int64, error) {
	return r.deleteByStation(ctx, "interventions", stationID)
}
