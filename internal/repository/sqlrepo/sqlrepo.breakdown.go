package sqlrepo

import (
	"context"

	"github.com/itsatony/stationhub/internal/models"
	"github.com/jmoiron/sqlx"
)

const breakdownColumns = `id, station_id, title, description, severity, reported_date, reported_by,
	resolved, resolved_date, resolved_by, resolution_notes, created_at, updated_at`

type BreakdownRepo struct {
	baseRepo
}

func NewBreakdownRepository(ex sqlx.ExtContext) *BreakdownRepo {
	return &BreakdownRepo{baseRepo{ex: ex, entity: "breakdown"}}
}

func (r *BreakdownRepo) Create(ctx context.Context, breakdown *models.Breakdown) error {
	query := `
		INSERT INTO breakdowns (` + breakdownColumns + `)
		VALUES (
			:id, :station_id, :title, :description, :severity, :reported_date, :reported_by,
			:resolved, :resolved_date, :resolved_by, :resolution_notes, :created_at, :updated_at
		)`
	return r.insert(ctx, query, breakdown)
}

func (r *BreakdownRepo) Get(ctx context.Context, id string) (*models.Breakdown, error) {
	breakdown := &models.Breakdown{}
	if err := r.get(ctx, breakdown, `SELECT `+breakdownColumns+` FROM breakdowns WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return breakdown, nil
}

// Update writes every mutable column. Callers must not clear resolution fields.
func (r *BreakdownRepo) Update(ctx context.Context, breakdown *models.Breakdown) error {
	query := `
		UPDATE breakdowns SET
			title = :title,
			description = :description,
			severity = :severity,
			resolved = :resolved,
			resolved_date = :resolved_date,
			resolved_by = :resolved_by,
			resolution_notes = :resolution_notes,
			updated_at = :updated_at
		WHERE id = :id`
	return r.update(ctx, query, breakdown)
}

func (r *BreakdownRepo) Delete(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "breakdowns", id)
}

func (r *BreakdownRepo) ListByStation(ctx context.Context, stationID string) ([]*models.Breakdown, error) {
	breakdowns := []*models.Breakdown{}
	query := `SELECT ` + breakdownColumns + ` FROM breakdowns WHERE station_id = ? ORDER BY reported_date DESC, id DESC`
	if err := r.list(ctx, &breakdowns, query, stationID); err != nil {
		return nil, err
	}
	return breakdowns, nil
}

// ListOpen returns the most recently reported unresolved breakdowns across all stations
func (r *BreakdownRepo) ListOpen(ctx context.Context, limit int) ([]*models.Breakdown, error) {
	breakdowns := []*models.Breakdown{}
	query := `SELECT ` + breakdownColumns + ` FROM breakdowns WHERE resolved = ? ORDER BY reported_date DESC, id DESC LIMIT ?`
	if err := r.list(ctx, &breakdowns, query, false, limit); err != nil {
		return nil, err
	}
	return breakdowns, nil
}

func (r *BreakdownRepo) CountOpen(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM breakdowns WHERE resolved = ?`, false)
}

func (r *BreakdownRepo) DeleteByStation(ctx context.Context, stationID string) (int64, error) {
	return r.deleteByStation(ctx, "breakdowns", stationID)
}
