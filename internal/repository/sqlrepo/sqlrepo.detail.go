package sqlrepo

import (
	"context"

	"github.com/itsatony/stationhub/internal/models"
	"github.com/jmoiron/sqlx"
)

const detailColumns = `id, station_id, detail_type, detail_key, value, created_at, updated_at`

type TechnicalDetailRepo struct {
	baseRepo
}

func NewTechnicalDetailRepository(ex sqlx.ExtContext) *TechnicalDetailRepo {
	return &TechnicalDetailRepo{baseRepo{ex: ex, entity: "technical detail"}}
}

func (r *TechnicalDetailRepo) Create(ctx context.Context, detail *models.TechnicalDetail) error {
	query := `
		INSERT INTO technical_details (` + detailColumns + `)
		VALUES (:id, :station_id, :detail_type, :detail_key, :value, :created_at, :updated_at)`
	return r.insert(ctx, query, detail)
}

func (r *TechnicalDetailRepo) Get(ctx context.Context, id string) (*models.TechnicalDetail, error) {
	detail := &models.TechnicalDetail{}
	if err := r.get(ctx, detail, `SELECT `+detailColumns+` FROM technical_details WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return detail, nil
}

func (r *TechnicalDetailRepo) Update(ctx context.Context, detail *models.TechnicalDetail) error {
	query := `
		UPDATE technical_details SET
			detail_type = :detail_type,
			detail_key = :detail_key,
			value = :value,
			updated_at = :updated_at
		WHERE id = :id`
	return r.update(ctx, query, detail)
}

func (r *TechnicalDetailRepo) Delete(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "technical_details", id)
}

func (r *TechnicalDetailRepo) ListByStation(ctx context.Context, stationID string) ([]*models.TechnicalDetail, error) {
	details := []*models.TechnicalDetail{}
	query := `SELECT ` + detailColumns + ` FROM technical_details WHERE station_id = ? ORDER BY detail_type, detail_key`
	if err := r.list(ctx, &details, query, stationID); err != nil {
		return nil, err
	}
	return details, nil
}

func (r *TechnicalDetailRepo) DeleteByStation(ctx context.Context, stationID string) (int64, error) {
	return r.deleteByStation(ctx, "technical_details", stationID)
}
