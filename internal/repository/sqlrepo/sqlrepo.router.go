package sqlrepo

import (
	"context"

	"github.com/itsatony/stationhub/internal/models"
	"github.com/jmoiron/sqlx"
)

const routerColumns = `id, station_id, model, ip_address, mac_address, serial_number, firmware_version, status, created_at, updated_at`

type RouterRepo struct {
	baseRepo
}

func NewRouterRepository(ex sqlx.ExtContext) *RouterRepo {
	return &RouterRepo{baseRepo{ex: ex, entity: "router"}}
}

// Create fails with a validation error when the station already has a router
func (r *RouterRepo) Create(ctx context.Context, router *models.Router) error {
	query := `
		INSERT INTO routers (` + routerColumns + `)
		VALUES (
			:id, :station_id, :model, :ip_address, :mac_address, :serial_number,
			:firmware_version, :status, :created_at, :updated_at
		)`
	return r.insert(ctx, query, router)
}

func (r *RouterRepo) Get(ctx context.Context, id string) (*models.Router, error) {
	router := &models.Router{}
	if err := r.get(ctx, router, `SELECT `+routerColumns+` FROM routers WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return router, nil
}

func (r *RouterRepo) GetByStation(ctx context.Context, stationID string) (*models.Router, error) {
	router := &models.Router{}
	if err := r.get(ctx, router, `SELECT `+routerColumns+` FROM routers WHERE station_id = ?`, stationID); err != nil {
		return nil, err
	}
	return router, nil
}

func (r *RouterRepo) Update(ctx context.Context, router *models.Router) error {
	query := `
		UPDATE routers SET
			model = :model,
			ip_address = :ip_address,
			mac_address = :mac_address,
			serial_number = :serial_number,
			firmware_version = :firmware_version,
			status = :status,
			updated_at = :updated_at
		WHERE id = :id`
	return r.update(ctx, query, router)
}

func (r *RouterRepo) Delete(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "routers", id)
}

func (r *RouterRepo) DeleteByStation(ctx context.Context, stationID string) (int64, error) {
	return r.deleteByStation(ctx, "routers", stationID)
}
