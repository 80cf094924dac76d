// FilePath: internal/repository/repository.go
package repository

import (
	"context"

	"github.com/itsatony/stationhub/internal/models"
)

// UserRepository defines the interface for user account operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	Get(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// StationRepository defines the interface for the station aggregate root
type StationRepository interface {
	Create(ctx context.Context, station *models.Station) error
	Get(ctx context.Context, id string) (*models.Station, error)
	GetByName(ctx context.Context, name string) (*models.Station, error)
	Update(ctx context.Context, station *models.Station) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*models.Station, error)
	CountByStatus(ctx context.Context) (map[models.StationStatus]int, error)
}

// SensorRepository defines the interface for station sensors
type SensorRepository interface {
	Create(ctx context.Context, sensor *models.Sensor) error
	Get(ctx context.Context, id string) (*models.Sensor, error)
	Update(ctx context.Context, sensor *models.Sensor) error
	Delete(ctx context.Context, id string) error
	ListByStation(ctx context.Context, stationID string) ([]*models.Sensor, error)
	DeleteByStation(ctx context.Context, stationID string) (int64, error)
}

// RouterRepository defines the interface for the per-station router
type RouterRepository interface {
	Create(ctx context.Context, router *models.Router) error
	Get(ctx context.Context, id string) (*models.Router, error)
	GetByStation(ctx context.Context, stationID string) (*models.Router, error)
	Update(ctx context.Context, router *models.Router) error
	Delete(ctx context.Context, id string) error
	DeleteByStation(ctx context.Context, stationID string) (int64, error)
}

// TechnicalDetailRepository defines the interface for technical specifications
type TechnicalDetailRepository interface {
	Create(ctx context.Context, detail *models.TechnicalDetail) error
	Get(ctx context.Context, id string) (*models.TechnicalDetail, error)
	Update(ctx context.Context, detail *models.TechnicalDetail) error
	Delete(ctx context.Context, id string) error
	ListByStation(ctx context.Context, stationID string) ([]*models.TechnicalDetail, error)
	DeleteByStation(ctx context.Context, stationID string) (int64, error)
}

// BreakdownRepository defines the interface for fault reports
type BreakdownRepository interface {
	Create(ctx context.Context, breakdown *models.Breakdown) error
	Get(ctx context.Context, id string) (*models.Breakdown, error)
	Update(ctx context.Context, breakdown *models.Breakdown) error
	Delete(ctx context.Context, id string) error
	ListByStation(ctx context.Context, stationID string) ([]*models.Breakdown, error)
	ListOpen(ctx context.Context, limit int) ([]*models.Breakdown, error)
	CountOpen(ctx context.Context) (int, error)
	DeleteByStation(ctx context.Context, stationID string) (int64, error)
}

// InterventionRepository defines the interface for maintenance interventions
type InterventionRepository interface {
	Create(ctx context.Context, intervention *models.Intervention) error
	Get(ctx context.Context, id string) (*models.Intervention, error)
	Update(ctx context.Context, intervention *models.Intervention) error
	Delete(ctx context.Context, id string) error
	ListByStation(ctx context.Context, stationID string) ([]*models.Intervention, error)
	CountScheduled(ctx context.Context) (int, error)
	DeleteByStation(ctx context.Context, stationID string) (int64, error)
}

// HistoryRepository is append-only: records are never updated, only removed
// one at a time by purge or all together with their station.
type HistoryRepository interface {
	Append(ctx context.Context, record *models.StationHistory) error
	Get(ctx context.Context, id string) (*models.StationHistory, error)
	// ListByStation returns records newest first; limit <= 0 returns all.
	ListByStation(ctx context.Context, stationID string, limit int) ([]*models.StationHistory, error)
	Delete(ctx context.Context, id string) error
	DeleteByStation(ctx context.Context, stationID string) (int64, error)
}

// Repositories bundles every repository bound to the same connection or transaction
type Repositories struct {
	Users         UserRepository
	Stations      StationRepository
	Sensors       SensorRepository
	Routers       RouterRepository
	Details       TechnicalDetailRepository
	Breakdowns    BreakdownRepository
	Interventions InterventionRepository
	History       HistoryRepository
}

// Store hands out repositories and runs units of work. Repositories passed to
// the InTx callback share one transaction, which commits only if fn returns nil.
type Store interface {
	Repos() *Repositories
	InTx(ctx context.Context, fn func(repos *Repositories) error) error
	Ping(ctx context.Context) error
}
