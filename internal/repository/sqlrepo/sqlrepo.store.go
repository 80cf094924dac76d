package sqlrepo

import (
	"context"

	"github.com/itsatony/stationhub/internal/database"
	"github.com/itsatony/stationhub/internal/errors"
	"github.com/itsatony/stationhub/internal/repository"
	"github.com/jmoiron/sqlx"
)

// Store implements repository.Store on top of a database.DB
type Store struct {
	db    database.DB
	repos *repository.Repositories
}

func NewStore(db database.DB) *Store {
	return &Store{
		db:    db,
		repos: bind(db.GetDB()),
	}
}

// bind creates every repository on the same executor
func bind(ex sqlx.ExtContext) *repository.Repositories {
	return &repository.Repositories{
		Users:         NewUserRepository(ex),
		Stations:      NewStationRepository(ex),
		Sensors:       NewSensorRepository(ex),
		Routers:       NewRouterRepository(ex),
		Details:       NewTechnicalDetailRepository(ex),
		Breakdowns:    NewBreakdownRepository(ex),
		Interventions: NewInterventionRepository(ex),
		History:       NewHistoryRepository(ex),
	}
}

// Repos returns repositories that run outside any transaction
func (s *Store) Repos() *repository.Repositories {
	return s.repos
}

func (s *Store) InTx(ctx context.Context, fn func(repos *repository.Repositories) error) error {
	return database.WithTx(ctx, s.db.GetDB(), func(tx *sqlx.Tx) error {
		return fn(bind(tx))
	})
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.Ping(ctx); err != nil {
		return errors.NewDatabaseError("failed to ping database", err)
	}
	return nil
}

var _ repository.Store = (*Store)(nil)
