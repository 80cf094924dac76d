package sqlrepo

import (
	"context"

	"github.com/itsatony/stationhub/internal/models"
	"github.com/jmoiron/sqlx"
)

const userColumns = `id, username, email, password_hash, is_admin, created_by, created_at, updated_at`

type UserRepo struct {
	baseRepo
}

func NewUserRepository(ex sqlx.ExtContext) *UserRepo {
	return &UserRepo{baseRepo{ex: ex, entity: "user"}}
}

func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES (:id, :username, :email, :password_hash, :is_admin, :created_by, :created_at, :updated_at)`
	return r.insert(ctx, query, user)
}

func (r *UserRepo) Get(ctx context.Context, id string) (*models.User, error) {
	user := &models.User{}
	if err := r.get(ctx, user, `SELECT `+userColumns+` FROM users WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}
	if err := r.get(ctx, user, `SELECT `+userColumns+` FROM users WHERE username = ?`, username); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	if err := r.get(ctx, user, `SELECT `+userColumns+` FROM users WHERE email = ?`, email); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepo) List(ctx context.Context) ([]*models.User, error) {
	users := []*models.User{}
	if err := r.list(ctx, &users, `SELECT `+userColumns+` FROM users ORDER BY username`); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "users", id)
}

func (r *UserRepo) Count(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM users`)
}
