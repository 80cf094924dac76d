// Package session keeps server-side login sessions keyed by an opaque token.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/itsatony/stationhub/internal/errors"
	"github.com/itsatony/stationhub/internal/models"
)

// Session is the server-side state behind a login token
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Store persists sessions. Get fails with an authentication error for unknown
// or expired tokens.
type Store interface {
	Create(ctx context.Context, user *models.User) (*Session, error)
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}

func newSession(user *models.User, now time.Time, ttl time.Duration) *Session {
	return &Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		Username:  user.Username,
		IsAdmin:   user.IsAdmin,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

func errInvalidSession() error {
	return errors.NewAuthError("session not found or expired", nil)
}
