package hubservice

import (
	"context"

	"github.com/itsatony/stationhub/internal/access"
	"github.com/itsatony/stationhub/internal/errors"
	"github.com/itsatony/stationhub/internal/models"
	"github.com/itsatony/stationhub/internal/session"
	nuts "github.com/vaudience/go-nuts"
	"golang.org/x/crypto/bcrypt"
)

// Authenticate validates credentials and opens a session
func (s *HubService) Authenticate(ctx context.Context, username, password string) (*session.Session, error) {
	in := models.LoginInput{Username: username, Password: password}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	user, err := s.store.Repos().Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NewAuthError("invalid credentials", nil)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		nuts.L.Warnf("[UserService] Failed login for %s", username)
		return nil, errors.NewAuthError("invalid credentials", nil)
	}

	sess, err := s.sessions.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	nuts.L.Infof("[UserService] User %s logged in", user.Username)
	return sess, nil
}

// Logout ends the session behind token
func (s *HubService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// ResolveSession maps a session token to the actor it authenticates. The
// actor is rebuilt from the current user row, so a deleted account loses its
// sessions and a changed admin flag applies immediately.
func (s *HubService) ResolveSession(ctx context.Context, token string) (*access.Actor, error) {
	sess, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.store.Repos().Users.Get(ctx, sess.UserID)
	if err != nil {
		if !errors.IsNotFound(err) {
			return nil, err
		}
		if derr := s.sessions.Delete(ctx, token); derr != nil {
			nuts.L.Warnf("[UserService] Failed to drop session of deleted user %s: %v", sess.UserID, derr)
		}
		nuts.L.Warnf("[UserService] Session for deleted user %s rejected", sess.Username)
		return nil, errors.NewAuthError("session user no longer exists", nil)
	}
	return &access.Actor{ID: user.ID, Username: user.Username, IsAdmin: user.IsAdmin}, nil
}

// Register creates a regular (non-admin) account; it needs no session
func (s *HubService) Register(ctx context.Context, in models.RegisterInput) (*models.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.createUser(ctx, in.Username, in.Email, in.Password, false, nil)
}

// CreateUser provisions an account on behalf of an admin
func (s *HubService) CreateUser(ctx context.Context, actor *access.Actor, in models.UserInput) (*models.User, error) {
	if err := access.RequireAdmin(actor); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	creator := actor.ID
	return s.createUser(ctx, in.Username, in.Email, in.Password, in.IsAdmin, &creator)
}

// EnsureAdmin creates an admin account unless the username is already taken.
// It reports whether a user was created.
func (s *HubService) EnsureAdmin(ctx context.Context, username, email, password string) (*models.User, bool, error) {
	existing, err := s.store.Repos().Users.GetByUsername(ctx, username)
	if err == nil {
		return existing, false, nil
	}
	if !errors.IsNotFound(err) {
		return nil, false, err
	}

	in := models.UserInput{Username: username, Email: email, Password: password, IsAdmin: true}
	if err := in.Validate(); err != nil {
		return nil, false, err
	}
	user, err := s.createUser(ctx, username, email, password, true, nil)
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func (s *HubService) createUser(ctx context.Context, username, email, password string, isAdmin bool, createdBy *string) (*models.User, error) {
	users := s.store.Repos().Users

	if _, err := users.GetByUsername(ctx, username); err == nil {
		return nil, errors.NewValidationError("username already taken", nil).WithDetails(map[string]string{"username": "already taken"})
	} else if !errors.IsNotFound(err) {
		return nil, err
	}
	if _, err := users.GetByEmail(ctx, email); err == nil {
		return nil, errors.NewValidationError("email already registered", nil).WithDetails(map[string]string{"email": "already registered"})
	} else if !errors.IsNotFound(err) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.passwordCost)
	if err != nil {
		return nil, errors.NewInternalError("failed to hash password", err)
	}

	ts := s.timestamp()
	user := &models.User{
		ID:           nuts.NID("usr", 12),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		IsAdmin:      isAdmin,
		CreatedBy:    createdBy,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
	if err := users.Create(ctx, user); err != nil {
		return nil, err
	}

	nuts.L.Infof("[UserService] Created user %s (%s, admin=%t)", user.Username, user.ID, user.IsAdmin)
	return user, nil
}

// ListUsers returns every account; admin only
func (s *HubService) ListUsers(ctx context.Context, actor *access.Actor) ([]*models.User, error) {
	if err := access.RequireAdmin(actor); err != nil {
		return nil, err
	}
	return s.store.Repos().Users.List(ctx)
}

// DeleteUser removes an account; admin only, and never the caller's own.
// Records the user created or changed keep existing with a cleared reference.
func (s *HubService) DeleteUser(ctx context.Context, actor *access.Actor, id string) error {
	if err := access.RequireAdmin(actor); err != nil {
		return err
	}
	if id == actor.ID {
		return errors.NewValidationError("you cannot delete your own account", nil)
	}

	if err := s.store.Repos().Users.Delete(ctx, id); err != nil {
		return err
	}
	s.monitor.RecordMutation("user_deleted")
	nuts.L.Infof("[UserService] User %s deleted by %s", id, actor.Username)
	return nil
}

// CurrentUser returns the account of the acting user
func (s *HubService) CurrentUser(ctx context.Context, actor *access.Actor) (*models.User, error) {
	if err := access.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	return s.store.Repos().Users.Get(ctx, actor.ID)
}
