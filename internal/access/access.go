// Package access implements the authentication and admin checks that guard
// service operations. Guards are called explicitly at the start of each
// operation and run before any read or write.
package access

import (
	"github.com/itsatony/stationhub/internal/errors"
)

// Actor is the identity on whose behalf an operation runs
type Actor struct {
	ID       string
	Username string
	IsAdmin  bool
}

// Roles returns the role names used for field-level read filtering.
// "self" is added when the actor is the owner of the record.
func (a *Actor) Roles(ownerID string) []string {
	if a == nil || a.ID == "" {
		return nil
	}
	roles := []string{"user"}
	if a.IsAdmin {
		roles = append(roles, "admin")
	}
	if ownerID != "" && ownerID == a.ID {
		roles = append(roles, "self")
	}
	return roles
}

// RequireAuthenticated fails with an authentication error when there is no actor
func RequireAuthenticated(actor *Actor) error {
	if actor == nil || actor.ID == "" {
		return errors.NewAuthError("authentication required", nil)
	}
	return nil
}

// RequireAdmin runs the authentication check first, then requires the admin flag
func RequireAdmin(actor *Actor) error {
	if err := RequireAuthenticated(actor); err != nil {
		return err
	}
	if !actor.IsAdmin {
		return errors.NewAuthorizationError("admin privileges required", nil)
	}
	return nil
}
