// FilePath: api/resources/api.resource.users.go
package resources

import (
	"net/http"

	"github.com/itsatony/stationhub/internal/errors"
	"github.com/itsatony/stationhub/internal/hubservice"
	"github.com/itsatony/stationhub/internal/models"
	"github.com/itsatony/struccy"
	nuts "github.com/vaudience/go-nuts"
)

// UserHandlers encapsulates account administration handlers
type UserHandlers struct {
	hubservice *hubservice.HubService
}

// @Summary Current user
// @Tags users
// @Produce json
// @Success 200 {object} models.UserProfile
// @Failure 401 {object} errors.APIError
// @Router /me [get]
// @Security BearerAuth
func (h *UserHandlers) Me(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	actor := actorOf(r)

	user, err := h.hubservice.CurrentUser(r.Context(), actor)
	if err != nil {
		handleServiceError(w, err, requestID)
		return
	}

	profile, err := filterProfile(user, actor.Roles(user.ID))
	if err != nil {
		handleServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusOK, profile)
}

// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} models.UserProfile
// @Failure 401 {object} errors.APIError
// @Failure 403 {object} errors.APIError
// @Router /users [get]
// @Security BearerAuth
func (h *UserHandlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	actor := actorOf(r)

	users, err := h.hubservice.ListUsers(r.Context(), actor)
	if err != nil {
		handleServiceError(w, err, requestID)
		return
	}

	profiles := make([]*models.UserProfile, 0, len(users))
	for _, user := range users {
		profile, err := filterProfile(user, actor.Roles(user.ID))
		if err != nil {
			handleServiceError(w, err, requestID)
			return
		}
		profiles = append(profiles, profile)
	}
	respondWithJSON(w, http.StatusOK, profiles)
}

// @Summary Provision a user
// @Description Create an account, optionally with admin rights
// @Tags users
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param user body models.UserInput true "Account"
// @Success 201 {object} models.UserProfile
// @Failure 400 {object} errors.APIError
// @Failure 401 {object} errors.APIError
// @Failure 403 {object} errors.APIError
// @Router /users [post]
// @Security BearerAuth
func (h *UserHandlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	actor := actorOf(r)

	var in models.UserInput
	if err := decodeInput(r, &in); err != nil {
		handleServiceError(w, err, requestID)
		return
	}

	user, err := h.hubservice.CreateUser(r.Context(), actor, in)
	if err != nil {
		handleServiceError(w, err, requestID)
		return
	}

	profile, err := filterProfile(user, actor.Roles(user.ID))
	if err != nil {
		handleServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusCreated, profile)
}

// @Summary Delete a user
// @Description Admins cannot delete their own account
// @Tags users
// @Param id path string true "User ID"
// @Success 204 "No Content"
// @Failure 400 {object} errors.APIError
// @Failure 403 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /users/{id} [delete]
// @Security BearerAuth
func (h *UserHandlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	if err := h.hubservice.DeleteUser(r.Context(), actorOf(r), pathID(r)); err != nil {
		handleServiceError(w, err, requestID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// filterProfile drops the profile fields the given roles may not read
func filterProfile(user *models.User, roles []string) (*models.UserProfile, error) {
	filteredMap, err := struccy.StructToMapFieldsWithReadXS(user.Profile(), roles)
	if err != nil {
		return nil, errors.NewInternalError("failed to filter user fields", err)
	}
	filtered := &models.UserProfile{}
	_, err = struccy.MergeMapStringFieldsToStruct(filtered, filteredMap, roles)
	if err != nil {
		return nil, errors.NewInternalError("failed to map filtered fields to user profile", err)
	}
	return filtered, nil
}
