// FilePath: api/resources/api.resource.auth.go
package resources

import (
	"net/http"
	"time"

	"github.com/itsatony/stationhub/api/middleware"
	"github.com/itsatony/stationhub/internal/errors"
	"github.com/itsatony/stationhub/internal/hubservice"
	"github.com/itsatony/stationhub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// AuthHandlers encapsulates login, logout and self-registration
type AuthHandlers struct {
	hubservice *hubservice.HubService
	cookies    CookieConfig
	now        func() time.Time
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	IsAdmin   bool      `json:"is_admin"`
}

// @Summary Log in
// @Description Validate credentials and open a session. The token is returned and set as a cookie.
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param credentials body models.LoginInput true "Credentials"
// @Success 200 {object} loginResponse
// @Failure 400 {object} errors.APIError
// @Failure 401 {object} errors.APIError
// @Router /auth/login [post]
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var in models.LoginInput
	if err := decodeInput(r, &in); err != nil {
		handleServiceError(w, err, requestID)
		return
	}

	sess, err := h.hubservice.Authenticate(r.Context(), in.Username, in.Password)
	if err != nil {
		handleServiceError(w, err, requestID)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookies.Name,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	respondWithJSON(w, http.StatusOK, loginResponse{
		Token:     sess.Token,
		ExpiresAt: sess.ExpiresAt,
		UserID:    sess.UserID,
		Username:  sess.Username,
		IsAdmin:   sess.IsAdmin,
	})
}

// @Summary Log out
// @Tags auth
// @Success 204 "No Content"
// @Failure 401 {object} errors.APIError
// @Router /auth/logout [post]
// @Security BearerAuth
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	token := middleware.TokenFromContext(r.Context())
	if token == "" || actorOf(r) == nil {
		respondWithError(w, errors.NewAuthError("authentication required", nil).WithRequestID(requestID))
		return
	}
	if err := h.hubservice.Logout(r.Context(), token); err != nil {
		handleServiceError(w, err, requestID)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookies.Name,
		Value:    "",
		Path:     "/",
		Expires:  h.now().Add(-time.Hour),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

// @Summary Register an account
// @Description Create a regular, non-admin account
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param account body models.RegisterInput true "Account"
// @Success 201 {object} models.UserProfile
// @Failure 400 {object} errors.APIError
// @Router /auth/register [post]
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var in models.RegisterInput
	if err := decodeInput(r, &in); err != nil {
		handleServiceError(w, err, requestID)
		return
	}

	user, err := h.hubservice.Register(r.Context(), in)
	if err != nil {
		handleServiceError(w, err, requestID)
		return
	}

	profile, err := filterProfile(user, []string{"user", "self"})
	if err != nil {
		handleServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusCreated, profile)
}
