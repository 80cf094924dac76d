// FilePath: api/resources/api.resource.interventions.go
package resources

import (
	"net/http"

	"github.com/itsatony/stationhub/internal/hubservice"
	"github.com/itsatony/stationhub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// InterventionHandlers encapsulates maintenance intervention handlers
type InterventionHandlers struct {
	hubservice *hubservice.HubService
}

// @Summary List interventions of a station
// @Description Scheduled interventions come first
// @Tags interventions
// @Produce json
// @Param id path string true "Station ID"
// @Success 200 {array} models.Intervention
// @Router /stations/{id}/interventions [get]
// @Security BearerAuth
func (h *InterventionHandlers) ListInterventions(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	interventions, err := h.hubservice.ListInterventions(r.Context(), actorOf(r), pathID(r))
	if err != nil {
		handleServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusOK, interventions)
}

// @Summary Schedule an intervention
// @Tags interventions
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path string true "Station ID"
// @Param intervention body models.InterventionInput true "Planned intervention"
// @Success 201 {object} models.Intervention
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /stations/{id}/interventions [post]
// @Security BearerAuth
func (h *InterventionHandlers) ScheduleIntervention(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var in models.InterventionInput
	if err := decodeInput(r, &in); err != nil {
		handleServiceError(w, err, requestID)
		return
	}

	intervention, err := h.hubservice.ScheduleIntervention(r.Context(), actorOf(r), pathID(r), in)
	if err != nil {
		handleServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusCreated, intervention)
}

// @Summary Log a completed intervention
// @Description Records an intervention that already took place, performed by the current user
// @Tags interventions
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path string true "Station ID"
// @Param intervention body models.InterventionInput true "Intervention"
// @Success 201 {object} models.Intervention
// @Router /stations/{id}/interventions/completed [post]
// @Security BearerAuth
func (h *InterventionHandlers) AddIntervention(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var in models.InterventionInput
	if err := decodeInput(r, &in); err != nil {
		handleServiceError(w, err, requestID)
		return
	}

	intervention, err := h.hubservice.AddIntervention(r.Context(), actorOf(r), pathID(r), in)
	if err != nil {
		handleServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusCreated, intervention)
}

// @Summary Get an intervention
// @Tags interventions
// @Produce json
// @Param id path string true "Intervention ID"
// @Success 200 {object} models.Intervention
// @Router /interventions/{id} [get]
// @Security BearerAuth
func (h *InterventionHandlers) GetIntervention(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	intervention, err := h.hubservice.GetIntervention(r.Context(), actorOf(r), pathID(r))
	if err != nil {
		handleServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusOK, intervention)
}

// @Summary Update an intervention
// @Tags interventions
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path string true "Intervention ID"
// @Param intervention body models.InterventionUpdate true "Changed fields"
// @Success 200 {object} models.Intervention
// @Router /interventions/{id} [put]
// @Security BearerAuth
func (h *InterventionHandlers) UpdateIntervention(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var in models.InterventionUpdate
	if err := decodeInput(r, &in); err != nil {
		handleServiceError(w, err, requestID)
		return
	}

	intervention, err := h.hubservice.UpdateIntervention(r.Context(), actorOf(r), pathID(r), in)
	if err != nil {
		handleServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusOK, intervention)
}

// @Summary Complete a scheduled intervention
// @Description The technician defaults to the current user; completing twice fails with 400
// @Tags interventions
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path string true "Intervention ID"
// @Param completion body models.CompleteInterventionInput false "Completion details"
// @Success 200 {object} models.Intervention
// @Failure 400 {object} errors.APIError
// @Router /interventions/{id}/complete [post]
// @Security BearerAuth
func (h *InterventionHandlers) CompleteIntervention(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var in models.CompleteInterventionInput
	if err := decodeInput(r, &in); err != nil {
		handleServiceError(w, err, requestID)
		return
	}

	intervention, err := h.hubservice.CompleteIntervention(r.Context(), actorOf(r), pathID(r), in)
	if err != nil {
		handleServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusOK, intervention)
}

// @Summary Delete an intervention
// @Tags interventions
// @Param id path string true "Intervention ID"
// @Success 204 "No Content"
// @Failure 403 {object} errors.APIError
// @Router /interventions/{id} [delete]
// @Security BearerAuth
func (h *InterventionHandlers) DeleteIntervention(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	if err := h.hubservice.DeleteIntervention(r.Context(), actorOf(r), pathID(r)); err != nil {
		handleServiceError(w, err, requestID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
