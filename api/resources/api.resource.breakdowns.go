// FilePath: api/resources/api.resource.breakdowns.go
package resources

import (
	"net/http"

	"github.com/itsatony/stationhub/internal/hubservice"
	"github.com/itsatony/stationhub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// BreakdownHandlers encapsulates fault report handlers
type BreakdownHandlers struct {
	hubservice *hubservice.HubService
}

// @Summary List breakdowns of a station
// @Tags breakdowns
// @Produce json
// @Param id path string true "Station ID"
// @Success 200 {array} models.Breakdown
// @Failure 404 {object} errors.APIError
// @Router /stations/{id}/breakdowns [get]
// @Security BearerAuth
func (h *BreakdownHandlers) ListBreakdowns(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	breakdowns, err := h.hubservice.ListBreakdowns(r.Context(), actorOf(r), pathID(r))
	if err != nil {
		handleServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusOK, breakdowns)
}

// @Summary Report a breakdown
// @Tags breakdowns
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path string true "Station ID"
// @Param breakdown body models.BreakdownInput true "Fault report"
// @Success 201 {object} models.Breakdown
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /stations/{id}/breakdowns [post]
// @Security BearerAuth
func (h *BreakdownHandlers) ReportBreakdown(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var in models.BreakdownInput
	if err := decodeInput(r, &in); err != nil {
		handleServiceError(w, err, requestID)
		return
	}

	breakdown, err := h.hubservice.ReportBreakdown(r.Context(), actorOf(r), pathID(r), in)
	if err != nil {
		handleServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusCreated, breakdown)
}

// @Summary Get a breakdown
// @Tags breakdowns
// @Produce json
// @Param id path string true "Breakdown ID"
// @Success 200 {object} models.Breakdown
// @Failure 404 {object} errors.APIError
// @Router /breakdowns/{id} [get]
// @Security BearerAuth
func (h *BreakdownHandlers) GetBreakdown(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	breakdown, err := h.hubservice.GetBreakdown(r.Context(), actorOf(r), pathID(r))
	if err != nil {
		handleServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusOK, breakdown)
}

// @Summary Update a breakdown
// @Tags breakdowns
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path string true "Breakdown ID"
// @Param breakdown body models.BreakdownUpdate true "Changed fields"
// @Success 200 {object} models.Breakdown
// @Router /breakdowns/{id} [put]
// @Security BearerAuth
func (h *BreakdownHandlers) UpdateBreakdown(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var in models.BreakdownUpdate
	if err := decodeInput(r, &in); err != nil {
		handleServiceError(w, err, requestID)
		return
	}

	breakdown, err := h.hubservice.UpdateBreakdown(r.Context(), actorOf(r), pathID(r), in)
	if err != nil {
		handleServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusOK, breakdown)
}

// @Summary Resolve a breakdown
// @Description Resolution is final; resolving twice fails with 400
// @Tags breakdowns
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path string true "Breakdown ID"
// @Param resolution body models.ResolveBreakdownInput false "Resolution notes"
// @Success 200 {object} models.Breakdown
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /breakdowns/{id}/resolve [post]
// @Security BearerAuth
func (h *BreakdownHandlers) ResolveBreakdown(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var in models.ResolveBreakdownInput
	if err := decodeInput(r, &in); err != nil {
		handleServiceError(w, err, requestID)
		return
	}

	breakdown, err := h.hubservice.ResolveBreakdown(r.Context(), actorOf(r), pathID(r), in)
	if err != nil {
		handleServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusOK, breakdown)
}

// @Summary Delete a breakdown
// @Tags breakdowns
// @Param id path string true "Breakdown ID"
// @Success 204 "No Content"
// @Failure 403 {object} errors.APIError
// @Router /breakdowns/{id} [delete]
// @Security BearerAuth
func (h *BreakdownHandlers) DeleteBreakdown(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	if err := h.hubservice.DeleteBreakdown(r.Context(), actorOf(r), pathID(r)); err != nil {
		handleServiceError(w, err, requestID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
