// FilePath: api/resources/api.resource.history.go
package resources

import (
	"net/http"

	"github.com/itsatony/stationhub/internal/hubservice"
	"github.com/itsatony/stationhub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// HistoryHandlers exposes the station audit trail
type HistoryHandlers struct {
	hubservice *hubservice.HubService
}

// @Summary Station history
// @Description Newest first. With limit only the most recent records are returned.
// @Tags history
// @Produce json
// @Param id path string true "Station ID"
// @Param limit query int false "Return at most this many records"
// @Success 200 {array} models.StationHistory
// @Failure 404 {object} errors.APIError
// @Router /stations/{id}/history [get]
// @Security BearerAuth
func (h *HistoryHandlers) ListHistory(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var (
		records []*models.StationHistory
		err     error
	)
	if r.URL.Query().Has("limit") {
		records, err = h.hubservice.ListRecentHistory(r.Context(), actorOf(r), pathID(r), queryInt(r, "limit", 0))
	} else {
		records, err = h.hubservice.ListHistory(r.Context(), actorOf(r), pathID(r))
	}
	if err != nil {
		handleServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusOK, records)
}

// @Summary Purge a history record
// @Tags history
// @Param id path string true "History record ID"
// @Success 204 "No Content"
// @Failure 403 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /history/{id} [delete]
// @Security BearerAuth
func (h *HistoryHandlers) PurgeHistory(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	if err := h.hubservice.PurgeHistory(r.Context(), actorOf(r), pathID(r)); err != nil {
		handleServiceError(w, err, requestID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
