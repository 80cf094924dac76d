// FilePath: api/resources/api.resource.stations.go
package resources

import (
	"net/http"

	"github.com/itsatony/stationhub/internal/hubservice"
	"github.com/itsatony/stationhub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// StationHandlers encapsulates the station-related HTTP handlers
type StationHandlers struct {
	hubservice *hubservice.HubService
}

// @Summary Dashboard
// @Description Station counts by status, open breakdowns and pending interventions
// @Tags stations
// @Produce json
// @Success 200 {object} models.Dashboard
// @Failure 401 {object} errors.APIError
// @Router /dashboard [get]
// @Security BearerAuth
func (h *StationHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	dash, err := h.hubservice.Dashboard(r.Context(), actorOf(r))
	if err != nil {
		handleServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusOK, dash)
}

// @Summary Create a new station
// @Description Create a station owned by the current user. Names are unique.
// @Tags stations
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param station body models.StationInput true "Station details"
// @Success 201 {object} models.Station
// @Failure 400 {object} errors.APIError
// @Failure 401 {object} errors.APIError
// @Router /stations [post]
// @Security BearerAuth
func (h *StationHandlers) CreateStation(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var in models.StationInput
	if err := decodeInput(r, &in); err != nil {
		handleServiceError(w, err, requestID)
		return
	}

	station, err := h.hubservice.CreateStation(r.Context(), actorOf(r), in)
	if err != nil {
		handleServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusCreated, station)
}

// @Summary List stations
// @Tags stations
// @Produce json
// @Success 200 {array} models.Station
// @Failure 401 {object} errors.APIError
// @Router /stations [get]
// @Security BearerAuth
func (h *StationHandlers) ListStations(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	stations, err := h.hubservice.ListStations(r.Context(), actorOf(r))
	if err != nil {
		handleServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusOK, stations)
}

// @Summary Get a station
// @Description Station with sensors, router, technical details, breakdowns, interventions and recent history
// @Tags stations
// @Produce json
// @Param id path string true "Station ID"
// @Success 200 {object} models.StationDetail
// @Failure 404 {object} errors.APIError
// @Router /stations/{id} [get]
// @Security BearerAuth
func (h *StationHandlers) GetStation(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	detail, err := h.hubservice.GetStationDetail(r.Context(), actorOf(r), pathID(r))
	if err != nil {
		handleServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusOK, detail)
}

// @Summary Update a station
// @Description Partial update; omitted fields are kept
// @Tags stations
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path string true "Station ID"
// @Param station body models.StationUpdate true "Changed fields"
// @Success 200 {object} models.Station
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /stations/{id} [put]
// @Security BearerAuth
func (h *StationHandlers) UpdateStation(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var in models.StationUpdate
	if err := decodeInput(r, &in); err != nil {
		handleServiceError(w, err, requestID)
		return
	}

	station, err := h.hubservice.UpdateStation(r.Context(), actorOf(r), pathID(r), in)
	if err != nil {
		handleServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusOK, station)
}

// @Summary Delete a station
// @Description Delete a station and everything it owns; admin only
// @Tags stations
// @Produce json
// @Param id path string true "Station ID"
// @Success 200 {object} cleanup.Report
// @Failure 401 {object} errors.APIError
// @Failure 403 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /stations/{id} [delete]
// @Security BearerAuth
func (h *StationHandlers) DeleteStation(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	report, err := h.hubservice.DeleteStation(r.Context(), actorOf(r), pathID(r))
	if err != nil {
		handleServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusOK, report)
}
