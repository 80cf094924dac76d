// FilePath: api/resources/api.resource.equipment.go
package resources

import (
	"net/http"

	"github.com/itsatony/stationhub/internal/hubservice"
	"github.com/itsatony/stationhub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// SensorHandlers encapsulates the sensor-related HTTP handlers
type SensorHandlers struct {
	hubservice *hubservice.HubService
}

// @Summary List sensors of a station
// @Tags sensors
// @Produce json
// @Param id path string true "Station ID"
// @Success 200 {array} models.Sensor
// @Failure 404 {object} errors.APIError
// @Router /stations/{id}/sensors [get]
// @Security BearerAuth
func (h *SensorHandlers) ListSensors(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	sensors, err := h.hubservice.ListSensors(r.Context(), actorOf(r), pathID(r))
	if err != nil {
		handleServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusOK, sensors)
}

// @Summary Add a sensor
// @Tags sensors
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path string true "Station ID"
// @Param sensor body models.SensorInput true "Sensor details"
// @Success 201 {object} models.Sensor
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /stations/{id}/sensors [post]
// @Security BearerAuth
func (h *SensorHandlers) AddSensor(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var in models.SensorInput
	if err := decodeInput(r, &in); err != nil {
		handleServiceError(w, err, requestID)
		return
	}

	sensor, err := h.hubservice.AddSensor(r.Context(), actorOf(r), pathID(r), in)
	if err != nil {
		handleServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusCreated, sensor)
}

// @Summary Update a sensor
// @Tags sensors
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path string true "Sensor ID"
// @Param sensor body models.SensorUpdate true "Changed fields"
// @Success 200 {object} models.Sensor
// @Router /sensors/{id} [put]
// @Security BearerAuth
func (h *SensorHandlers) UpdateSensor(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var in models.SensorUpdate
	if err := decodeInput(r, &in); err != nil {
		handleServiceError(w, err, requestID)
		return
	}

	sensor, err := h.hubservice.UpdateSensor(r.Context(), actorOf(r), pathID(r), in)
	if err != nil {
		handleServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusOK, sensor)
}

// @Summary Delete a sensor
// @Tags sensors
// @Param id path string true "Sensor ID"
// @Success 204 "No Content"
// @Router /sensors/{id} [delete]
// @Security BearerAuth
func (h *SensorHandlers) DeleteSensor(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	if err := h.hubservice.DeleteSensor(r.Context(), actorOf(r), pathID(r)); err != nil {
		handleServiceError(w, err, requestID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RouterHandlers encapsulates the per-station network router handlers
type RouterHandlers struct {
	hubservice *hubservice.HubService
}

// @Summary Get the router of a station
// @Tags router
// @Produce json
// @Param id path string true "Station ID"
// @Success 200 {object} models.Router
// @Failure 404 {object} errors.APIError
// @Router /stations/{id}/router [get]
// @Security BearerAuth
func (h *RouterHandlers) GetRouter(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	router, err := h.hubservice.GetRouter(r.Context(), actorOf(r), pathID(r))
	if err != nil {
		handleServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusOK, router)
}

// @Summary Configure the router of a station
// @Description Creates the router or replaces the configuration of the existing one
// @Tags router
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path string true "Station ID"
// @Param router body models.RouterInput true "Router configuration"
// @Success 200 {object} models.Router
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /stations/{id}/router [put]
// @Router /stations/{id}/router [post]
// @Security BearerAuth
func (h *RouterHandlers) ConfigureRouter(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var in models.RouterInput
	if err := decodeInput(r, &in); err != nil {
		handleServiceError(w, err, requestID)
		return
	}

	router, err := h.hubservice.ConfigureRouter(r.Context(), actorOf(r), pathID(r), in)
	if err != nil {
		handleServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusOK, router)
}

// @Summary Remove the router of a station
// @Tags router
// @Param id path string true "Station ID"
// @Success 204 "No Content"
// @Router /stations/{id}/router [delete]
// @Security BearerAuth
func (h *RouterHandlers) DeleteRouter(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	if err := h.hubservice.DeleteRouter(r.Context(), actorOf(r), pathID(r)); err != nil {
		handleServiceError(w, err, requestID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DetailHandlers encapsulates the technical detail handlers
type DetailHandlers struct {
	hubservice *hubservice.HubService
}

// @Summary List technical details of a station
// @Tags details
// @Produce json
// @Param id path string true "Station ID"
// @Success 200 {array} models.TechnicalDetail
// @Router /stations/{id}/details [get]
// @Security BearerAuth
func (h *DetailHandlers) ListDetails(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	details, err := h.hubservice.ListTechnicalDetails(r.Context(), actorOf(r), pathID(r))
	if err != nil {
		handleServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusOK, details)
}

// @Summary Add a technical detail
// @Tags details
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path string true "Station ID"
// @Param detail body models.TechnicalDetailInput true "Detail"
// @Success 201 {object} models.TechnicalDetail
// @Router /stations/{id}/details [post]
// @Security BearerAuth
func (h *DetailHandlers) AddDetail(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var in models.TechnicalDetailInput
	if err := decodeInput(r, &in); err != nil {
		handleServiceError(w, err, requestID)
		return
	}

	detail, err := h.hubservice.AddTechnicalDetail(r.Context(), actorOf(r), pathID(r), in)
	if err != nil {
		handleServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusCreated, detail)
}

// @Summary Update a technical detail
// @Tags details
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path string true "Detail ID"
// @Param detail body models.TechnicalDetailUpdate true "Changed fields"
// @Success 200 {object} models.TechnicalDetail
// @Router /details/{id} [put]
// @Security BearerAuth
func (h *DetailHandlers) UpdateDetail(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var in models.TechnicalDetailUpdate
	if err := decodeInput(r, &in); err != nil {
		handleServiceError(w, err, requestID)
		return
	}

	detail, err := h.hubservice.UpdateTechnicalDetail(r.Context(), actorOf(r), pathID(r), in)
	if err != nil {
		handleServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusOK, detail)
}

func (h *DetailHandlers) DeleteDetail(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	if err := h.hubservice.DeleteTechnicalDetail(r.Context(), actorOf(r), pathID(r)); err != nil {
		handleServiceError(w, err, requestID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
