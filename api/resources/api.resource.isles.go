// FilePath: api/resources/api.resource.isles.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/agrotechfields/islehub/internal/errors"
	"github.com/agrotechfields/islehub/internal/hubservice"
	"github.com/agrotechfields/islehub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// IsleHandlers encapsulates the isle-related HTTP handlers
type IsleHandlers struct {
	hubservice *hubservice.HubService
}

type isleCreateRequest struct {
	models.Isle
	ProvisionPassword string `json:"provision_password"`
}

// @Summary Register a new isle
// @Description Register a new field device with its provisioning secret
// @Tags isles
// @Accept json
// @Produce json
// @Param isle body isleCreateRequest true "Isle details"
// @Success 201 {object} models.Isle
// @Failure 400 {object} errors.APIError
// @Failure 409 {object} errors.APIError
// @Router /isle [post]
// @Security BearerAuth
func (h *IsleHandlers) CreateIsle(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var req isleCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err), requestID)
		return
	}

	if err := h.hubservice.CreateIsle(r.Context(), &req.Isle, req.ProvisionPassword); err != nil {
		respondWithError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusCreated, req.Isle)
}

// @Summary Get an isle by ID
// @Tags isles
// @Produce json
// @Param id path string true "Isle ID"
// @Success 200 {object} models.Isle
// @Failure 404 {object} errors.APIError
// @Router /isle/{id} [get]
func (h *IsleHandlers) GetIsle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := nuts.NID("req", 12)

	isle, err := h.hubservice.GetIsle(r.Context(), vars["id"])
	if err != nil {
		respondWithError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, isle)
}

// @Summary Get an isle by serial number
// @Tags isles
// @Produce json
// @Param serialNumber path string true "Isle serial number"
// @Success 200 {object} models.Isle
// @Failure 404 {object} errors.APIError
// @Router /isle/serial/{serialNumber} [get]
func (h *IsleHandlers) GetIsleBySerialNumber(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := nuts.NID("req", 12)

	isle, err := h.hubservice.GetIsleBySerialNumber(r.Context(), vars["serialNumber"])
	if err != nil {
		respondWithError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, isle)
}

// @Summary List isles
// @Tags isles
// @Produce json
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {array} models.Isle
// @Router /isle [get]
func (h *IsleHandlers) ListIsles(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	offset, limit := getPaginationParams(r)

	isles, err := h.hubservice.ListIsles(r.Context(), offset, limit)
	if err != nil {
		respondWithError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, isles)
}

// @Summary Update an isle
// @Description Fully replace the isle record at the given id
// @Tags isles
// @Accept json
// @Produce json
// @Param id path string true "Isle ID"
// @Param isle body models.Isle true "Updated isle details"
// @Success 200 {object} models.Isle
// @Failure 404 {object} errors.APIError
// @Router /isle/{id} [put]
// @Security BearerAuth
func (h *IsleHandlers) UpdateIsle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := nuts.NID("req", 12)

	var isle models.Isle
	if err := json.NewDecoder(r.Body).Decode(&isle); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err), requestID)
		return
	}

	if err := h.hubservice.UpdateIsle(r.Context(), vars["id"], &isle); err != nil {
		respondWithError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, isle)
}

// @Summary Toggle isle working mode
// @Description Flip the working gate controlling measure submission
// @Tags isles
// @Produce json
// @Param id path string true "Isle ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} errors.APIError
// @Router /isle/toggle/{id} [patch]
// @Security BearerAuth
func (h *IsleHandlers) ToggleWorkingMode(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := nuts.NID("req", 12)

	working, err := h.hubservice.ToggleWorkingMode(r.Context(), vars["id"])
	if err != nil {
		respondWithError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"id":            vars["id"],
		"is_it_working": working,
	})
}

// @Summary Delete an isle
// @Description Delete an isle; its measures and linked account are retained
// @Tags isles
// @Param id path string true "Isle ID"
// @Success 204 "No Content"
// @Failure 404 {object} errors.APIError
// @Router /isle/{id} [delete]
// @Security BearerAuth
func (h *IsleHandlers) DeleteIsle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := nuts.NID("req", 12)

	if err := h.hubservice.DeleteIsle(r.Context(), vars["id"]); err != nil {
		respondWithError(w, err, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary List an isle's measures
// @Tags isles
// @Produce json
// @Param id path string true "Isle ID"
// @Success 200 {array} models.Measure
// @Failure 404 {object} errors.APIError
// @Router /isle/{id}/measures [get]
func (h *IsleHandlers) ListIsleMeasures(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := nuts.NID("req", 12)
	offset, limit := getPaginationParams(r)

	isle, err := h.hubservice.GetIsle(r.Context(), vars["id"])
	if err != nil {
		respondWithError(w, err, requestID)
		return
	}

	measures, err := h.hubservice.ListMeasuresByIsle(r.Context(), isle, offset, limit)
	if err != nil {
		respondWithError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, measures)
}
