// FilePath: api/resources/api.resource.measures.go
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

// MeasureHandlers encapsulates the measure-related HTTP handlers
type MeasureHandlers struct {
	hubservice *hubservice.HubService
}

// @Summary Submit a measure
// @Description Submit one reading set for the authenticated isle. The target
// @Description isle is resolved from the caller's serial number; any isle id
// @Description in the payload is ignored.
// @Tags measures
// @Accept json
// @Produce json
// @Param measure body models.Measure true "Measure values"
// @Success 201 {object} models.Measure
// @Failure 400 {object} errors.APIError
// @Failure 403 {object} errors.APIError
// @Router /measure [post]
// @Security BearerAuth
func (h *MeasureHandlers) CreateMeasure(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	principal := hubservice.PrincipalFromContext(r.Context())
	if principal == nil {
		respondWithError(w, errors.NewAuthError("authentication required", nil), requestID)
		return
	}

	// The isle account's username is the device serial number.
	isle, err := h.hubservice.GetIsleBySerialNumber(r.Context(), principal.Username)
	if err != nil {
		respondWithError(w, err, requestID)
		return
	}

	var measure models.Measure
	if err := json.NewDecoder(r.Body).Decode(&measure); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err), requestID)
		return
	}

	if err := h.hubservice.CreateMeasure(r.Context(), isle, &measure); err != nil {
		respondWithError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusCreated, measure)
}

// @Summary List measures
// @Tags measures
// @Produce json
// @Param isle_id query string false "Filter by isle id"
// @Param from query string false "Earliest timestamp (RFC3339)"
// @Param to query string false "Latest timestamp (RFC3339)"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {array} models.Measure
// @Router /measure [get]
func (h *MeasureHandlers) ListMeasures(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	offset, limit := getPaginationParams(r)

	var filters models.MeasureFilters
	if err := queryDecoder.Decode(&filters, r.URL.Query()); err != nil {
		respondWithError(w, errors.NewValidationError("invalid query filters", err), requestID)
		return
	}

	measures, err := h.hubservice.ListMeasures(r.Context(), filters, offset, limit)
	if err != nil {
		respondWithError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, measures)
}

// @Summary Get a measure by ID
// @Tags measures
// @Produce json
// @Param id path string true "Measure ID"
// @Success 200 {object} models.Measure
// @Failure 404 {object} errors.APIError
// @Router /measure/{id} [get]
func (h *MeasureHandlers) GetMeasure(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := nuts.NID("req", 12)

	measure, err := h.hubservice.GetMeasure(r.Context(), vars["id"])
	if err != nil {
		respondWithError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, measure)
}

// @Summary Update a measure
// @Description Overwrite the measured fields; id and isle linkage are kept
// @Tags measures
// @Accept json
// @Produce json
// @Param id path string true "Measure ID"
// @Param measure body models.Measure true "Updated measure values"
// @Success 200 {object} models.Measure
// @Failure 404 {object} errors.APIError
// @Router /measure/{id} [put]
// @Security BearerAuth
func (h *MeasureHandlers) UpdateMeasure(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := nuts.NID("req", 12)

	var measure models.Measure
	if err := json.NewDecoder(r.Body).Decode(&measure); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err), requestID)
		return
	}

	if err := h.hubservice.UpdateMeasure(r.Context(), vars["id"], &measure); err != nil {
		respondWithError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, measure)
}

// @Summary Delete a measure
// @Tags measures
// @Param id path string true "Measure ID"
// @Success 204 "No Content"
// @Failure 404 {object} errors.APIError
// @Router /measure/{id} [delete]
// @Security BearerAuth
func (h *MeasureHandlers) DeleteMeasure(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := nuts.NID("req", 12)

	if err := h.hubservice.DeleteMeasure(r.Context(), vars["id"]); err != nil {
		respondWithError(w, err, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
