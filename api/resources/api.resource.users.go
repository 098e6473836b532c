// FilePath: api/resources/api.resource.users.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/agrotechfields/islehub/internal/errors"
	"github.com/agrotechfields/islehub/internal/hubservice"
	nuts "github.com/vaudience/go-nuts"
)

// UserHandlers encapsulates the account-related HTTP handlers
type UserHandlers struct {
	hubservice *hubservice.HubService
}

// @Summary Create a user account
// @Description Create a human or satellite account. Role is resolved from the
// @Description is_admin/is_sat flags, defaulting to USER.
// @Tags users
// @Accept json
// @Produce json
// @Param user body hubservice.CreateUserInput true "Account data"
// @Success 201 {object} models.User
// @Failure 400 {object} errors.APIError
// @Failure 409 {object} errors.APIError
// @Router /user [post]
// @Security BearerAuth
func (h *UserHandlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var input hubservice.CreateUserInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err), requestID)
		return
	}

	user, err := h.hubservice.CreateUser(r.Context(), input)
	if err != nil {
		respondWithError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusCreated, user)
}

// @Summary Register an isle account
// @Description Self-registration for a device. The serial number must belong
// @Description to a known isle and the password must match the isle's
// @Description provisioning secret.
// @Tags users
// @Accept json
// @Produce json
// @Param credentials body hubservice.IsleUserInput true "Serial number and provisioning password"
// @Success 201 {object} models.User
// @Failure 401 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Failure 409 {object} errors.APIError
// @Router /user/isle [post]
func (h *UserHandlers) RegisterIsleUser(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var input hubservice.IsleUserInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err), requestID)
		return
	}

	user, err := h.hubservice.RegisterIsleUser(r.Context(), input)
	if err != nil {
		respondWithError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusCreated, user)
}

// @Summary Rotate an isle account password
// @Tags users
// @Accept json
// @Produce json
// @Param credentials body hubservice.IsleUserInput true "Serial number, provisioning password and new password"
// @Success 200 {object} models.User
// @Failure 401 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /user/isle [put]
func (h *UserHandlers) UpdateIsleUser(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var input hubservice.IsleUserInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err), requestID)
		return
	}

	user, err := h.hubservice.UpdateIsleUser(r.Context(), input)
	if err != nil {
		respondWithError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}

// @Summary Update the authenticated account
// @Description Change the caller's own username and/or password.
// @Tags users
// @Accept json
// @Produce json
// @Param user body hubservice.UpdateUserInput true "New credentials"
// @Success 200 {object} models.User
// @Failure 409 {object} errors.APIError
// @Router /user [put]
// @Security BearerAuth
func (h *UserHandlers) UpdateContextUser(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var input hubservice.UpdateUserInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err), requestID)
		return
	}

	user, err := h.hubservice.UpdateContextUser(r.Context(), input)
	if err != nil {
		respondWithError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}

// @Summary List user accounts
// @Tags users
// @Produce json
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {array} models.User
// @Router /user [get]
// @Security BearerAuth
func (h *UserHandlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	offset, limit := getPaginationParams(r)

	users, err := h.hubservice.ListUsers(r.Context(), offset, limit)
	if err != nil {
		respondWithError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, users)
}

// @Summary Get a user account by ID
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} errors.APIError
// @Router /user/{id} [get]
// @Security BearerAuth
func (h *UserHandlers) GetUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := nuts.NID("req", 12)

	user, err := h.hubservice.GetUser(r.Context(), vars["id"])
	if err != nil {
		respondWithError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}

// @Summary Toggle an account between ADMIN and USER
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.User
// @Failure 403 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /user/{id}/toggle/role [patch]
// @Security BearerAuth
func (h *UserHandlers) ToggleRole(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := nuts.NID("req", 12)

	user, err := h.hubservice.ToggleRoleByID(r.Context(), vars["id"])
	if err != nil {
		respondWithError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}

// @Summary Toggle an account's enabled flag
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.User
// @Failure 403 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /user/{id}/toggle/enable [patch]
// @Security BearerAuth
func (h *UserHandlers) ToggleEnable(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := nuts.NID("req", 12)

	user, err := h.hubservice.ToggleIsEnable(r.Context(), vars["id"])
	if err != nil {
		respondWithError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}

// @Summary Delete a user account
// @Description Remove the account. Outstanding tokens for the account keep
// @Description verifying but resolve to no principal afterwards.
// @Tags users
// @Param id path string true "User ID"
// @Success 204 "No Content"
// @Failure 404 {object} errors.APIError
// @Router /user/{id} [delete]
// @Security BearerAuth
func (h *UserHandlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := nuts.NID("req", 12)

	if err := h.hubservice.DeleteUser(r.Context(), vars["id"]); err != nil {
		respondWithError(w, err, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
