// FilePath: api/resources/api.resource.auth.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/agrotechfields/islehub/internal/errors"
	"github.com/agrotechfields/islehub/internal/hubservice"
	"github.com/agrotechfields/islehub/internal/monitoring"
	"github.com/agrotechfields/islehub/internal/token"
	nuts "github.com/vaudience/go-nuts"
)

// AuthHandlers encapsulates login and liveness handlers
type AuthHandlers struct {
	hubservice *hubservice.HubService
	codec      *token.Codec
	monitoring *monitoring.Service
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// @Summary Log in
// @Description Exchange username and password for a signed token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body loginRequest true "Login credentials"
// @Success 200 {object} loginResponse
// @Failure 401 {object} errors.APIError
// @Router /login [post]
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err), requestID)
		return
	}

	user, err := h.hubservice.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		respondWithError(w, err, requestID)
		return
	}

	signed, err := h.codec.Issue(user)
	if err != nil {
		respondWithError(w, err, requestID)
		return
	}

	nuts.L.Infof("[AuthHandler] Issued token for %s", user.Username)
	respondWithJSON(w, http.StatusOK, loginResponse{Token: signed})
}

// HealthCheck reports service liveness
func (h *AuthHandlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok","version":"` + nuts.GetVersion() + `"}`))
}

// ActuatorInfo reports build, uptime and lifecycle counters for operators
func (h *AuthHandlers) ActuatorInfo(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]any{
		"version": nuts.GetVersion(),
		"uptime":  h.monitoring.Uptime().String(),
		"events":  h.monitoring.EventCounts(),
	})
}
