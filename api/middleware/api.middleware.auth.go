package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/agrotechfields/islehub/internal/errors"
	"github.com/agrotechfields/islehub/internal/hubservice"
	"github.com/agrotechfields/islehub/internal/token"
	nuts "github.com/vaudience/go-nuts"
)

// AuthConfig describes how tokens reach the service. The standard transport
// is Authorization: Bearer; the legacy custom header (with its sentinel
// framing character) is still accepted for deployed devices.
type AuthConfig struct {
	LegacyHeader   string
	LegacySentinel string
}

// AuthMiddleware resolves the caller identity from a signed token.
type AuthMiddleware struct {
	codec  *token.Codec
	svc    *hubservice.HubService
	policy *Policy
	config AuthConfig
}

func NewAuthMiddleware(codec *token.Codec, svc *hubservice.HubService, policy *Policy, config AuthConfig) *AuthMiddleware {
	return &AuthMiddleware{
		codec:  codec,
		svc:    svc,
		policy: policy,
		config: config,
	}
}

// Authenticate validates the token, resolves the subject against the
// credential store and attaches the principal to the request context.
// A request without a token continues unauthenticated; the access policy
// decides whether it may proceed. A token that fails verification or
// resolution is fatal only on non-public routes.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := m.extractToken(r)
		if tokenString == "" {
			next.ServeHTTP(w, r)
			return
		}

		username, err := m.codec.Verify(tokenString)
		if err != nil {
			m.rejectOrPassPublic(w, r, next, err)
			return
		}

		// A subject that no longer resolves is reported as not found, not as
		// a silent 401: tokens outlive deleted accounts.
		user, err := m.svc.LoadUserByUsername(r.Context(), username)
		if err != nil {
			m.rejectOrPassPublic(w, r, next, err)
			return
		}

		principal := &hubservice.Principal{
			ID:       user.ID,
			Username: user.Username,
			Role:     user.Role,
			Enabled:  user.Enabled && user.Usable(),
		}
		ctx := hubservice.ContextWithPrincipal(r.Context(), principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// rejectOrPassPublic reports the pipeline failure unless the target route is
// public, in which case the request continues unauthenticated. A device whose
// token expired can still reach /login without stripping its header.
func (m *AuthMiddleware) rejectOrPassPublic(w http.ResponseWriter, r *http.Request, next http.Handler, err error) {
	if m.policy != nil && m.policy.IsPublic(r.Method, r.URL.Path) {
		next.ServeHTTP(w, r)
		return
	}
	handleError(w, err)
}

// extractToken pulls the token from the standard bearer header, falling back
// to the legacy custom header and stripping its sentinel framing.
func (m *AuthMiddleware) extractToken(r *http.Request) string {
	bearer := r.Header.Get("Authorization")
	if parts := strings.SplitN(bearer, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}

	if m.config.LegacyHeader == "" {
		return ""
	}
	legacy := r.Header.Get(m.config.LegacyHeader)
	if legacy == "" {
		return ""
	}
	if m.config.LegacySentinel != "" {
		legacy = strings.Trim(legacy, m.config.LegacySentinel)
	}
	return strings.TrimSpace(legacy)
}

// handleError funnels pipeline failures through the same structured payload
// the resource handlers use, so authn and business errors look alike.
func handleError(w http.ResponseWriter, err error) {
	apiErr, ok := err.(*errors.APIError)
	if !ok {
		apiErr = errors.NewInternalError("internal server error", err)
	}
	if apiErr.Type == errors.ErrorTypeInternal || apiErr.Type == errors.ErrorTypeDatabase {
		nuts.L.Errorf("[AuthMiddleware] %s", apiErr.Error())
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Code)
	json.NewEncoder(w).Encode(apiErr)
}
