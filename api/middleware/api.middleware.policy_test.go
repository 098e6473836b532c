// FilePath: api/middleware/api.middleware.policy_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrotechfields/islehub/internal/errors"
	"github.com/agrotechfields/islehub/internal/hubservice"
	"github.com/agrotechfields/islehub/internal/models"
)

func principalWithRole(role models.Role) *hubservice.Principal {
	return &hubservice.Principal{
		ID:       "usr_test",
		Username: "tester",
		Role:     role,
		Enabled:  true,
	}
}

func TestPolicy_Evaluate(t *testing.T) {
	policy := DefaultPolicy()

	testCases := []struct {
		name      string
		method    string
		path      string
		principal *hubservice.Principal
		errType   errors.ErrorType
	}{
		{"login is public", http.MethodPost, "/login", nil, ""},
		{"health is public", http.MethodGet, "/health", nil, ""},
		{"actuator health is public", http.MethodGet, "/actuator/health", nil, ""},
		{"actuator info needs admin", http.MethodGet, "/actuator/info", principalWithRole(models.RoleUser), errors.ErrorTypeAuthorize},
		{"actuator info for admin", http.MethodGet, "/actuator/info", principalWithRole(models.RoleAdmin), ""},

		{"isle registration is public", http.MethodPost, "/user/isle", nil, ""},
		{"isle password rotation is public", http.MethodPut, "/user/isle", nil, ""},
		{"user creation needs admin", http.MethodPost, "/user", principalWithRole(models.RoleUser), errors.ErrorTypeAuthorize},
		{"user creation for admin", http.MethodPost, "/user", principalWithRole(models.RoleAdmin), ""},
		{"user creation anonymous", http.MethodPost, "/user", nil, errors.ErrorTypeAuth},
		{"user listing for user role", http.MethodGet, "/user", principalWithRole(models.RoleUser), ""},
		{"self update for isle role", http.MethodPut, "/user", principalWithRole(models.RoleIsle), ""},
		{"self update for sat role", http.MethodPut, "/user", principalWithRole(models.RoleSat), ""},
		{"role toggle needs admin", http.MethodPatch, "/user/usr_1/toggle/role", principalWithRole(models.RoleUser), errors.ErrorTypeAuthorize},
		{"role toggle for admin", http.MethodPatch, "/user/usr_1/toggle/role", principalWithRole(models.RoleAdmin), ""},
		{"user deletion needs admin", http.MethodDelete, "/user/usr_1", principalWithRole(models.RoleSat), errors.ErrorTypeAuthorize},

		{"isle listing for isle role", http.MethodGet, "/isle", principalWithRole(models.RoleIsle), ""},
		{"isle listing for sat denied", http.MethodGet, "/isle", principalWithRole(models.RoleSat), errors.ErrorTypeAuthorize},
		{"isle creation needs admin", http.MethodPost, "/isle", principalWithRole(models.RoleUser), errors.ErrorTypeAuthorize},
		{"isle toggle for admin", http.MethodPatch, "/isle/toggle/isl_1", principalWithRole(models.RoleAdmin), ""},

		{"measure submission for isle", http.MethodPost, "/measure", principalWithRole(models.RoleIsle), ""},
		{"measure submission for admin denied", http.MethodPost, "/measure", principalWithRole(models.RoleAdmin), errors.ErrorTypeAuthorize},
		{"measure listing for user", http.MethodGet, "/measure", principalWithRole(models.RoleUser), ""},
		{"measure update needs admin", http.MethodPut, "/measure/msr_1", principalWithRole(models.RoleIsle), errors.ErrorTypeAuthorize},

		{"image listing for user", http.MethodGet, "/image", principalWithRole(models.RoleUser), ""},
		{"image listing for isle denied", http.MethodGet, "/image", principalWithRole(models.RoleIsle), errors.ErrorTypeAuthorize},
		{"image upload needs admin", http.MethodPost, "/image", principalWithRole(models.RoleUser), errors.ErrorTypeAuthorize},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := policy.Evaluate(tc.method, tc.path, tc.principal)
			if tc.errType == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			apiErr, ok := err.(*errors.APIError)
			require.True(t, ok)
			assert.Equal(t, tc.errType, apiErr.Type)
		})
	}
}

func TestPolicy_DisabledPrincipal(t *testing.T) {
	policy := DefaultPolicy()
	disabled := principalWithRole(models.RoleAdmin)
	disabled.Enabled = false

	err := policy.Evaluate(http.MethodGet, "/isle", disabled)
	require.Error(t, err)
	assert.True(t, errors.IsNotPermitted(err))

	// Public routes stay open even for disabled accounts.
	assert.NoError(t, policy.Evaluate(http.MethodGet, "/health", disabled))
}

func TestPolicy_UnlistedRouteRequiresAuthentication(t *testing.T) {
	policy := DefaultPolicy()

	err := policy.Evaluate(http.MethodGet, "/unlisted", nil)
	require.Error(t, err)
	assert.True(t, errors.IsAuth(err))

	assert.NoError(t, policy.Evaluate(http.MethodGet, "/unlisted", principalWithRole(models.RoleSat)))
}

func TestPolicy_PrefixSegmentMatching(t *testing.T) {
	policy := NewPolicy([]Rule{
		{Method: http.MethodGet, Prefix: "/user/isle", Public: true},
		{Method: http.MethodGet, Prefix: "/user", Roles: []models.Role{models.RoleAdmin}},
	})

	// The longer prefix wins for its subtree only.
	assert.NoError(t, policy.Evaluate(http.MethodGet, "/user/isle", nil))
	assert.NoError(t, policy.Evaluate(http.MethodGet, "/user/isle/extra", nil))

	err := policy.Evaluate(http.MethodGet, "/user/isles", nil)
	require.Error(t, err, "partial segment must not match the public prefix")
}

func TestPolicy_Middleware(t *testing.T) {
	policy := DefaultPolicy()
	handler := policy.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/isle", nil)
	req = req.WithContext(hubservice.ContextWithPrincipal(req.Context(), principalWithRole(models.RoleUser)))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/isle", nil)
	req = req.WithContext(hubservice.ContextWithPrincipal(req.Context(), principalWithRole(models.RoleAdmin)))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
