// FilePath: api/middleware/api.middleware.auth_test.go
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrotechfields/islehub/internal/database"
	"github.com/agrotechfields/islehub/internal/errors"
	"github.com/agrotechfields/islehub/internal/hubservice"
	"github.com/agrotechfields/islehub/internal/models"
	"github.com/agrotechfields/islehub/internal/token"
)

// stubUserRepository resolves usernames from a fixed map.
type stubUserRepository struct {
	users map[string]*models.User
}

func (s *stubUserRepository) BeginTx(ctx context.Context) (database.Transaction, error) {
	return nil, nil
}

func (s *stubUserRepository) Create(ctx context.Context, user *models.User) error { return nil }

func (s *stubUserRepository) Get(ctx context.Context, id string) (*models.User, error) {
	return nil, errors.NewNotFoundError("user not found", nil)
}

func (s *stubUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if u, ok := s.users[username]; ok {
		return u, nil
	}
	return nil, errors.NewNotFoundError("user not found", nil)
}

func (s *stubUserRepository) Update(ctx context.Context, user *models.User) error { return nil }
func (s *stubUserRepository) Delete(ctx context.Context, id string) error         { return nil }

func (s *stubUserRepository) List(ctx context.Context, offset, limit int) ([]*models.User, error) {
	return nil, nil
}

func (s *stubUserRepository) CountEnabledByRole(ctx context.Context, role models.Role) (int, error) {
	return 0, nil
}

func enabledUser(username string) *models.User {
	return &models.User{
		ID:                    "usr_" + username,
		Username:              username,
		Role:                  models.RoleUser,
		AccountNonExpired:     true,
		AccountNonLocked:      true,
		CredentialsNonExpired: true,
		Enabled:               true,
	}
}

func newAuthFixture(users ...*models.User) (*AuthMiddleware, *token.Codec) {
	repo := &stubUserRepository{users: make(map[string]*models.User)}
	for _, u := range users {
		repo.users[u.Username] = u
	}
	svc := hubservice.New(repo, nil, nil, nil)
	codec := token.NewCodec([]byte("test-secret"), time.Hour)
	auth := NewAuthMiddleware(codec, svc, DefaultPolicy(), AuthConfig{
		LegacyHeader:   "X-Auth-Token",
		LegacySentinel: "$",
	})
	return auth, codec
}

// capturePrincipal records the principal visible to the downstream handler.
func capturePrincipal(captured **hubservice.Principal) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = hubservice.PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate_BearerToken(t *testing.T) {
	user := enabledUser("marcelo")
	auth, codec := newAuthFixture(user)

	signed, err := codec.Issue(user)
	require.NoError(t, err)

	var principal *hubservice.Principal
	req := httptest.NewRequest(http.MethodGet, "/isle", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	auth.Authenticate(capturePrincipal(&principal)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, principal)
	assert.Equal(t, "marcelo", principal.Username)
	assert.Equal(t, models.RoleUser, principal.Role)
	assert.True(t, principal.Enabled)
}

func TestAuthenticate_LegacyHeader(t *testing.T) {
	user := enabledUser("marcelo")
	auth, codec := newAuthFixture(user)

	signed, err := codec.Issue(user)
	require.NoError(t, err)

	var principal *hubservice.Principal
	req := httptest.NewRequest(http.MethodGet, "/isle", nil)
	req.Header.Set("X-Auth-Token", "$"+signed+"$")
	rec := httptest.NewRecorder()
	auth.Authenticate(capturePrincipal(&principal)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, principal)
	assert.Equal(t, "marcelo", principal.Username)
}

func TestAuthenticate_NoTokenPassesThrough(t *testing.T) {
	auth, _ := newAuthFixture()

	var principal *hubservice.Principal
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	auth.Authenticate(capturePrincipal(&principal)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, principal, "request without token continues unauthenticated")
}

func TestAuthenticate_DeletedAccountReportsNotFound(t *testing.T) {
	user := enabledUser("marcelo")
	auth, codec := newAuthFixture() // account no longer exists

	signed, err := codec.Issue(user)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/isle", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	auth.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for an unresolvable subject")
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var payload errors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, errors.ErrorTypeNotFound, payload.Type)
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	auth, _ := newAuthFixture(enabledUser("marcelo"))

	req := httptest.NewRequest(http.MethodGet, "/isle", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	auth.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for an invalid token")
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	user := enabledUser("marcelo")
	repo := &stubUserRepository{users: map[string]*models.User{user.Username: user}}
	svc := hubservice.New(repo, nil, nil, nil)

	// Issue with a codec whose window has already closed.
	expired := token.NewCodec([]byte("test-secret"), -time.Hour)
	signed, err := expired.Issue(user)
	require.NoError(t, err)

	auth := NewAuthMiddleware(token.NewCodec([]byte("test-secret"), time.Hour), svc, DefaultPolicy(), AuthConfig{})

	req := httptest.NewRequest(http.MethodGet, "/isle", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	auth.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for an expired token")
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var payload errors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, errors.ErrorTypeTokenExpired, payload.Type)
}

func TestAuthenticate_ExpiredTokenContinuesOnPublicRoute(t *testing.T) {
	user := enabledUser("marcelo")
	repo := &stubUserRepository{users: map[string]*models.User{user.Username: user}}
	svc := hubservice.New(repo, nil, nil, nil)

	expired := token.NewCodec([]byte("test-secret"), -time.Hour)
	signed, err := expired.Issue(user)
	require.NoError(t, err)

	auth := NewAuthMiddleware(token.NewCodec([]byte("test-secret"), time.Hour), svc, DefaultPolicy(), AuthConfig{})

	// A device whose token lapsed must still be able to log in again
	// without stripping the stale header first.
	var principal *hubservice.Principal
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	auth.Authenticate(capturePrincipal(&principal)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, principal, "public route proceeds unauthenticated on a stale token")
}

func TestAuthenticate_DeletedAccountTokenContinuesOnPublicRoute(t *testing.T) {
	user := enabledUser("marcelo")
	auth, codec := newAuthFixture() // account no longer exists

	signed, err := codec.Issue(user)
	require.NoError(t, err)

	var principal *hubservice.Principal
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	auth.Authenticate(capturePrincipal(&principal)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, principal)
}

func TestAuthenticate_LockedAccountPrincipalDisabled(t *testing.T) {
	user := enabledUser("marcelo")
	user.AccountNonLocked = false
	auth, codec := newAuthFixture(user)

	signed, err := codec.Issue(user)
	require.NoError(t, err)

	var principal *hubservice.Principal
	req := httptest.NewRequest(http.MethodGet, "/isle", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	auth.Authenticate(capturePrincipal(&principal)).ServeHTTP(rec, req)

	require.NotNil(t, principal)
	assert.False(t, principal.Enabled, "locked accounts resolve but cannot pass the policy")
}
