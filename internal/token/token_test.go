// FilePath: internal/token/token_test.go
package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrotechfields/islehub/internal/errors"
	"github.com/agrotechfields/islehub/internal/models"
)

func testUser(username string) *models.User {
	return &models.User{ID: "usr_test", Username: username, Role: models.RoleUser}
}

func TestCodec_IssueAndVerify(t *testing.T) {
	codec := NewCodec([]byte("test-secret"), 24*time.Hour)

	signed, err := codec.Issue(testUser("marcelo"))
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	subject, err := codec.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "marcelo", subject)
}

func TestCodec_IssuerClaim(t *testing.T) {
	codec := NewCodec([]byte("test-secret"), time.Hour)

	signed, err := codec.Issue(testUser("marcelo"))
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(signed, claims)
	require.NoError(t, err)
	assert.Equal(t, "Agro_Techfields", claims.Issuer)
	assert.NotNil(t, claims.IssuedAt)
	assert.NotNil(t, claims.ExpiresAt)
	assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestCodec_ExpiredToken(t *testing.T) {
	codec := NewCodec([]byte("test-secret"), time.Hour)

	issued := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	codec.now = func() time.Time { return issued }
	signed, err := codec.Issue(testUser("marcelo"))
	require.NoError(t, err)

	// Still valid just inside the window.
	codec.now = func() time.Time { return issued.Add(59 * time.Minute) }
	_, err = codec.Verify(signed)
	require.NoError(t, err)

	codec.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = codec.Verify(signed)
	require.Error(t, err)
	assert.True(t, errors.IsTokenExpired(err))
}

func TestCodec_WrongSecret(t *testing.T) {
	issuing := NewCodec([]byte("secret-a"), time.Hour)
	verifying := NewCodec([]byte("secret-b"), time.Hour)

	signed, err := issuing.Issue(testUser("marcelo"))
	require.NoError(t, err)

	_, err = verifying.Verify(signed)
	require.Error(t, err)

	apiErr, ok := err.(*errors.APIError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrorTypeSignatureInvalid, apiErr.Type)
}

func TestCodec_GarbageToken(t *testing.T) {
	codec := NewCodec([]byte("test-secret"), time.Hour)

	for _, garbage := range []string{"", "not-a-token", "a.b.c"} {
		_, err := codec.Verify(garbage)
		require.Error(t, err)

		apiErr, ok := err.(*errors.APIError)
		require.True(t, ok)
		assert.Equal(t, errors.ErrorTypeTokenMalformed, apiErr.Type)
	}
}

func TestCodec_WrongIssuerRejected(t *testing.T) {
	codec := NewCodec([]byte("test-secret"), time.Hour)

	claims := jwt.RegisteredClaims{
		Issuer:    "somebody-else",
		Subject:   "marcelo",
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = codec.Verify(signed)
	require.Error(t, err)
}
