// FilePath: internal/token/token.go
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apierrors "github.com/agrotechfields/islehub/internal/errors"
	"github.com/agrotechfields/islehub/internal/models"
)

// Issuer is the fixed issuer claim stamped on every token.
const Issuer = "Agro_Techfields"

// Tokens are issued with timestamps in the station operator's home offset.
var issuerZone = time.FixedZone("UTC-3", -3*60*60)

// Codec issues and verifies signed, time-bound identity tokens.
// It is pure and stateless: no revocation list, no refresh.
type Codec struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

// NewCodec creates a codec signing with the given symmetric secret.
func NewCodec(secret []byte, validity time.Duration) *Codec {
	return &Codec{
		secret:   secret,
		validity: validity,
		now:      time.Now,
	}
}

// Issue produces a signed token for the given user, valid from now for the
// configured validity window.
func (c *Codec) Issue(user *models.User) (string, error) {
	now := c.now().In(issuerZone)
	claims := jwt.RegisteredClaims{
		Issuer:    Issuer,
		Subject:   user.Username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.validity)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", apierrors.NewInternalError("failed to sign token", err)
	}
	return signed, nil
}

// Verify validates signature, issuer and expiry, and returns the subject
// username.
func (c *Codec) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithTimeFunc(func() time.Time { return c.now() }),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", apierrors.NewTokenExpiredError("token has expired", err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", apierrors.NewSignatureInvalidError("token signature mismatch", err)
		default:
			return "", apierrors.NewTokenMalformedError("token is not valid", err)
		}
	}
	if !parsed.Valid {
		return "", apierrors.NewTokenMalformedError("token is not valid", nil)
	}
	return claims.Subject, nil
}
