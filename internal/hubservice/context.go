// FilePath: internal/hubservice/context.go
package hubservice

import (
	"context"

	"github.com/agrotechfields/islehub/internal/models"
)

// Principal is the authenticated identity attached to a request. It is a
// plain value passed through the context under a typed key; there is no
// ambient or global security state.
type Principal struct {
	ID       string      `json:"id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	Enabled  bool        `json:"enabled"`
}

type contextKey string

const principalContextKey contextKey = "principal"

// ContextWithPrincipal attaches the resolved principal to the request context.
func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

// PrincipalFromContext retrieves the principal, or nil for an
// unauthenticated request.
func PrincipalFromContext(ctx context.Context) *Principal {
	if p, ok := ctx.Value(principalContextKey).(*Principal); ok {
		return p
	}
	return nil
}

// GetUserRoles retrieves the caller's authorization claims from the context.
func GetUserRoles(ctx context.Context) []string {
	if p := PrincipalFromContext(ctx); p != nil {
		return models.Authorities(&models.User{Role: p.Role})
	}
	return []string{"guest"}
}
