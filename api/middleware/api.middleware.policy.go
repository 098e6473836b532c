// FilePath: api/middleware/api.middleware.policy.go
package middleware

import (
	"net/http"
	"strings"

	"github.com/agrotechfields/islehub/internal/errors"
	"github.com/agrotechfields/islehub/internal/hubservice"
	"github.com/agrotechfields/islehub/internal/models"
)

// Rule maps one (method, path prefix) pair to the roles allowed through.
// An empty role list means any authenticated, enabled principal.
type Rule struct {
	Method string // "*" matches any method
	Prefix string
	Roles  []models.Role
	Public bool
}

// Policy is the static access table evaluated after authentication and
// before any handler runs. Deny-by-default: routes without a matching rule
// still require an authenticated, enabled principal.
type Policy struct {
	rules []Rule
}

func NewPolicy(rules []Rule) *Policy {
	return &Policy{rules: rules}
}

// DefaultPolicy returns the route permission matrix of the service.
func DefaultPolicy() *Policy {
	return NewPolicy([]Rule{
		{Method: http.MethodPost, Prefix: "/login", Public: true},
		{Method: http.MethodGet, Prefix: "/health", Public: true},
		{Method: http.MethodGet, Prefix: "/actuator/health", Public: true},
		{Method: "*", Prefix: "/actuator", Roles: []models.Role{models.RoleAdmin}},

		{Method: http.MethodPost, Prefix: "/user/isle", Public: true},
		{Method: http.MethodPut, Prefix: "/user/isle", Public: true},
		{Method: http.MethodPost, Prefix: "/user", Roles: []models.Role{models.RoleAdmin}},
		{Method: http.MethodGet, Prefix: "/user", Roles: []models.Role{models.RoleAdmin, models.RoleUser}},
		{Method: http.MethodPut, Prefix: "/user", Roles: []models.Role{models.RoleAdmin, models.RoleUser, models.RoleIsle, models.RoleSat}},
		{Method: http.MethodPatch, Prefix: "/user", Roles: []models.Role{models.RoleAdmin}},
		{Method: http.MethodDelete, Prefix: "/user", Roles: []models.Role{models.RoleAdmin}},

		{Method: http.MethodGet, Prefix: "/isle", Roles: []models.Role{models.RoleAdmin, models.RoleUser, models.RoleIsle}},
		{Method: http.MethodPost, Prefix: "/isle", Roles: []models.Role{models.RoleAdmin}},
		{Method: http.MethodPut, Prefix: "/isle", Roles: []models.Role{models.RoleAdmin}},
		{Method: http.MethodDelete, Prefix: "/isle", Roles: []models.Role{models.RoleAdmin}},
		{Method: http.MethodPatch, Prefix: "/isle", Roles: []models.Role{models.RoleAdmin}},

		{Method: http.MethodGet, Prefix: "/measure", Roles: []models.Role{models.RoleAdmin, models.RoleUser, models.RoleIsle}},
		{Method: http.MethodPost, Prefix: "/measure", Roles: []models.Role{models.RoleIsle}},
		{Method: http.MethodPut, Prefix: "/measure", Roles: []models.Role{models.RoleAdmin}},
		{Method: http.MethodDelete, Prefix: "/measure", Roles: []models.Role{models.RoleAdmin}},

		{Method: http.MethodGet, Prefix: "/image", Roles: []models.Role{models.RoleAdmin, models.RoleUser}},
		{Method: http.MethodPost, Prefix: "/image", Roles: []models.Role{models.RoleAdmin}},
		{Method: http.MethodDelete, Prefix: "/image", Roles: []models.Role{models.RoleAdmin}},
	})
}

// Evaluate returns nil when the request may proceed. The most specific
// (longest) matching prefix wins, so /user/isle narrows /user.
func (p *Policy) Evaluate(method, path string, principal *hubservice.Principal) error {
	rule := p.match(method, path)

	if rule != nil && rule.Public {
		return nil
	}
	if principal == nil {
		return errors.NewAuthError("authentication required", nil)
	}
	if !principal.Enabled {
		return errors.NewNotPermittedError("account is disabled", nil)
	}
	if rule == nil || len(rule.Roles) == 0 {
		return nil
	}
	for _, role := range rule.Roles {
		if principal.Role == role {
			return nil
		}
	}
	return errors.NewAuthorizationError("insufficient permissions", nil)
}

// IsPublic reports whether the route is open to unauthenticated callers.
func (p *Policy) IsPublic(method, path string) bool {
	rule := p.match(method, path)
	return rule != nil && rule.Public
}

func (p *Policy) match(method, path string) *Rule {
	var best *Rule
	for i := range p.rules {
		rule := &p.rules[i]
		if rule.Method != "*" && rule.Method != method {
			continue
		}
		if !prefixMatches(path, rule.Prefix) {
			continue
		}
		if best == nil || len(rule.Prefix) > len(best.Prefix) {
			best = rule
		}
	}
	return best
}

// prefixMatches matches on whole path segments: /user/isle matches
// /user/isle and /user/isle/..., but not /user/isles.
func prefixMatches(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}

// Middleware enforces the policy before the target handler executes. A
// denied request never reaches a lifecycle service.
func (p *Policy) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal := hubservice.PrincipalFromContext(r.Context())
		if err := p.Evaluate(r.Method, r.URL.Path, principal); err != nil {
			handleError(w, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}
