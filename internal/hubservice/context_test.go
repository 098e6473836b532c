// FilePath: internal/hubservice/context_test.go
package hubservice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agrotechfields/islehub/internal/models"
)

func TestGetUserRoles(t *testing.T) {
	ctx := ContextWithPrincipal(context.Background(), &Principal{
		ID:       "usr_1",
		Username: "marcelo",
		Role:     models.RoleAdmin,
		Enabled:  true,
	})
	assert.Equal(t, models.Authorities(&models.User{Role: models.RoleAdmin}), GetUserRoles(ctx))
	assert.Equal(t, []string{"ADMIN"}, GetUserRoles(ctx))

	assert.Equal(t, []string{"guest"}, GetUserRoles(context.Background()))
}
