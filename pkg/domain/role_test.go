package domain_test

import (
	"testing"

	"github.com/pocketfin/pocketfin/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	for _, name := range []string{"user", "admin", "super_admin"} {
		role, ok := domain.ParseRole(name)
		assert.True(t, ok, name)
		assert.Equal(t, name, role.String())
	}

	_, ok := domain.ParseRole("root")
	assert.False(t, ok)
	_, ok = domain.ParseRole("")
	assert.False(t, ok)
}

func TestRolePrivileges(t *testing.T) {
	assert.False(t, domain.RoleUser.IsAdmin())
	assert.True(t, domain.RoleAdmin.IsAdmin())
	assert.True(t, domain.RoleSuperAdmin.IsAdmin())

	assert.False(t, domain.RoleAdmin.IsSuperAdmin())
	assert.True(t, domain.RoleSuperAdmin.IsSuperAdmin())
}
