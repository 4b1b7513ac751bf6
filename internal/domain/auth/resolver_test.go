package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveRole_AdminOverride(t *testing.T) {
	assert.Equal(t, RoleFan, EffectiveRole(RoleAdmin, RoleFan))
	assert.Equal(t, RoleCreator, EffectiveRole(RoleAdmin, RoleCreator))
	assert.Equal(t, RoleAdmin, EffectiveRole(RoleAdmin, RoleAdmin))
}

func TestEffectiveRole_AdminNoOverride(t *testing.T) {
	assert.Equal(t, RoleAdmin, EffectiveRole(RoleAdmin, ""))
}

func TestEffectiveRole_NonAdminIgnoresOverride(t *testing.T) {
	// The resolver, not UI gating, is the safety boundary: even if the
	// override store is tampered with directly, a non-admin primary role
	// must resolve to itself.
	for _, primary := range []Role{RoleGuest, RoleFan, RoleCreator} {
		for _, override := range []Role{"", RoleFan, RoleCreator, RoleAdmin, Role("root")} {
			assert.Equal(t, primary, EffectiveRole(primary, override),
				"primary=%s override=%s", primary, override)
		}
	}
}

func TestEffectiveRole_InvalidPrimaryDegradesToGuest(t *testing.T) {
	assert.Equal(t, RoleGuest, EffectiveRole(Role(""), ""))
	assert.Equal(t, RoleGuest, EffectiveRole(Role("owner"), RoleAdmin))
}

func TestEffectiveRole_AdminIgnoresInvalidOverride(t *testing.T) {
	assert.Equal(t, RoleAdmin, EffectiveRole(RoleAdmin, Role("root")))
}

func TestOverrideAllowed(t *testing.T) {
	assert.True(t, OverrideAllowed(""))
	assert.True(t, OverrideAllowed(RoleFan))
	assert.True(t, OverrideAllowed(RoleCreator))
	assert.True(t, OverrideAllowed(RoleAdmin))
	assert.False(t, OverrideAllowed(RoleGuest))
	assert.False(t, OverrideAllowed(Role("root")))
}

func TestOverrideActive(t *testing.T) {
	assert.True(t, OverrideActive(RoleAdmin, RoleFan))
	assert.False(t, OverrideActive(RoleAdmin, ""))
	assert.False(t, OverrideActive(RoleFan, RoleCreator))
	assert.False(t, OverrideActive(RoleAdmin, Role("root")))
}
