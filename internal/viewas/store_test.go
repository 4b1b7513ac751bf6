package viewas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainauth "github.com/stylehaus/ui-api/internal/domain/auth"
)

func TestStore_SetGetClear(t *testing.T) {
	s := NewStore()

	assert.Equal(t, domainauth.Role(""), s.Get("sess-1"))

	require.NoError(t, s.Set("sess-1", domainauth.RoleFan))
	assert.Equal(t, domainauth.RoleFan, s.Get("sess-1"))
	assert.Equal(t, domainauth.Role(""), s.Get("sess-2"), "scopes are independent")

	s.Clear("sess-1")
	assert.Equal(t, domainauth.Role(""), s.Get("sess-1"))
}

func TestStore_SetEmptyClears(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Set("sess-1", domainauth.RoleCreator))
	require.NoError(t, s.Set("sess-1", ""))
	assert.Equal(t, domainauth.Role(""), s.Get("sess-1"))
}

func TestStore_RejectsDisallowedRoles(t *testing.T) {
	s := NewStore()
	assert.Error(t, s.Set("sess-1", "guest"), "guest is not a preview target")
	assert.Error(t, s.Set("sess-1", "superuser"))
	assert.Error(t, s.Set("", domainauth.RoleFan), "scope is required")
	assert.Equal(t, domainauth.Role(""), s.Get("sess-1"))
}

func TestStore_SubscribeNotifiesOnChange(t *testing.T) {
	s := NewStore()

	var got []domainauth.Role
	unsub := s.Subscribe("sess-1", func(r domainauth.Role) {
		got = append(got, r)
	})
	defer unsub()

	require.NoError(t, s.Set("sess-1", domainauth.RoleFan))
	require.NoError(t, s.Set("sess-1", domainauth.RoleFan)) // no change, no event
	require.NoError(t, s.Set("sess-1", domainauth.RoleAdmin))
	s.Clear("sess-1")
	s.Clear("sess-1") // already clear, no event

	assert.Equal(t, []domainauth.Role{domainauth.RoleFan, domainauth.RoleAdmin, ""}, got)
}

func TestStore_SubscribeScopedToOneScope(t *testing.T) {
	s := NewStore()

	calls := 0
	unsub := s.Subscribe("sess-1", func(domainauth.Role) { calls++ })
	defer unsub()

	require.NoError(t, s.Set("sess-2", domainauth.RoleFan))
	assert.Zero(t, calls)
}

func TestStore_UnsubscribeStopsEvents(t *testing.T) {
	s := NewStore()

	calls := 0
	unsub := s.Subscribe("sess-1", func(domainauth.Role) { calls++ })
	require.NoError(t, s.Set("sess-1", domainauth.RoleFan))
	assert.Equal(t, 1, calls)

	unsub()
	unsub() // second call is a no-op
	require.NoError(t, s.Set("sess-1", domainauth.RoleCreator))
	assert.Equal(t, 1, calls)
}
