package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoles(t *testing.T) {
	roles, ok := ParseRoles([]string{"vendor", "admin", "vendor"})
	require.True(t, ok)
	assert.Equal(t, []Role{RoleVendor, RoleAdmin}, roles)

	_, ok = ParseRoles(nil)
	assert.False(t, ok, "empty role set")

	_, ok = ParseRoles([]string{"vendor", "superuser"})
	assert.False(t, ok, "unknown role")

	_, ok = ParseRoles([]string{"Admin"})
	assert.False(t, ok, "matching is exact")
}

func TestPrincipalHasAny(t *testing.T) {
	p := &Principal{ID: "u-1", Roles: []Role{RoleVerifier}}

	assert.True(t, p.HasAny(RoleVendor, RoleVerifier))
	assert.False(t, p.HasAny(RoleVendor))
	assert.False(t, p.HasAny())

	var nilPrincipal *Principal
	assert.False(t, nilPrincipal.HasAny(RoleAdmin))
}

func TestRecordTypes(t *testing.T) {
	v, err := NewRecordTypes("test01", " test02 ", "", "test01")
	require.NoError(t, err)
	assert.Equal(t, []string{"test01", "test02"}, v.Names())

	got, ok := v.Parse("test02")
	assert.True(t, ok)
	assert.Equal(t, RecordType("test02"), got)

	_, ok = v.Parse("BadTestName")
	assert.False(t, ok)

	_, err = NewRecordTypes(" ", "")
	assert.ErrorIs(t, err, ErrEmptyVocabulary)
}

func TestAccountPublicStripsPassword(t *testing.T) {
	a := &Account{ID: "u-1", Email: "v@x.com", Password: "$2a$hash", Roles: []Role{RoleVendor}}

	pub := a.Public()
	assert.Empty(t, pub.Password)
	assert.Equal(t, "$2a$hash", a.Password, "original untouched")

	pub.Roles[0] = RoleAdmin
	assert.Equal(t, RoleVendor, a.Roles[0], "roles are copied")
}
