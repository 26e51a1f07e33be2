package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for input, want := range map[string]Role{
		"admin":     RoleAdmin,
		"student":   RoleStudent,
		"ADMIN":     RoleAdmin,
		" Student ": RoleStudent,
	} {
		got, err := ParseRole(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, want, got, "input %q", input)
	}
}

func TestParseRoleRejectsUnknown(t *testing.T) {
	for _, input := range []string{"", "instructor", "superadmin"} {
		_, err := ParseRole(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleStudent.Valid())
	assert.False(t, Role("").Valid())
	assert.False(t, Role("instructor").Valid())
}
