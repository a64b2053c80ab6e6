package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRole(t *testing.T) {
	tests := []struct {
		in   Role
		want Role
	}{
		{"Client", RoleClient},
		{"client", RoleClient},
		{"CLIENT", RoleClient},
		{"Employee", RoleEmployee},
		{"employee", RoleEmployee},
		{"Admin", RoleAdmin},
		{"ADMIN", RoleAdmin},
		{"admin", RoleAdmin},
		{"", RoleClient},
		{"superuser", RoleClient},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeRole(tt.in), "role %q", tt.in)
	}
}

func TestRole_Is(t *testing.T) {
	assert.True(t, RoleAdmin.Is(RoleEmployee, RoleAdmin))
	assert.True(t, RoleEmployee.Is(RoleEmployee, RoleAdmin))
	assert.False(t, RoleClient.Is(RoleEmployee, RoleAdmin))
	assert.False(t, RoleClient.Is())
}
