package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapabilities(t *testing.T) {
	tests := []struct {
		name              string
		role              Role
		isSuperuser       bool
		canView           bool
		canCreateMovement bool
		canApprove        bool
		canAdminister     bool
	}{
		{"viewer", Viewer, false, true, false, false, false},
		{"operator", Operator, false, true, true, false, false},
		{"approver", Approver, false, true, true, true, false},
		{"admin", Admin, false, true, true, true, true},
		{"superuser viewer", Viewer, true, true, true, true, true},
		{"superuser operator", Operator, true, true, true, true, true},
		{"unknown role falls back to viewer", Role("intern"), false, true, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caps := Capabilities(tt.role, tt.isSuperuser)

			assert.Equal(t, tt.canView, caps.Has(CanView))
			assert.Equal(t, tt.canCreateMovement, caps.Has(CanCreateMovement))
			assert.Equal(t, tt.canApprove, caps.Has(CanApprove))
			assert.Equal(t, tt.canAdminister, caps.Has(CanAdminister))
		})
	}
}

func TestHasPermission(t *testing.T) {
	assert.True(t, Admin.HasPermission(Approver))
	assert.True(t, Approver.HasPermission(Approver))
	assert.True(t, Approver.HasPermission(Operator))
	assert.False(t, Operator.HasPermission(Approver))
	assert.False(t, Viewer.HasPermission(Operator))
}

func TestIsValid(t *testing.T) {
	assert.True(t, Viewer.IsValid())
	assert.True(t, Operator.IsValid())
	assert.True(t, Approver.IsValid())
	assert.True(t, Admin.IsValid())
	assert.False(t, Role("moderator").IsValid())
	assert.False(t, Role("").IsValid())
}
