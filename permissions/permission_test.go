package permissions_test

import (
	"testing"

	"guesthouse/permissions"
	"guesthouse/shared/constant"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	data := permissions.Get()

	assert.NotNil(t, data)
	assert.NotEmpty(t, data.Endpoints)
	assert.NotEmpty(t, data.Operations)
}

func TestPermissionData_CanPerform(t *testing.T) {
	data := permissions.Get()

	tests := []struct {
		name      string
		role      string
		operation string
		expected  bool
	}{
		{
			name:      "receptionist confirms payment",
			role:      constant.RoleReceptionist,
			operation: permissions.OperationPaymentConfirm,
			expected:  true,
		},
		{
			name:      "owner confirms payment",
			role:      constant.RoleOwner,
			operation: permissions.OperationPaymentConfirm,
			expected:  true,
		},
		{
			name:      "guest cannot confirm payment",
			role:      constant.RoleGuest,
			operation: permissions.OperationPaymentConfirm,
			expected:  false,
		},
		{
			name:      "receptionist cannot manage staff",
			role:      constant.RoleReceptionist,
			operation: permissions.OperationStaffManage,
			expected:  false,
		},
		{
			name:      "owner manages settings",
			role:      constant.RoleOwner,
			operation: permissions.OperationSettingsManage,
			expected:  true,
		},
		{
			name:      "empty role is denied",
			role:      "",
			operation: permissions.OperationBookingRead,
			expected:  false,
		},
		{
			name:      "unknown operation is denied",
			role:      constant.RoleOwner,
			operation: "room.demolish",
			expected:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, data.CanPerform(tt.role, tt.operation))
		})
	}
}

func TestPermissionData_CanPerform_NilData(t *testing.T) {
	var data *permissions.PermissionData

	assert.False(t, data.CanPerform(constant.RoleOwner, permissions.OperationRoomManage))
}

func TestPermissionData_FindPermissions(t *testing.T) {
	data := permissions.Get()

	t.Run("public booking accepts anonymous callers", func(t *testing.T) {
		p := data.FindPermissions("/v1/bookings", "POST")

		assert.True(t, p.Optional)
		assert.False(t, p.Skip)
	})

	t.Run("confirm is staff only", func(t *testing.T) {
		p := data.FindPermissions("/v1/payments/{id}/confirm", "POST")

		assert.ElementsMatch(t, []string{constant.RoleReceptionist, constant.RoleOwner}, p.Permissions)
	})

	t.Run("sub-router index pattern", func(t *testing.T) {
		p := data.FindPermissions("/v1/settings/payment/", "PUT")

		assert.Equal(t, []string{constant.RoleOwner}, p.Permissions)
	})

	t.Run("unknown route", func(t *testing.T) {
		p := data.FindPermissions("/v1/nowhere", "GET")

		assert.Empty(t, p.Path)
	})
}
