package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatusJSON(t *testing.T) {
	var s OrderStatus
	require.NoError(t, json.Unmarshal([]byte(`"stuck"`), &s))
	assert.Equal(t, OrderStatusStuck, s)

	assert.Error(t, json.Unmarshal([]byte(`"cancelled"`), &s))
}

func TestOrderStatusScan(t *testing.T) {
	var s OrderStatus
	require.NoError(t, s.Scan([]byte("completed")))
	assert.Equal(t, OrderStatusCompleted, s)

	require.NoError(t, s.Scan(nil))
	assert.Equal(t, OrderStatusPending, s)
}

func TestParsePaymentMethod(t *testing.T) {
	m, err := ParsePaymentMethod(" UPI ")
	require.NoError(t, err)
	assert.Equal(t, PaymentMethodUPI, m)

	_, err = ParsePaymentMethod("cheque")
	assert.Error(t, err)
}

func TestRolePermissions(t *testing.T) {
	assert.Contains(t, RoleOwner.Permissions(), PermUsersManage)
	assert.NotContains(t, RoleStaff.Permissions(), PermUsersManage)
	assert.NotContains(t, RoleStaff.Permissions(), PermOrdersOverride)
	assert.Contains(t, RoleStaff.Permissions(), PermOrdersManage)
	assert.Nil(t, Role("guest").Permissions())
}
