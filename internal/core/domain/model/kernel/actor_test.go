package kernel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

func TestRoleFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    kernel.Role
		wantErr bool
	}{
		{
			name:  "restaurant manager",
			input: "RESTAURANT_MANAGER",
			want:  kernel.RoleRestaurantManager,
		},
		{
			name:  "delivery partner",
			input: "DELIVERY_PARTNER",
			want:  kernel.RoleDeliveryPartner,
		},
		{
			name:    "unknown role",
			input:   "ADMIN",
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "wrong case",
			input:   "restaurant_manager",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, err := kernel.RoleFromString(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, role)
				assert.NoError(t, role.Validate())
			}
		})
	}
}

func TestNewActor(t *testing.T) {
	t.Run("valid actor", func(t *testing.T) {
		id := kernel.NewUUID()
		actor, err := kernel.NewActor(id, kernel.RoleDeliveryPartner)
		require.NoError(t, err)
		assert.True(t, id.IsEqual(actor.ID))
		assert.Equal(t, kernel.RoleDeliveryPartner, actor.Role)
	})

	t.Run("zero value id", func(t *testing.T) {
		actor, err := kernel.NewActor(kernel.UUID{}, kernel.RoleDeliveryPartner)
		assert.Error(t, err)
		assert.Zero(t, actor)
	})

	t.Run("unknown role", func(t *testing.T) {
		actor, err := kernel.NewActor(kernel.NewUUID(), kernel.Role("CUSTOMER"))
		assert.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Zero(t, actor)
	})
}
