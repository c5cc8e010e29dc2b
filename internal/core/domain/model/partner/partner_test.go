package partner_test

import (
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/partner"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPartner(t *testing.T) {
	id := kernel.NewUUID()

	p, err := partner.NewPartner(id, "Ravi Kumar")

	require.NoError(t, err)
	assert.Equal(t, id, p.ID())
	assert.Equal(t, "Ravi Kumar", p.Name())
	assert.Equal(t, kernel.RoleDeliveryPartner, p.Role())
	assert.True(t, p.IsAvailable())
	assert.Nil(t, p.CurrentLocation())
	assert.Zero(t, p.Version())
}

func TestNewPartner_InvalidInput(t *testing.T) {
	_, err := partner.NewPartner(kernel.UUID{}, "Ravi Kumar")
	require.Error(t, err)

	_, err = partner.NewPartner(kernel.NewUUID(), "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestPartner_Validate(t *testing.T) {
	var zero partner.Partner
	require.ErrorIs(t, (&zero).Validate(), partner.ErrPartnerIsNotConstructed)

	var nilPartner *partner.Partner
	require.ErrorIs(t, nilPartner.Validate(), partner.ErrPartnerIsNotConstructed)

	p, err := partner.NewPartner(kernel.NewUUID(), "Ravi Kumar")
	require.NoError(t, err)
	require.NoError(t, p.Validate())
}

func TestPartner_MarkBusy(t *testing.T) {
	p, err := partner.NewPartner(kernel.NewUUID(), "Ravi Kumar")
	require.NoError(t, err)

	require.NoError(t, p.MarkBusy())
	assert.False(t, p.IsAvailable())

	err = p.MarkBusy()
	require.ErrorIs(t, err, errs.ErrPartnerUnavailable)
}

func TestPartner_MarkAvailable(t *testing.T) {
	p, err := partner.NewPartner(kernel.NewUUID(), "Ravi Kumar")
	require.NoError(t, err)
	require.NoError(t, p.MarkBusy())

	p.MarkAvailable()

	assert.True(t, p.IsAvailable())
	require.NoError(t, p.MarkBusy())
}

func TestPartner_GoOffline(t *testing.T) {
	p, err := partner.NewPartner(kernel.NewUUID(), "Ravi Kumar")
	require.NoError(t, err)

	p.GoOffline()

	assert.False(t, p.IsAvailable())
	require.ErrorIs(t, p.MarkBusy(), errs.ErrPartnerUnavailable)
}

func TestPartner_SetLocation(t *testing.T) {
	p, err := partner.NewPartner(kernel.NewUUID(), "Ravi Kumar")
	require.NoError(t, err)

	loc, err := kernel.NewGeoPoint(12.9716, 77.5946, "")
	require.NoError(t, err)

	require.NoError(t, p.SetLocation(loc))
	require.NotNil(t, p.CurrentLocation())
	assert.Equal(t, 12.9716, p.CurrentLocation().Lat())

	require.Error(t, p.SetLocation(kernel.GeoPoint{}))
}

func TestRestorePartner(t *testing.T) {
	id := kernel.NewUUID()
	loc, err := kernel.NewGeoPoint(12.9716, 77.5946, "")
	require.NoError(t, err)

	p, err := partner.RestorePartner(id, "Ravi Kumar", false, &loc, 7)

	require.NoError(t, err)
	assert.False(t, p.IsAvailable())
	assert.Equal(t, int64(7), p.Version())
	require.NotNil(t, p.CurrentLocation())
}

func TestRestorePartner_InvalidLocation(t *testing.T) {
	bad := kernel.GeoPoint{}
	_, err := partner.RestorePartner(kernel.NewUUID(), "Ravi Kumar", true, &bad, 0)
	require.Error(t, err)
}
