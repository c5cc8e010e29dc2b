package partner

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrPartnerIsNotConstructed is returned when a Partner instance was not
// created through NewPartner or RestorePartner.
var ErrPartnerIsNotConstructed = errors.New("Partner must be created via NewPartner or RestorePartner")

// Partner is the aggregate root for a delivery partner.
//
// Invariants:
//   - role is always RoleDeliveryPartner
//   - availability is flipped only through MarkBusy / MarkAvailable /
//     GoOffline, never assigned directly
//   - the version field backs conditional persistence writes on the
//     availability flag
type Partner struct {
	id              kernel.UUID
	name            string
	role            kernel.Role
	isAvailable     bool
	currentLocation *kernel.GeoPoint
	version         int64
	isConstructed   bool
}

// NewPartner creates an available delivery partner with no known location.
func NewPartner(id kernel.UUID, name string) (*Partner, error) {
	p := &Partner{
		role:          kernel.RoleDeliveryPartner,
		isAvailable:   true,
		isConstructed: true,
	}

	if err := errors.Join(p.setID(id), p.setName(name)); err != nil {
		return nil, err
	}

	return p, nil
}

// RestorePartner reconstructs a partner from persistence.
func RestorePartner(
	id kernel.UUID,
	name string,
	isAvailable bool,
	currentLocation *kernel.GeoPoint,
	version int64,
) (*Partner, error) {
	p, err := NewPartner(id, name)
	if err != nil {
		return nil, err
	}

	if currentLocation != nil {
		if err := currentLocation.Validate(); err != nil {
			return nil, err
		}
	}

	p.isAvailable = isAvailable
	p.currentLocation = currentLocation
	p.version = version
	return p, nil
}

// Validate ensures the instance came from a constructor.
func (p *Partner) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPartnerIsNotConstructed
	}
	return nil
}

// IsEqual compares two partners by identifier.
func (p *Partner) IsEqual(other *Partner) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the partner's unique identifier.
func (p *Partner) ID() kernel.UUID {
	return p.id
}

// Name returns the partner's display name.
func (p *Partner) Name() string {
	return p.name
}

// Role returns the partner's role, always RoleDeliveryPartner.
func (p *Partner) Role() kernel.Role {
	return p.role
}

// IsAvailable reports whether the partner can take an assignment.
func (p *Partner) IsAvailable() bool {
	return p.isAvailable
}

// CurrentLocation returns the last reported location, or nil if none.
func (p *Partner) CurrentLocation() *kernel.GeoPoint {
	return p.currentLocation
}

// Version returns the stored version used for conditional updates.
func (p *Partner) Version() int64 {
	return p.version
}

// MarkBusy claims the partner for an assignment.
//
// Fails with PartnerUnavailableError if the partner is not available.
// The persistence layer re-checks this claim with a conditional write, so
// a concurrent claim that slips between load and commit surfaces as a
// conflict rather than a double booking.
func (p *Partner) MarkBusy() error {
	if !p.isAvailable {
		return errs.NewPartnerUnavailableError(p.id.String(), "partner is not available")
	}

	p.isAvailable = false
	return nil
}

// MarkAvailable releases the partner back into the assignable pool.
// The caller must first verify the partner holds no non-terminal order.
func (p *Partner) MarkAvailable() {
	p.isAvailable = true
}

// GoOffline records the partner's explicit decision to stop taking
// assignments. Permitted only when no delivery is in progress, which the
// caller verifies against the order store.
func (p *Partner) GoOffline() {
	p.isAvailable = false
}

// SetLocation updates the partner's last reported position.
func (p *Partner) SetLocation(loc kernel.GeoPoint) error {
	if err := loc.Validate(); err != nil {
		return err
	}

	p.currentLocation = &loc
	return nil
}

func (p *Partner) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Partner) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}
