package kernel

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Role classifies the acting identity. Identity resolution itself is an
// external collaborator; the engine only consumes the resolved pair.
type Role string

const (
	// RoleRestaurantManager creates orders and assigns partners.
	RoleRestaurantManager Role = "RESTAURANT_MANAGER"
	// RoleDeliveryPartner delivers orders and toggles its own availability.
	RoleDeliveryPartner Role = "DELIVERY_PARTNER"
)

// RoleFromString parses a role received from the identity collaborator.
func RoleFromString(s string) (Role, error) {
	switch Role(s) {
	case RoleRestaurantManager:
		return RoleRestaurantManager, nil
	case RoleDeliveryPartner:
		return RoleDeliveryPartner, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
	}
}

// Validate reports whether the role is one of the known values.
func (r Role) Validate() error {
	_, err := RoleFromString(string(r))
	return err
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// Actor is the already-authenticated identity performing an operation.
// Supplied per call by the identity collaborator; never persisted here.
type Actor struct {
	ID   UUID
	Role Role
}

// NewActor creates a validated actor.
func NewActor(id UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}

	return Actor{ID: id, Role: role}, nil
}
