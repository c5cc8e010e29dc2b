package order

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not
// created through NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order is the aggregate root for a delivery order. It owns the lifecycle
// from creation through partner assignment to delivery.
//
// Invariants:
//   - restaurantID is immutable once set
//   - deliveryPartnerID and assignedAt are set exactly once; reassignment
//     is not supported
//   - status transitions follow the fixed linear sequence in Status
//   - deliveredAt is set exactly once, when the status reaches Delivered
//   - after Delivered the record is immutable
//
// The struct uses private fields; all mutation goes through validated
// methods. The version field supports conditional persistence: the store
// commits an update only when the stored version still matches, so two
// racing mutations resolve to one success and one conflict.
type Order struct {
	id                kernel.UUID
	restaurantID      kernel.UUID
	deliveryPartnerID *kernel.UUID
	items             string
	prepTime          int
	customerLocation  kernel.GeoPoint
	status            Status
	createdAt         time.Time
	assignedAt        *time.Time
	deliveredAt       *time.Time
	version           int64
	isConstructed     bool
}

// NewOrder creates an order in Prep status with no partner.
//
// Parameters:
//   - id: unique identifier
//   - restaurantID: the creating restaurant; immutable afterwards
//   - items: free-text order contents (required)
//   - prepTime: preparation time in minutes (must be at least 1)
//   - customerLocation: validated delivery destination
//   - createdAt: creation timestamp from the caller's clock
func NewOrder(
	id kernel.UUID,
	restaurantID kernel.UUID,
	items string,
	prepTime int,
	customerLocation kernel.GeoPoint,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Prep,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setRestaurantID(restaurantID),
		o.setItems(items),
		o.setPrepTime(prepTime),
		o.setCustomerLocation(customerLocation),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence, including its
// stored version. The persistence adapter is trusted for field
// consistency, but construction invariants are still checked.
func RestoreOrder(
	id kernel.UUID,
	restaurantID kernel.UUID,
	deliveryPartnerID *kernel.UUID,
	items string,
	prepTime int,
	customerLocation kernel.GeoPoint,
	status Status,
	createdAt time.Time,
	assignedAt *time.Time,
	deliveredAt *time.Time,
	version int64,
) (*Order, error) {
	o, err := NewOrder(id, restaurantID, items, prepTime, customerLocation, createdAt)
	if err != nil {
		return nil, err
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}

	o.deliveryPartnerID = deliveryPartnerID
	o.status = status
	o.assignedAt = assignedAt
	o.deliveredAt = deliveredAt
	o.version = version
	return o, nil
}

// Validate ensures the instance came from a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// RestaurantID returns the creating restaurant's identifier.
func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

// DeliveryPartner returns the assigned partner's identifier, or nil while
// unassigned.
func (o *Order) DeliveryPartner() *kernel.UUID {
	return o.deliveryPartnerID
}

// Items returns the free-text order contents.
func (o *Order) Items() string {
	return o.items
}

// PrepTime returns the preparation time in minutes.
func (o *Order) PrepTime() int {
	return o.prepTime
}

// CustomerLocation returns the delivery destination.
func (o *Order) CustomerLocation() kernel.GeoPoint {
	return o.customerLocation
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// AssignedAt returns the assignment timestamp, or nil while unassigned.
func (o *Order) AssignedAt() *time.Time {
	return o.assignedAt
}

// DeliveredAt returns the delivery timestamp, or nil before delivery.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// Version returns the stored version used for conditional updates.
func (o *Order) Version() int64 {
	return o.version
}

// Duration returns the elapsed minutes between creation and delivery.
// The second return is false until the order is delivered. This is the
// only field derived from deliveredAt.
func (o *Order) Duration() (int, bool) {
	if o.deliveredAt == nil {
		return 0, false
	}
	return int(o.deliveredAt.Sub(o.createdAt).Round(time.Minute) / time.Minute), true
}

// IsAccessibleBy reports whether the actor is the order's restaurant or
// its assigned partner. Anyone else has no relation to the order.
func (o *Order) IsAccessibleBy(actorID kernel.UUID) bool {
	if o.restaurantID.IsEqual(actorID) {
		return true
	}
	return o.deliveryPartnerID != nil && o.deliveryPartnerID.IsEqual(actorID)
}

// AssignPartner records the one-time association with a delivery partner.
//
// Fails with InvalidStateError if the order already has a partner or is
// not in Prep status. Reassignment is deliberately unsupported.
func (o *Order) AssignPartner(partnerID kernel.UUID, at time.Time) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}

	if o.deliveryPartnerID != nil {
		return errs.NewInvalidStateError("order already has a delivery partner")
	}

	if o.status != Prep {
		return errs.NewInvalidStateError(
			fmt.Sprintf("order in status %s cannot be assigned", o.status))
	}

	o.deliveryPartnerID = &partnerID
	o.assignedAt = &at
	return nil
}

// Advance moves the status to target, which must be the immediate
// successor of the current status. Reaching Delivered sets deliveredAt;
// the caller is responsible for releasing the partner in the same
// transaction.
func (o *Order) Advance(target Status, at time.Time) error {
	newStatus, err := o.status.Advance(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	if newStatus == Delivered {
		o.deliveredAt = &at
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("restaurantId", err)
	}
	o.restaurantID = id
	return nil
}

func (o *Order) setItems(items string) error {
	if items == "" {
		return errs.NewValueIsRequiredError("items")
	}
	o.items = items
	return nil
}

func (o *Order) setPrepTime(prepTime int) error {
	if prepTime <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("prepTime",
			fmt.Errorf("%d is not greater than 0", prepTime))
	}
	o.prepTime = prepTime
	return nil
}

func (o *Order) setCustomerLocation(p kernel.GeoPoint) error {
	if err := p.Validate(); err != nil {
		return err
	}
	o.customerLocation = p
	return nil
}
