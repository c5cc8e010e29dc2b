package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/partner"
)

// Channel names of the event distributor.
const (
	ChannelOrders        = "orders"
	ChannelPartners      = "partners"
	ChannelNotifications = "notifications"
)

// EventType discriminates domain events on the wire.
type EventType string

const (
	EventOrderCreated               EventType = "ORDER_CREATED"
	EventOrderAssigned              EventType = "ORDER_ASSIGNED"
	EventOrderStatusChanged         EventType = "ORDER_STATUS_CHANGED"
	EventPartnerAvailabilityChanged EventType = "PARTNER_AVAILABILITY_CHANGED"
	EventPartnerLocationChanged     EventType = "PARTNER_LOCATION_CHANGED"
	EventNotification               EventType = "NOTIFICATION"
)

// Event is an immutable notification of a committed state change. The
// payload is always the authoritative post-mutation snapshot of the
// affected entity, never a delta, so a subscriber replaces its local copy
// wholesale and never merges partial updates.
type Event struct {
	Type       EventType `json:"type"`
	Payload    any       `json:"payload"`
	OccurredAt time.Time `json:"occurredAt"`
}

// EventPublisher is the outbound event surface of the dispatch core.
// Publication is fire-and-forget and must never block or fail the
// committed mutation it follows: implementations drop delivery to
// unreachable subscribers rather than buffering indefinitely.
type EventPublisher interface {
	Publish(ctx context.Context, channel string, event Event)
}

// GeoPointSnapshot is the wire form of a kernel.GeoPoint.
type GeoPointSnapshot struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Address string  `json:"address"`
}

// OrderSnapshot is the full post-mutation view of an order carried in
// event payloads and API responses.
type OrderSnapshot struct {
	ID                string            `json:"id"`
	RestaurantID      string            `json:"restaurantId"`
	DeliveryPartnerID *string           `json:"deliveryPartnerId,omitempty"`
	Items             string            `json:"items"`
	PrepTime          int               `json:"prepTime"`
	Status            string            `json:"status"`
	CustomerLocation  GeoPointSnapshot  `json:"customerLocation"`
	CreatedAt         time.Time         `json:"createdAt"`
	AssignedAt        *time.Time        `json:"assignedAt,omitempty"`
	DeliveredAt       *time.Time        `json:"deliveredAt,omitempty"`
	DurationMinutes   *int              `json:"duration,omitempty"`
}

// NewOrderSnapshot captures the current state of an order aggregate.
func NewOrderSnapshot(o *order.Order) OrderSnapshot {
	s := OrderSnapshot{
		ID:           o.ID().String(),
		RestaurantID: o.RestaurantID().String(),
		Items:        o.Items(),
		PrepTime:     o.PrepTime(),
		Status:       o.Status().String(),
		CustomerLocation: GeoPointSnapshot{
			Lat:     o.CustomerLocation().Lat(),
			Lon:     o.CustomerLocation().Lon(),
			Address: o.CustomerLocation().Address(),
		},
		CreatedAt:   o.CreatedAt(),
		AssignedAt:  o.AssignedAt(),
		DeliveredAt: o.DeliveredAt(),
	}

	if id := o.DeliveryPartner(); id != nil {
		str := id.String()
		s.DeliveryPartnerID = &str
	}

	if minutes, ok := o.Duration(); ok {
		s.DurationMinutes = &minutes
	}

	return s
}

// PartnerSnapshot is the full post-mutation view of a partner carried in
// event payloads and API responses.
type PartnerSnapshot struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Role            string            `json:"role"`
	IsAvailable     bool              `json:"isAvailable"`
	CurrentLocation *GeoPointSnapshot `json:"currentLocation,omitempty"`
}

// NewPartnerSnapshot captures the current state of a partner aggregate.
func NewPartnerSnapshot(p *partner.Partner) PartnerSnapshot {
	s := PartnerSnapshot{
		ID:          p.ID().String(),
		Name:        p.Name(),
		Role:        p.Role().String(),
		IsAvailable: p.IsAvailable(),
	}

	if loc := p.CurrentLocation(); loc != nil {
		s.CurrentLocation = &GeoPointSnapshot{
			Lat:     loc.Lat(),
			Lon:     loc.Lon(),
			Address: loc.Address(),
		}
	}

	return s
}

// NotificationPayload is the payload of NOTIFICATION events, addressed to
// a single recipient.
type NotificationPayload struct {
	RecipientID string `json:"recipientId"`
	Message     string `json:"message"`
}
