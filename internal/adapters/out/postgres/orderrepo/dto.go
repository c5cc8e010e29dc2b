// Package orderrepo persists the order aggregate. It maps between the
// domain model and the relational schema and enforces optimistic
// concurrency through a version column.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the database row for an order. The status and partner
// columns are indexed: assignments filter on both, dashboards on either.
type OrderDTO struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RestaurantID      uuid.UUID  `gorm:"type:uuid;index"`
	DeliveryPartnerID *uuid.UUID `gorm:"type:uuid;index"`
	Items             string
	PrepTime          int
	Status            string      `gorm:"index"`
	Location          GeoPointDTO `gorm:"embedded"`
	CreatedAt         time.Time
	AssignedAt        *time.Time
	DeliveredAt       *time.Time
	Version           int64
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// GeoPointDTO is the embedded destination of an order.
type GeoPointDTO struct {
	Lat     float64
	Lon     float64
	Address string
}

// fromDomain converts an order aggregate to its database row.
func fromDomain(aggregate *order.Order) OrderDTO {
	var partnerID *uuid.UUID
	if id := aggregate.DeliveryPartner(); id != nil {
		raw := id.Bytes()
		partnerID = &raw
	}

	return OrderDTO{
		ID:                aggregate.ID().Bytes(),
		RestaurantID:      aggregate.RestaurantID().Bytes(),
		DeliveryPartnerID: partnerID,
		Items:             aggregate.Items(),
		PrepTime:          aggregate.PrepTime(),
		Status:            aggregate.Status().String(),
		Location: GeoPointDTO{
			Lat:     aggregate.CustomerLocation().Lat(),
			Lon:     aggregate.CustomerLocation().Lon(),
			Address: aggregate.CustomerLocation().Address(),
		},
		CreatedAt:   aggregate.CreatedAt(),
		AssignedAt:  aggregate.AssignedAt(),
		DeliveredAt: aggregate.DeliveredAt(),
		Version:     aggregate.Version(),
	}
}

// toDomain reconstructs the order aggregate from a database row.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	var partnerID *kernel.UUID
	if dto.DeliveryPartnerID != nil {
		pID, partnerErr := kernel.UUIDFromBytes((*dto.DeliveryPartnerID)[:])
		if partnerErr != nil {
			return nil, partnerErr
		}
		partnerID = &pID
	}

	location, err := kernel.NewGeoPoint(dto.Location.Lat, dto.Location.Lon, dto.Location.Address)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		restaurantID,
		partnerID,
		dto.Items,
		dto.PrepTime,
		location,
		status,
		dto.CreatedAt,
		dto.AssignedAt,
		dto.DeliveredAt,
		dto.Version,
	)
}
