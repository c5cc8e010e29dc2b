// Package partnerrepo persists the delivery partner aggregate. The
// partner row is the serialization point for assignment: availability
// flips commit through a conditional versioned update.
package partnerrepo

import (
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/partner"

	"github.com/google/uuid"
)

// PartnerDTO is the database row for a delivery partner. Location
// columns are nullable: a freshly registered partner has not reported a
// position yet.
type PartnerDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string
	IsAvailable bool `gorm:"index"`
	Lat         *float64
	Lon         *float64
	Address     *string
	Version     int64
}

// TableName overrides GORM's default naming to use "delivery_partners".
func (PartnerDTO) TableName() string {
	return "delivery_partners"
}

// fromDomain converts a partner aggregate to its database row.
func fromDomain(aggregate *partner.Partner) PartnerDTO {
	dto := PartnerDTO{
		ID:          aggregate.ID().Bytes(),
		Name:        aggregate.Name(),
		IsAvailable: aggregate.IsAvailable(),
		Version:     aggregate.Version(),
	}

	if loc := aggregate.CurrentLocation(); loc != nil {
		lat, lon, address := loc.Lat(), loc.Lon(), loc.Address()
		dto.Lat = &lat
		dto.Lon = &lon
		dto.Address = &address
	}

	return dto
}

// toDomain reconstructs the partner aggregate from a database row.
func toDomain(dto PartnerDTO) (*partner.Partner, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.Lat != nil && dto.Lon != nil {
		address := ""
		if dto.Address != nil {
			address = *dto.Address
		}

		loc, locErr := kernel.NewGeoPoint(*dto.Lat, *dto.Lon, address)
		if locErr != nil {
			return nil, locErr
		}
		location = &loc
	}

	return partner.RestorePartner(id, dto.Name, dto.IsAvailable, location, dto.Version)
}
