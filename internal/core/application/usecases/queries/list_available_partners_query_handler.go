package queries

import (
	"context"
	"database/sql"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListAvailablePartnersQueryHandler lists the partners open for
// assignment, sorted by name.
type ListAvailablePartnersQueryHandler struct {
	db *gorm.DB
}

// NewListAvailablePartnersQueryHandler creates a handler for partner pool reads.
func NewListAvailablePartnersQueryHandler(db *gorm.DB) ListAvailablePartnersQueryHandler {
	return ListAvailablePartnersQueryHandler{db: db}
}

// Handle executes the read. An empty pool yields an empty slice.
func (h ListAvailablePartnersQueryHandler) Handle(
	ctx context.Context,
	query ListAvailablePartnersQuery,
) ([]ports.PartnerSnapshot, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			is_available,
			lat,
			lon,
			address
		FROM delivery_partners
		WHERE is_available
		ORDER BY name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	partners := make([]ports.PartnerSnapshot, 0)
	for rows.Next() {
		var (
			id       uuid.UUID
			snapshot ports.PartnerSnapshot
			lat, lon sql.NullFloat64
			address  sql.NullString
		)

		if err = rows.Scan(&id, &snapshot.Name, &snapshot.IsAvailable, &lat, &lon, &address); err != nil {
			return nil, err
		}

		snapshot.ID = id.String()
		snapshot.Role = kernel.RoleDeliveryPartner.String()
		if lat.Valid && lon.Valid {
			snapshot.CurrentLocation = &ports.GeoPointSnapshot{
				Lat:     lat.Float64,
				Lon:     lon.Float64,
				Address: address.String,
			}
		}

		partners = append(partners, snapshot)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return partners, nil
}
