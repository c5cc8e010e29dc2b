package queries

import (
	"database/sql"
	"time"

	"dispatch/internal/core/ports"

	"github.com/google/uuid"
)

// orderColumns is the projection shared by every order-reading query.
// Column order must match scanOrderRow.
const orderColumns = `
		id,
		restaurant_id,
		delivery_partner_id,
		items,
		prep_time,
		status,
		lat,
		lon,
		address,
		created_at,
		assigned_at,
		delivered_at`

// scanOrderRow builds an order snapshot from one row of the orderColumns
// projection.
func scanOrderRow(rows *sql.Rows) (ports.OrderSnapshot, error) {
	var (
		id          uuid.UUID
		restaurant  uuid.UUID
		partnerID   uuid.NullUUID
		items       string
		prepTime    int
		status      string
		lat, lon    float64
		address     string
		createdAt   time.Time
		assignedAt  sql.NullTime
		deliveredAt sql.NullTime
	)

	if err := rows.Scan(
		&id,
		&restaurant,
		&partnerID,
		&items,
		&prepTime,
		&status,
		&lat,
		&lon,
		&address,
		&createdAt,
		&assignedAt,
		&deliveredAt,
	); err != nil {
		return ports.OrderSnapshot{}, err
	}

	snapshot := ports.OrderSnapshot{
		ID:           id.String(),
		RestaurantID: restaurant.String(),
		Items:        items,
		PrepTime:     prepTime,
		Status:       status,
		CustomerLocation: ports.GeoPointSnapshot{
			Lat:     lat,
			Lon:     lon,
			Address: address,
		},
		CreatedAt: createdAt,
	}

	if partnerID.Valid {
		s := partnerID.UUID.String()
		snapshot.DeliveryPartnerID = &s
	}
	if assignedAt.Valid {
		t := assignedAt.Time
		snapshot.AssignedAt = &t
	}
	if deliveredAt.Valid {
		t := deliveredAt.Time
		snapshot.DeliveredAt = &t

		minutes := int(t.Sub(createdAt).Minutes())
		snapshot.DurationMinutes = &minutes
	}

	return snapshot, nil
}
