package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler lists orders for dashboards, newest first. The
// actor's role picks the filter column: restaurant managers match on
// restaurant_id, delivery partners on delivery_partner_id.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order listing.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the listing. An actor with no orders gets an empty
// slice, not an error.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]ports.OrderSnapshot, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	filterColumn := "restaurant_id"
	if query.Actor().Role == kernel.RoleDeliveryPartner {
		filterColumn = "delivery_partner_id"
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE `+filterColumn+` = ?
		ORDER BY created_at DESC
	`, query.Actor().ID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]ports.OrderSnapshot, 0)
	for rows.Next() {
		snapshot, scanErr := scanOrderRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		orders = append(orders, snapshot)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
