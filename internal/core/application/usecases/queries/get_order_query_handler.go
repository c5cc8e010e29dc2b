package queries

import (
	"context"

	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler reads a single order straight from the database.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order reads.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the read. Returns NotFound when the order does not
// exist and Unauthorized when the actor is neither the order's restaurant
// nor its assigned partner.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (ports.OrderSnapshot, error) {
	if err := query.Validate(); err != nil {
		return ports.OrderSnapshot{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return ports.OrderSnapshot{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return ports.OrderSnapshot{}, err
		}
		return ports.OrderSnapshot{}, errs.NewObjectNotFoundError("orderID", query.OrderID())
	}

	snapshot, err := scanOrderRow(rows)
	if err != nil {
		return ports.OrderSnapshot{}, err
	}

	actor := query.ActorID().String()
	if snapshot.RestaurantID != actor &&
		(snapshot.DeliveryPartnerID == nil || *snapshot.DeliveryPartnerID != actor) {
		return ports.OrderSnapshot{}, errs.NewUnauthorizedError(
			actor, "actor is neither the restaurant nor the assigned partner")
	}

	return snapshot, nil
}
