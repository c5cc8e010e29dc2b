package queries

import (
	"context"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetCurrentDeliveryQueryHandler reads the partner's live delivery. At
// most one non-delivered order can reference a partner at any time, so
// the lookup needs no ordering.
type GetCurrentDeliveryQueryHandler struct {
	db *gorm.DB
}

// NewGetCurrentDeliveryQueryHandler creates a handler for live-delivery reads.
func NewGetCurrentDeliveryQueryHandler(db *gorm.DB) GetCurrentDeliveryQueryHandler {
	return GetCurrentDeliveryQueryHandler{db: db}
}

// Handle executes the read. Returns NotFound when the partner has no
// delivery in progress.
func (h GetCurrentDeliveryQueryHandler) Handle(
	ctx context.Context,
	query GetCurrentDeliveryQuery,
) (ports.OrderSnapshot, error) {
	if err := query.Validate(); err != nil {
		return ports.OrderSnapshot{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE delivery_partner_id = ? AND status != ?
	`, query.PartnerID().Bytes(), order.Delivered.String()).Rows()
	if err != nil {
		return ports.OrderSnapshot{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return ports.OrderSnapshot{}, err
		}
		return ports.OrderSnapshot{}, errs.NewObjectNotFoundError("partnerID", query.PartnerID())
	}

	return scanOrderRow(rows)
}
