package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/partner"
)

// PartnerRepository is the persistence contract for partner aggregates.
type PartnerRepository interface {
	// Add persists a new partner aggregate.
	Add(ctx context.Context, aggregate *partner.Partner) error

	// Update persists changes conditionally on the aggregate's loaded
	// version. This is the serialization point for the availability flag:
	// two concurrent claims on the same partner load the same version, and
	// only the first conditional write succeeds. The loser receives a
	// ConflictError (errs.ErrConflict).
	Update(ctx context.Context, aggregate *partner.Partner) error

	// Get retrieves a partner by identifier. Returns an ObjectNotFoundError
	// (errs.ErrObjectNotFound) when no such partner exists.
	Get(ctx context.Context, id kernel.UUID) (*partner.Partner, error)
}
