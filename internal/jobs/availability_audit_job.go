package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// AvailabilityAuditJob periodically verifies the pool invariant: a
// partner marked available must have no live delivery, and each partner
// is referenced by at most one live order.
type AvailabilityAuditJob struct {
	db     *gorm.DB
	cron   *cron.Cron
	logger *slog.Logger
}

// NewAvailabilityAuditJob creates the audit job. It runs once per minute.
func NewAvailabilityAuditJob(db *gorm.DB, logger *slog.Logger) *AvailabilityAuditJob {
	return &AvailabilityAuditJob{
		db:     db,
		cron:   cron.New(),
		logger: logger.With("component", "availability_audit_job"),
	}
}

// Start schedules the audit.
func (j *AvailabilityAuditJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		j.runAudit(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Availability audit job started (running every minute)")
	return nil
}

// Stop stops the audit job.
func (j *AvailabilityAuditJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Availability audit job stopped")
}

func (j *AvailabilityAuditJob) runAudit(ctx context.Context) {
	j.reportAvailableWithActiveOrder(ctx)
	j.reportDoubleBookings(ctx)
	j.reportBusyWithoutOrder(ctx)
}

// reportAvailableWithActiveOrder flags partners that are open for
// assignment while a live order still references them.
func (j *AvailabilityAuditJob) reportAvailableWithActiveOrder(ctx context.Context) {
	rows, err := j.db.WithContext(ctx).Raw(`
		SELECT p.id
		FROM delivery_partners p
		JOIN orders o ON o.delivery_partner_id = p.id AND o.status != ?
		WHERE p.is_available
	`, order.Delivered.String()).Rows()
	if err != nil {
		j.logger.ErrorContext(ctx, "Availability audit query failed", "error", err)
		return
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			j.logger.ErrorContext(ctx, "Availability audit scan failed", "error", err)
			return
		}
		j.logger.ErrorContext(ctx, "Invariant violation: available partner has a live delivery", "partnerID", id)
	}

	if err = rows.Err(); err != nil {
		j.logger.ErrorContext(ctx, "Availability audit query failed", "error", err)
	}
}

// reportDoubleBookings flags partners referenced by more than one live
// order. The conditional versioned update should make this impossible.
func (j *AvailabilityAuditJob) reportDoubleBookings(ctx context.Context) {
	rows, err := j.db.WithContext(ctx).Raw(`
		SELECT delivery_partner_id, COUNT(*) AS active
		FROM orders
		WHERE delivery_partner_id IS NOT NULL AND status != ?
		GROUP BY delivery_partner_id
		HAVING COUNT(*) > 1
	`, order.Delivered.String()).Rows()
	if err != nil {
		j.logger.ErrorContext(ctx, "Double-booking audit query failed", "error", err)
		return
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var active int
		if err = rows.Scan(&id, &active); err != nil {
			j.logger.ErrorContext(ctx, "Double-booking audit scan failed", "error", err)
			return
		}
		j.logger.ErrorContext(ctx, "Invariant violation: partner has multiple live deliveries",
			"partnerID", id, "activeOrders", active)
	}

	if err = rows.Err(); err != nil {
		j.logger.ErrorContext(ctx, "Double-booking audit query failed", "error", err)
	}
}

// reportBusyWithoutOrder lists partners that are unavailable but hold no
// live order. Legitimate for partners who went offline; logged at debug
// level for operators chasing stuck partners.
func (j *AvailabilityAuditJob) reportBusyWithoutOrder(ctx context.Context) {
	rows, err := j.db.WithContext(ctx).Raw(`
		SELECT p.id
		FROM delivery_partners p
		WHERE NOT p.is_available
		AND NOT EXISTS (
			SELECT 1 FROM orders o
			WHERE o.delivery_partner_id = p.id AND o.status != ?
		)
	`, order.Delivered.String()).Rows()
	if err != nil {
		j.logger.ErrorContext(ctx, "Idle-partner audit query failed", "error", err)
		return
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			j.logger.ErrorContext(ctx, "Idle-partner audit scan failed", "error", err)
			return
		}
		j.logger.DebugContext(ctx, "Partner is unavailable with no live delivery (offline or stuck)", "partnerID", id)
	}

	if err = rows.Err(); err != nil {
		j.logger.ErrorContext(ctx, "Idle-partner audit query failed", "error", err)
	}
}
