package repository

import (
	"context"

	"localscout-booking/internal/domain/booking"
	"localscout-booking/internal/infra"
	"localscout-booking/internal/infra/db"
	"localscout-booking/internal/pkg/pgconv"
)

const insertBookingSQL = `
INSERT INTO bookings (
	id, service_id, service_name, customer_id, provider_id, booking_date,
	total_price_minor, final_price_minor, is_negotiable, status,
	customer_notes, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

// The status predicate turns the update into a compare-and-set.
const updateBookingStatusSQL = `
UPDATE bookings
SET status = $2,
	final_price_minor = $3,
	rejection_reason = $4,
	cancellation_reason = $5,
	payment_reference = $6,
	updated_at = $7
WHERE id = $1 AND status = $8`

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

func (r *BookingRepository) Create(ctx context.Context, tx db.DBTX, b *booking.Booking) error {
	rec := b.Record()
	_, err := tx.Exec(ctx, insertBookingSQL,
		pgconv.UUIDToPgtype(rec.ID),
		pgconv.UUIDToPgtype(rec.ServiceID),
		rec.ServiceName,
		pgconv.UUIDToPgtype(rec.CustomerID),
		pgconv.UUIDToPgtype(rec.ProviderID),
		pgconv.TimeToPgtype(rec.BookingDate),
		rec.TotalPriceMinor,
		pgconv.Int64PtrToPgtype(rec.FinalPriceMinor),
		rec.IsNegotiable,
		rec.Status.String(),
		pgconv.TextOrNull(rec.CustomerNotes),
		pgconv.TimeToPgtype(rec.CreatedAt),
		pgconv.TimeToPgtype(rec.UpdatedAt),
	)
	if err != nil {
		return infra.WrapPgErr("failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, tx db.DBTX, b *booking.Booking, expected booking.Status) error {
	rec := b.Record()
	tag, err := tx.Exec(ctx, updateBookingStatusSQL,
		pgconv.UUIDToPgtype(rec.ID),
		rec.Status.String(),
		pgconv.Int64PtrToPgtype(rec.FinalPriceMinor),
		pgconv.TextOrNull(rec.RejectionReason),
		pgconv.TextOrNull(rec.CancellationReason),
		pgconv.TextOrNull(rec.PaymentReference),
		pgconv.TimeToPgtype(rec.UpdatedAt),
		expected.String(),
	)
	if err != nil {
		return infra.WrapPgErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindConflict,
			"booking "+rec.ID.String()+" is no longer "+expected.String(), nil)
	}
	return nil
}
