package readstore

import (
	"context"
	"fmt"

	"localscout-booking/internal/domain/booking"
	"localscout-booking/internal/infra"
	"localscout-booking/internal/infra/db"
	"localscout-booking/internal/pkg/pgconv"
	"localscout-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const bookingColumns = `
	b.id, b.service_id, b.service_name, b.customer_id, b.provider_id, b.booking_date,
	b.total_price_minor, b.final_price_minor, b.is_negotiable, b.status,
	b.customer_notes, b.rejection_reason, b.cancellation_reason, b.payment_reference,
	b.created_at, b.updated_at`

const getBookingRecordSQL = `SELECT` + bookingColumns + `
FROM bookings b
WHERE b.id = $1`

const getBookingViewSQL = `SELECT` + bookingColumns + `,
	COALESCE(NULLIF(TRIM(c.first_name || ' ' || c.last_name), ''), c.email, '') AS customer_name,
	COALESCE(NULLIF(p.business_name, ''), NULLIF(TRIM(p.first_name || ' ' || p.last_name), ''), p.email, '') AS provider_name
FROM bookings b
LEFT JOIN users c ON c.id = b.customer_id
LEFT JOIN users p ON p.id = b.provider_id
WHERE b.id = $1`

// %s is the party column; both variants are backed by (party, created_at DESC, id DESC) indexes.
const listBookingsFirstPageSQL = `
SELECT b.id, b.service_name, b.customer_id, b.provider_id, b.booking_date,
	COALESCE(b.final_price_minor, b.total_price_minor) AS payable_minor, b.status, b.created_at
FROM bookings b
WHERE b.%s = $1
ORDER BY b.created_at DESC, b.id DESC
LIMIT $2`

const listBookingsKeysetSQL = `
SELECT b.id, b.service_name, b.customer_id, b.provider_id, b.booking_date,
	COALESCE(b.final_price_minor, b.total_price_minor) AS payable_minor, b.status, b.created_at
FROM bookings b
WHERE b.%s = $1
  AND (b.created_at, b.id) < ($2, $3)
ORDER BY b.created_at DESC, b.id DESC
LIMIT $4`

const countBookingsByStatusSQL = `
SELECT b.status, COUNT(*)
FROM bookings b
WHERE b.%s = $1
GROUP BY b.status`

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

// LoadAggregate returns the write-side entity for commands.
func (r *BookingReadStore) LoadAggregate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	rec, err := scanBookingRecord(r.db.QueryRow(ctx, getBookingRecordSQL, pgconv.UUIDToPgtype(id)))
	if err != nil {
		return nil, infra.WrapPgErr("failed to load booking", err)
	}
	return booking.Reconstruct(rec), nil
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	var customerName, providerName string
	row := r.db.QueryRow(ctx, getBookingViewSQL, pgconv.UUIDToPgtype(id))
	rec, err := scanBookingRecord(row, &customerName, &providerName)
	if err != nil {
		return nil, infra.WrapPgErr("failed to find booking by ID", err)
	}
	return recordToView(rec, customerName, providerName), nil
}

func (r *BookingReadStore) ListByParty(ctx context.Context, party queries.Party, userID uuid.UUID, after *queries.Keyset, limit int) ([]*queries.BookingListItem, error) {
	column, err := partyColumn(party)
	if err != nil {
		return nil, err
	}

	var rows pgx.Rows
	if after == nil {
		rows, err = r.db.Query(ctx, fmt.Sprintf(listBookingsFirstPageSQL, column),
			pgconv.UUIDToPgtype(userID), limit)
	} else {
		rows, err = r.db.Query(ctx, fmt.Sprintf(listBookingsKeysetSQL, column),
			pgconv.UUIDToPgtype(userID), pgconv.TimeToPgtype(after.CreatedAt), pgconv.UUIDToPgtype(after.ID), limit)
	}
	if err != nil {
		return nil, infra.WrapPgErr("failed to list bookings", err)
	}
	defer rows.Close()

	items := make([]*queries.BookingListItem, 0, limit)
	for rows.Next() {
		var (
			id, customerID, providerID pgtype.UUID
			bookingDate, createdAt     pgtype.Timestamptz
			payableMinor               int64
			item                       queries.BookingListItem
		)
		if err := rows.Scan(&id, &item.ServiceName, &customerID, &providerID, &bookingDate,
			&payableMinor, &item.Status, &createdAt); err != nil {
			return nil, infra.WrapPgErr("failed to scan booking row", err)
		}
		item.ID = pgconv.UUIDFromPgtype(id)
		item.CustomerID = pgconv.UUIDFromPgtype(customerID)
		item.ProviderID = pgconv.UUIDFromPgtype(providerID)
		item.BookingDate = pgconv.TimeFromPgtype(bookingDate)
		item.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		item.PayableAmount = formatMinor(payableMinor)
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapPgErr("failed to iterate bookings", err)
	}
	return items, nil
}

func (r *BookingReadStore) CountByStatus(ctx context.Context, party queries.Party, userID uuid.UUID) (map[booking.Status]int, error) {
	column, err := partyColumn(party)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, fmt.Sprintf(countBookingsByStatusSQL, column), pgconv.UUIDToPgtype(userID))
	if err != nil {
		return nil, infra.WrapPgErr("failed to count bookings", err)
	}
	defer rows.Close()

	counts := make(map[booking.Status]int)
	for rows.Next() {
		var (
			status string
			n      int64
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, infra.WrapPgErr("failed to scan booking count", err)
		}
		counts[booking.Status(status)] = int(n)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapPgErr("failed to iterate booking counts", err)
	}
	return counts, nil
}

func partyColumn(party queries.Party) (string, error) {
	switch party {
	case queries.PartyCustomer:
		return "customer_id", nil
	case queries.PartyProvider:
		return "provider_id", nil
	default:
		return "", infra.WrapRepoErr(infra.KindDBFailure, "unknown booking party "+string(party), nil)
	}
}

// scanBookingRecord reads bookingColumns followed by any extra destinations.
func scanBookingRecord(row pgx.Row, extra ...any) (booking.Record, error) {
	var rec booking.Record
	var id, serviceID, customerID, providerID pgtype.UUID
	var bookingDate, createdAt, updatedAt pgtype.Timestamptz
	var finalPrice pgtype.Int8
	var status string
	var notes, rejectionReason, cancelReason, paymentRef pgtype.Text

	dest := []any{
		&id, &serviceID, &rec.ServiceName, &customerID, &providerID, &bookingDate,
		&rec.TotalPriceMinor, &finalPrice, &rec.IsNegotiable, &status,
		&notes, &rejectionReason, &cancelReason, &paymentRef,
		&createdAt, &updatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return booking.Record{}, err
	}

	rec.ID = pgconv.UUIDFromPgtype(id)
	rec.ServiceID = pgconv.UUIDFromPgtype(serviceID)
	rec.CustomerID = pgconv.UUIDFromPgtype(customerID)
	rec.ProviderID = pgconv.UUIDFromPgtype(providerID)
	rec.BookingDate = pgconv.TimeFromPgtype(bookingDate)
	rec.FinalPriceMinor = pgconv.Int64PtrFromPgtype(finalPrice)
	rec.Status = booking.Status(status)
	rec.CustomerNotes = pgconv.StringFromPgtype(notes)
	rec.RejectionReason = pgconv.StringFromPgtype(rejectionReason)
	rec.CancellationReason = pgconv.StringFromPgtype(cancelReason)
	rec.PaymentReference = pgconv.StringFromPgtype(paymentRef)
	rec.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	rec.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return rec, nil
}

func recordToView(rec booking.Record, customerName, providerName string) *queries.BookingView {
	b := booking.Reconstruct(rec)
	view := &queries.BookingView{
		ID:                 rec.ID,
		ServiceID:          rec.ServiceID,
		ServiceName:        rec.ServiceName,
		CustomerID:         rec.CustomerID,
		CustomerName:       customerName,
		ProviderID:         rec.ProviderID,
		ProviderName:       providerName,
		BookingDate:        rec.BookingDate,
		TotalPrice:         b.TotalPrice().String(),
		PayableAmount:      b.PayableAmount().String(),
		IsNegotiable:       rec.IsNegotiable,
		Status:             rec.Status.String(),
		CustomerNotes:      rec.CustomerNotes,
		RejectionReason:    rec.RejectionReason,
		CancellationReason: rec.CancellationReason,
		PaymentReference:   rec.PaymentReference,
		CreatedAt:          rec.CreatedAt,
		UpdatedAt:          rec.UpdatedAt,
	}
	if fp := b.FinalPrice(); fp != nil {
		s := fp.String()
		view.FinalPrice = &s
	}
	return view
}

func formatMinor(v int64) string {
	m, err := booking.NewMoney(v)
	if err != nil {
		return "0.00"
	}
	return m.String()
}
