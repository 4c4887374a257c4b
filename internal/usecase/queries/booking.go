package queries

import (
	"context"

	"localscout-booking/internal/domain/booking"
	"localscout-booking/internal/domain/user"
	"localscout-booking/internal/infra"
	"localscout-booking/internal/pkg/errs"
	"localscout-booking/internal/pkg/tz"

	"github.com/google/uuid"
)

var (
	ErrInvalidCursor = errs.New("invalid cursor")
	ErrInvalidParty  = errs.New("invalid party")
)

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	// ListByParty returns up to limit rows ordered by created_at DESC, id DESC.
	ListByParty(ctx context.Context, party Party, userID uuid.UUID, after *Keyset, limit int) ([]*BookingListItem, error)
	CountByStatus(ctx context.Context, party Party, userID uuid.UUID) (map[booking.Status]int, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, bookingID, actorID uuid.UUID, actorRole user.Role) (*BookingView, error)
	ListCustomerBookings(ctx context.Context, customerID uuid.UUID, after string, limit int) (*BookingPage, error)
	ListProviderBookings(ctx context.Context, providerID uuid.UUID, after string, limit int) (*BookingPage, error)
	Stats(ctx context.Context, userID uuid.UUID, perspective Party) (*BookingStats, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
	tz    *tz.Converter
}

func NewBookingQueries(store BookingReadStore, converter *tz.Converter) BookingQueries {
	return &bookingQueriesImpl{store: store, tz: converter}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, bookingID, actorID uuid.UUID, actorRole user.Role) (*BookingView, error) {
	view, err := q.store.FindByID(ctx, bookingID)
	if err != nil {
		return nil, markStoreErr(err)
	}

	if !actorRole.IsAdmin() && actorID != view.CustomerID && actorID != view.ProviderID {
		return nil, errs.Mark(errs.Newf("user %s cannot read booking %s", actorID, bookingID), errs.ErrForbidden)
	}

	view.LocalBookingDate = q.tz.FormatLocal(view.BookingDate)
	return view, nil
}

func (q *bookingQueriesImpl) ListCustomerBookings(ctx context.Context, customerID uuid.UUID, after string, limit int) (*BookingPage, error) {
	return q.list(ctx, PartyCustomer, customerID, after, limit)
}

func (q *bookingQueriesImpl) ListProviderBookings(ctx context.Context, providerID uuid.UUID, after string, limit int) (*BookingPage, error) {
	return q.list(ctx, PartyProvider, providerID, after, limit)
}

func (q *bookingQueriesImpl) list(ctx context.Context, party Party, userID uuid.UUID, after string, limit int) (*BookingPage, error) {
	limit = ValidateLimit(limit)

	var keyset *Keyset
	if after != "" {
		ks, err := DecodeAfterCursor(after)
		if err != nil {
			return nil, errs.Mark(errs.Mark(err, ErrInvalidCursor), errs.ErrValidation)
		}
		keyset = ks
	}

	// Fetch one extra row to learn whether another page exists.
	items, err := q.store.ListByParty(ctx, party, userID, keyset, limit+1)
	if err != nil {
		return nil, markStoreErr(err)
	}

	page := &BookingPage{Items: items}
	if len(items) > limit {
		page.Items = items[:limit]
		page.HasMore = true
		last := page.Items[limit-1]
		page.NextCursor = EncodeAfterCursor(last.CreatedAt, last.ID)
	}
	for _, it := range page.Items {
		it.LocalBookingDate = q.tz.FormatLocal(it.BookingDate)
	}
	return page, nil
}

func (q *bookingQueriesImpl) Stats(ctx context.Context, userID uuid.UUID, perspective Party) (*BookingStats, error) {
	if !perspective.IsValid() {
		return nil, errs.Mark(errs.Newf("perspective %q", perspective), errs.ErrValidation)
	}

	counts, err := q.store.CountByStatus(ctx, perspective, userID)
	if err != nil {
		return nil, markStoreErr(err)
	}

	stats := &BookingStats{Perspective: perspective}
	for _, n := range counts {
		stats.Requested += n
	}

	switch perspective {
	case PartyCustomer:
		// A completed booking was also confirmed.
		stats.Confirmed = counts[booking.StatusConfirmed] + counts[booking.StatusCompleted]
		stats.Completed = counts[booking.StatusCompleted]
		stats.Canceled = counts[booking.StatusCanceledByUser]
	case PartyProvider:
		// Ongoing work: approved or already paid.
		stats.Confirmed = counts[booking.StatusConfirmed] + counts[booking.StatusApproved]
		stats.Completed = counts[booking.StatusCompleted]
		stats.Canceled = counts[booking.StatusCanceledByUser] + counts[booking.StatusRejected]
		stats.Pending = counts[booking.StatusPendingApproval]
	}
	return stats, nil
}

func markStoreErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, errs.ErrNotFound)
	}
	return errs.Mark(err, errs.ErrDatabaseOperationFailed)
}
