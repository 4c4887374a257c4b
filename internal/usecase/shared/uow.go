package shared

import (
	"context"

	"localscout-booking/internal/domain/booking"
	"localscout-booking/internal/domain/notification"
	"localscout-booking/internal/domain/user"
	"localscout-booking/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: Direct access to command reads for checks outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Notifications() NotificationRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	ServiceByID(ctx context.Context, id uuid.UUID) (*ServiceSnapshot, error)
	UserByID(ctx context.Context, id uuid.UUID) (*user.Profile, error)
	NotificationByID(ctx context.Context, id uuid.UUID) (*notification.Notification, error)
}

type BookingRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking) error
	// UpdateStatus writes b only if the stored status still equals expected.
	// A lost race surfaces as infra.KindConflict.
	UpdateStatus(ctx context.Context, tx db.DBTX, b *booking.Booking, expected booking.Status) error
}

type NotificationRepository interface {
	Create(ctx context.Context, tx db.DBTX, n *notification.Notification) error
	MarkRead(ctx context.Context, tx db.DBTX, id, userID uuid.UUID) error
}
