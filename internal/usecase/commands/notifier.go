package commands

import (
	"context"
	"log/slog"

	"localscout-booking/internal/domain/booking"
	"localscout-booking/internal/domain/notification"
	"localscout-booking/internal/pkg/clock"
	"localscout-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// sideEffects runs after a transition has committed. Nothing here may fail the caller.
type sideEffects struct {
	uow    shared.UnitOfWork
	events shared.EventPublisher
	clock  clock.Clock
}

func (s sideEffects) notify(ctx context.Context, userID uuid.UUID, message string) {
	n, err := notification.New(userID, message, s.clock.Now())
	if err != nil {
		slog.Warn("skipping notification", "user_id", userID, "error", err.Error())
		return
	}
	err = s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Notifications().Create(ctx, tx.DB(), n)
	})
	if err != nil {
		slog.Warn("failed to store notification", "user_id", userID, "error", err.Error())
	}
}

func (s sideEffects) publish(ctx context.Context, eventType string, b *booking.Booking) {
	if s.events == nil {
		return
	}
	evt := shared.NewBookingEvent(eventType, b, s.clock.Now())
	if err := s.events.Publish(ctx, evt); err != nil {
		slog.Warn("failed to publish booking event",
			"event", eventType,
			"booking_id", b.ID(),
			"error", err.Error())
	}
}
