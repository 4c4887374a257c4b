package commands

import (
	"context"
	"strings"

	"localscout-booking/internal/domain/booking"
	"localscout-booking/internal/pkg/clock"
	"localscout-booking/internal/pkg/errs"
	"localscout-booking/internal/pkg/tz"
	"localscout-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateBookingInput struct {
	ServiceID  uuid.UUID
	CustomerID uuid.UUID
	// Wall-clock time in the marketplace zone, or RFC 3339 with an explicit offset.
	LocalDateTime string
	Notes         string
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, in CreateBookingInput) (uuid.UUID, error)
	ApproveBooking(ctx context.Context, bookingID, providerID uuid.UUID) error
	ApproveWithPrice(ctx context.Context, bookingID, providerID uuid.UUID, finalPrice string) error
	RejectBooking(ctx context.Context, bookingID, providerID uuid.UUID, reason string) error
	CancelBooking(ctx context.Context, bookingID, customerID uuid.UUID, reason string) error
}

type bookingUseCaseImpl struct {
	uow      shared.UnitOfWork
	tz       *tz.Converter
	clock    clock.Clock
	currency string
	effects  sideEffects
}

func NewBookingUseCase(uow shared.UnitOfWork, converter *tz.Converter, clk clock.Clock, events shared.EventPublisher, currency string) BookingCommands {
	return &bookingUseCaseImpl{
		uow:      uow,
		tz:       converter,
		clock:    clk,
		currency: currency,
		effects:  sideEffects{uow: uow, events: events, clock: clk},
	}
}

func (uc *bookingUseCaseImpl) CreateBooking(ctx context.Context, in CreateBookingInput) (uuid.UUID, error) {
	switch {
	case in.ServiceID == uuid.Nil:
		return uuid.Nil, validationf("service id is required")
	case in.CustomerID == uuid.Nil:
		return uuid.Nil, validationf("customer id is required")
	case strings.TrimSpace(in.LocalDateTime) == "":
		return uuid.Nil, validationf("booking date is required")
	}

	bookingDate, err := uc.tz.ParseLocal(in.LocalDateTime)
	if err != nil {
		return uuid.Nil, classify(err)
	}
	notes, err := booking.NewNote(in.Notes)
	if err != nil {
		return uuid.Nil, classify(err)
	}

	reads := uc.uow.CommandReads()
	svc, err := reads.ServiceByID(ctx, in.ServiceID)
	if err != nil {
		return uuid.Nil, classify(err)
	}
	if !svc.IsActive {
		return uuid.Nil, validationf("service %s is not accepting bookings", svc.ID)
	}
	if _, err := reads.UserByID(ctx, svc.ProviderID); err != nil {
		return uuid.Nil, classify(err)
	}
	customer, err := reads.UserByID(ctx, in.CustomerID)
	if err != nil {
		return uuid.Nil, classify(err)
	}

	spec, err := svc.Spec()
	if err != nil {
		return uuid.Nil, classify(err)
	}
	b, err := booking.NewBooking(spec, in.CustomerID, bookingDate, notes, uc.clock.Now())
	if err != nil {
		return uuid.Nil, classify(err)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Bookings().Create(ctx, tx.DB(), b)
	})
	if err != nil {
		return uuid.Nil, classify(err)
	}

	uc.effects.notify(ctx, b.ProviderID(), newRequestMessage(customer, b.ServiceName()))
	uc.effects.publish(ctx, shared.EventBookingCreated, b)
	return b.ID(), nil
}

func (uc *bookingUseCaseImpl) ApproveBooking(ctx context.Context, bookingID, providerID uuid.UUID) error {
	b, err := uc.transition(ctx, bookingID, func(b *booking.Booking) error {
		return b.Approve(providerID, uc.clock.Now())
	})
	if err != nil {
		return err
	}

	uc.effects.notify(ctx, b.CustomerID(), approvedMessage(b, uc.currency))
	uc.effects.publish(ctx, shared.EventBookingApproved, b)
	return nil
}

func (uc *bookingUseCaseImpl) ApproveWithPrice(ctx context.Context, bookingID, providerID uuid.UUID, finalPrice string) error {
	b, err := uc.transition(ctx, bookingID, func(b *booking.Booking) error {
		// Ownership is decided before the price is even looked at.
		if b.ProviderID() != providerID {
			return booking.ErrNotBookingProvider
		}
		price, err := booking.ParseMoney(finalPrice)
		if err != nil {
			return err
		}
		return b.ApproveWithPrice(providerID, price, uc.clock.Now())
	})
	if err != nil {
		return err
	}

	uc.effects.notify(ctx, b.CustomerID(), approvedMessage(b, uc.currency))
	uc.effects.publish(ctx, shared.EventBookingApproved, b)
	return nil
}

func (uc *bookingUseCaseImpl) RejectBooking(ctx context.Context, bookingID, providerID uuid.UUID, reason string) error {
	b, err := uc.transition(ctx, bookingID, func(b *booking.Booking) error {
		return b.Reject(providerID, reason, uc.clock.Now())
	})
	if err != nil {
		return err
	}

	uc.effects.notify(ctx, b.CustomerID(), rejectedMessage(b))
	uc.effects.publish(ctx, shared.EventBookingRejected, b)
	return nil
}

func (uc *bookingUseCaseImpl) CancelBooking(ctx context.Context, bookingID, customerID uuid.UUID, reason string) error {
	b, err := uc.transition(ctx, bookingID, func(b *booking.Booking) error {
		return b.Cancel(customerID, reason, uc.clock.Now())
	})
	if err != nil {
		return err
	}

	uc.effects.notify(ctx, b.ProviderID(), canceledMessage(b))
	uc.effects.publish(ctx, shared.EventBookingCanceled, b)
	return nil
}

// transition loads the booking, applies a domain transition and writes it back
// guarded by the status it was loaded with. A concurrent writer makes the
// update miss, which surfaces as ErrInvalidStateTransition.
func (uc *bookingUseCaseImpl) transition(ctx context.Context, bookingID uuid.UUID, apply func(*booking.Booking) error) (*booking.Booking, error) {
	if bookingID == uuid.Nil {
		return nil, validationf("booking id is required")
	}

	var updated *booking.Booking
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Reads().BookingByID(ctx, bookingID)
		if err != nil {
			return err
		}
		expected := b.Status()
		if err := apply(b); err != nil {
			return err
		}
		if err := tx.Bookings().UpdateStatus(ctx, tx.DB(), b, expected); err != nil {
			return errs.Wrapf(err, "booking %s", bookingID)
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}
	return updated, nil
}
