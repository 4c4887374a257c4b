package shared

import (
	"context"
	"time"

	"localscout-booking/internal/domain/booking"

	"github.com/google/uuid"
)

const (
	EventBookingCreated   = "booking.created"
	EventBookingApproved  = "booking.approved"
	EventBookingRejected  = "booking.rejected"
	EventBookingCanceled  = "booking.canceled"
	EventBookingConfirmed = "booking.confirmed"
)

type BookingEvent struct {
	Type       string         `json:"type"`
	BookingID  uuid.UUID      `json:"booking_id"`
	ServiceID  uuid.UUID      `json:"service_id"`
	CustomerID uuid.UUID      `json:"customer_id"`
	ProviderID uuid.UUID      `json:"provider_id"`
	Status     booking.Status `json:"status"`
	Amount     string         `json:"amount,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

func NewBookingEvent(eventType string, b *booking.Booking, at time.Time) BookingEvent {
	return BookingEvent{
		Type:       eventType,
		BookingID:  b.ID(),
		ServiceID:  b.ServiceID(),
		CustomerID: b.CustomerID(),
		ProviderID: b.ProviderID(),
		Status:     b.Status(),
		Amount:     b.PayableAmount().String(),
		OccurredAt: at,
	}
}

type EventPublisher interface {
	Publish(ctx context.Context, evt BookingEvent) error
}
