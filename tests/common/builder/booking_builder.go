//go:build unit || e2e

package builder

import (
	"time"

	"localscout-booking/internal/domain/booking"
	reqdto "localscout-booking/internal/handler/dto/request"
	"localscout-booking/internal/usecase/commands"
	"localscout-booking/internal/usecase/queries"
	"localscout-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	BookingID       uuid.UUID
	ServiceID       uuid.UUID
	ProviderID      uuid.UUID
	CustomerID      uuid.UUID
	ServiceName     string
	PriceMinor      int64
	IsNegotiable    bool
	Notes           string
	BookingDate     time.Time
	Status          booking.Status
	FinalPriceMinor *int64
	CreatedAt       time.Time
}

func NewBookingBuilder() *BookingBuilder {
	created := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		BookingID:   uuid.New(),
		ServiceID:   uuid.New(),
		ProviderID:  uuid.New(),
		CustomerID:  uuid.New(),
		ServiceName: "Home Deep Cleaning",
		PriceMinor:  50000,
		Notes:       "Two bedrooms, please bring supplies.",
		// 14:00 in Dhaka
		BookingDate: time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC),
		Status:      booking.StatusPendingApproval,
		CreatedAt:   created,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithStatus(s booking.Status) *BookingBuilder {
	b.Status = s
	return b
}

func (b *BookingBuilder) WithFinalPrice(minor int64) *BookingBuilder {
	b.FinalPriceMinor = &minor
	return b
}

func (b *BookingBuilder) WithPrice(minor int64) *BookingBuilder {
	b.PriceMinor = minor
	return b
}

func (b *BookingBuilder) WithParties(customerID, providerID uuid.UUID) *BookingBuilder {
	b.CustomerID = customerID
	b.ProviderID = providerID
	return b
}

// Build methods
func (b *BookingBuilder) BuildSpec() booking.ServiceSpec {
	price, _ := booking.NewMoney(b.PriceMinor)
	return booking.ServiceSpec{
		ID:           b.ServiceID,
		ProviderID:   b.ProviderID,
		Name:         b.ServiceName,
		Price:        price,
		IsNegotiable: b.IsNegotiable,
	}
}

// BuildDomain runs the creation rules, so Status and BookingID are not applied.
func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	notes, err := booking.NewNote(b.Notes)
	if err != nil {
		return nil, err
	}
	return booking.NewBooking(b.BuildSpec(), b.CustomerID, b.BookingDate, notes, b.CreatedAt)
}

func (b *BookingBuilder) BuildRecord() booking.Record {
	return booking.Record{
		ID:              b.BookingID,
		ServiceID:       b.ServiceID,
		ServiceName:     b.ServiceName,
		CustomerID:      b.CustomerID,
		ProviderID:      b.ProviderID,
		BookingDate:     b.BookingDate,
		TotalPriceMinor: b.PriceMinor,
		FinalPriceMinor: b.FinalPriceMinor,
		IsNegotiable:    b.IsNegotiable,
		CustomerNotes:   b.Notes,
		Status:          b.Status,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.CreatedAt,
	}
}

func (b *BookingBuilder) BuildReconstructed() *booking.Booking {
	return booking.Reconstruct(b.BuildRecord())
}

func (b *BookingBuilder) BuildServiceSnapshot() shared.ServiceSnapshot {
	return shared.ServiceSnapshot{
		ID:           b.ServiceID,
		ProviderID:   b.ProviderID,
		Name:         b.ServiceName,
		PriceMinor:   b.PriceMinor,
		IsNegotiable: b.IsNegotiable,
		IsActive:     true,
	}
}

func (b *BookingBuilder) BuildCreateInput() commands.CreateBookingInput {
	return commands.CreateBookingInput{
		ServiceID:     b.ServiceID,
		CustomerID:    b.CustomerID,
		LocalDateTime: "2025-03-10T14:00",
		Notes:         b.Notes,
	}
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	notes := b.Notes
	return reqdto.CreateBookingRequest{
		ServiceID:   b.ServiceID,
		BookingDate: "2025-03-10T14:00",
		Notes:       &notes,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	rec := b.BuildRecord()
	bk := booking.Reconstruct(rec)
	return &queries.BookingView{
		ID:               rec.ID,
		ServiceID:        rec.ServiceID,
		ServiceName:      rec.ServiceName,
		CustomerID:       rec.CustomerID,
		CustomerName:     "Rahim Uddin",
		ProviderID:       rec.ProviderID,
		ProviderName:     "Sparkle Cleaners",
		BookingDate:      rec.BookingDate,
		LocalBookingDate: "2025-03-10T14:00:00+06:00",
		TotalPrice:       bk.TotalPrice().String(),
		PayableAmount:    bk.PayableAmount().String(),
		IsNegotiable:     rec.IsNegotiable,
		Status:           rec.Status.String(),
		CustomerNotes:    rec.CustomerNotes,
		CreatedAt:        rec.CreatedAt,
		UpdatedAt:        rec.UpdatedAt,
	}
}

func (b *BookingBuilder) BuildListItem() *queries.BookingListItem {
	bk := b.BuildReconstructed()
	return &queries.BookingListItem{
		ID:               bk.ID(),
		ServiceName:      bk.ServiceName(),
		CustomerID:       bk.CustomerID(),
		ProviderID:       bk.ProviderID(),
		BookingDate:      bk.BookingDate(),
		LocalBookingDate: "2025-03-10T14:00:00+06:00",
		PayableAmount:    bk.PayableAmount().String(),
		Status:           bk.Status().String(),
		CreatedAt:        bk.CreatedAt(),
	}
}
