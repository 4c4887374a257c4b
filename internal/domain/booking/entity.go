package booking

import (
	"strings"
	"time"

	"localscout-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrServiceRequired          = errs.New("service is required")
	ErrServiceNameRequired      = errs.New("service name is required")
	ErrCustomerRequired         = errs.New("customer is required")
	ErrProviderRequired         = errs.New("provider is required")
	ErrBookingDateRequired      = errs.New("booking date is required")
	ErrSelfBooking              = errs.New("providers cannot book their own service")
	ErrFinalPriceNotPositive    = errs.New("final price must be greater than zero")
	ErrPaymentReferenceRequired = errs.New("payment reference is required")

	ErrNotBookingProvider = errs.New("actor is not the provider of this booking")
	ErrNotBookingCustomer = errs.New("actor is not the customer of this booking")
	ErrInvalidTransition  = errs.New("invalid booking status transition")
)

// ServiceSpec is the catalog entry a booking snapshots at creation time.
type ServiceSpec struct {
	ID           uuid.UUID
	ProviderID   uuid.UUID
	Name         string
	Price        Money
	IsNegotiable bool
}

type Booking struct {
	id                 uuid.UUID
	serviceID          uuid.UUID
	serviceName        string
	customerID         uuid.UUID
	providerID         uuid.UUID
	bookingDate        time.Time
	totalPrice         Money
	finalPrice         *Money
	isNegotiable       bool
	customerNotes      Note
	rejectionReason    string
	cancellationReason string
	paymentReference   string
	status             Status
	createdAt          time.Time
	updatedAt          time.Time
}

// NewBooking starts a booking in PendingApproval. bookingDate must already be UTC.
func NewBooking(svc ServiceSpec, customerID uuid.UUID, bookingDate time.Time, notes Note, now time.Time) (*Booking, error) {
	switch {
	case svc.ID == uuid.Nil:
		return nil, ErrServiceRequired
	case strings.TrimSpace(svc.Name) == "":
		return nil, ErrServiceNameRequired
	case svc.ProviderID == uuid.Nil:
		return nil, ErrProviderRequired
	case customerID == uuid.Nil:
		return nil, ErrCustomerRequired
	case bookingDate.IsZero():
		return nil, ErrBookingDateRequired
	case customerID == svc.ProviderID:
		return nil, ErrSelfBooking
	}

	return &Booking{
		id:            uuid.New(),
		serviceID:     svc.ID,
		serviceName:   strings.TrimSpace(svc.Name),
		customerID:    customerID,
		providerID:    svc.ProviderID,
		bookingDate:   bookingDate.UTC(),
		totalPrice:    svc.Price,
		isNegotiable:  svc.IsNegotiable,
		customerNotes: notes,
		status:        StatusPendingApproval,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func (b *Booking) ID() uuid.UUID              { return b.id }
func (b *Booking) ServiceID() uuid.UUID       { return b.serviceID }
func (b *Booking) ServiceName() string        { return b.serviceName }
func (b *Booking) CustomerID() uuid.UUID      { return b.customerID }
func (b *Booking) ProviderID() uuid.UUID      { return b.providerID }
func (b *Booking) BookingDate() time.Time     { return b.bookingDate }
func (b *Booking) TotalPrice() Money          { return b.totalPrice }
func (b *Booking) IsNegotiable() bool         { return b.isNegotiable }
func (b *Booking) CustomerNotes() Note        { return b.customerNotes }
func (b *Booking) RejectionReason() string    { return b.rejectionReason }
func (b *Booking) CancellationReason() string { return b.cancellationReason }
func (b *Booking) PaymentReference() string   { return b.paymentReference }
func (b *Booking) Status() Status             { return b.status }
func (b *Booking) CreatedAt() time.Time       { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time       { return b.updatedAt }

func (b *Booking) FinalPrice() *Money {
	if b.finalPrice == nil {
		return nil
	}
	p := *b.finalPrice
	return &p
}

// PayableAmount is the final price when one was set, otherwise the quoted price.
func (b *Booking) PayableAmount() Money {
	if b.finalPrice != nil {
		return *b.finalPrice
	}
	return b.totalPrice
}

func (b *Booking) IsParticipant(userID uuid.UUID) bool {
	return userID == b.customerID || userID == b.providerID
}

func (b *Booking) Approve(actorID uuid.UUID, now time.Time) error {
	if actorID != b.providerID {
		return ErrNotBookingProvider
	}
	return b.transitionTo(StatusApproved, now)
}

func (b *Booking) ApproveWithPrice(actorID uuid.UUID, finalPrice Money, now time.Time) error {
	if actorID != b.providerID {
		return ErrNotBookingProvider
	}
	if !finalPrice.IsPositive() {
		return ErrFinalPriceNotPositive
	}
	if err := b.transitionTo(StatusApproved, now); err != nil {
		return err
	}
	b.finalPrice = &finalPrice
	return nil
}

func (b *Booking) Reject(actorID uuid.UUID, reason string, now time.Time) error {
	if actorID != b.providerID {
		return ErrNotBookingProvider
	}
	reason, err := normalizeReason(reason)
	if err != nil {
		return err
	}
	if err := b.transitionTo(StatusRejected, now); err != nil {
		return err
	}
	b.rejectionReason = reason
	return nil
}

func (b *Booking) Cancel(actorID uuid.UUID, reason string, now time.Time) error {
	if actorID != b.customerID {
		return ErrNotBookingCustomer
	}
	reason, err := normalizeReason(reason)
	if err != nil {
		return err
	}
	if err := b.transitionTo(StatusCanceledByUser, now); err != nil {
		return err
	}
	b.cancellationReason = reason
	return nil
}

// Confirm records a validated payment. Only the payment webhook calls this.
func (b *Booking) Confirm(paymentReference string, now time.Time) error {
	paymentReference = strings.TrimSpace(paymentReference)
	if paymentReference == "" {
		return ErrPaymentReferenceRequired
	}
	if err := b.transitionTo(StatusConfirmed, now); err != nil {
		return err
	}
	b.paymentReference = paymentReference
	return nil
}

func (b *Booking) transitionTo(next Status, now time.Time) error {
	if !b.status.CanTransitionTo(next) {
		return errs.Mark(errs.Newf("booking %s: %s -> %s", b.id, b.status, next), ErrInvalidTransition)
	}
	b.status = next
	b.updatedAt = now
	return nil
}

// Record is the flat persistence shape of a Booking.
type Record struct {
	ID                 uuid.UUID
	ServiceID          uuid.UUID
	ServiceName        string
	CustomerID         uuid.UUID
	ProviderID         uuid.UUID
	BookingDate        time.Time
	TotalPriceMinor    int64
	FinalPriceMinor    *int64
	IsNegotiable       bool
	CustomerNotes      string
	RejectionReason    string
	CancellationReason string
	PaymentReference   string
	Status             Status
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (b *Booking) Record() Record {
	r := Record{
		ID:                 b.id,
		ServiceID:          b.serviceID,
		ServiceName:        b.serviceName,
		CustomerID:         b.customerID,
		ProviderID:         b.providerID,
		BookingDate:        b.bookingDate,
		TotalPriceMinor:    b.totalPrice.Minor(),
		IsNegotiable:       b.isNegotiable,
		CustomerNotes:      b.customerNotes.String(),
		RejectionReason:    b.rejectionReason,
		CancellationReason: b.cancellationReason,
		PaymentReference:   b.paymentReference,
		Status:             b.status,
		CreatedAt:          b.createdAt,
		UpdatedAt:          b.updatedAt,
	}
	if b.finalPrice != nil {
		v := b.finalPrice.Minor()
		r.FinalPriceMinor = &v
	}
	return r
}

// Reconstruct rebuilds a Booking from storage without re-running creation rules.
func Reconstruct(r Record) *Booking {
	b := &Booking{
		id:                 r.ID,
		serviceID:          r.ServiceID,
		serviceName:        r.ServiceName,
		customerID:         r.CustomerID,
		providerID:         r.ProviderID,
		bookingDate:        r.BookingDate.UTC(),
		totalPrice:         Money{minor: r.TotalPriceMinor},
		isNegotiable:       r.IsNegotiable,
		customerNotes:      Note{value: r.CustomerNotes},
		rejectionReason:    r.RejectionReason,
		cancellationReason: r.CancellationReason,
		paymentReference:   r.PaymentReference,
		status:             r.Status,
		createdAt:          r.CreatedAt,
		updatedAt:          r.UpdatedAt,
	}
	if r.FinalPriceMinor != nil {
		b.finalPrice = &Money{minor: *r.FinalPriceMinor}
	}
	return b
}
