package queries

import (
	"time"

	"github.com/google/uuid"
)

// Party selects which side of a booking a listing is for.
type Party string

const (
	PartyCustomer Party = "customer"
	PartyProvider Party = "provider"
)

func (p Party) IsValid() bool {
	return p == PartyCustomer || p == PartyProvider
}

// Keyset is the decoded position after which a page starts.
type Keyset struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

// BookingView represents read-optimized booking data
type BookingView struct {
	ID                 uuid.UUID
	ServiceID          uuid.UUID
	ServiceName        string
	CustomerID         uuid.UUID
	CustomerName       string
	ProviderID         uuid.UUID
	ProviderName       string
	BookingDate        time.Time
	LocalBookingDate   string
	TotalPrice         string
	FinalPrice         *string
	PayableAmount      string
	IsNegotiable       bool
	Status             string
	CustomerNotes      string
	RejectionReason    string
	CancellationReason string
	PaymentReference   string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type BookingListItem struct {
	ID               uuid.UUID
	ServiceName      string
	CustomerID       uuid.UUID
	ProviderID       uuid.UUID
	BookingDate      time.Time
	LocalBookingDate string
	PayableAmount    string
	Status           string
	CreatedAt        time.Time
}

type BookingPage struct {
	Items      []*BookingListItem
	NextCursor string
	HasMore    bool
}

// BookingStats mirrors the dashboard counters.
// Pending is only meaningful for the provider's own view.
type BookingStats struct {
	Perspective Party
	Requested   int
	Pending     int
	Confirmed   int
	Completed   int
	Canceled    int
}

type NotificationView struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Message   string
	IsRead    bool
	CreatedAt time.Time
}
