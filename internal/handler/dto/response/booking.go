package response

import (
	"time"

	"localscout-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID                 uuid.UUID `json:"id"`
	ServiceID          uuid.UUID `json:"service_id"`
	ServiceName        string    `json:"service_name"`
	CustomerID         uuid.UUID `json:"customer_id"`
	CustomerName       string    `json:"customer_name"`
	ProviderID         uuid.UUID `json:"provider_id"`
	ProviderName       string    `json:"provider_name"`
	BookingDate        time.Time `json:"booking_date"`
	LocalBookingDate   string    `json:"local_booking_date"`
	TotalPrice         string    `json:"total_price"`
	FinalPrice         *string   `json:"final_price,omitempty"`
	PayableAmount      string    `json:"payable_amount"`
	IsNegotiable       bool      `json:"is_negotiable"`
	Status             string    `json:"status"`
	CustomerNotes      string    `json:"customer_notes,omitempty"`
	RejectionReason    string    `json:"rejection_reason,omitempty"`
	CancellationReason string    `json:"cancellation_reason,omitempty"`
	PaymentReference   string    `json:"payment_reference,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type BookingListItemResponse struct {
	ID               uuid.UUID `json:"id"`
	ServiceName      string    `json:"service_name"`
	CustomerID       uuid.UUID `json:"customer_id"`
	ProviderID       uuid.UUID `json:"provider_id"`
	BookingDate      time.Time `json:"booking_date"`
	LocalBookingDate string    `json:"local_booking_date"`
	PayableAmount    string    `json:"payable_amount"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

type BookingPageResponse struct {
	Bookings   []*BookingListItemResponse `json:"bookings"`
	NextCursor string                     `json:"next_cursor,omitempty"`
	HasMore    bool                       `json:"has_more"`
}

type BookingStatsResponse struct {
	Perspective string `json:"perspective"`
	Requested   int    `json:"requested"`
	Pending     int    `json:"pending"`
	Confirmed   int    `json:"confirmed"`
	Completed   int    `json:"completed"`
	Canceled    int    `json:"canceled"`
}

type CreatedBookingResponse struct {
	ID uuid.UUID `json:"id"`
}

func FromBookingView(v *queries.BookingView) (*BookingResponse, error) {
	var res BookingResponse
	if err := copier.Copy(&res, v); err != nil {
		return nil, err
	}
	return &res, nil
}

func FromBookingPage(p *queries.BookingPage) (*BookingPageResponse, error) {
	items := make([]*BookingListItemResponse, 0, len(p.Items))
	if err := copier.Copy(&items, p.Items); err != nil {
		return nil, err
	}
	return &BookingPageResponse{Bookings: items, NextCursor: p.NextCursor, HasMore: p.HasMore}, nil
}

func FromBookingStats(s *queries.BookingStats) (*BookingStatsResponse, error) {
	var res BookingStatsResponse
	if err := copier.Copy(&res, s); err != nil {
		return nil, err
	}
	res.Perspective = string(s.Perspective)
	return &res, nil
}
