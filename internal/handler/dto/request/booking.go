package request

import (
	"localscout-booking/internal/pkg/patch"
	"localscout-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	ServiceID uuid.UUID `json:"service_id" binding:"required"`
	// Local wall-clock time ("2025-03-10T14:00") or RFC 3339 with offset.
	BookingDate string  `json:"booking_date" binding:"required"`
	Notes       *string `json:"notes" binding:"omitempty,max=1000"`
}

func (r *CreateBookingRequest) ToInput(customerID uuid.UUID) commands.CreateBookingInput {
	return commands.CreateBookingInput{
		ServiceID:     r.ServiceID,
		CustomerID:    customerID,
		LocalDateTime: r.BookingDate,
		Notes:         patch.Trimmed(r.Notes, ""),
	}
}

// ApproveBookingRequest is optional; an empty body approves at the quoted price.
type ApproveBookingRequest struct {
	FinalPrice *string `json:"final_price" binding:"omitempty,max=20"`
}

func (r *ApproveBookingRequest) HasFinalPrice() bool {
	return patch.Trimmed(r.FinalPrice, "") != ""
}

type ReasonRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}
