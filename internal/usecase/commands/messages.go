package commands

import (
	"fmt"
	"strings"

	"localscout-booking/internal/domain/booking"
	"localscout-booking/internal/domain/user"
)

func newRequestMessage(customer *user.Profile, serviceName string) string {
	return fmt.Sprintf("You have a new booking request from %s for '%s'. Please review it.",
		requesterName(customer), serviceName)
}

func approvedMessage(b *booking.Booking, currency string) string {
	if fp := b.FinalPrice(); fp != nil {
		return fmt.Sprintf("Good news! Your booking for '%s' has been approved with a final price of %s %s. You can now proceed with payment.",
			b.ServiceName(), fp.String(), currency)
	}
	return fmt.Sprintf("Good news! Your booking for '%s' has been approved. You can now proceed with payment.", b.ServiceName())
}

func rejectedMessage(b *booking.Booking) string {
	msg := fmt.Sprintf("Unfortunately, your booking for '%s' has been rejected by the provider.", b.ServiceName())
	if reason := b.RejectionReason(); reason != "" {
		msg += fmt.Sprintf(" Reason: %s", reason)
	}
	return msg
}

func canceledMessage(b *booking.Booking) string {
	msg := fmt.Sprintf("The booking for '%s' on %s has been canceled by the customer.",
		b.ServiceName(), b.BookingDate().Format("2006-01-02"))
	if reason := b.CancellationReason(); reason != "" {
		msg += fmt.Sprintf(" Reason: %s", reason)
	}
	return msg
}

func confirmedCustomerMessage(b *booking.Booking, currency string) string {
	return fmt.Sprintf("Payment received! Your booking for '%s' is confirmed (%s %s).",
		b.ServiceName(), b.PayableAmount().String(), currency)
}

func confirmedProviderMessage(b *booking.Booking) string {
	return fmt.Sprintf("Booking for '%s' has been paid and is now confirmed.", b.ServiceName())
}

// requesterName uses the first name like the dashboard greeting does.
func requesterName(p *user.Profile) string {
	if p == nil {
		return "a customer"
	}
	if name := strings.TrimSpace(p.FirstName); name != "" {
		return name
	}
	return p.DisplayName()
}
