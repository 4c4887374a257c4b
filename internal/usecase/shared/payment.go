package shared

import (
	"context"

	"localscout-booking/internal/domain/booking"
	"localscout-booking/internal/pkg/errs"
)

var (
	// Network failure, timeout or 5xx. Safe to retry.
	ErrGatewayUnavailable = errs.New("payment gateway unavailable")
	// The gateway answered but refused or returned something unusable.
	ErrGatewayRejected = errs.New("payment gateway rejected the request")
)

type PaymentGateway interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	ValidateTransaction(ctx context.Context, valID string) (*ValidationResult, error)
}

type CheckoutRequest struct {
	TransactionID string
	Amount        booking.Money
	Currency      string
	ProductName   string
	SuccessURL    string
	FailURL       string
	CancelURL     string
	IPNURL        string
	Customer      CheckoutCustomer
}

type CheckoutCustomer struct {
	Name  string
	Email string
	Phone string
}

type CheckoutSession struct {
	RedirectURL string
	SessionKey  string
}

const (
	PaymentStatusValid     = "VALID"
	PaymentStatusValidated = "VALIDATED"
)

type ValidationResult struct {
	Valid         bool
	Status        string
	TransactionID string
	Amount        string
	// ISO code of Amount; empty when the gateway does not report it.
	Currency string
	// Bank or gateway reference stored on the confirmed booking.
	Reference string
}

// Paid is true only for an explicit positive answer from the gateway.
func (r *ValidationResult) Paid() bool {
	if r == nil || !r.Valid {
		return false
	}
	return r.Status == PaymentStatusValid || r.Status == PaymentStatusValidated
}
