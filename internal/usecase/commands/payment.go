package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"localscout-booking/internal/domain/booking"
	"localscout-booking/internal/infra"
	"localscout-booking/internal/pkg/clock"
	"localscout-booking/internal/pkg/errs"
	"localscout-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type WebhookOutcome string

const (
	OutcomeConfirmed        WebhookOutcome = "confirmed"
	OutcomeAlreadyConfirmed WebhookOutcome = "already_confirmed"
	OutcomeNotConfirmed     WebhookOutcome = "not_confirmed"
	OutcomeIgnored          WebhookOutcome = "ignored"
)

// WebhookPayload carries the gateway's IPN fields. Status is advisory;
// only server-side validation can confirm a booking.
type WebhookPayload struct {
	TranID string
	ValID  string
	Status string
}

type CheckoutSettings struct {
	Currency          string
	SuccessURL        string
	FailURL           string
	CancelURL         string
	IPNURL            string
	LookupTTL         time.Duration
	CheckoutTimeout   time.Duration
	ValidationTimeout time.Duration
}

type PaymentCommands interface {
	CreateCheckoutSession(ctx context.Context, bookingID, customerID uuid.UUID) (string, error)
	HandlePaymentWebhook(ctx context.Context, payload WebhookPayload) (WebhookOutcome, error)
}

var (
	errAlreadyConfirmed = errs.New("booking already confirmed")
	errNotAwaitingPay   = errs.New("booking is not awaiting payment")
)

type paymentUseCaseImpl struct {
	uow      shared.UnitOfWork
	gateway  shared.PaymentGateway
	lookup   shared.CheckoutLookup
	clock    clock.Clock
	settings CheckoutSettings
	effects  sideEffects
}

func NewPaymentUseCase(
	uow shared.UnitOfWork,
	gateway shared.PaymentGateway,
	lookup shared.CheckoutLookup,
	events shared.EventPublisher,
	clk clock.Clock,
	settings CheckoutSettings,
) PaymentCommands {
	return &paymentUseCaseImpl{
		uow:      uow,
		gateway:  gateway,
		lookup:   lookup,
		clock:    clk,
		settings: settings,
		effects:  sideEffects{uow: uow, events: events, clock: clk},
	}
}

// CreateCheckoutSession never mutates the booking; confirmation only happens via the webhook.
func (uc *paymentUseCaseImpl) CreateCheckoutSession(ctx context.Context, bookingID, customerID uuid.UUID) (string, error) {
	reads := uc.uow.CommandReads()
	b, err := reads.BookingByID(ctx, bookingID)
	if err != nil {
		return "", classify(err)
	}
	if b.CustomerID() != customerID {
		return "", errs.Mark(errs.Newf("user %s cannot pay for booking %s", customerID, bookingID), errs.ErrForbidden)
	}
	if b.Status() != booking.StatusApproved {
		return "", errs.Mark(errs.Newf("booking %s is %s, not Approved", bookingID, b.Status()), errs.ErrInvalidStateTransition)
	}

	customer, err := reads.UserByID(ctx, customerID)
	if err != nil {
		return "", classify(err)
	}

	tranID := booking.NewTransactionID(b.ID())
	if uc.lookup != nil {
		if err := uc.lookup.Remember(ctx, tranID, b.ID(), uc.settings.LookupTTL); err != nil {
			slog.Warn("failed to remember checkout transaction",
				"tran_id", tranID,
				"booking_id", b.ID(),
				"error", err.Error())
		}
	}

	if uc.settings.CheckoutTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.settings.CheckoutTimeout)
		defer cancel()
	}

	session, err := uc.gateway.CreateCheckout(ctx, shared.CheckoutRequest{
		TransactionID: tranID,
		Amount:        b.PayableAmount(),
		Currency:      uc.settings.Currency,
		ProductName:   b.ServiceName(),
		SuccessURL:    uc.settings.SuccessURL,
		FailURL:       uc.settings.FailURL,
		CancelURL:     uc.settings.CancelURL,
		IPNURL:        uc.settings.IPNURL,
		Customer: shared.CheckoutCustomer{
			Name:  customer.DisplayName(),
			Email: customer.Email,
			Phone: customer.Phone,
		},
	})
	if err != nil {
		return "", errs.Mark(errs.Wrapf(err, "checkout for booking %s", bookingID), errs.ErrPaymentInitiationFailed)
	}
	if session == nil || session.RedirectURL == "" {
		return "", errs.Mark(errs.Newf("checkout for booking %s returned no redirect", bookingID), errs.ErrPaymentInitiationFailed)
	}

	slog.Info("checkout session created", "booking_id", b.ID(), "tran_id", tranID, "amount", b.PayableAmount().String())
	return session.RedirectURL, nil
}

func (uc *paymentUseCaseImpl) HandlePaymentWebhook(ctx context.Context, payload WebhookPayload) (WebhookOutcome, error) {
	tranID := strings.TrimSpace(payload.TranID)
	valID := strings.TrimSpace(payload.ValID)
	if tranID == "" || valID == "" {
		return "", validationf("tran_id and val_id are required")
	}

	bookingID, err := uc.resolveBooking(ctx, tranID)
	if err != nil {
		return "", classify(err)
	}

	b, err := uc.uow.CommandReads().BookingByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			slog.Info("payment webhook for unknown booking", "tran_id", tranID, "booking_id", bookingID)
			return OutcomeIgnored, nil
		}
		return "", classify(err)
	}

	switch b.Status() {
	case booking.StatusConfirmed:
		return OutcomeAlreadyConfirmed, nil
	case booking.StatusApproved:
	default:
		slog.Info("payment webhook for booking not awaiting payment", "booking_id", b.ID(), "status", b.Status())
		return OutcomeIgnored, nil
	}

	if status := strings.ToUpper(strings.TrimSpace(payload.Status)); status != "" &&
		status != shared.PaymentStatusValid && status != shared.PaymentStatusValidated {
		slog.Info("payment webhook reports unpaid status", "booking_id", b.ID(), "status", status)
		return OutcomeNotConfirmed, nil
	}

	result, err := uc.validate(ctx, valID)
	if err != nil {
		if errs.Is(err, shared.ErrGatewayRejected) {
			slog.Warn("payment validation rejected", "booking_id", b.ID(), "val_id", valID, "error", err.Error())
			return OutcomeNotConfirmed, nil
		}
		return "", errs.Mark(errs.Wrapf(err, "validate %s", valID), errs.ErrTransientGateway)
	}
	if !result.Paid() || result.TransactionID != tranID {
		slog.Warn("payment validation did not confirm booking",
			"booking_id", b.ID(),
			"tran_id", tranID,
			"validated_tran_id", result.TransactionID,
			"status", result.Status)
		return OutcomeNotConfirmed, nil
	}

	if !uc.chargeMatches(b, result) {
		slog.Warn("payment validation amount does not match booking",
			"booking_id", b.ID(),
			"tran_id", tranID,
			"expected_amount", b.PayableAmount().String(),
			"expected_currency", uc.settings.Currency,
			"validated_amount", result.Amount,
			"validated_currency", result.Currency)
		return OutcomeNotConfirmed, nil
	}

	reference := result.Reference
	if reference == "" {
		reference = valID
	}

	var confirmed *booking.Booking
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, err := tx.Reads().BookingByID(ctx, bookingID)
		if err != nil {
			return err
		}
		switch current.Status() {
		case booking.StatusConfirmed:
			return errAlreadyConfirmed
		case booking.StatusApproved:
		default:
			return errNotAwaitingPay
		}
		if err := current.Confirm(reference, uc.clock.Now()); err != nil {
			return err
		}
		if err := tx.Bookings().UpdateStatus(ctx, tx.DB(), current, booking.StatusApproved); err != nil {
			return err
		}
		confirmed = current
		return nil
	})
	if err != nil {
		return uc.settleLostRace(ctx, bookingID, err)
	}

	uc.effects.notify(ctx, confirmed.CustomerID(), confirmedCustomerMessage(confirmed, uc.settings.Currency))
	uc.effects.notify(ctx, confirmed.ProviderID(), confirmedProviderMessage(confirmed))
	uc.effects.publish(ctx, shared.EventBookingConfirmed, confirmed)

	slog.Info("booking confirmed by payment", "booking_id", bookingID, "reference", reference)
	return OutcomeConfirmed, nil
}

// settleLostRace turns a failed confirmation into an outcome when another
// delivery got there first.
func (uc *paymentUseCaseImpl) settleLostRace(ctx context.Context, bookingID uuid.UUID, err error) (WebhookOutcome, error) {
	switch {
	case errs.Is(err, errAlreadyConfirmed):
		return OutcomeAlreadyConfirmed, nil
	case errs.Is(err, errNotAwaitingPay):
		return OutcomeIgnored, nil
	case infra.IsKind(err, infra.KindConflict), errs.Is(err, booking.ErrInvalidTransition):
	default:
		return "", classify(err)
	}

	b, reloadErr := uc.uow.CommandReads().BookingByID(ctx, bookingID)
	if reloadErr != nil {
		return "", classify(reloadErr)
	}
	if b.Status() == booking.StatusConfirmed {
		return OutcomeAlreadyConfirmed, nil
	}
	return OutcomeIgnored, nil
}

// chargeMatches compares what the gateway collected with what the booking
// costs. A missing currency is tolerated; a missing amount is not.
func (uc *paymentUseCaseImpl) chargeMatches(b *booking.Booking, result *shared.ValidationResult) bool {
	paid, err := booking.ParseMoney(result.Amount)
	if err != nil || paid.Minor() != b.PayableAmount().Minor() {
		return false
	}
	if result.Currency != "" && uc.settings.Currency != "" &&
		!strings.EqualFold(strings.TrimSpace(result.Currency), uc.settings.Currency) {
		return false
	}
	return true
}

func (uc *paymentUseCaseImpl) resolveBooking(ctx context.Context, tranID string) (uuid.UUID, error) {
	if uc.lookup != nil {
		id, ok, err := uc.lookup.Resolve(ctx, tranID)
		switch {
		case err != nil:
			slog.Warn("checkout lookup failed, parsing transaction id", "tran_id", tranID, "error", err.Error())
		case ok:
			return id, nil
		}
	}
	return booking.ParseTransactionID(tranID)
}

func (uc *paymentUseCaseImpl) validate(ctx context.Context, valID string) (*shared.ValidationResult, error) {
	if uc.settings.ValidationTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.settings.ValidationTimeout)
		defer cancel()
	}
	result, err := uc.gateway.ValidateTransaction(ctx, valID)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, errs.Mark(errs.New("empty validation result"), shared.ErrGatewayUnavailable)
	}
	return result, nil
}
